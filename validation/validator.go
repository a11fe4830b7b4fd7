package validation

import (
	"fmt"
	"strings"

	"github.com/kbukum/primekit/errors"
)

// Validator collects field errors from hand-written checks.
type Validator struct {
	errors []FieldError
}

// FieldError is one failed check.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// New creates an empty Validator.
func New() *Validator {
	return &Validator{
		errors: make([]FieldError, 0),
	}
}

// AddError records a failed check on field.
func (v *Validator) AddError(field, message string) {
	v.errors = append(v.errors, FieldError{
		Field:   field,
		Message: message,
	})
}

// HasErrors reports whether any check failed.
func (v *Validator) HasErrors() bool {
	return len(v.errors) > 0
}

// Errors returns the failed checks in the order they were recorded.
func (v *Validator) Errors() []FieldError {
	return v.errors
}

// Validate returns an INVALID_INPUT AppError listing every failed check, or nil.
func (v *Validator) Validate() *errors.AppError {
	if !v.HasErrors() {
		return nil
	}

	messages := make([]string, len(v.errors))
	for i, e := range v.errors {
		messages[i] = fmt.Sprintf("%s: %s", e.Field, e.Message)
	}

	return errors.Validation(strings.Join(messages, "; ")).
		WithDetail("fields", v.errors)
}

// Err is Validate as a plain error, nil when every check passed.
func (v *Validator) Err() error {
	if appErr := v.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

// Required checks that a string is not blank.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.AddError(field, "is required")
	}
	return v
}

// Positive checks that value is at least one.
func (v *Validator) Positive(field string, value int) *Validator {
	if value < 1 {
		v.AddError(field, "must be at least 1")
	}
	return v
}

// AtMost checks that value does not exceed limit. A zero limit disables the check.
func (v *Validator) AtMost(field string, value, limit uint64) *Validator {
	if limit > 0 && value > limit {
		v.AddError(field, fmt.Sprintf("must be at most %d", limit))
	}
	return v
}

// Span checks that the closed range [lo, hi] covers at most limit+1 integers.
// Empty ranges (lo > hi) always pass. A zero limit disables the check.
func (v *Validator) Span(field string, lo, hi, limit uint64) *Validator {
	if limit > 0 && lo <= hi && hi-lo > limit {
		v.AddError(field, fmt.Sprintf("spans %d integers; at most %d allowed", hi-lo, limit))
	}
	return v
}

// OneOf checks that a non-empty value is one of allowed.
func (v *Validator) OneOf(field, value string, allowed []string) *Validator {
	if value == "" {
		return v
	}
	for _, a := range allowed {
		if value == a {
			return v
		}
	}
	v.AddError(field, fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")))
	return v
}

// Custom records message on field unless condition holds.
func (v *Validator) Custom(condition bool, field, message string) *Validator {
	if !condition {
		v.AddError(field, message)
	}
	return v
}
