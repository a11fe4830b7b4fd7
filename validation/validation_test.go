package validation

import (
	"strings"
	"testing"

	"github.com/kbukum/primekit/errors"
)

func TestValidatorRequired(t *testing.T) {
	tests := []struct {
		value   string
		wantErr bool
	}{
		{"1..100", false},
		{"", true},
		{"   ", true},
	}
	for _, tc := range tests {
		v := New().Required("range", tc.value)
		if v.HasErrors() != tc.wantErr {
			t.Errorf("Required(%q) errors = %v, want %v", tc.value, v.Errors(), tc.wantErr)
		}
	}
}

func TestValidatorPositive(t *testing.T) {
	if New().Positive("count", 1).HasErrors() {
		t.Error("expected 1 to be accepted")
	}
	for _, n := range []int{0, -3} {
		if !New().Positive("count", n).HasErrors() {
			t.Errorf("expected %d to be rejected", n)
		}
	}
}

func TestValidatorAtMost(t *testing.T) {
	tests := []struct {
		name    string
		value   uint64
		limit   uint64
		wantErr bool
	}{
		{"below", 10, 100, false},
		{"equal", 100, 100, false},
		{"above", 101, 100, true},
		{"no limit", 1 << 40, 0, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := New().AtMost("count", tc.value, tc.limit).HasErrors(); got != tc.wantErr {
				t.Errorf("AtMost(%d, %d) = %v, want %v", tc.value, tc.limit, got, tc.wantErr)
			}
		})
	}
}

func TestValidatorSpan(t *testing.T) {
	tests := []struct {
		name    string
		lo, hi  uint64
		limit   uint64
		wantErr bool
	}{
		{"within", 0, 1000, 1000, false},
		{"too wide", 0, 1001, 1000, true},
		{"empty range", 50, 10, 1, false},
		{"full domain unlimited", 0, 18446744073709551615, 0, false},
		{"full domain limited", 0, 18446744073709551615, 1 << 20, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := New().Span("range", tc.lo, tc.hi, tc.limit).HasErrors(); got != tc.wantErr {
				t.Errorf("Span(%d, %d, %d) = %v, want %v", tc.lo, tc.hi, tc.limit, got, tc.wantErr)
			}
		})
	}
}

func TestValidatorOneOf(t *testing.T) {
	allowed := []string{"naive", "incremental", "segmented"}

	if New().OneOf("generator", "segmented", allowed).HasErrors() {
		t.Error("expected allowed value to pass")
	}
	if New().OneOf("generator", "", allowed).HasErrors() {
		t.Error("expected empty value to be skipped")
	}
	v := New().OneOf("generator", "wheel", allowed)
	if !v.HasErrors() {
		t.Fatal("expected unknown value to fail")
	}
	if !strings.Contains(v.Errors()[0].Message, "incremental") {
		t.Errorf("expected allowed values in message, got %q", v.Errors()[0].Message)
	}
}

func TestValidatorCustom(t *testing.T) {
	if New().Custom(true, "range", "unused").HasErrors() {
		t.Error("expected passing condition to record nothing")
	}
	v := New().Custom(false, "range", "cannot be combined with min or max")
	if got := v.Errors(); len(got) != 1 || got[0].Field != "range" {
		t.Errorf("unexpected errors: %v", got)
	}
}

func TestValidatorValidate(t *testing.T) {
	if New().Validate() != nil {
		t.Error("expected nil AppError with no failures")
	}
	if New().Err() != nil {
		t.Error("expected nil error with no failures")
	}

	appErr := New().
		Positive("count", 0).
		AtMost("count", 5000, 1000).
		Validate()
	if appErr == nil {
		t.Fatal("expected an AppError")
	}
	if appErr.Code != errors.ErrCodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %s", appErr.Code)
	}
	fields, ok := appErr.Details["fields"].([]FieldError)
	if !ok || len(fields) != 2 {
		t.Fatalf("expected 2 field errors in details, got %v", appErr.Details["fields"])
	}
	if !strings.Contains(appErr.Message, "count: must be at least 1") {
		t.Errorf("unexpected message %q", appErr.Message)
	}
}

type window struct {
	Initial uint64 `json:"initial" validate:"gte=4,even"`
	Max     uint64 `json:"max" validate:"even,gtefield=Initial"`
}

type query struct {
	Count     int    `json:"count" validate:"required,gte=1"`
	Generator string `json:"generator" validate:"omitempty,oneof=naive incremental segmented"`
	Label     string `validate:"max=8"`
}

func TestStructValidateValid(t *testing.T) {
	if err := Validate(window{Initial: 1024, Max: 1 << 20}); err != nil {
		t.Errorf("expected valid window, got %v", err)
	}
	if err := Validate(query{Count: 10}); err != nil {
		t.Errorf("expected valid query, got %v", err)
	}
}

func TestStructValidateInvalid(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		field   string
		message string
	}{
		{"odd initial", window{Initial: 1023, Max: 2048}, "initial", "must be even"},
		{"small initial", window{Initial: 2, Max: 2048}, "initial", "must be at least 4"},
		{"odd max", window{Initial: 1024, Max: 2049}, "max", "must be even"},
		{"max below initial", window{Initial: 1024, Max: 512}, "max", "must not be less than initial"},
		{"missing count", query{}, "count", "is required"},
		{"unknown generator", query{Count: 1, Generator: "wheel"}, "generator", "must be one of: naive incremental segmented"},
		{"long label", query{Count: 1, Label: "far too long"}, "label", "must be at most 8 characters"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.input)
			appErr, ok := errors.AsAppError(err)
			if !ok {
				t.Fatalf("expected AppError, got %v", err)
			}
			fields := appErr.Details["fields"].([]FieldError)
			for _, f := range fields {
				if f.Field == tc.field {
					if f.Message != tc.message {
						t.Errorf("field %s: got %q, want %q", tc.field, f.Message, tc.message)
					}
					return
				}
			}
			t.Errorf("expected error on %s, got %v", tc.field, fields)
		})
	}
}

func TestToSnakeCase(t *testing.T) {
	tests := map[string]string{
		"MaxQuerySpan": "max_query_span",
		"count":        "count",
		"Initial":      "initial",
	}
	for in, want := range tests {
		if got := toSnakeCase(in); got != want {
			t.Errorf("toSnakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}
