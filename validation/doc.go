// Package validation turns input checks into INVALID_INPUT errors.
//
// Struct tags are checked with go-playground/validator; the extra `even`
// tag accepts integers divisible by two:
//
//	type WindowConfig struct {
//	    Initial uint64 `json:"initial" validate:"gte=4,even"`
//	    Max     uint64 `json:"max" validate:"even,gtefield=Initial"`
//	}
//	err := validation.Validate(cfg)
//
// Hand-written checks use the fluent Validator:
//
//	err := validation.New().
//	    Positive("count", n).
//	    AtMost("count", uint64(n), limits.MaxCount).
//	    Err()
package validation
