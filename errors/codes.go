package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Range errors
const (
	// ErrCodeInvalidRange indicates a range that cannot be materialized,
	// such as one without an upper bound.
	ErrCodeInvalidRange ErrorCode = "INVALID_RANGE"
	// ErrCodeOverflow indicates a bound that would wrap around the 64-bit domain.
	ErrCodeOverflow ErrorCode = "OVERFLOW"
)

// Sequence errors
const (
	// ErrCodeSequenceExhausted indicates an infinite sequence ran out of values.
	ErrCodeSequenceExhausted ErrorCode = "SEQUENCE_EXHAUSTED"
)

// Validation errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeNotFound indicates the requested resource was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeRateLimited indicates the client sent too many requests.
	ErrCodeRateLimited ErrorCode = "RATE_LIMITED"
)

// Internal errors
const (
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
	// ErrCodeCanceled indicates the caller gave up before the work completed.
	ErrCodeCanceled ErrorCode = "CANCELED"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeCanceled:    true,
	ErrCodeRateLimited: true,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
