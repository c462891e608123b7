package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// FieldError describes a single invalid request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Status  int          `json:"status"`
	Details []FieldError `json:"details,omitempty"`
	Err     error        `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Predefined errors matching the public API contract. Clients dispatch on
// the code strings, so they must stay stable.
var (
	ErrMissingDate          = New("MISSING_DATE", http.StatusBadRequest, "Date parameter is required")
	ErrInvalidDateFormat    = New("INVALID_DATE_FORMAT", http.StatusBadRequest, "Invalid date format. Use YYYY-MM-DD")
	ErrInvalidDate          = New("INVALID_DATE", http.StatusBadRequest, "Invalid date value")
	ErrInvalidEndDateFormat = New("INVALID_END_DATE_FORMAT", http.StatusBadRequest, "Invalid endDate format. Use YYYY-MM-DD")
	ErrInvalidEndDate       = New("INVALID_END_DATE", http.StatusBadRequest, "Invalid endDate value")
	ErrInvalidDateRange     = New("INVALID_DATE_RANGE", http.StatusBadRequest, "endDate must be after date")
	ErrRangeTooLarge        = New("RANGE_TOO_LARGE", http.StatusBadRequest, "Date range cannot exceed 30 days")
	ErrMissingClassID       = New("MISSING_CLASS_ID", http.StatusBadRequest, "classId parameter is required")
	ErrInvalidClassID       = New("INVALID_CLASS_ID", http.StatusBadRequest, "Invalid classId format")
	ErrClassNotFound        = New("CLASS_NOT_FOUND", http.StatusNotFound, "Class not found")
	ErrBookingNotFound      = New("BOOKING_NOT_FOUND", http.StatusNotFound, "Booking not found")
	ErrBookingNotAllowed    = New("BOOKING_NOT_ALLOWED", http.StatusBadRequest, "Booking is not allowed")
	ErrInvalidJSON          = New("INVALID_JSON", http.StatusBadRequest, "Invalid JSON in request body")
	ErrValidation           = New("VALIDATION_ERROR", http.StatusBadRequest, "Validation failed")
	ErrUnauthorized         = New("UNAUTHORIZED", http.StatusUnauthorized, "unauthorized")
	ErrInvalidCredentials   = New("INVALID_CREDENTIALS", http.StatusUnauthorized, "invalid email or password")
	ErrRateLimited          = New("RATE_LIMITED", http.StatusTooManyRequests, "Too many requests. Please try again later.")
	ErrPaymentNotConfigured = New("PAYMENT_NOT_CONFIGURED", http.StatusServiceUnavailable, "Payment system is not configured. Please contact support.")
	ErrPaymentFailed        = New("PAYMENT_FAILED", http.StatusInternalServerError, "Failed to create payment. Please try again.")
	ErrInternal             = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
)

// ErrCacheMiss signals a cache lookup without a stored value.
var ErrCacheMiss = errors.New("cache miss")

// FromError normalises any error into an *Error. Unknown errors are
// reported as internal so raw error text never reaches clients.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}

// WithDetails returns a copy of the error carrying per-field messages.
func WithDetails(err *Error, details []FieldError) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	clone.Details = details
	return &clone
}
