package errs

import (
	"errors"
	"fmt"
)

// Common error sentinel values
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("operation not allowed")
	ErrBadRequest   = errors.New("malformed request")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInternal     = errors.New("internal server error")
	ErrConflict     = errors.New("resource conflict")
)

type ApiErr struct {
	StatusCode int
	err        error
	Details    string // Additional details about the error
	Field      string // Field that caused the error (for validation errors)
	Cause      error  // The underlying cause of the error
}

func NewApiErr(statusCode int, message string) *ApiErr {
	return &ApiErr{
		StatusCode: statusCode,
		err:        errors.New(message),
	}
}

// implements error interface. this allows us to pass an instance of ApiErr as an argument of type `error`
func (e *ApiErr) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.err.Error(), e.Details)
	}
	return e.err.Error()
}

// GetFullError returns a recursive error message including all causes
func (e *ApiErr) GetFullError() string {
	msg := e.Error()
	if e.Cause != nil {
		if apiErr, ok := e.Cause.(*ApiErr); ok {
			msg = fmt.Sprintf("%s -> %s", msg, apiErr.GetFullError())
		} else {
			msg = fmt.Sprintf("%s -> %s", msg, e.Cause.Error())
		}
	}
	return msg
}

// this function allows us to do the following:
// err := &ApiErr{StatusCode: ..., err: someSentinelError}
// errors.Is(err, someSentinelError) ==> evaluates to true
func (e *ApiErr) Unwrap() error {
	return e.err
}

// Common error constructors with appropriate HTTP status codes
func NewNotFoundError(message string) *ApiErr {
	return &ApiErr{StatusCode: 404, err: fmt.Errorf("%s: %w", message, ErrNotFound)}
}

func NewForbiddenError(message string) *ApiErr {
	return &ApiErr{StatusCode: 403, err: fmt.Errorf("%s: %w", message, ErrForbidden)}
}

func NewBadRequestError(message string) *ApiErr {
	return &ApiErr{StatusCode: 400, err: fmt.Errorf("%s: %w", message, ErrBadRequest)}
}

func NewUnauthorizedError(message string) *ApiErr {
	return &ApiErr{StatusCode: 401, err: fmt.Errorf("%s: %w", message, ErrUnauthorized)}
}

func NewInternalError(message string) *ApiErr {
	return &ApiErr{StatusCode: 500, err: fmt.Errorf("%s: %w", message, ErrInternal)}
}

func NewConflictError(message string) *ApiErr {
	return &ApiErr{StatusCode: 409, err: fmt.Errorf("%s: %w", message, ErrConflict)}
}

func NewBadRequestErrorWithField(message, field, details string) *ApiErr {
	return &ApiErr{
		StatusCode: 400,
		err:        fmt.Errorf("%s: %w", message, ErrBadRequest),
		Field:      field,
		Details:    details,
	}
}

func NewInternalErrorWithCause(message string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: 500,
		err:        fmt.Errorf("%s: %w", message, ErrInternal),
		Cause:      cause,
	}
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}

func IsBadRequest(err error) bool {
	return errors.Is(err, ErrBadRequest)
}

func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

func IsInternal(err error) bool {
	return errors.Is(err, ErrInternal)
}

func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}
