package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Token verification errors. Expired and invalid-signature tokens are kept
// distinct in logs but both surface to clients as 401.
var (
	ErrTokenExpired     = errors.New("token expired")
	ErrInvalidSignature = errors.New("invalid token signature")
)

func NewTokenExpiredError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnauthorized,
		err:        fmt.Errorf("%w: %w", ErrUnauthorized, ErrTokenExpired),
	}
}

func NewInvalidSignatureError(cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnauthorized,
		err:        fmt.Errorf("%w: %w", ErrUnauthorized, ErrInvalidSignature),
		Cause:      cause,
	}
}

func IsTokenExpired(err error) bool {
	return errors.Is(err, ErrTokenExpired)
}

func IsInvalidSignature(err error) bool {
	return errors.Is(err, ErrInvalidSignature)
}
