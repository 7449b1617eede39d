package errs

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Database & Storage Specific Errors
var (
	ErrConstraintViolation  = errors.New("constraint violation")
	ErrForeignKeyConstraint = errors.New("foreign key constraint violation")
	ErrEmptyFilter          = errors.New("empty filter")
	ErrDatabaseQuery        = errors.New("database query failed")
	ErrDatabaseConnection   = errors.New("database connection failed")
)

// NewConstraintViolationError reports a uniqueness violation surfaced from
// the storage engine after the transaction was rolled back.
func NewConstraintViolationError(entity string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusConflict,
		err:        fmt.Errorf("%s: %w", entity, ErrConstraintViolation),
		Cause:      cause,
	}
}

func NewForeignKeyConstraintError(entity string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        fmt.Errorf("%s: %w", entity, ErrForeignKeyConstraint),
		Details:    "The referenced resource does not exist or cannot be linked",
		Cause:      cause,
	}
}

// NewEmptyFilterError guards the store operations that refuse to run
// without at least one filter field (full-table scans and deletes).
func NewEmptyFilterError(operation string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        fmt.Errorf("%s: %w: %w", operation, ErrBadRequest, ErrEmptyFilter),
		Field:      "filter",
	}
}

// NewDatabaseError classifies a storage-layer failure by inspecting the
// driver message, the same way both postgres and sqlite surface it.
func NewDatabaseError(operation, entity string, cause error) *ApiErr {
	details := fmt.Sprintf("Failed to %s %s", operation, entity)

	if cause != nil {
		errStr := cause.Error()
		switch {
		case strings.Contains(errStr, "duplicate key"),
			strings.Contains(errStr, "duplicated key"),
			strings.Contains(errStr, "UNIQUE constraint"):
			return &ApiErr{
				StatusCode: http.StatusConflict,
				err:        fmt.Errorf("%s: %w", entity, ErrConstraintViolation),
				Details:    details,
				Cause:      cause,
			}
		case strings.Contains(errStr, "foreign key constraint"),
			strings.Contains(errStr, "FOREIGN KEY constraint"):
			return NewForeignKeyConstraintError(entity, cause)
		case strings.Contains(errStr, "connection"):
			return &ApiErr{
				StatusCode: http.StatusServiceUnavailable,
				err:        ErrDatabaseConnection,
				Details:    "Unable to connect to database",
				Cause:      cause,
			}
		}
	}

	// Generic database error
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrDatabaseQuery,
		Details:    details,
		Cause:      cause,
	}
}

func IsConstraintViolation(err error) bool {
	return errors.Is(err, ErrConstraintViolation)
}

func IsForeignKeyConstraint(err error) bool {
	return errors.Is(err, ErrForeignKeyConstraint)
}

func IsEmptyFilter(err error) bool {
	return errors.Is(err, ErrEmptyFilter)
}
