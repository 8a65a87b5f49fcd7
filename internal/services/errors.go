package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrNotFound             = errors.New("not found")
	ErrForbidden            = errors.New("forbidden")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrInvalidRequest       = errors.New("invalid request")
	ErrConflict             = errors.New("conflict")
	ErrUserNotFound         = errors.New("user not found")
	ErrInactiveUser         = errors.New("user inactive")
	ErrBadCredentials       = errors.New("invalid credentials")
	ErrInvalidOrExpiredCode = errors.New("invalid or expired code")
)

// invalid wraps ErrInvalidRequest with a client-facing reason.
func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}

// dbError classifies a GORM error. Missing rows become ErrNotFound, unique
// violations ErrConflict and references to missing rows ErrInvalidRequest.
// Anything else is returned wrapped as-is.
func dbError(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s: %w", what, ErrConflict)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%s: referenced record does not exist: %w", what, ErrInvalidRequest)
	default:
		return fmt.Errorf("%s: %w", what, err)
	}
}
