package errors

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalid      = errors.New("invalid")
	ErrConflict     = errors.New("conflict")
	ErrInternal     = errors.New("internal")
)

// Domain failures. Each one renders with a fixed client-facing message.
var (
	ErrCredentialsTaken     = errors.New("credentials taken")
	ErrIncorrectCredentials = errors.New("incorrect credentials")
	ErrAccessDenied         = errors.New("access to resource is denied")
	ErrUserNotFound         = errors.New("user not found")
)

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}
