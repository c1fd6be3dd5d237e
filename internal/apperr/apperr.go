package apperr

import "errors"

// Sentinel errors shared across the service and handler layers. Handlers
// translate these to HTTP statuses in exactly one place; storage error
// text never crosses the API boundary.
var (
	ErrValidation         = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrMissingToken       = errors.New("missing token")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrForbidden          = errors.New("not allowed")
	ErrNotFound           = errors.New("not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrStorage            = errors.New("storage failure")
)
