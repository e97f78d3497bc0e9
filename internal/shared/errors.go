package shared

import "errors"

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate indicates a uniqueness conflict (email, username, category name).
	ErrDuplicate = errors.New("duplicate entry")
	// ErrInvalidCredentials indicates login failure. Unknown identifier and
	// wrong password map to the same error so the response cannot be used to
	// probe which accounts exist.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrValidation indicates rejected input.
	ErrValidation = errors.New("validation failed")
)
