// internal/pkg/apperr/apperr.go
package apperr

import "errors"

// Sentinel errors for the operation result taxonomy. Services wrap these with
// fmt.Errorf("...: %w", ...) so callers can classify with errors.Is while the
// message keeps the entity context.
var (
	// ErrNotFound indicates a referenced entity id or name does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidArgument indicates a missing or malformed required field.
	ErrInvalidArgument = errors.New("invalid argument")
)
