package service

import (
	"errors"

	"github.com/tyazhprofil/site/internal/store"
)

var (
	ErrNotFound        = errors.New("item not found")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrConflict        = errors.New("content was changed since it was loaded; reload and try again")
	ErrTooLarge        = errors.New("file is too large (max 5 MB)")
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrFormDisabled    = errors.New("contact form is disabled")
)

// ValidationError reports caller input that cannot be stored. Message is
// safe to show to the user as is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// translateStoreError maps store sentinels onto the service taxonomy and
// passes anything else through.
func translateStoreError(err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, store.ErrDuplicateID):
		return invalid("id", "an item with this id already exists")
	case errors.Is(err, store.ErrVersionConflict):
		return ErrConflict
	default:
		return err
	}
}
