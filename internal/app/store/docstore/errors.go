// internal/app/store/docstore/errors.go
package docstore

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable is the generic "store unavailable" condition. Every
	// network, permission, timeout or query-construction failure matches it.
	ErrUnavailable = errors.New("document store unavailable")

	// ErrNotFound reports an update against an identifier that does not exist.
	ErrNotFound = errors.New("document not found")
)

// UnavailableError carries the original backend message without exposing the
// backend's own error types.
type UnavailableError struct {
	Op         string
	Collection string
	Message    string
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%s %s: %s: %s", e.Op, e.Collection, ErrUnavailable.Error(), e.Message)
}

// Is makes errors.Is(err, ErrUnavailable) true for every UnavailableError.
func (e *UnavailableError) Is(target error) bool {
	return target == ErrUnavailable
}

// Unavailable converts a backend error into an *UnavailableError.
// nil stays nil; ErrNotFound and errors that are already normalized pass
// through unchanged.
func Unavailable(op, collection string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) {
		return err
	}
	var ue *UnavailableError
	if errors.As(err, &ue) {
		return err
	}
	return &UnavailableError{Op: op, Collection: collection, Message: err.Error()}
}
