package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument marks caller input that violates a precondition.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotLoaded is returned by queries issued before a successful load.
	ErrNotLoaded = errors.New("product data not loaded")

	// ErrDataLoad wraps failures while reading or decoding the source
	// document.
	ErrDataLoad = errors.New("data load failed")
)

// NotFoundError carries the offending product ID for diagnostics.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("product not found with id %q", e.ID)
}
