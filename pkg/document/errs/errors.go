// Package errs defines the error kinds the document core can return, per
// the propagation policy of spec.md §7.
package errs

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

// Sentinel error kinds. Use errors.Is against these to classify a failure
// returned from the document core.
var (
	// ErrDocumentRemoved is returned when a write is attempted on a
	// document that has already transitioned to StatusRemoved.
	ErrDocumentRemoved = errors.New("document: document is removed")

	// ErrInvalidArgument is returned when an operation addresses an
	// element that doesn't exist or is of the wrong kind.
	ErrInvalidArgument = errors.New("document: invalid argument")

	// ErrSchemaValidationFailed is returned when the clone fails schema
	// validation before being committed.
	ErrSchemaValidationFailed = errors.New("document: schema validation failed")

	// ErrSizeExceedsLimit is returned when the clone's live+gc byte size
	// would exceed the configured maximum.
	ErrSizeExceedsLimit = errors.New("document: size exceeds limit")

	// ErrRefused is returned by Undo/Redo when the relevant stack is empty,
	// and by Update when called during an undo/redo replay. Undo/Redo called
	// from inside an Update mutator are not refused.
	ErrRefused = errors.New("document: refused")
)

// InvalidArgument wraps ErrInvalidArgument with a detail message, e.g.
// naming the missing ticket or path.
func InvalidArgument(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// SchemaValidationFailed aggregates one error per failing rule into a single
// error satisfying errors.Is(err, ErrSchemaValidationFailed).
func SchemaValidationFailed(ruleErrors []error) error {
	if len(ruleErrors) == 0 {
		return nil
	}
	combined := ErrSchemaValidationFailed
	for _, e := range ruleErrors {
		combined = multierr.Append(combined, e)
	}
	return combined
}

// SizeExceedsLimit wraps ErrSizeExceedsLimit with the offending sizes.
func SizeExceedsLimit(size, limit int) error {
	return fmt.Errorf("%w: size %d exceeds limit %d", ErrSizeExceedsLimit, size, limit)
}

// Refused wraps ErrRefused with a reason.
func Refused(reason string) error {
	return fmt.Errorf("%w: %s", ErrRefused, reason)
}
