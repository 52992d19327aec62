package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicateCategory = errors.New("no duplicated names allowed")
	ErrUnknownCategory   = errors.New("unknown category")
	ErrIndexRange        = errors.New("index out of range")
)

// ValidationError rejects a task draft with a user-facing reason.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// StoreError wraps a failed store operation with context
type StoreError struct {
	Op  string // Operation: "addCategory", "checkTask", etc.
	Key string // Optional: category name or task ID
	Err error  // Underlying error
}

func (e *StoreError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("store %s [%s]: %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// IsWarning reports whether an error should surface to the user as a
// transient warning rather than a diagnostic log entry. Validation
// failures and dangling references warn; everything else is logged.
func IsWarning(err error) bool {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return true
	}
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrDuplicateCategory) ||
		errors.Is(err, ErrUnknownCategory) ||
		errors.Is(err, ErrIndexRange)
}
