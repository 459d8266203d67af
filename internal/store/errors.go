package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the requested record does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate means a record with the same ID is already stored.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity wraps the domain validation error of a rejected record.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrStorage means the backing file or database could not be read or written.
	ErrStorage = errors.New("storage failure")

	// ErrTransactionFailed is returned when a transaction cannot begin or commit.
	ErrTransactionFailed = errors.New("transaction failed")

	ErrFavoriteNotFound = fmt.Errorf("%w: favorite", ErrNotFound)
)

// IsNotFoundError reports whether err is a not-found error of any backend.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// StoreError describes a failed read or write of the favorites medium.
// It matches ErrStorage and unwraps to the I/O cause.
type StoreError struct {
	Op      string
	Message string
	Err     error
}

func (e *StoreError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("favorites %s: %s", e.Op, e.Message)
	}
	return fmt.Sprintf("favorites %s: %s: %v", e.Op, e.Message, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// Is makes every StoreError match ErrStorage.
func (e *StoreError) Is(target error) bool { return target == ErrStorage }

// StorageFailure builds a StoreError for op.
func StorageFailure(op, message string, err error) *StoreError {
	return &StoreError{Op: op, Message: message, Err: err}
}
