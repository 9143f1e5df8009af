package domain

import (
	"errors"
	"fmt"
)

// ValidationError reports a single record failing required-field or
// coercion rules. Recoverable: batch operations collect these per row
// and keep going.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation: " + e.Reason
	}
	return "validation [" + e.Field + "]: " + e.Reason
}

// ReferentialError reports an operation referencing a parent record that
// does not exist (e.g. an image for an unknown coin id).
type ReferentialError struct {
	Entity string
	ID     uint
}

func (e *ReferentialError) Error() string {
	return fmt.Sprintf("%s %d does not exist", e.Entity, e.ID)
}

// StorageError wraps a failure of the persistence medium itself. Fatal for
// the enclosing operation; never retried.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return "storage: " + e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError wraps err with the failing operation name.
func NewStorageError(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}

// IsValidation checks whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsReferential checks whether err is (or wraps) a ReferentialError.
func IsReferential(err error) bool {
	var re *ReferentialError
	return errors.As(err, &re)
}

// IsStorage checks whether err is (or wraps) a StorageError.
func IsStorage(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
