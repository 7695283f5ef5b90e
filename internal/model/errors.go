package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound         = errors.New("record not found")
	ErrDuplicate        = errors.New("has already been taken")
	ErrRelationNotFound = errors.New("referenced record does not exist")
	ErrOptimisticLock   = errors.New("record was modified by another request")
	ErrInvalidStatus    = errors.New("invalid order status")
	ErrInvalidParent    = errors.New("invalid parent category")
	ErrRepeatedItem     = errors.New("is listed more than once")
)

// FieldError ties a domain error to the form field that caused it
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// NewFieldError wraps err for field
func NewFieldError(field string, err error) *FieldError {
	return &FieldError{Field: field, Err: err}
}

// ErrInUse is returned when deleting a record other records still point to
var ErrInUse = errors.New("record is still referenced")

// FieldErrors collects every field problem found while checking one write
type FieldErrors []*FieldError

func (e FieldErrors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Error()
	}
	return strings.Join(msgs, "; ")
}

func (e FieldErrors) Unwrap() []error {
	errs := make([]error, len(e))
	for i, fe := range e {
		errs[i] = fe
	}
	return errs
}

// OrNil returns nil for an empty collection so callers can return it directly
func (e FieldErrors) OrNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}
