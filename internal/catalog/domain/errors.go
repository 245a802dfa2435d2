package domain

import (
	"errors"
	"fmt"
)

// ErrProductNotFound signals that the target of an operation does not exist.
var ErrProductNotFound = errors.New("product not found")

// ErrInvalidInput is reserved for business-rule violations beyond field-level
// validation. No current operation raises it; it is part of the contract.
var ErrInvalidInput = errors.New("invalid input")

// ConflictError signals a uniqueness violation on name or SKU.
type ConflictError struct {
	Field string
	Value string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("product with %s %s already exists", e.Field, e.Value)
}

// IsConflict reports whether err is (or wraps) a ConflictError.
func IsConflict(err error) bool {
	var conflict *ConflictError
	return errors.As(err, &conflict)
}
