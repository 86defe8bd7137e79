package shared

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by the catalogue services. Every business rejection
// produced by this layer matches exactly one of these via errors.Is.
var (
	// ErrNotFound indicates the targeted record does not exist.
	ErrNotFound = errors.New("does not exist")
	// ErrMissingSupplier indicates a product without a supplier reference.
	ErrMissingSupplier = errors.New("the supplier does not exist")
	// ErrInvalidField indicates a numeric or string field outside its domain.
	ErrInvalidField = errors.New("invalid field")
	// ErrInvalidTemporal indicates a date outside its allowed window.
	ErrInvalidTemporal = errors.New("invalid date")
	// ErrDuplicate indicates a business-key collision with another live record.
	ErrDuplicate = errors.New("duplicate entry")
	// ErrDependentsExist blocks a supplier delete while products reference it.
	ErrDependentsExist = errors.New("supplier has associated products")
)

// FieldError carries the rejected field together with its taxonomy kind.
type FieldError struct {
	Field  string
	Reason string
	Kind   error
}

func (e *FieldError) Error() string { return e.Reason }

// Is reports membership in the taxonomy so callers can match with errors.Is.
func (e *FieldError) Is(target error) bool { return target == e.Kind }

// Invalid builds a FieldError of kind ErrInvalidField.
func Invalid(field, reason string) error {
	return &FieldError{Field: field, Reason: reason, Kind: ErrInvalidField}
}

// InvalidTemporal builds a FieldError of kind ErrInvalidTemporal.
func InvalidTemporal(field, reason string) error {
	return &FieldError{Field: field, Reason: reason, Kind: ErrInvalidTemporal}
}

// ConflictError names the field (or business key) that collided with an
// existing live record.
type ConflictError struct {
	Field   string
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// Is lets callers detect any conflict with errors.Is(err, ErrDuplicate).
func (e *ConflictError) Is(target error) bool { return target == ErrDuplicate }

// NotFoundError wraps ErrNotFound with the entity noun used in messages.
func NotFoundError(entity string) error {
	return fmt.Errorf("%s %w", entity, ErrNotFound)
}
