package appsettings

import (
	"errors"
	"fmt"
)

var (
	// ErrSchema matches every *SchemaError.
	ErrSchema = errors.New("settings schema error")

	// ErrTypeMismatch matches every *TypeMismatchError.
	ErrTypeMismatch = errors.New("settings type mismatch")

	// ErrStorage matches every *StorageError.
	ErrStorage = errors.New("settings storage error")

	// ErrStoreNil is returned when a reconciler is built without a record store.
	ErrStoreNil = errors.New("record store is nil")

	// ErrCatalogNil is returned when a reconciler is built without a catalog.
	ErrCatalogNil = errors.New("defaults catalog is nil")

	// ErrRecordNil is returned when Save is called with a nil record.
	ErrRecordNil = errors.New("settings record is nil")

	errOutOfRange      = errors.New("value out of range")
	errNotIntegral     = errors.New("value is not integral")
	errUnsupportedKind = errors.New("unsupported kind")
	errWrongJSONType   = errors.New("wrong JSON type")
)

// SchemaError reports an unknown or invalid entity type or field.
type SchemaError struct {
	Entity string
	Field  string
	Reason string
}

func (e *SchemaError) Error() string {
	switch {
	case e.Entity == "":
		return "settings schema: " + e.Reason
	case e.Field == "":
		return fmt.Sprintf("settings schema %q: %s", e.Entity, e.Reason)
	default:
		return fmt.Sprintf("settings schema %q field %q: %s", e.Entity, e.Field, e.Reason)
	}
}

// Is makes errors.Is(err, ErrSchema) succeed.
func (e *SchemaError) Is(target error) bool {
	return target == ErrSchema
}

// TypeMismatchError reports a value whose Go type does not match the field kind.
type TypeMismatchError struct {
	Entity string
	Field  string
	Kind   Kind
	Got    any
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("settings %q field %q expects %s, got %v (%T)", e.Entity, e.Field, e.Kind, e.Got, e.Got)
}

// Is makes errors.Is(err, ErrTypeMismatch) succeed.
func (e *TypeMismatchError) Is(target error) bool {
	return target == ErrTypeMismatch
}

// StorageError wraps a failure of the record store.
type StorageError struct {
	Op     string
	Entity string
	Err    error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("settings %q: %s: %v", e.Entity, e.Op, e.Err)
}

// Unwrap returns the backend error.
func (e *StorageError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrStorage) succeed.
func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}

func storageError(op, entity string, err error) error {
	var se *StorageError
	if errors.As(err, &se) {
		return err
	}

	return &StorageError{Op: op, Entity: entity, Err: err}
}
