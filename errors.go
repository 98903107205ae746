package fieldgate

import (
	"errors"
	"fmt"
)

var (
	// ErrNotLoggedIn is returned when an operation requiring an
	// authenticated principal is invoked anonymously.
	ErrNotLoggedIn = errors.New("not logged in")
	// ErrInvalidArgument is returned when call arguments do not match the
	// accepted shape, before any predicate is evaluated.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrFieldNotAllowed is returned when a field in the request failed its
	// permission predicate or had none registered. Use [errors.As] with
	// [*FieldError] to recover the field name.
	ErrFieldNotAllowed = errors.New("disallowed field")
	// ErrDeleteDenied is returned when the document-level delete predicate
	// rejected the operation.
	ErrDeleteDenied = errors.New("delete denied")
	// ErrMethodNotFound is returned by [Mux.Call] for an unregistered
	// method name.
	ErrMethodNotFound = errors.New("method not found")
	// ErrGatewayNotReady is returned when a Gateway is used before a
	// successful Build.
	ErrGatewayNotReady = errors.New("gateway not initialized")
	// ErrBuilderReused is returned when Build is called twice on the same
	// Builder.
	ErrBuilderReused = errors.New("builder already used")
)

// FieldError reports the specific field that failed a permission check and
// the operation ("create" or "edit") during which it failed. It unwraps to
// [ErrFieldNotAllowed].
type FieldError struct {
	Op    string
	Field string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("disallowed field at %s: %s", e.Op, e.Field)
}

func (e *FieldError) Unwrap() error {
	return ErrFieldNotAllowed
}

func fieldNotAllowed(op, field string) error {
	return &FieldError{Op: op, Field: field}
}
