package mediator

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrHandlerNotFound marks a request type without a registered handler.
	ErrHandlerNotFound = errors.New("mediator: handler not found")
	// ErrHandlerConflict marks a second registration for the same request type.
	ErrHandlerConflict = errors.New("mediator: handler conflict")
	// ErrRegistrySealed is returned by registrations after Seal.
	ErrRegistrySealed = errors.New("mediator: registry sealed")
	// ErrValidation marks request input that failed validation.
	ErrValidation = errors.New("validation failed")
)

type HandlerNotFoundError struct {
	Request string
}

func (e *HandlerNotFoundError) Error() string {
	return fmt.Sprintf("mediator: no handler registered for %s", e.Request)
}

func (e *HandlerNotFoundError) Is(target error) bool { return target == ErrHandlerNotFound }

type HandlerConflictError struct {
	Request string
}

func (e *HandlerConflictError) Error() string {
	return fmt.Sprintf("mediator: handler already registered for %s", e.Request)
}

func (e *HandlerConflictError) Is(target error) bool { return target == ErrHandlerConflict }

// ValidationFault reports per-field input problems of one request.
type ValidationFault struct {
	Request string
	Fields  map[string]string
}

func (e *ValidationFault) Error() string {
	if e == nil {
		return "<nil>"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	if len(parts) == 0 {
		return ErrValidation.Error()
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationFault) Is(target error) bool { return target == ErrValidation }

// Violations collects field errors while validating a request.
type Violations map[string]string

// Add records msg for field unless the field already has one.
func (v Violations) Add(field, msg string) {
	if _, ok := v[field]; ok {
		return
	}
	v[field] = msg
}

// Check records msg for field when ok is false.
func (v Violations) Check(ok bool, field, msg string) {
	if !ok {
		v.Add(field, msg)
	}
}

// Err returns a *ValidationFault when anything was recorded.
func (v Violations) Err() error {
	if len(v) == 0 {
		return nil
	}
	return &ValidationFault{Fields: map[string]string(v)}
}
