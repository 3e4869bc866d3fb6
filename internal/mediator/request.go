// Package mediator routes typed commands and queries to exactly one registered
// handler each.
package mediator

import (
	"fmt"
	"reflect"
)

type Kind int

const (
	KindCommand Kind = iota + 1
	KindQuery
)

func (k Kind) String() string {
	switch k {
	case KindCommand:
		return "command"
	case KindQuery:
		return "query"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Request is a typed message sent through the Dispatcher.
type Request interface {
	Kind() Kind
}

// Returns is a Request whose handler produces an R. It can only be satisfied by
// embedding CommandOf or QueryOf.
type Returns[R any] interface {
	Request
	declaresResult(R)
}

// CommandOf marks a write request producing R. Embed it in the request struct.
type CommandOf[R any] struct{}

func (CommandOf[R]) Kind() Kind       { return KindCommand }
func (CommandOf[R]) declaresResult(R) {}

// QueryOf marks a read request producing R.
type QueryOf[R any] struct{}

func (QueryOf[R]) Kind() Kind       { return KindQuery }
func (QueryOf[R]) declaresResult(R) {}

// Unit is the result of a command that returns nothing.
type Unit struct{}

// Command marks a write request without a result.
type Command = CommandOf[Unit]

// RequestName is the diagnostic name of req's concrete type.
func RequestName(req Request) string {
	if req == nil {
		return "<nil>"
	}
	return typeName(reflect.TypeOf(req))
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
