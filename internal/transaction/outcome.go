// Package transaction wraps one inbound request in a single unit of work and
// decides, from the request's outcome, whether its writes commit or roll back.
package transaction

import (
	"errors"
	"fmt"
)

// Outcome is how the downstream step finished.
type Outcome int

const (
	// OutcomeSuccess commits.
	OutcomeSuccess Outcome = iota
	// OutcomeHandledFault rolls back; the fault was already reported to the caller.
	OutcomeHandledFault
	// OutcomeUnhandledFault rolls back and hands the fault back unchanged.
	OutcomeUnhandledFault
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeHandledFault:
		return "handled_fault"
	case OutcomeUnhandledFault:
		return "unhandled_fault"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

var (
	// ErrUnhandledFault stands in for an unhandled outcome reported without a cause.
	ErrUnhandledFault = errors.New("transaction: unhandled fault")
	// ErrPanic is the cause recorded when the downstream step panics.
	ErrPanic = errors.New("transaction: downstream panic")
)
