package transaction

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/yungbote/university-backend/internal/data/uow"
)

// Scope is the per-request handle on the boundary's unit of work.
type Scope struct {
	boundary *Boundary
	unit     uow.UnitOfWork
	span     trace.Span
	joined   bool
	started  time.Time

	mu    sync.Mutex
	ended bool
}

func (s *Scope) active() bool {
	s.mu.Lock()
	ended := s.ended
	s.mu.Unlock()
	return !ended && !s.unit.Disposed() && s.unit.State() == uow.StateActive
}

// Joined reports whether the scope defers to an outer boundary.
func (s *Scope) Joined() bool { return s.joined }

func (s *Scope) State() uow.State { return s.unit.State() }

func (s *Scope) Disposed() bool { return s.unit.Disposed() }

// End applies the decision rule for outcome and always disposes the unit of
// work. Success commits; a failed commit is rolled back and its error returned.
// A handled fault rolls back and returns nil. An unhandled fault rolls back and
// returns cause unchanged. Rollback failures are logged, never returned.
func (s *Scope) End(ctx context.Context, outcome Outcome, cause error) error {
	if s == nil {
		return cause
	}
	if ctx == nil {
		ctx = context.Background()
	}
	unhandled := func() error {
		if outcome != OutcomeUnhandledFault {
			return nil
		}
		if cause == nil {
			return ErrUnhandledFault
		}
		return cause
	}

	s.mu.Lock()
	if s.ended || s.joined {
		s.ended = true
		s.mu.Unlock()
		return unhandled()
	}
	s.ended = true
	s.mu.Unlock()

	b := s.boundary
	defer s.unit.Dispose()
	if s.span != nil {
		defer s.span.End()
	}

	status := "rolled_back"
	var result error
	switch outcome {
	case OutcomeSuccess:
		if err := s.unit.Commit(ctx); err != nil {
			status = "commit_failed"
			s.rollback(ctx, outcome, err)
			result = err
		} else {
			status = "committed"
		}
	case OutcomeHandledFault:
		s.rollback(ctx, outcome, cause)
	default:
		s.rollback(ctx, outcome, cause)
		result = unhandled()
		if result == nil {
			result = ErrUnhandledFault
		}
	}

	b.hooks.ObserveTransaction(outcome.String(), status, time.Since(s.started))
	if s.span != nil {
		s.span.SetAttributes(
			attribute.String("transaction.outcome", outcome.String()),
			attribute.String("transaction.status", status),
		)
		if result != nil {
			s.span.RecordError(result)
			s.span.SetStatus(codes.Error, status)
		}
	}
	if result != nil && outcome == OutcomeSuccess {
		b.log.Error("commit failed", "error", result)
	} else {
		b.log.Debug("transaction ended", "outcome", outcome.String(), "status", status)
	}
	return result
}

func (s *Scope) rollback(ctx context.Context, outcome Outcome, cause error) {
	b := s.boundary
	rbCtx, cancel := b.cleanupContext(ctx)
	defer cancel()
	if err := s.unit.Rollback(rbCtx); err != nil {
		b.hooks.IncRollbackFailure()
		b.log.Warn("rollback failed", "outcome", outcome.String(), "error", err, "cause", cause)
	}
}
