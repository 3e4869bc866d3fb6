package transaction

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/yungbote/university-backend/internal/data/uow"
	"github.com/yungbote/university-backend/internal/platform/dbctx"
	"github.com/yungbote/university-backend/internal/platform/logger"
)

const defaultCleanupTimeout = 5 * time.Second

type BoundaryDeps struct {
	Factory   uow.Factory
	Isolation uow.IsolationLevel
	Log       *logger.Logger
	Hooks     Hooks
	// CleanupTimeout bounds a rollback issued after the request context is done.
	CleanupTimeout time.Duration
}

// Boundary opens one unit of work per request and closes it according to the
// request's Outcome.
type Boundary struct {
	factory        uow.Factory
	isolation      uow.IsolationLevel
	log            *logger.Logger
	hooks          Hooks
	cleanupTimeout time.Duration
	tracer         trace.Tracer
}

func NewBoundary(deps BoundaryDeps) (*Boundary, error) {
	if deps.Factory == nil {
		return nil, errors.New("transaction: boundary requires a unit of work factory")
	}
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	hooks := deps.Hooks
	if hooks == nil {
		hooks = noopHooks{}
	}
	timeout := deps.CleanupTimeout
	if timeout <= 0 {
		timeout = defaultCleanupTimeout
	}
	isolation := deps.Isolation
	if isolation == "" {
		isolation = uow.ReadCommitted
	}
	return &Boundary{
		factory:        deps.Factory,
		isolation:      isolation,
		log:            log.With("component", "TransactionBoundary"),
		hooks:          hooks,
		cleanupTimeout: timeout,
		tracer:         otel.Tracer("github.com/yungbote/university-backend/internal/transaction"),
	}, nil
}

type scopeKey struct{}

// OnRequestStart begins the request's transaction. When ctx already carries an
// active scope the returned scope joins it: its End neither commits nor rolls
// back, so the outermost boundary decides once.
func (b *Boundary) OnRequestStart(ctx context.Context) (context.Context, *Scope, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if outer := FromContext(ctx); outer != nil && outer.active() {
		return ctx, &Scope{boundary: b, unit: outer.unit, joined: true, started: time.Now()}, nil
	}

	ctx, span := b.tracer.Start(ctx, "transaction", trace.WithAttributes(
		attribute.String("db.transaction.isolation", string(b.isolation)),
	))
	unit := b.factory.New()
	if err := unit.Begin(ctx, b.isolation); err != nil {
		unit.Dispose()
		span.RecordError(err)
		span.End()
		b.hooks.ObserveTransaction("begin", "failed", 0)
		return ctx, nil, err
	}
	s := &Scope{boundary: b, unit: unit, span: span, started: time.Now()}
	return context.WithValue(ctx, scopeKey{}, s), s, nil
}

// Step is one downstream execution: it reports how it finished.
type Step func(ctx context.Context) (Outcome, error)

// Run wraps step in a scope. A panic in step rolls back, disposes and keeps
// unwinding.
func (b *Boundary) Run(ctx context.Context, step Step) error {
	ctx, scope, err := b.OnRequestStart(ctx)
	if err != nil {
		return err
	}
	panicked := true
	defer func() {
		if panicked {
			_ = scope.End(ctx, OutcomeUnhandledFault, ErrPanic)
		}
	}()
	outcome, cause := step(ctx)
	panicked = false
	return scope.End(ctx, outcome, cause)
}

// FromContext returns the scope stored by OnRequestStart, or nil.
func FromContext(ctx context.Context) *Scope {
	if ctx == nil {
		return nil
	}
	s, _ := ctx.Value(scopeKey{}).(*Scope)
	return s
}

// SessionFrom resolves the storage session of the active scope bound to ctx.
func SessionFrom(ctx context.Context) (dbctx.Context, bool) {
	s := FromContext(ctx)
	if s == nil || !s.active() {
		return dbctx.Context{}, false
	}
	return s.unit.Session(ctx), true
}

func (b *Boundary) cleanupContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), b.cleanupTimeout)
}
