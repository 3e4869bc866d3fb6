package mediator

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/yungbote/university-backend/internal/platform/dbctx"
	"github.com/yungbote/university-backend/internal/platform/logger"
)

// SessionSource resolves the storage session bound to ctx, if any.
type SessionSource func(ctx context.Context) (dbctx.Context, bool)

// Behavior wraps every handler invocation.
type Behavior func(next HandlerFunc) HandlerFunc

type DispatcherDeps struct {
	Registry  *Registry
	Log       *logger.Logger
	Hooks     Hooks
	Sessions  SessionSource
	Behaviors []Behavior
}

// Dispatcher sends requests to their registered handler. It never commits or
// rolls back; the transaction boundary owning the session does.
type Dispatcher struct {
	registry  *Registry
	log       *logger.Logger
	hooks     Hooks
	sessions  SessionSource
	behaviors []Behavior
	tracer    trace.Tracer
}

func NewDispatcher(deps DispatcherDeps) (*Dispatcher, error) {
	if deps.Registry == nil {
		return nil, errors.New("mediator: dispatcher requires a registry")
	}
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	hooks := deps.Hooks
	if hooks == nil {
		hooks = noopHooks{}
	}
	return &Dispatcher{
		registry:  deps.Registry,
		log:       log.With("component", "Dispatcher"),
		hooks:     hooks,
		sessions:  deps.Sessions,
		behaviors: deps.Behaviors,
		tracer:    otel.Tracer("github.com/yungbote/university-backend/internal/mediator"),
	}, nil
}

// Send routes req to its handler and returns the untyped result.
func (d *Dispatcher) Send(ctx context.Context, req Request) (any, error) {
	if req == nil {
		return nil, errors.New("mediator: nil request")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	t := reflect.TypeOf(req)
	e, ok := d.registry.lookup(t)
	if !ok {
		return nil, &HandlerNotFoundError{Request: typeName(t)}
	}

	ctx, span := d.tracer.Start(ctx, "mediator.send "+e.name, trace.WithAttributes(
		attribute.String("mediator.request", e.name),
		attribute.String("mediator.kind", e.kind.String()),
	))
	defer span.End()

	start := time.Now()
	res, err := d.invoke(ctx, e, req)
	status := dispatchStatus(err)
	d.hooks.ObserveDispatch(e.name, e.kind.String(), status, time.Since(start))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, status)
		return nil, err
	}
	return res, nil
}

func (d *Dispatcher) invoke(ctx context.Context, e entry, req Request) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	h := e.handle
	for i := len(d.behaviors) - 1; i >= 0; i-- {
		if d.behaviors[i] != nil {
			h = d.behaviors[i](h)
		}
	}
	return h(d.session(ctx), req)
}

func (d *Dispatcher) session(ctx context.Context) dbctx.Context {
	if d.sessions != nil {
		if s, ok := d.sessions(ctx); ok {
			s.Ctx = ctx
			return s
		}
	}
	return dbctx.Context{Ctx: ctx}
}

// Send dispatches req and returns its declared result type.
func Send[R any](ctx context.Context, d *Dispatcher, req Returns[R]) (R, error) {
	var zero R
	if d == nil {
		return zero, errors.New("mediator: nil dispatcher")
	}
	res, err := d.Send(ctx, req)
	if err != nil {
		return zero, err
	}
	if res == nil {
		return zero, nil
	}
	out, ok := res.(R)
	if !ok {
		return zero, fmt.Errorf("mediator: %s returned %T, want %s", RequestName(req), res, reflect.TypeFor[R]())
	}
	return out, nil
}

func dispatchStatus(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrValidation):
		return "invalid"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "error"
	}
}
