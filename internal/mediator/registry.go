package mediator

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/yungbote/university-backend/internal/platform/dbctx"
)

// HandlerFunc is the type-erased form of a registered handler.
type HandlerFunc func(dbc dbctx.Context, req Request) (any, error)

type entry struct {
	name   string
	kind   Kind
	handle HandlerFunc
}

// Registry maps concrete request types to their single handler. It is filled
// during startup, validated, then sealed; a sealed registry is read without
// locking.
type Registry struct {
	mu       sync.Mutex
	handlers map[reflect.Type]entry
	expected map[reflect.Type]struct{}
	sealed   atomic.Bool
}

func NewRegistry() *Registry {
	return &Registry{
		handlers: map[reflect.Type]entry{},
		expected: map[reflect.Type]struct{}{},
	}
}

// Register binds fn to the request type Req.
func Register[Req Returns[R], R any](reg *Registry, fn func(dbctx.Context, Req) (R, error)) error {
	if reg == nil {
		return errors.New("mediator: nil registry")
	}
	t := reflect.TypeFor[Req]()
	if fn == nil {
		return fmt.Errorf("mediator: nil handler for %s", typeName(t))
	}
	e := entry{
		name: typeName(t),
		kind: kindOf[Req](t),
		handle: func(dbc dbctx.Context, req Request) (any, error) {
			typed, ok := req.(Req)
			if !ok {
				return nil, fmt.Errorf("mediator: %T routed to handler for %s", req, typeName(t))
			}
			res, err := fn(dbc, typed)
			return res, err
		},
	}
	return reg.add(t, e)
}

func kindOf[Req Request](t reflect.Type) Kind {
	if t.Kind() == reflect.Pointer {
		if r, ok := reflect.New(t.Elem()).Interface().(Request); ok {
			return r.Kind()
		}
		return 0
	}
	var zero Req
	return zero.Kind()
}

func (r *Registry) add(t reflect.Type, e entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sealed.Load() {
		return fmt.Errorf("%w: cannot register %s", ErrRegistrySealed, e.name)
	}
	if _, exists := r.handlers[t]; exists {
		return &HandlerConflictError{Request: e.name}
	}
	r.handlers[t] = e
	return nil
}

// Expect declares request types the application will send. Validate reports
// each one that has no handler.
func (r *Registry) Expect(reqs ...Request) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, req := range reqs {
		if req == nil {
			continue
		}
		r.expected[reflect.TypeOf(req)] = struct{}{}
	}
}

func (r *Registry) Validate() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var missing []string
	for t := range r.expected {
		if _, ok := r.handlers[t]; !ok {
			missing = append(missing, typeName(t))
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	errs := make([]error, 0, len(missing))
	for _, name := range missing {
		errs = append(errs, &HandlerNotFoundError{Request: name})
	}
	return errors.Join(errs...)
}

// Seal validates the registry and freezes it.
func (r *Registry) Seal() error {
	if err := r.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	r.sealed.Store(true)
	r.mu.Unlock()
	return nil
}

func (r *Registry) Sealed() bool { return r.sealed.Load() }

// Names lists the registered request types, sorted.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.handlers))
	for _, e := range r.handlers {
		out = append(out, e.name)
	}
	sort.Strings(out)
	return out
}

func (r *Registry) lookup(t reflect.Type) (entry, bool) {
	if r.sealed.Load() {
		e, ok := r.handlers[t]
		return e, ok
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.handlers[t]
	return e, ok
}
