package testutil

import (
	"context"
	"sync"

	"github.com/yungbote/university-backend/internal/data/uow"
	"github.com/yungbote/university-backend/internal/platform/dbctx"
)

// InjectedUnitOfWork is an in-memory unit of work for boundary tests.
// Writes are recorded instead of executed; failures are injected per stage.
type InjectedUnitOfWork struct {
	mu sync.Mutex

	FailBegin    error
	FailFlush    error
	FailCommit   error
	FailRollback error

	BeginCalls    int
	FlushCalls    int
	CommitCalls   int
	RollbackCalls int
	DisposeCalls  int

	Levels  []uow.IsolationLevel
	Queued  []string
	Applied []string

	state    uow.State
	disposed bool
}

var (
	_ uow.UnitOfWork   = (*InjectedUnitOfWork)(nil)
	_ dbctx.WriteQueue = (*InjectedUnitOfWork)(nil)
)

func (u *InjectedUnitOfWork) Begin(ctx context.Context, level uow.IsolationLevel) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.BeginCalls++
	if u.disposed {
		return uow.ErrDisposed
	}
	if u.state == uow.StateActive {
		return nil
	}
	if u.FailBegin != nil {
		return u.FailBegin
	}
	u.Levels = append(u.Levels, level)
	u.state = uow.StateActive
	u.Queued = nil
	return nil
}

func (u *InjectedUnitOfWork) Enqueue(op string, fn dbctx.WriteFunc) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.Queued = append(u.Queued, op)
}

func (u *InjectedUnitOfWork) Flush(ctx context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.flushLocked(ctx)
}

func (u *InjectedUnitOfWork) flushLocked(ctx context.Context) error {
	u.FlushCalls++
	if u.disposed {
		return uow.ErrDisposed
	}
	if u.state != uow.StateActive {
		if len(u.Queued) == 0 {
			return nil
		}
		return uow.ErrNotActive
	}
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			u.Queued = nil
			return uow.MapError("uow.flush", err)
		}
	}
	if u.FailFlush != nil {
		u.Queued = nil
		return u.FailFlush
	}
	u.Applied = append(u.Applied, u.Queued...)
	u.Queued = nil
	return nil
}

func (u *InjectedUnitOfWork) Commit(ctx context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.CommitCalls++
	if u.disposed {
		return uow.ErrDisposed
	}
	if u.state != uow.StateActive {
		return uow.ErrNotActive
	}
	if err := u.flushLocked(ctx); err != nil {
		u.rollbackLocked()
		return err
	}
	if u.FailCommit != nil {
		u.rollbackLocked()
		return u.FailCommit
	}
	u.state = uow.StateCommitted
	return nil
}

func (u *InjectedUnitOfWork) Rollback(ctx context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.RollbackCalls++
	if u.state != uow.StateActive {
		return nil
	}
	u.rollbackLocked()
	return u.FailRollback
}

func (u *InjectedUnitOfWork) rollbackLocked() {
	u.Queued = nil
	u.Applied = nil
	u.state = uow.StateRolledBack
}

func (u *InjectedUnitOfWork) Dispose() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.DisposeCalls++
	if u.state == uow.StateActive {
		u.rollbackLocked()
	}
	u.disposed = true
}

func (u *InjectedUnitOfWork) Session(ctx context.Context) dbctx.Context {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.state != uow.StateActive {
		return dbctx.Context{Ctx: ctx}
	}
	return dbctx.Context{Ctx: ctx, Writes: u}
}

func (u *InjectedUnitOfWork) State() uow.State {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.state
}

func (u *InjectedUnitOfWork) Disposed() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.disposed
}

// Factory hands out InjectedUnitOfWork values and remembers them.
type Factory struct {
	mu sync.Mutex

	// Configure, when set, is applied to every unit before it is returned.
	Configure func(*InjectedUnitOfWork)
	Units     []*InjectedUnitOfWork
}

var _ uow.Factory = (*Factory)(nil)

func (f *Factory) New() uow.UnitOfWork {
	u := &InjectedUnitOfWork{}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Configure != nil {
		f.Configure(u)
	}
	f.Units = append(f.Units, u)
	return u
}

// Last returns the most recently created unit, or nil.
func (f *Factory) Last() *InjectedUnitOfWork {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Units) == 0 {
		return nil
	}
	return f.Units[len(f.Units)-1]
}
