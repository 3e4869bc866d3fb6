// Package uow provides the storage-layer unit of work: one database transaction
// plus an ordered queue of deferred writes that is applied on flush or commit.
package uow

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"

	"gorm.io/gorm"

	"github.com/yungbote/university-backend/internal/platform/dbctx"
	"github.com/yungbote/university-backend/internal/platform/logger"
)

type IsolationLevel string

const (
	IsolationDefault IsolationLevel = "default"
	ReadCommitted    IsolationLevel = "read_committed"
	RepeatableRead   IsolationLevel = "repeatable_read"
	Serializable     IsolationLevel = "serializable"
)

func (l IsolationLevel) SQL() sql.IsolationLevel {
	switch l {
	case ReadCommitted:
		return sql.LevelReadCommitted
	case RepeatableRead:
		return sql.LevelRepeatableRead
	case Serializable:
		return sql.LevelSerializable
	default:
		return sql.LevelDefault
	}
}

// ParseIsolationLevel accepts the config spellings ("read_committed",
// "read-committed", "ReadCommitted", ...). Empty means IsolationDefault.
func ParseIsolationLevel(s string) (IsolationLevel, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("-", "", "_", "", " ", "").Replace(norm)
	switch norm {
	case "", "default":
		return IsolationDefault, nil
	case "readcommitted":
		return ReadCommitted, nil
	case "repeatableread":
		return RepeatableRead, nil
	case "serializable":
		return Serializable, nil
	}
	return "", fmt.Errorf("unknown isolation level %q", s)
}

type State int

const (
	StateIdle State = iota
	StateActive
	StateCommitted
	StateRolledBack
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateActive:
		return "active"
	case StateCommitted:
		return "committed"
	case StateRolledBack:
		return "rolled_back"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// UnitOfWork owns one transaction for the lifetime of a request.
type UnitOfWork interface {
	// Begin opens the transaction. It is a no-op while one is already active.
	Begin(ctx context.Context, level IsolationLevel) error
	// Flush applies queued writes in issue order without committing.
	Flush(ctx context.Context) error
	// Commit flushes and commits. On failure the transaction is rolled back.
	Commit(ctx context.Context) error
	// Rollback discards queued writes and aborts the transaction. Idempotent.
	Rollback(ctx context.Context) error
	// Dispose releases the transaction, rolling back if still active.
	Dispose()
	// Session returns the storage session handlers read and write through.
	Session(ctx context.Context) dbctx.Context
	State() State
	Disposed() bool
}

type Factory interface {
	New() UnitOfWork
}

type gormFactory struct {
	db  *gorm.DB
	log *logger.Logger
}

// NewGormFactory returns a factory of units of work backed by GORM transactions.
func NewGormFactory(db *gorm.DB, baseLog *logger.Logger) Factory {
	if baseLog == nil {
		baseLog = logger.Nop()
	}
	return &gormFactory{db: db, log: baseLog.With("component", "UnitOfWork")}
}

func (f *gormFactory) New() UnitOfWork {
	return &gormUnitOfWork{db: f.db, log: f.log}
}

type pendingWrite struct {
	op string
	fn dbctx.WriteFunc
}

type gormUnitOfWork struct {
	db  *gorm.DB
	log *logger.Logger

	mu       sync.Mutex
	tx       *gorm.DB
	state    State
	disposed bool
	pending  []pendingWrite
}

var _ dbctx.WriteQueue = (*gormUnitOfWork)(nil)

func (u *gormUnitOfWork) Begin(ctx context.Context, level IsolationLevel) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.disposed {
		return ErrDisposed
	}
	if u.state == StateActive {
		return nil
	}
	if u.db == nil {
		return NewFault(CodeInternal, "uow.begin", "unit of work has nil db", nil)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return MapError("uow.begin", err)
	}
	var opts *sql.TxOptions
	if level != IsolationDefault && level != "" {
		opts = &sql.TxOptions{Isolation: level.SQL()}
	}
	tx := u.db.WithContext(ctx).Begin(opts)
	if tx.Error != nil {
		return MapError("uow.begin", tx.Error)
	}
	u.tx = tx
	u.state = StateActive
	u.pending = nil
	u.log.Debug("transaction begun", "isolation", string(level))
	return nil
}

func (u *gormUnitOfWork) Enqueue(op string, fn dbctx.WriteFunc) {
	if fn == nil {
		return
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	u.pending = append(u.pending, pendingWrite{op: op, fn: fn})
}

func (u *gormUnitOfWork) Flush(ctx context.Context) error {
	u.mu.Lock()
	if u.disposed {
		u.mu.Unlock()
		return ErrDisposed
	}
	writes := u.pending
	u.pending = nil
	tx := u.tx
	active := u.state == StateActive
	u.mu.Unlock()

	if len(writes) == 0 {
		return nil
	}
	if !active || tx == nil {
		return ErrNotActive
	}
	if ctx == nil {
		ctx = context.Background()
	}
	for _, w := range writes {
		if err := ctx.Err(); err != nil {
			return MapError(w.op, err)
		}
		if err := w.fn(tx.WithContext(ctx)); err != nil {
			return MapError(w.op, err)
		}
	}
	return nil
}

func (u *gormUnitOfWork) Commit(ctx context.Context) error {
	u.mu.Lock()
	if u.disposed {
		u.mu.Unlock()
		return ErrDisposed
	}
	if u.state != StateActive {
		u.mu.Unlock()
		return ErrNotActive
	}
	u.mu.Unlock()

	if err := u.Flush(ctx); err != nil {
		u.rollbackAfterFailure(ctx, "flush")
		return err
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	if err := u.tx.Commit().Error; err != nil {
		if rbErr := u.tx.Rollback().Error; rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			u.log.Warn("rollback after failed commit", "error", rbErr)
		}
		u.tx = nil
		u.state = StateRolledBack
		return MapError("uow.commit", err)
	}
	u.tx = nil
	u.state = StateCommitted
	u.log.Debug("transaction committed")
	return nil
}

func (u *gormUnitOfWork) rollbackAfterFailure(ctx context.Context, stage string) {
	if err := u.Rollback(ctx); err != nil {
		u.log.Warn("rollback after failed "+stage, "error", err)
	}
}

func (u *gormUnitOfWork) Rollback(ctx context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.pending = nil
	if u.state != StateActive || u.tx == nil {
		return nil
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	u.state = StateRolledBack
	// database/sql rolls back on its own once the begin context is cancelled.
	if err != nil && !errors.Is(err, sql.ErrTxDone) {
		return MapError("uow.rollback", err)
	}
	u.log.Debug("transaction rolled back")
	return nil
}

func (u *gormUnitOfWork) Dispose() {
	u.mu.Lock()
	if u.disposed {
		u.mu.Unlock()
		return
	}
	active := u.state == StateActive
	u.mu.Unlock()

	if active {
		if err := u.Rollback(context.Background()); err != nil {
			u.log.Warn("rollback on dispose", "error", err)
		}
	}

	u.mu.Lock()
	u.disposed = true
	u.pending = nil
	u.tx = nil
	u.mu.Unlock()
}

func (u *gormUnitOfWork) Session(ctx context.Context) dbctx.Context {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.state != StateActive || u.disposed {
		return dbctx.Context{Ctx: ctx}
	}
	return dbctx.Context{Ctx: ctx, Tx: u.tx, Writes: u}
}

func (u *gormUnitOfWork) State() State {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.state
}

func (u *gormUnitOfWork) Disposed() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.disposed
}
