package dbctx

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// WriteFunc is one deferred storage write, applied against the active transaction.
type WriteFunc func(tx *gorm.DB) error

// WriteQueue defers writes until the owning unit of work flushes them.
type WriteQueue interface {
	Enqueue(op string, fn WriteFunc)
	Flush(ctx context.Context) error
}

// Context bundles a request context with an optional GORM transaction and the
// write queue of the unit of work that owns it.
type Context struct {
	Ctx    context.Context
	Tx     *gorm.DB
	Writes WriteQueue
}

func (c Context) context() context.Context {
	if c.Ctx == nil {
		return context.Background()
	}
	return c.Ctx
}

// Context returns the request context, never nil.
func (c Context) Context() context.Context { return c.context() }

// DB returns the handle reads should go through: the transaction when one is
// open, otherwise fallback.
func (c Context) DB(fallback *gorm.DB) *gorm.DB {
	db := c.Tx
	if db == nil {
		db = fallback
	}
	if db == nil {
		return nil
	}
	return db.WithContext(c.context())
}

// Write queues fn on the unit of work. Without one it runs immediately.
func (c Context) Write(fallback *gorm.DB, op string, fn WriteFunc) error {
	if fn == nil {
		return nil
	}
	if c.Writes != nil {
		c.Writes.Enqueue(op, fn)
		return nil
	}
	db := c.DB(fallback)
	if db == nil {
		return fmt.Errorf("%s: no database handle", op)
	}
	return fn(db)
}

// Flush applies queued writes so generated keys become visible to the caller.
// It does not commit.
func (c Context) Flush() error {
	if c.Writes == nil {
		return nil
	}
	return c.Writes.Flush(c.context())
}
