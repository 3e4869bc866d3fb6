package uow

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/yungbote/university-backend/internal/platform/logger"
)

type ledgerRow struct {
	ID   int `gorm:"primaryKey"`
	Name string
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "uow.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: gormLogger.Default.LogMode(gormLogger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := db.AutoMigrate(&ledgerRow{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func insert(id int, name string) func(tx *gorm.DB) error {
	return func(tx *gorm.DB) error {
		return tx.Create(&ledgerRow{ID: id, Name: name}).Error
	}
}

func countRows(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	if err := db.Model(&ledgerRow{}).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func TestUnitOfWork_WritesDeferredUntilCommit(t *testing.T) {
	db := openTestDB(t)
	u := NewGormFactory(db, logger.Nop()).New()
	ctx := context.Background()

	if err := u.Begin(ctx, IsolationDefault); err != nil {
		t.Fatalf("begin: %v", err)
	}
	s := u.Session(ctx)
	if err := s.Write(db, "ledger.insert", insert(1, "a")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := s.Write(db, "ledger.insert", insert(2, "b")); err != nil {
		t.Fatalf("write: %v", err)
	}

	var inTx int64
	if err := s.DB(db).Model(&ledgerRow{}).Count(&inTx).Error; err != nil {
		t.Fatalf("count in tx: %v", err)
	}
	if inTx != 0 {
		t.Fatalf("queued writes must not be applied before flush: want=0 got=%d", inTx)
	}

	if err := u.Commit(ctx); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if u.State() != StateCommitted {
		t.Fatalf("state: want=%s got=%s", StateCommitted, u.State())
	}
	if got := countRows(t, db); got != 2 {
		t.Fatalf("rows after commit: want=2 got=%d", got)
	}
}

func TestUnitOfWork_RollbackDiscardsFlushedWrites(t *testing.T) {
	db := openTestDB(t)
	u := NewGormFactory(db, nil).New()
	ctx := context.Background()

	if err := u.Begin(ctx, IsolationDefault); err != nil {
		t.Fatalf("begin: %v", err)
	}
	s := u.Session(ctx)
	_ = s.Write(db, "ledger.insert", insert(1, "a"))
	_ = s.Write(db, "ledger.insert", insert(2, "b"))
	if err := s.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if err := u.Rollback(ctx); err != nil {
		t.Fatalf("rollback: %v", err)
	}
	u.Dispose()

	if got := countRows(t, db); got != 0 {
		t.Fatalf("rows after rollback: want=0 got=%d", got)
	}
	if u.State() != StateRolledBack || !u.Disposed() {
		t.Fatalf("want rolled back + disposed, got state=%s disposed=%v", u.State(), u.Disposed())
	}
}

func TestUnitOfWork_CommitFailureRollsBackEarlierWrites(t *testing.T) {
	db := openTestDB(t)
	u := NewGormFactory(db, nil).New()
	ctx := context.Background()

	if err := u.Begin(ctx, IsolationDefault); err != nil {
		t.Fatalf("begin: %v", err)
	}
	s := u.Session(ctx)
	_ = s.Write(db, "ledger.insert", insert(1, "a"))
	_ = s.Write(db, "ledger.insert", insert(2, "b"))
	_ = s.Write(db, "ledger.fail", func(tx *gorm.DB) error { return errors.New("disk on fire") })

	err := u.Commit(ctx)
	if err == nil {
		t.Fatalf("expected commit error")
	}
	var fault *StorageFault
	if !errors.As(err, &fault) {
		t.Fatalf("expected StorageFault, got %T (%v)", err, err)
	}
	if fault.Op != "ledger.fail" {
		t.Fatalf("fault op: want=ledger.fail got=%s", fault.Op)
	}
	if u.State() != StateRolledBack {
		t.Fatalf("state: want=%s got=%s", StateRolledBack, u.State())
	}
	if got := countRows(t, db); got != 0 {
		t.Fatalf("rows: want=0 got=%d", got)
	}
}

func TestUnitOfWork_BeginIsNoopWhileActive(t *testing.T) {
	db := openTestDB(t)
	u := NewGormFactory(db, nil).New()
	ctx := context.Background()

	if err := u.Begin(ctx, IsolationDefault); err != nil {
		t.Fatalf("begin: %v", err)
	}
	first := u.Session(ctx).Tx
	if err := u.Begin(ctx, Serializable); err != nil {
		t.Fatalf("second begin: %v", err)
	}
	if u.Session(ctx).Tx != first {
		t.Fatalf("second begin must reuse the active transaction")
	}
	u.Dispose()
}

func TestUnitOfWork_CancelledContextRollsBack(t *testing.T) {
	db := openTestDB(t)
	u := NewGormFactory(db, nil).New()
	ctx, cancel := context.WithCancel(context.Background())

	if err := u.Begin(ctx, IsolationDefault); err != nil {
		t.Fatalf("begin: %v", err)
	}
	s := u.Session(ctx)
	_ = s.Write(db, "ledger.insert", insert(1, "a"))
	cancel()

	err := u.Commit(ctx)
	if !IsCode(err, CodeCanceled) {
		t.Fatalf("expected canceled code, got %q (%v)", CodeOf(err), err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected wrapped context.Canceled, got %v", err)
	}
	if err := u.Rollback(context.Background()); err != nil {
		t.Fatalf("rollback after cancel should be a no-op, got %v", err)
	}
	u.Dispose()
	if got := countRows(t, db); got != 0 {
		t.Fatalf("rows: want=0 got=%d", got)
	}
}

func TestUnitOfWork_DisposeRollsBackActive(t *testing.T) {
	db := openTestDB(t)
	u := NewGormFactory(db, nil).New()
	ctx := context.Background()

	if err := u.Begin(ctx, IsolationDefault); err != nil {
		t.Fatalf("begin: %v", err)
	}
	s := u.Session(ctx)
	_ = s.Write(db, "ledger.insert", insert(1, "a"))
	if err := s.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	u.Dispose()

	if u.State() != StateRolledBack {
		t.Fatalf("state: want=%s got=%s", StateRolledBack, u.State())
	}
	if got := countRows(t, db); got != 0 {
		t.Fatalf("rows: want=0 got=%d", got)
	}
	if err := u.Begin(ctx, IsolationDefault); !errors.Is(err, ErrDisposed) {
		t.Fatalf("begin after dispose: want=%v got=%v", ErrDisposed, err)
	}
}

func TestUnitOfWork_SessionWithoutBeginWritesImmediately(t *testing.T) {
	db := openTestDB(t)
	u := NewGormFactory(db, nil).New()

	s := u.Session(context.Background())
	if s.Writes != nil || s.Tx != nil {
		t.Fatalf("idle session must not carry a transaction")
	}
	if err := s.Write(db, "ledger.insert", insert(1, "a")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got := countRows(t, db); got != 1 {
		t.Fatalf("rows: want=1 got=%d", got)
	}
}

func TestParseIsolationLevel(t *testing.T) {
	cases := map[string]IsolationLevel{
		"":                IsolationDefault,
		"read_committed":  ReadCommitted,
		"Read-Committed":  ReadCommitted,
		"ReadCommitted":   ReadCommitted,
		"repeatable read": RepeatableRead,
		"SERIALIZABLE":    Serializable,
	}
	for in, want := range cases {
		got, err := ParseIsolationLevel(in)
		if err != nil {
			t.Fatalf("parse %q: %v", in, err)
		}
		if got != want {
			t.Fatalf("parse %q: want=%s got=%s", in, want, got)
		}
	}
	if _, err := ParseIsolationLevel("snapshot"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
