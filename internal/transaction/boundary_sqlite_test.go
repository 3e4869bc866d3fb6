package transaction

import (
	"context"
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/yungbote/university-backend/internal/data/uow"
	"github.com/yungbote/university-backend/internal/platform/logger"
)

type grade struct {
	ID    int `gorm:"primaryKey"`
	Value string
}

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "tx.db")), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := db.AutoMigrate(&grade{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// A storage fault after two applied mutations leaves neither visible.
func TestBoundary_StorageFaultDiscardsPartialWrites(t *testing.T) {
	db := openSQLite(t)
	b, err := NewBoundary(BoundaryDeps{
		Factory:   uow.NewGormFactory(db, logger.Nop()),
		Isolation: uow.IsolationDefault,
	})
	if err != nil {
		t.Fatalf("NewBoundary: %v", err)
	}

	err = b.Run(context.Background(), func(ctx context.Context) (Outcome, error) {
		s, ok := SessionFrom(ctx)
		if !ok {
			t.Fatalf("expected session")
		}
		_ = s.Write(db, "grade.create", func(tx *gorm.DB) error { return tx.Create(&grade{ID: 1, Value: "A"}).Error })
		_ = s.Write(db, "grade.create", func(tx *gorm.DB) error { return tx.Create(&grade{ID: 2, Value: "B"}).Error })
		if err := s.Flush(); err != nil {
			return OutcomeUnhandledFault, err
		}
		// duplicate primary key
		_ = s.Write(db, "grade.create", func(tx *gorm.DB) error { return tx.Create(&grade{ID: 1, Value: "C"}).Error })
		if err := s.Flush(); err != nil {
			return OutcomeUnhandledFault, err
		}
		return OutcomeSuccess, nil
	})
	if !uow.IsCode(err, uow.CodeConflict) {
		t.Fatalf("want conflict fault, got %q (%v)", uow.CodeOf(err), err)
	}

	var n int64
	if err := b.Run(context.Background(), func(ctx context.Context) (Outcome, error) {
		s, _ := SessionFrom(ctx)
		if err := s.DB(db).Model(&grade{}).Count(&n).Error; err != nil {
			return OutcomeUnhandledFault, err
		}
		return OutcomeSuccess, nil
	}); err != nil {
		t.Fatalf("read run: %v", err)
	}
	if n != 0 {
		t.Fatalf("rows visible after rollback: want=0 got=%d", n)
	}
}

func TestBoundary_CommitPersistsAcrossTransactions(t *testing.T) {
	db := openSQLite(t)
	b, err := NewBoundary(BoundaryDeps{Factory: uow.NewGormFactory(db, nil), Isolation: uow.IsolationDefault})
	if err != nil {
		t.Fatalf("NewBoundary: %v", err)
	}
	if err := b.Run(context.Background(), func(ctx context.Context) (Outcome, error) {
		s, _ := SessionFrom(ctx)
		_ = s.Write(db, "grade.create", func(tx *gorm.DB) error { return tx.Create(&grade{ID: 7, Value: "A"}).Error })
		return OutcomeSuccess, nil
	}); err != nil {
		t.Fatalf("run: %v", err)
	}
	var n int64
	if err := db.Model(&grade{}).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("rows: want=1 got=%d", n)
	}
}
