package uow

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func TestMapError_NotFound(t *testing.T) {
	err := MapError("op", gorm.ErrRecordNotFound)
	if !IsCode(err, CodeNotFound) {
		t.Fatalf("expected not_found code, got %q (%v)", CodeOf(err), err)
	}
}

func TestMapError_Canceled(t *testing.T) {
	err := MapError("op", fmt.Errorf("query: %w", context.Canceled))
	if !IsCode(err, CodeCanceled) {
		t.Fatalf("expected canceled code, got %q (%v)", CodeOf(err), err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("cause must stay reachable")
	}
}

func TestMapError_PgCodes(t *testing.T) {
	cases := map[string]FaultCode{
		"23505": CodeConflict,
		"23503": CodePreconditionFailed,
		"40001": CodeRetryable,
		"40P01": CodeRetryable,
	}
	for sqlState, want := range cases {
		err := MapError("op", &pgconn.PgError{Code: sqlState, Message: "x"})
		if !IsCode(err, want) {
			t.Fatalf("sqlstate %s: want=%s got=%s", sqlState, want, CodeOf(err))
		}
	}
}

func TestMapError_MessageFallback(t *testing.T) {
	if err := MapError("op", errors.New("UNIQUE constraint failed: student.id")); !IsCode(err, CodeConflict) {
		t.Fatalf("expected conflict, got %q", CodeOf(err))
	}
	if err := MapError("op", errors.New("database is locked")); !IsCode(err, CodeRetryable) {
		t.Fatalf("expected retryable, got %q", CodeOf(err))
	}
	if err := MapError("op", errors.New("boom")); !IsCode(err, CodeInternal) {
		t.Fatalf("expected internal, got %q", CodeOf(err))
	}
}

func TestMapError_PassthroughStorageFault(t *testing.T) {
	in := NewFault(CodeRetryable, "op", "retry", errors.New("boom"))
	if out := MapError("other", in); out != in {
		t.Fatalf("expected passthrough storage fault")
	}
	if MapError("op", nil) != nil {
		t.Fatalf("nil must map to nil")
	}
}
