package uow

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// FaultCode standardizes storage failure semantics.
type FaultCode string

const (
	CodeNotFound           FaultCode = "not_found"
	CodeConflict           FaultCode = "conflict"
	CodePreconditionFailed FaultCode = "precondition_failed"
	CodeRetryable          FaultCode = "retryable"
	CodeCanceled           FaultCode = "canceled"
	CodeInternal           FaultCode = "internal"
)

var (
	// ErrNotActive is returned when a write or commit is attempted without Begin.
	ErrNotActive = errors.New("unit of work is not active")
	// ErrDisposed is returned by any operation after Dispose.
	ErrDisposed = errors.New("unit of work is disposed")
)

// StorageFault wraps a storage failure with a classification code.
type StorageFault struct {
	Code    FaultCode
	Op      string
	Message string
	Cause   error
}

func (e *StorageFault) Error() string {
	if e == nil {
		return "<nil>"
	}
	op := strings.TrimSpace(e.Op)
	msg := strings.TrimSpace(e.Message)
	switch {
	case op != "" && msg != "":
		return fmt.Sprintf("%s: %s (%s)", op, msg, e.Code)
	case op != "":
		return fmt.Sprintf("%s (%s)", op, e.Code)
	case msg != "":
		return fmt.Sprintf("%s (%s)", msg, e.Code)
	default:
		return string(e.Code)
	}
}

func (e *StorageFault) Unwrap() error { return e.Cause }

func NewFault(code FaultCode, op, message string, cause error) error {
	return &StorageFault{
		Code:    code,
		Op:      strings.TrimSpace(op),
		Message: strings.TrimSpace(message),
		Cause:   cause,
	}
}

// Wrap annotates err with storage fault semantics.
func Wrap(code FaultCode, op string, err error) error {
	if err == nil {
		return nil
	}
	return NewFault(code, op, err.Error(), err)
}

// IsCode checks whether err (or a wrapped err) carries code.
func IsCode(err error, code FaultCode) bool {
	var f *StorageFault
	if !errors.As(err, &f) {
		return false
	}
	return f.Code == code
}

// CodeOf extracts the fault code when available.
func CodeOf(err error) FaultCode {
	var f *StorageFault
	if !errors.As(err, &f) {
		return ""
	}
	return f.Code
}

// MapError classifies driver and gorm failures into storage fault codes.
func MapError(op string, err error) error {
	if err == nil {
		return nil
	}
	var existing *StorageFault
	if errors.As(err, &existing) {
		return err
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return Wrap(CodeNotFound, op, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return Wrap(CodeCanceled, op, err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return Wrap(CodeConflict, op, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return Wrap(CodePreconditionFailed, op, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch strings.TrimSpace(pgErr.Code) {
		case "23505":
			return Wrap(CodeConflict, op, err) // unique_violation
		case "23503":
			return Wrap(CodePreconditionFailed, op, err) // foreign_key_violation
		case "40001", "40P01", "55P03":
			return Wrap(CodeRetryable, op, err) // serialization/deadlock/lock_not_available
		}
	}

	msg := strings.ToLower(strings.TrimSpace(err.Error()))
	switch {
	case strings.Contains(msg, "duplicate key"),
		strings.Contains(msg, "unique constraint"),
		strings.Contains(msg, "already exists"):
		return Wrap(CodeConflict, op, err)
	case strings.Contains(msg, "deadlock"),
		strings.Contains(msg, "serialization"),
		strings.Contains(msg, "database is locked"),
		strings.Contains(msg, "timeout"),
		strings.Contains(msg, "temporar"):
		return Wrap(CodeRetryable, op, err)
	default:
		return Wrap(CodeInternal, op, err)
	}
}
