package shared

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yungbote/university-backend/internal/domain/school"
	"github.com/yungbote/university-backend/internal/mediator"
)

var ErrNotFound = errors.New("not found")

// NotFoundError reports a missing entity. It is a handled fault.
type NotFoundError struct {
	Entity string
	ID     int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

func NotFound(entity string, id int) error { return &NotFoundError{Entity: entity, ID: id} }

// Length checks that s holds between min and max characters.
func Length(v mediator.Violations, field, s string, min, max int) {
	n := utf8.RuneCountInString(s)
	v.Check(n >= min && n <= max, field, fmt.Sprintf("must be between %d and %d characters", min, max))
}

// Required records a violation for a blank value.
func Required(v mediator.Violations, field, s string) {
	v.Check(strings.TrimSpace(s) != "", field, "is required")
}

// Date validates an optional-looking but required date string.
func Date(v mediator.Violations, field, s string) {
	if strings.TrimSpace(s) == "" {
		v.Add(field, "is required")
		return
	}
	if _, err := school.ParseDate(s); err != nil {
		v.Add(field, "must be a date (YYYY-MM-DD)")
	}
}

// RequiredID records a violation for a missing identifier.
func RequiredID(v mediator.Violations, field string, id *int) {
	v.Check(id != nil, field, "is required")
}
