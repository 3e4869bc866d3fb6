package school

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

// ParseDate reads a calendar date in YYYY-MM-DD form, also accepting a full
// RFC 3339 timestamp whose date part is used.
func ParseDate(s string) (datatypes.Date, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		ts, err2 := time.Parse(time.RFC3339, s)
		if err2 != nil {
			return datatypes.Date{}, err
		}
		t = time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)
	}
	return datatypes.Date(t), nil
}

func FormatDate(d datatypes.Date) string {
	return time.Time(d).Format(time.DateOnly)
}
