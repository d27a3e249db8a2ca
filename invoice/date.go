package invoice

import (
	"encoding/json"
	"math"
	"strings"
	"time"
)

const dateWireFormat = "2006-01-02"

// Date is a civil date without a time component. The API exchanges dates as
// "YYYY-MM-DD" strings; the zero Date marshals as null and satisfies the
// "date is required" validation failure.
type Date struct {
	t time.Time
}

// NewDate builds a Date from year, month and day in the local timezone.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.Local)}
}

// DateOf truncates a time to its local calendar date.
func DateOf(t time.Time) Date {
	if t.IsZero() {
		return Date{}
	}
	y, m, d := t.Date()
	return Date{t: time.Date(y, m, d, 0, 0, 0, 0, t.Location())}
}

// Today returns the current local date.
func Today() Date {
	return DateOf(time.Now())
}

// ParseDate parses a "YYYY-MM-DD" string. An empty string yields the zero Date.
func ParseDate(value string) (Date, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return Date{}, nil
	}
	t, err := time.ParseInLocation(dateWireFormat, trimmed, time.Local)
	if err != nil {
		return Date{}, err
	}
	return Date{t: t}, nil
}

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool { return d.t.IsZero() }

// Time returns the date as a time.Time at local midnight.
func (d Date) Time() time.Time { return d.t }

// AddDays returns the date shifted by the given number of calendar days.
func (d Date) AddDays(days int) Date {
	if d.IsZero() {
		return d
	}
	return Date{t: d.t.AddDate(0, 0, days)}
}

// Before reports whether d is strictly before other.
func (d Date) Before(other Date) bool { return d.t.Before(other.t) }

// After reports whether d is strictly after other.
func (d Date) After(other Date) bool { return d.t.After(other.t) }

// Equal reports whether both values name the same calendar date.
func (d Date) Equal(other Date) bool {
	return d.t.Year() == other.t.Year() && d.t.YearDay() == other.t.YearDay()
}

// DaysUntil returns the whole-day distance from d to other (negative when
// other is in the past relative to d). Rounding absorbs DST-shortened days.
func (d Date) DaysUntil(other Date) int {
	return int(math.Round(other.t.Sub(d.t).Hours() / 24))
}

// String renders the wire format.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(dateWireFormat)
}

// MarshalJSON encodes the date as "YYYY-MM-DD", or null when unset.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts "YYYY-MM-DD", empty strings and null.
func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = Date{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseDate(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
