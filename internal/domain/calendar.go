package domain

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// ErrInvalidDate is returned when a value cannot be read as a calendar day.
var ErrInvalidDate = errors.New("invalid date")

// DateLayout is the wire and storage format of a CalendarDate.
const DateLayout = "2006-01-02"

// CalendarDate is a day on the calendar. It carries no time of day and no
// zone, so two dates are equal exactly when year, month and day match.
type CalendarDate struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate returns the calendar date for y-m-d, normalising overflow the way
// time.Date does (e.g. Jan 32 becomes Feb 1).
func NewDate(y int, m time.Month, d int) CalendarDate {
	return dateFromTime(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

// DateOf returns the calendar day t falls on in its own location.
func DateOf(t time.Time) CalendarDate {
	y, m, d := t.Date()
	return CalendarDate{Year: y, Month: m, Day: d}
}

// DateIn returns the calendar day t falls on in loc.
func DateIn(t time.Time, loc *time.Location) CalendarDate {
	if loc == nil {
		loc = time.UTC
	}
	return DateOf(t.In(loc))
}

// ParseDate parses a strict YYYY-MM-DD string.
func ParseDate(s string) (CalendarDate, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return CalendarDate{}, fmt.Errorf("%w %q", ErrInvalidDate, s)
	}
	return dateFromTime(t), nil
}

func dateFromTime(t time.Time) CalendarDate {
	y, m, d := t.Date()
	return CalendarDate{Year: y, Month: m, Day: d}
}

func (d CalendarDate) midnight() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// IsZero reports whether d is the zero CalendarDate.
func (d CalendarDate) IsZero() bool {
	return d == CalendarDate{}
}

// AddDays returns the date n days after d (n may be negative).
func (d CalendarDate) AddDays(n int) CalendarDate {
	return dateFromTime(d.midnight().AddDate(0, 0, n))
}

// DaysSince returns the whole number of days from o to d.
func (d CalendarDate) DaysSince(o CalendarDate) int {
	return int(d.midnight().Sub(o.midnight()).Hours() / 24)
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or
// after o.
func (d CalendarDate) Compare(o CalendarDate) int {
	switch {
	case d.Year != o.Year:
		return cmpInt(d.Year, o.Year)
	case d.Month != o.Month:
		return cmpInt(int(d.Month), int(o.Month))
	default:
		return cmpInt(d.Day, o.Day)
	}
}

func cmpInt(a, b int) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

// Before reports whether d is strictly earlier than o.
func (d CalendarDate) Before(o CalendarDate) bool { return d.Compare(o) < 0 }

// After reports whether d is strictly later than o.
func (d CalendarDate) After(o CalendarDate) bool { return d.Compare(o) > 0 }

func (d CalendarDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// MarshalText renders d as YYYY-MM-DD; the zero date renders empty.
func (d CalendarDate) MarshalText() ([]byte, error) {
	if d.IsZero() {
		return []byte{}, nil
	}
	return []byte(d.String()), nil
}

// UnmarshalText parses YYYY-MM-DD. Empty input yields the zero date.
func (d *CalendarDate) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*d = CalendarDate{}
		return nil
	}
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value implements driver.Valuer.
func (d CalendarDate) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}

// Scan implements sql.Scanner. DATE columns arrive from lib/pq as time.Time
// at UTC midnight; the day is read in that value's own location.
func (d *CalendarDate) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = CalendarDate{}
		return nil
	case time.Time:
		*d = DateOf(v)
		return nil
	case string:
		return d.UnmarshalText([]byte(v))
	case []byte:
		return d.UnmarshalText(v)
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidDate, src)
	}
}
