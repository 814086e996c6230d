/*
Package temporal provides the shared calendar foundation for the
classification engine.

PURPOSE:
  Every component in this system answers some variant of "which bucket does
  this point in time fall into?". This package holds the primitives those
  answers are built from:

  - Day:    a calendar date with no time-of-day component
  - Period: an inclusive range of Days, with month/week/year constructors
  - Floor division and modulo, which the rotation arithmetic depends on

DESIGN PRINCIPLES:
  1. Day normalizes away the time of day so range checks can never be
     corrupted by hour/minute noise (an exception covering "12/03" must
     match a record stamped 12/03 23:59).
  2. All arithmetic that can see negative operands uses floor semantics,
     never Go's truncated %, so week and cycle indices stay stable across
     the anchor date.
  3. Values are immutable; every operation returns a new value.

SEE ALSO:
  - period.go: Period and the window constructors
  - errors.go: configuration error types shared by schedule and tariff
*/
package temporal

import (
	"fmt"
	"time"
)

// =============================================================================
// DAY - Calendar date, day granularity
// =============================================================================

// Day is a calendar date in local time with the time-of-day stripped.
type Day struct {
	t time.Time
}

// NewDay builds a Day from its calendar components.
func NewDay(year int, month time.Month, day int) Day {
	return Day{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DayOf truncates an instant to its calendar date.
func DayOf(t time.Time) Day {
	return NewDay(t.Year(), t.Month(), t.Day())
}

// Today returns the current calendar date.
func Today() Day {
	return DayOf(time.Now())
}

// ParseDay parses the stored "DD/MM/YYYY" date format.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse("02/01/2006", s)
	if err != nil {
		return Day{}, fmt.Errorf("parse day %q: %w", s, err)
	}
	return DayOf(t), nil
}

// Comparison
func (d Day) Before(other Day) bool { return d.t.Before(other.t) }
func (d Day) After(other Day) bool  { return d.t.After(other.t) }
func (d Day) Equal(other Day) bool  { return d.t.Equal(other.t) }
func (d Day) BeforeOrEqual(other Day) bool { return !d.After(other) }
func (d Day) AfterOrEqual(other Day) bool  { return !d.Before(other) }

// Arithmetic
func (d Day) AddDays(n int) Day   { return Day{t: d.t.AddDate(0, 0, n)} }
func (d Day) AddMonths(n int) Day { return Day{t: d.t.AddDate(0, n, 0)} }
func (d Day) AddYears(n int) Day  { return Day{t: d.t.AddDate(n, 0, 0)} }

// Properties
func (d Day) Year() int             { return d.t.Year() }
func (d Day) Month() time.Month     { return d.t.Month() }
func (d Day) DayOfMonth() int       { return d.t.Day() }
func (d Day) Weekday() time.Weekday { return d.t.Weekday() }
func (d Day) IsZero() bool          { return d.t.IsZero() }

// IsWeekend reports whether the day is a Saturday or Sunday.
func (d Day) IsWeekend() bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// MondayOffset returns the weekday offset with Monday as 0 and Sunday as 6.
// The rotation arithmetic is anchored to Mondays, so this is the offset it
// works in (time.Weekday counts from Sunday).
func (d Day) MondayOffset() int {
	return (int(d.Weekday()) + 6) % 7
}

// DaysSince returns the whole number of days from other to d.
// Negative when d precedes other.
func (d Day) DaysSince(other Day) int {
	return int(d.t.Sub(other.t).Hours() / 24)
}

// Time returns the start-of-day instant in UTC.
func (d Day) Time() time.Time { return d.t }

func (d Day) String() string { return d.t.Format("2006-01-02") }

// Stored returns the day in the "DD/MM/YYYY" stored format.
func (d Day) Stored() string { return d.t.Format("02/01/2006") }

// =============================================================================
// FLOOR ARITHMETIC
// =============================================================================
// Go's % truncates toward zero, which breaks cycle indices for dates that
// produce negative intermediate offsets. Both helpers here use floor
// semantics: the result of FloorMod is always in [0, m).

func FloorMod(a, m int) int {
	r := a % m
	if r < 0 {
		r += m
	}
	return r
}

func FloorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
