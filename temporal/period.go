package temporal

import "time"

// =============================================================================
// PERIOD - Inclusive range of days
// =============================================================================

// Period is an inclusive [Start, End] range of calendar days. Reports and
// calendar screens always work over a Period, never a bare instant.
type Period struct {
	Start Day
	End   Day
}

// Contains returns true if the day falls inside the period.
func (p Period) Contains(d Day) bool {
	return d.AfterOrEqual(p.Start) && d.BeforeOrEqual(p.End)
}

// ContainsTime returns true if the instant's calendar date falls inside
// the period.
func (p Period) ContainsTime(t time.Time) bool {
	return p.Contains(DayOf(t))
}

// Days returns every day in the period in order.
func (p Period) Days() []Day {
	var days []Day
	for d := p.Start; d.BeforeOrEqual(p.End); d = d.AddDays(1) {
		days = append(days, d)
	}
	return days
}

// Len returns the number of days in the period.
func (p Period) Len() int {
	return p.End.DaysSince(p.Start) + 1
}

func (p Period) String() string {
	return "[" + p.Start.String() + ", " + p.End.String() + "]"
}

// =============================================================================
// WINDOW CONSTRUCTORS
// =============================================================================

// MonthPeriod returns the full calendar month containing the given year/month.
func MonthPeriod(year int, month time.Month) Period {
	start := NewDay(year, month, 1)
	return Period{Start: start, End: start.AddMonths(1).AddDays(-1)}
}

// YearPeriod returns the full calendar year.
func YearPeriod(year int) Period {
	return Period{Start: NewDay(year, time.January, 1), End: NewDay(year, time.December, 31)}
}

// WeekPeriod returns the Monday-to-Sunday week containing the given day.
// Weeks start on Monday to match the rotation anchor.
func WeekPeriod(d Day) Period {
	start := d.AddDays(-d.MondayOffset())
	return Period{Start: start, End: start.AddDays(6)}
}

// DayPeriod returns the single-day period for d.
func DayPeriod(d Day) Period {
	return Period{Start: d, End: d}
}

// PreviousMonth returns the calendar month immediately before the month
// containing d. Used for month-over-month comparisons.
func PreviousMonth(d Day) Period {
	first := NewDay(d.Year(), d.Month(), 1).AddMonths(-1)
	return MonthPeriod(first.Year(), first.Month())
}

// PreviousYear returns the calendar year before the one containing d.
func PreviousYear(d Day) Period {
	return YearPeriod(d.Year() - 1)
}
