/*
Package tariff selects which fare band applies to a trip started at a given
instant. Two schedules exist: the standard city schedule and the airport
schedule. Each is an ordered rule list of clock windows; the first window
that contains the instant decides the band, and a designated default band
catches everything else, so classification is total.

The band RATES are user-editable configuration; the classifier only selects
which band applies, never its value. A configured rate that is not numeric
is a ConfigError, not a silent default.
*/
package tariff

import "time"

// =============================================================================
// CLOCK WINDOW - Recurring weekday/hour membership
// =============================================================================

// DaySet is a bitmask of weekdays, bit positions matching time.Weekday
// (Sunday = bit 0).
type DaySet uint8

// On builds a DaySet from weekdays.
func On(days ...time.Weekday) DaySet {
	var s DaySet
	for _, d := range days {
		s |= 1 << uint(d)
	}
	return s
}

// Weekdays is Monday through Friday.
func Weekdays() DaySet {
	return On(time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday)
}

// Weekend is Saturday and Sunday.
func Weekend() DaySet {
	return On(time.Saturday, time.Sunday)
}

// EveryDay covers the full week.
func EveryDay() DaySet {
	return Weekdays() | Weekend()
}

// Has reports membership of a weekday.
func (s DaySet) Has(d time.Weekday) bool {
	return s&(1<<uint(d)) != 0
}

// ClockWindow is a recurring [HourStart, HourEnd) local-time window on a set
// of weekdays. A window never spans midnight; a night range crossing
// midnight is expressed as two windows (e.g. Fri 22-24 plus Sat 0-6).
type ClockWindow struct {
	Days      DaySet
	HourStart int // inclusive, 0..23
	HourEnd   int // exclusive, 1..24
}

// Contains reports whether the weekday/hour pair falls inside the window.
func (w ClockWindow) Contains(day time.Weekday, hour int) bool {
	return w.Days.Has(day) && hour >= w.HourStart && hour < w.HourEnd
}

// ContainsTime resolves the instant's local weekday and hour and tests
// membership.
func (w ClockWindow) ContainsTime(t time.Time) bool {
	return w.Contains(t.Weekday(), t.Hour())
}
