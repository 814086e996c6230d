package schedule

import (
	"time"

	"github.com/warp/shift-ledger/temporal"
)

// =============================================================================
// ROTATION CONFIG
// =============================================================================

// WeekendPattern is the letter-pair assignment for weekends. The pair is
// applied as-is on even-numbered rotation weeks and swapped (Saturday takes
// the Sunday pair and vice versa) on odd-numbered weeks.
type WeekendPattern struct {
	Saturday LetterSet
	Sunday   LetterSet
}

// DefaultWeekendPattern is used when the stored weekend text does not
// contain a recognizable pattern.
func DefaultWeekendPattern() WeekendPattern {
	return WeekendPattern{
		Saturday: LetterSet{LetterA, LetterC},
		Sunday:   LetterSet{LetterB, LetterD},
	}
}

// RotationConfig anchors the 4-week rotation. It is loaded once by the
// data-access layer and passed in read-only; the classification core never
// reaches into ambient storage for it.
type RotationConfig struct {
	StartDate   temporal.Day
	StartLetter Letter
	Weekend     WeekendPattern
	RestLetter  Letter
}

// Valid reports whether the config is structurally usable: a real anchor
// date and a known anchor letter. RestLetter may be empty (rest-day
// detection is then skipped).
func (c RotationConfig) Valid() bool {
	if c.StartDate.IsZero() {
		return false
	}
	_, ok := c.StartLetter.Index()
	return ok
}

// =============================================================================
// ROTATION CYCLE
// =============================================================================
// The rotation is anchored to the Monday of the week containing StartDate:
// that Monday's letter index is the anchor letter's index shifted backward
// by the anchor's weekday offset (mod 4), so BaseLetters(StartDate) yields
// StartLetter. Each following week's Monday advances the index by one.

// BaseLetters computes the rotation assignment for a day, before any
// exception overlay. The result is empty for days before the anchor or
// when the config is unusable.
func (c RotationConfig) BaseLetters(d temporal.Day) LetterSet {
	if !c.Valid() {
		return nil
	}

	daysSince := d.DaysSince(c.StartDate)
	if daysSince < 0 {
		return nil
	}

	startIdx, _ := c.StartLetter.Index()
	startOffset := c.StartDate.MondayOffset()

	// Week number relative to the anchor week. Floor division keeps the
	// index correct when daysSince+startOffset straddles zero.
	week := temporal.FloorDiv(daysSince+startOffset, 7)
	mondayIdx := temporal.FloorMod(startIdx-startOffset+week, CycleLength)

	switch d.Weekday() {
	case time.Saturday, time.Sunday:
		return c.weekendLetters(d.Weekday(), week)
	default:
		return singleton(LetterAt(mondayIdx + d.MondayOffset()))
	}
}

// weekendLetters resolves the weekend pair, swapping on odd weeks so the
// rest assignment alternates every other weekend.
func (c RotationConfig) weekendLetters(wd time.Weekday, week int) LetterSet {
	pattern := c.Weekend
	if pattern.Saturday.IsEmpty() || pattern.Sunday.IsEmpty() {
		pattern = DefaultWeekendPattern()
	}

	saturday, sunday := pattern.Saturday, pattern.Sunday
	if temporal.FloorMod(week, 2) == 1 {
		saturday, sunday = sunday, saturday
	}

	if wd == time.Saturday {
		return saturday
	}
	return sunday
}
