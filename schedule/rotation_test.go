package schedule_test

import (
	"testing"
	"time"

	"github.com/warp/shift-ledger/schedule"
	"github.com/warp/shift-ledger/temporal"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func date(year int, month time.Month, day int) temporal.Day {
	return temporal.NewDay(year, month, day)
}

// mondayAnchoredConfig starts the rotation on Monday 01/01/2024 with letter
// A and the default weekend pattern (AC / BD).
func mondayAnchoredConfig() schedule.RotationConfig {
	return schedule.RotationConfig{
		StartDate:   date(2024, time.January, 1),
		StartLetter: schedule.LetterA,
		Weekend:     schedule.DefaultWeekendPattern(),
		RestLetter:  schedule.LetterA,
	}
}

func singleLetter(t *testing.T, cfg schedule.RotationConfig, d temporal.Day) schedule.Letter {
	t.Helper()
	letters := cfg.BaseLetters(d)
	letter, ok := letters.SingleLetter()
	if !ok {
		t.Fatalf("expected single letter for %s, got %q", d, letters)
	}
	return letter
}

// =============================================================================
// ROTATION CYCLE
// =============================================================================

func TestBaseLetters_AnchorDayGetsStartLetter(t *testing.T) {
	cfg := mondayAnchoredConfig()
	if got := singleLetter(t, cfg, cfg.StartDate); got != schedule.LetterA {
		t.Errorf("anchor day letter = %s, want A", got)
	}
}

func TestBaseLetters_WeekdaysAdvanceThroughTheCycle(t *testing.T) {
	cfg := mondayAnchoredConfig()
	want := []schedule.Letter{
		schedule.LetterA, // Mon 01/01
		schedule.LetterB, // Tue 02/01
		schedule.LetterC, // Wed 03/01
		schedule.LetterD, // Thu 04/01
		schedule.LetterA, // Fri 05/01 - offset 4 wraps back to the Monday letter
	}
	for i, w := range want {
		d := date(2024, time.January, 1+i)
		if got := singleLetter(t, cfg, d); got != w {
			t.Errorf("%s letter = %s, want %s", d, got, w)
		}
	}
}

func TestBaseLetters_MondaysCycleEveryFourWeeks(t *testing.T) {
	// GIVEN: rotation anchored Monday 01/01/2024 at A
	// THEN: Mondays go A, B, C, D, A, ... one step per week
	cfg := mondayAnchoredConfig()
	want := []schedule.Letter{
		schedule.LetterA, schedule.LetterB, schedule.LetterC, schedule.LetterD,
		schedule.LetterA, schedule.LetterB,
	}
	for week, w := range want {
		monday := cfg.StartDate.AddDays(7 * week)
		if got := singleLetter(t, cfg, monday); got != w {
			t.Errorf("Monday of week %d letter = %s, want %s", week, got, w)
		}
	}
}

func TestBaseLetters_MidWeekAnchor(t *testing.T) {
	// GIVEN: an anchor on Wednesday 03/01/2024 at C
	// THEN: the Monday of that week computes back to A, so the Wednesday
	// itself still yields its configured letter
	cfg := schedule.RotationConfig{
		StartDate:   date(2024, time.January, 3),
		StartLetter: schedule.LetterC,
	}
	if got := singleLetter(t, cfg, cfg.StartDate); got != schedule.LetterC {
		t.Errorf("anchor letter = %s, want C", got)
	}
	// Thursday continues the cycle
	if got := singleLetter(t, cfg, date(2024, time.January, 4)); got != schedule.LetterD {
		t.Errorf("day after anchor = %s, want D", got)
	}
}

func TestBaseLetters_BeforeAnchorIsUnclassified(t *testing.T) {
	cfg := mondayAnchoredConfig()
	if letters := cfg.BaseLetters(date(2023, time.December, 31)); !letters.IsEmpty() {
		t.Errorf("date before anchor = %q, want empty", letters)
	}
}

func TestBaseLetters_InvalidConfigIsUnclassified(t *testing.T) {
	var cfg schedule.RotationConfig
	if letters := cfg.BaseLetters(date(2024, time.June, 1)); !letters.IsEmpty() {
		t.Errorf("zero config = %q, want empty", letters)
	}
}

// =============================================================================
// WEEKEND PATTERN
// =============================================================================

func TestBaseLetters_WeekendPairSwapsEveryOtherWeek(t *testing.T) {
	cfg := mondayAnchoredConfig()

	cases := []struct {
		day  temporal.Day
		want string
	}{
		{date(2024, time.January, 6), "AC"},  // Sat week 0 (even): as-is
		{date(2024, time.January, 7), "BD"},  // Sun week 0
		{date(2024, time.January, 13), "BD"}, // Sat week 1 (odd): swapped
		{date(2024, time.January, 14), "AC"}, // Sun week 1
		{date(2024, time.January, 20), "AC"}, // Sat week 2: back to as-is
		{date(2024, time.January, 21), "BD"}, // Sun week 2
	}
	for _, c := range cases {
		if got := cfg.BaseLetters(c.day).String(); got != c.want {
			t.Errorf("%s weekend letters = %q, want %q", c.day, got, c.want)
		}
	}
}

func TestBaseLetters_WeekendResultIsASetNotALetter(t *testing.T) {
	cfg := mondayAnchoredConfig()
	letters := cfg.BaseLetters(date(2024, time.January, 6)) // Sat, "AC"

	if _, ok := letters.SingleLetter(); ok {
		t.Fatal("weekend result must not collapse to a single letter")
	}
	if !letters.Contains(schedule.LetterA) || !letters.Contains(schedule.LetterC) {
		t.Errorf("weekend set %q must contain both pair members", letters)
	}
	if letters.Contains(schedule.LetterB) {
		t.Errorf("weekend set %q must reject non-members", letters)
	}
}

func TestBaseLetters_EmptyWeekendPatternFallsBackToDefault(t *testing.T) {
	cfg := mondayAnchoredConfig()
	cfg.Weekend = schedule.WeekendPattern{}
	if got := cfg.BaseLetters(date(2024, time.January, 6)).String(); got != "AC" {
		t.Errorf("saturday with empty pattern = %q, want default AC", got)
	}
}
