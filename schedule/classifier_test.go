package schedule_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/warp/shift-ledger/schedule"
	"github.com/warp/shift-ledger/temporal"
)

func override(id string, from, to temporal.Day, letter schedule.Letter) schedule.Exception {
	return schedule.Exception{ID: id, From: from, To: to, Kind: schedule.KindLetterOverride, Letter: letter}
}

func vacation(id string, from, to temporal.Day) schedule.Exception {
	return schedule.Exception{ID: id, From: from, To: to, Kind: schedule.KindVacation}
}

// =============================================================================
// EXCEPTION PRECEDENCE
// =============================================================================

func TestClassifyDay_LetterOverrideReplacesRotation(t *testing.T) {
	// GIVEN: rotation says Tuesday 02/01 is B, an override says D
	// THEN: the override wins outright
	cfg := mondayAnchoredConfig()
	exceptions := []schedule.Exception{
		override("exc-1", date(2024, time.January, 2), date(2024, time.January, 4), schedule.LetterD),
	}

	result := schedule.ClassifyDay(date(2024, time.January, 2), &cfg, exceptions)
	if got, _ := result.Letters.SingleLetter(); got != schedule.LetterD {
		t.Errorf("overridden letter = %s, want D", got)
	}
	if result.IsVacation {
		t.Error("letter override must not flag vacation")
	}
}

func TestClassifyDay_VacationKeepsRotationLetter(t *testing.T) {
	// GIVEN: a vacation covering Tuesday 02/01 (rotation letter B)
	// THEN: the flag is set but the letter still comes from the rotation
	cfg := mondayAnchoredConfig()
	exceptions := []schedule.Exception{
		vacation("exc-1", date(2024, time.January, 2), date(2024, time.January, 2)),
	}

	result := schedule.ClassifyDay(date(2024, time.January, 2), &cfg, exceptions)
	if !result.IsVacation {
		t.Fatal("expected vacation flag")
	}
	if got, _ := result.Letters.SingleLetter(); got != schedule.LetterB {
		t.Errorf("vacation day letter = %s, want underlying rotation letter B", got)
	}
}

func TestClassifyDay_OverlappingExceptions_FirstInCollectionWins(t *testing.T) {
	// Overlap priority is the collection's given order, nothing cleverer.
	cfg := mondayAnchoredConfig()
	day := date(2024, time.January, 10)

	first := override("exc-1", day, day, schedule.LetterC)
	second := override("exc-2", day, day, schedule.LetterD)

	result := schedule.ClassifyDay(day, &cfg, []schedule.Exception{first, second})
	if got, _ := result.Letters.SingleLetter(); got != schedule.LetterC {
		t.Errorf("letter = %s, want C (first exception in order)", got)
	}

	flipped := schedule.ClassifyDay(day, &cfg, []schedule.Exception{second, first})
	if got, _ := flipped.Letters.SingleLetter(); got != schedule.LetterD {
		t.Errorf("letter = %s, want D after reordering the collection", got)
	}
}

func TestClassifyDay_VacationDoesNotFallThroughToLaterOverride(t *testing.T) {
	// The first matching exception stops the scan even when a later
	// override also covers the day.
	cfg := mondayAnchoredConfig()
	day := date(2024, time.January, 3) // rotation letter C

	exceptions := []schedule.Exception{
		vacation("exc-1", day, day),
		override("exc-2", day, day, schedule.LetterA),
	}

	result := schedule.ClassifyDay(day, &cfg, exceptions)
	if !result.IsVacation {
		t.Fatal("expected vacation flag")
	}
	if got, _ := result.Letters.SingleLetter(); got != schedule.LetterC {
		t.Errorf("letter = %s, want rotation letter C, not the later override", got)
	}
}

func TestClassifyDay_ExceptionRangeIsInclusiveWholeDays(t *testing.T) {
	cfg := mondayAnchoredConfig()
	exc := override("exc-1", date(2024, time.January, 10), date(2024, time.January, 12), schedule.LetterA)

	for dom := 10; dom <= 12; dom++ {
		result := schedule.ClassifyDay(date(2024, time.January, dom), &cfg, []schedule.Exception{exc})
		if got, _ := result.Letters.SingleLetter(); got != schedule.LetterA {
			t.Errorf("day %d letter = %s, want A (inside range)", dom, got)
		}
	}
	outside := schedule.ClassifyDay(date(2024, time.January, 13), &cfg, []schedule.Exception{exc})
	if got := outside.Letters.String(); got == "A" {
		t.Error("day after range end must not be overridden")
	}
}

// =============================================================================
// REST-DAY DETECTION
// =============================================================================

func TestClassifyDay_RestDayMatching(t *testing.T) {
	cfg := mondayAnchoredConfig() // rest letter A

	cases := []struct {
		day  temporal.Day
		want bool
	}{
		{date(2024, time.January, 1), true},  // Mon, letter A
		{date(2024, time.January, 2), false}, // Tue, letter B
		{date(2024, time.January, 5), true},  // Fri, wraps to A
		{date(2024, time.January, 6), true},  // Sat "AC": membership, A in pair
		{date(2024, time.January, 7), false}, // Sun "BD": A not in pair
		{date(2024, time.January, 13), false}, // Sat week 1 swapped to "BD"
		{date(2024, time.January, 14), true},  // Sun week 1 swapped to "AC"
	}
	for _, c := range cases {
		result := schedule.ClassifyDay(c.day, &cfg, nil)
		if result.IsRest != c.want {
			t.Errorf("%s (%s) IsRest = %v, want %v", c.day, result.Letters, result.IsRest, c.want)
		}
	}
}

// =============================================================================
// ABSENT CLASSIFICATION AND FAULT ISOLATION
// =============================================================================

func TestClassifyDay_NoConfigMeansNoLetterNoError(t *testing.T) {
	result := schedule.ClassifyDay(date(2024, time.June, 1), nil, nil)
	if result.HasLetters() || result.IsVacation || result.IsRest {
		t.Errorf("nil config must yield an empty result, got %+v", result)
	}
}

func TestClassifyDay_Idempotent(t *testing.T) {
	cfg := mondayAnchoredConfig()
	exceptions := []schedule.Exception{
		vacation("exc-1", date(2024, time.January, 2), date(2024, time.January, 4)),
	}
	day := date(2024, time.January, 3)

	first := schedule.ClassifyDay(day, &cfg, exceptions)
	second := schedule.ClassifyDay(day, &cfg, exceptions)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("identical inputs produced %+v then %+v", first, second)
	}
}

func TestClassifyDay_BadOverrideLetterYieldsNoClassification(t *testing.T) {
	// A structurally broken override takes its days out of classification
	// without inventing a letter or disturbing other days.
	cfg := mondayAnchoredConfig()
	bad := schedule.Exception{
		ID:   "exc-bad",
		From: date(2024, time.January, 2), To: date(2024, time.January, 2),
		Kind: schedule.KindLetterOverride, Letter: schedule.Letter("E"),
	}

	affected := schedule.ClassifyDay(date(2024, time.January, 2), &cfg, []schedule.Exception{bad})
	if affected.HasLetters() {
		t.Errorf("affected day letters = %q, want empty", affected.Letters)
	}

	unaffected := schedule.ClassifyDay(date(2024, time.January, 3), &cfg, []schedule.Exception{bad})
	if got, _ := unaffected.Letters.SingleLetter(); got != schedule.LetterC {
		t.Errorf("neighboring day letter = %s, want C", got)
	}
}

// =============================================================================
// MONTH MAP
// =============================================================================

func TestClassifyMonth_CoversEveryDayExactlyOnce(t *testing.T) {
	cfg := mondayAnchoredConfig()
	days := schedule.ClassifyMonth(2024, time.February, &cfg, nil)

	if len(days) != 29 {
		t.Fatalf("february 2024 map has %d days, want 29", len(days))
	}
	for dom := 1; dom <= 29; dom++ {
		result, ok := days[dom]
		if !ok {
			t.Fatalf("day %d missing from month map", dom)
		}
		if !result.HasLetters() {
			t.Errorf("day %d has no letters, every 2024 day is after the anchor", dom)
		}
	}
}

func TestClassifyMonth_NoConfig(t *testing.T) {
	days := schedule.ClassifyMonth(2024, time.March, nil, nil)
	if len(days) != 31 {
		t.Fatalf("march map has %d days, want 31", len(days))
	}
	for dom, result := range days {
		if result.HasLetters() {
			t.Errorf("day %d classified without config", dom)
		}
	}
}
