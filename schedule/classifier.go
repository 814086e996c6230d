/*
classifier.go - Rotation + exception overlay composed per day

RESOLUTION ORDER (first match wins, in the collection's given order):
  1. A LetterOverride exception containing the day replaces the letters
     outright; no further exception and no rotation lookup.
  2. A Vacation exception containing the day sets the flag, stops the
     exception scan, and falls through to the rotation for the letters -
     a vacation day still shows its underlying rotation letter.
  3. Otherwise the rotation cycle decides.

Overlapping exceptions have no documented priority beyond collection
order; this is preserved as-is rather than resolved by specificity or
recency.

Every day resolves independently. A malformed input affecting one day
yields an empty result for that day and nothing else.
*/
package schedule

import (
	"time"

	"github.com/warp/shift-ledger/temporal"
)

// DayResult is the final classification of a single calendar day.
// Exactly one of {non-empty Letters, empty Letters} holds; IsVacation is
// independent of letter presence.
type DayResult struct {
	Letters    LetterSet
	IsVacation bool
	IsRest     bool
}

// HasLetters reports whether the day was classified at all.
func (r DayResult) HasLetters() bool { return !r.Letters.IsEmpty() }

// ClassifyDay resolves a single day against the config and the exception
// overlay. A nil config means no classification: empty letters, no error.
func ClassifyDay(d temporal.Day, cfg *RotationConfig, exceptions []Exception) DayResult {
	var result DayResult

	if cfg == nil {
		return result
	}

	overridden := false
	for _, exc := range exceptions {
		if !exc.Contains(d) {
			continue
		}
		switch exc.Kind {
		case KindLetterOverride:
			// A structurally bad override letter yields "no classification"
			// for the day rather than a made-up value.
			if _, ok := exc.Letter.Index(); ok {
				result.Letters = singleton(exc.Letter)
			}
			overridden = true
		case KindVacation:
			result.IsVacation = true
		}
		break
	}

	if !overridden {
		result.Letters = cfg.BaseLetters(d)
	}

	result.IsRest = isRestDay(result.Letters, cfg.RestLetter)
	return result
}

// ClassifyMonth resolves every day of the month, keyed by day-of-month.
// This is the shape the calendar screen consumes.
func ClassifyMonth(year int, month time.Month, cfg *RotationConfig, exceptions []Exception) map[int]DayResult {
	period := temporal.MonthPeriod(year, month)
	out := make(map[int]DayResult, period.Len())
	for _, d := range period.Days() {
		out[d.DayOfMonth()] = ClassifyDay(d, cfg, exceptions)
	}
	return out
}

// isRestDay is a membership test: on weekdays the set holds one letter so
// membership degenerates to equality, on weekends it checks the pair.
func isRestDay(letters LetterSet, rest Letter) bool {
	if letters.IsEmpty() || rest == "" {
		return false
	}
	return letters.Contains(rest)
}
