/*
Package schedule implements the rest-rotation calendar: which of the four
rotation letters a calendar day belongs to, how manually entered exceptions
override that, and whether the result counts as a rest day for the driver.

KEY CONCEPTS:
  - Letter:         one of A/B/C/D, ordered by rotation distance
  - LetterSet:      the letters assigned to a day. Weekdays carry exactly
                    one letter; weekends carry a pair (e.g. {A,C}) and rest
                    detection is a membership test, never equality
  - RotationConfig: the anchor date, anchor letter and weekend pattern
  - Exception:      a date-ranged override (letter change or vacation)
  - ClassifyDay:    rotation + overlay composed into the final result

The rotation advances one letter per week on a 4-week cycle; the weekend
letter-pair swaps between Saturday and Sunday every other week. Dates before
the anchor have no classification, which is an absent value, not an error.
*/
package schedule

import (
	"github.com/warp/shift-ledger/temporal"
)

// =============================================================================
// LETTER - Rotation phase symbol
// =============================================================================

// Letter is one of the four rotation symbols.
type Letter string

const (
	LetterA Letter = "A"
	LetterB Letter = "B"
	LetterC Letter = "C"
	LetterD Letter = "D"
)

// cycle orders the letters by rotation distance. All rotation arithmetic is
// an index into this array modulo its length.
var cycle = [4]Letter{LetterA, LetterB, LetterC, LetterD}

// CycleLength is the number of letters in the rotation.
const CycleLength = len(cycle)

// Index returns the rotation index of the letter (A=0 .. D=3).
func (l Letter) Index() (int, bool) {
	for i, c := range cycle {
		if c == l {
			return i, true
		}
	}
	return 0, false
}

// LetterAt maps a rotation index back to a letter. Indexes are reduced with
// floor modulo so negative intermediates are safe.
func LetterAt(index int) Letter {
	return cycle[temporal.FloorMod(index, CycleLength)]
}

// ParseLetter parses a stored letter value.
func ParseLetter(s string) (Letter, error) {
	l := Letter(s)
	if _, ok := l.Index(); !ok {
		return "", temporal.NewConfigError("letter", s, "unknown rotation letter")
	}
	return l, nil
}

// =============================================================================
// LETTER SET - Day assignment (single letter or weekend pair)
// =============================================================================

// LetterSet is the set of letters assigned to a day. A weekday result holds
// one letter, a weekend result holds the pattern pair. An empty set means
// "no classification" (date before the anchor, or no configuration).
//
// Rest-day detection must be a membership test against this set. Comparing
// against a single letter works for weekdays by accident and silently breaks
// weekends, so the set is the only representation exposed.
type LetterSet []Letter

// Contains reports whether the letter is a member of the set.
func (s LetterSet) Contains(l Letter) bool {
	for _, m := range s {
		if m == l {
			return true
		}
	}
	return false
}

// IsEmpty reports an absent classification.
func (s LetterSet) IsEmpty() bool { return len(s) == 0 }

// String renders the set in the stored pair form, e.g. "AC".
func (s LetterSet) String() string {
	out := ""
	for _, m := range s {
		out += string(m)
	}
	return out
}

// SingleLetter returns the sole member of a weekday result.
func (s LetterSet) SingleLetter() (Letter, bool) {
	if len(s) != 1 {
		return "", false
	}
	return s[0], true
}

// ParseLetterSet parses a stored letter-group string such as "AC" or "B".
// Every rune must be a known letter; duplicates collapse.
func ParseLetterSet(s string) (LetterSet, error) {
	var set LetterSet
	for _, r := range s {
		l, err := ParseLetter(string(r))
		if err != nil {
			return nil, temporal.NewConfigError("letterSet", s, "unknown rotation letter")
		}
		if !set.Contains(l) {
			set = append(set, l)
		}
	}
	if set.IsEmpty() {
		return nil, temporal.NewConfigError("letterSet", s, "empty letter group")
	}
	return set, nil
}

func singleton(l Letter) LetterSet { return LetterSet{l} }
