package schedule

import (
	"strings"

	"github.com/warp/shift-ledger/temporal"
)

// =============================================================================
// EXCEPTION - Manually entered override of the rotation
// =============================================================================

// ExceptionKind discriminates the two override behaviors.
type ExceptionKind string

const (
	// KindLetterOverride replaces the rotation letters outright for every
	// day in range.
	KindLetterOverride ExceptionKind = "letter_override"

	// KindVacation flags the days as vacation. The rotation letters are
	// still computed so the calendar can show the underlying letter.
	KindVacation ExceptionKind = "vacation"
)

// Stored discriminator strings, as the exception screen writes them.
const (
	storedKindLetterOverride = "cambio de letra"
	storedKindVacation       = "vacaciones"
)

// ParseExceptionKind maps the stored discriminator to a kind.
func ParseExceptionKind(s string) (ExceptionKind, error) {
	switch strings.ToLower(accentFolder.Replace(strings.TrimSpace(s))) {
	case storedKindLetterOverride:
		return KindLetterOverride, nil
	case storedKindVacation:
		return KindVacation, nil
	default:
		return "", temporal.NewConfigError("exceptionKind", s, "unknown exception kind")
	}
}

// StoredKind renders the kind back into its stored discriminator.
func (k ExceptionKind) StoredKind() string {
	if k == KindVacation {
		return "Vacaciones"
	}
	return "Cambio de Letra"
}

// Exception is a date-ranged override. From and To are inclusive whole
// days; the overlay normalizes to day bounds so time-of-day noise in stored
// records can never shift the range.
type Exception struct {
	ID     string
	From   temporal.Day
	To     temporal.Day
	Kind   ExceptionKind
	Letter Letter // set for KindLetterOverride only
}

// Contains reports whether the day falls in the exception's range.
func (e Exception) Contains(d temporal.Day) bool {
	return d.AfterOrEqual(e.From) && d.BeforeOrEqual(e.To)
}

// RawException is the stored row form.
type RawException struct {
	ID       string `json:"id"`
	DateFrom string `json:"date_from"` // DD/MM/YYYY
	DateTo   string `json:"date_to"`   // DD/MM/YYYY
	Kind     string `json:"kind"`      // "Cambio de Letra" | "Vacaciones"
	Letter   string `json:"letter"`    // override letter, when applicable
}

// ParseException converts a stored row into an Exception. A single bad row
// is an error for that row only; callers skip it and keep the rest of the
// collection, so one corrupt exception cannot take a whole month down.
func ParseException(raw RawException) (Exception, error) {
	from, err := temporal.ParseDay(raw.DateFrom)
	if err != nil {
		return Exception{}, temporal.NewConfigError("exception.dateFrom", raw.DateFrom, "unparseable date")
	}
	to, err := temporal.ParseDay(raw.DateTo)
	if err != nil {
		return Exception{}, temporal.NewConfigError("exception.dateTo", raw.DateTo, "unparseable date")
	}
	if to.Before(from) {
		return Exception{}, temporal.NewConfigError("exception.dateTo", raw.DateTo, "range ends before it starts")
	}

	kind, err := ParseExceptionKind(raw.Kind)
	if err != nil {
		return Exception{}, err
	}

	exc := Exception{ID: raw.ID, From: from, To: to, Kind: kind}
	if kind == KindLetterOverride {
		letter, err := ParseLetter(strings.ToUpper(strings.TrimSpace(raw.Letter)))
		if err != nil {
			return Exception{}, temporal.NewConfigError("exception.letter", raw.Letter, "unknown rotation letter")
		}
		exc.Letter = letter
	}
	return exc, nil
}
