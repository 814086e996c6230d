/*
Package journal defines the financial records the bookkeeping screens write
and the reporting engine reads: income entries (trips), expense entries, and
shift entries.

DESIGN PRINCIPLES:
  1. Precision: amounts use decimal.Decimal, never float64.
  2. Immutability: an entry changes only by explicit edit or delete from a
     logging screen; the reporting engine reads snapshots and never writes.
  3. Tolerance: a malformed entry is skipped by consumers, it never aborts
     a report.

SEE ALSO:
  - store.go: the persistence contract the data-access layer implements
  - report: aggregation over snapshots of these entries
*/
package journal

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// ENTRY - Timestamped monetary record
// =============================================================================

// Kind discriminates the three record families.
type Kind string

const (
	KindIncome  Kind = "income"  // a logged trip
	KindExpense Kind = "expense" // fuel, maintenance, fees
	KindShift   Kind = "shift"   // a worked shift marker
)

// PaymentMethod tags how an income entry was paid.
type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentCard PaymentMethod = "card"
	PaymentApp  PaymentMethod = "app"
)

// Entry is a single financial record.
//
// For income entries Amount is the amount actually charged and Meter the
// metered fare; the difference, floored at zero, is the tip. Expense
// entries use Amount only. Shift entries may carry a zero Amount - they
// exist to mark a worked day.
type Entry struct {
	ID       string
	At       time.Time
	Kind     Kind
	Amount   decimal.Decimal
	Meter    decimal.Decimal
	Payment  PaymentMethod
	Airport  bool
	Dispatch bool
	Note     string

	CreatedAt time.Time
}

// Tip is the per-record tip: max(0, charged - metered). Never negative,
// zero for anything that is not an income entry.
func (e Entry) Tip() decimal.Decimal {
	if e.Kind != KindIncome {
		return decimal.Zero
	}
	tip := e.Amount.Sub(e.Meter)
	if tip.IsNegative() {
		return decimal.Zero
	}
	return tip
}

// ErrMalformedEntry marks an entry that consumers must skip.
var ErrMalformedEntry = errors.New("malformed journal entry")

// Validate reports whether the entry is structurally usable. Consumers skip
// (and log) invalid entries rather than failing a whole report over one
// bad row.
func (e Entry) Validate() error {
	if e.At.IsZero() {
		return ErrMalformedEntry
	}
	switch e.Kind {
	case KindIncome, KindExpense, KindShift:
	default:
		return ErrMalformedEntry
	}
	if e.Amount.IsNegative() {
		return ErrMalformedEntry
	}
	return nil
}

// CountsAsWorked reports whether the entry marks its calendar day as a
// worked day (at least one income or shift record).
func (e Entry) CountsAsWorked() bool {
	return e.Kind == KindIncome || e.Kind == KindShift
}
