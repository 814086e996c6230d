/*
Package report computes the numbers behind every summary screen: windowed
sums and counts, tag sub-totals, tips, period-over-period deltas, goal
attainment, and hour/weekday histograms.

All functions are pure transforms over an immutable snapshot of journal
entries supplied by the data-access layer for the requested window. Nothing
here blocks, caches, or writes.

PARTIAL-FAILURE TOLERANCE:
  A malformed individual entry (zero timestamp, unknown kind, negative
  amount) is skipped and logged; it never aborts the report. Only
  structurally invalid configuration is an error, and none is consumed in
  this package.
*/
package report

import (
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/warp/shift-ledger/journal"
	"github.com/warp/shift-ledger/temporal"
)

// =============================================================================
// GRANULARITY
// =============================================================================

// Granularity selects the bucket size for a windowed aggregation.
type Granularity string

const (
	ByDay   Granularity = "day"
	ByWeek  Granularity = "week" // Monday-start weeks, matching the rotation anchor
	ByMonth Granularity = "month"
	ByYear  Granularity = "year"
)

// bucketPeriod returns the bucket containing d for the granularity.
func bucketPeriod(d temporal.Day, g Granularity) temporal.Period {
	switch g {
	case ByWeek:
		return temporal.WeekPeriod(d)
	case ByMonth:
		return temporal.MonthPeriod(d.Year(), d.Month())
	case ByYear:
		return temporal.YearPeriod(d.Year())
	default:
		return temporal.DayPeriod(d)
	}
}

// =============================================================================
// TOTALS
// =============================================================================

// Totals accumulates one partition of the window. Category and tag
// sub-totals are independent: a card-paid airport trip contributes to both
// ByPayment[card] and AirportIncome, but exactly once to Income.
type Totals struct {
	Income   decimal.Decimal
	Expense  decimal.Decimal
	Net      decimal.Decimal
	Tips     decimal.Decimal
	Trips    int // income entries
	Expenses int // expense entries
	Shifts   int // shift entries

	ByPayment      map[journal.PaymentMethod]decimal.Decimal
	AirportIncome  decimal.Decimal
	DispatchIncome decimal.Decimal
}

func newTotals() Totals {
	return Totals{ByPayment: make(map[journal.PaymentMethod]decimal.Decimal)}
}

func (t *Totals) add(e journal.Entry) {
	switch e.Kind {
	case journal.KindIncome:
		t.Income = t.Income.Add(e.Amount)
		t.Tips = t.Tips.Add(e.Tip())
		t.Trips++
		if e.Payment != "" {
			t.ByPayment[e.Payment] = t.ByPayment[e.Payment].Add(e.Amount)
		}
		if e.Airport {
			t.AirportIncome = t.AirportIncome.Add(e.Amount)
		}
		if e.Dispatch {
			t.DispatchIncome = t.DispatchIncome.Add(e.Amount)
		}
	case journal.KindExpense:
		t.Expense = t.Expense.Add(e.Amount)
		t.Expenses++
	case journal.KindShift:
		t.Shifts++
	}
	t.Net = t.Income.Sub(t.Expense)
}

// =============================================================================
// AGGREGATION
// =============================================================================

// Bucket is one granularity slice of the window.
type Bucket struct {
	Period temporal.Period
	Totals Totals
}

// Result is a full windowed aggregation.
type Result struct {
	Window  temporal.Period
	Totals  Totals
	Buckets []Bucket
}

// Aggregate sums the snapshot over the window at the given granularity.
// Entries outside the window and malformed entries are skipped; the latter
// are logged.
func Aggregate(entries []journal.Entry, window temporal.Period, g Granularity) Result {
	result := Result{Window: window, Totals: newTotals()}
	byStart := make(map[temporal.Day]int)

	for _, e := range entries {
		if err := e.Validate(); err != nil {
			slog.Warn("skipping malformed journal entry", "id", e.ID, "at", e.At)
			continue
		}
		if !window.ContainsTime(e.At) {
			continue
		}

		result.Totals.add(e)

		bp := bucketPeriod(temporal.DayOf(e.At), g)
		idx, ok := byStart[bp.Start]
		if !ok {
			idx = len(result.Buckets)
			result.Buckets = append(result.Buckets, Bucket{Period: bp, Totals: newTotals()})
			byStart[bp.Start] = idx
		}
		result.Buckets[idx].Totals.add(e)
	}

	sortBuckets(result.Buckets)
	return result
}

func sortBuckets(buckets []Bucket) {
	for i := 1; i < len(buckets); i++ {
		for j := i; j > 0 && buckets[j].Period.Start.Before(buckets[j-1].Period.Start); j-- {
			buckets[j], buckets[j-1] = buckets[j-1], buckets[j]
		}
	}
}

// WorkedDayCount counts distinct calendar days in the window carrying at
// least one income or shift entry. The store offers the same derivation;
// this helper exists for callers already holding a snapshot.
func WorkedDayCount(entries []journal.Entry, window temporal.Period) int {
	seen := make(map[temporal.Day]bool)
	for _, e := range entries {
		if e.Validate() != nil || !e.CountsAsWorked() {
			continue
		}
		if d := temporal.DayOf(e.At); window.Contains(d) {
			seen[d] = true
		}
	}
	return len(seen)
}
