package report

import "github.com/shopspring/decimal"

// =============================================================================
// PERIOD COMPARISON - month-over-month / year-over-year
// =============================================================================

// Comparison holds the delta between two independent aggregations over
// disjoint windows (e.g. this month vs last month).
type Comparison struct {
	Current      decimal.Decimal
	Previous     decimal.Decimal
	Delta        decimal.Decimal
	DeltaPercent decimal.Decimal
}

// Compare computes the absolute and percentage delta between two values.
// The percentage is defined as zero, not an error and not infinity, when
// the previous value is zero.
func Compare(current, previous decimal.Decimal) Comparison {
	c := Comparison{
		Current:  current,
		Previous: previous,
		Delta:    current.Sub(previous),
	}
	if !previous.IsZero() {
		c.DeltaPercent = c.Delta.Div(previous).Mul(decimal.NewFromInt(100))
	}
	return c
}

// CompareResults compares the overall income of two aggregations. Caller
// supplies both; the windows must be disjoint for the comparison to mean
// anything, but that is not enforced here.
func CompareResults(current, previous Result) Comparison {
	return Compare(current.Totals.Income, previous.Totals.Income)
}
