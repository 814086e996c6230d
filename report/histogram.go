package report

import (
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/warp/shift-ledger/journal"
	"github.com/warp/shift-ledger/temporal"
)

// =============================================================================
// HISTOGRAMS - hour-of-day and day-of-week distributions
// =============================================================================

// Axis selects the histogram dimension.
type Axis string

const (
	AxisHourOfDay Axis = "hour"    // buckets 0..23
	AxisDayOfWeek Axis = "weekday" // buckets 0..6, Sunday = 0
)

func (a Axis) size() int {
	if a == AxisDayOfWeek {
		return 7
	}
	return 24
}

// HistogramTotal buckets income amounts by the axis and returns the bucket
// sums. "How much do Fridays bring in, in total, over this window."
func HistogramTotal(entries []journal.Entry, window temporal.Period, axis Axis) []decimal.Decimal {
	sums, _ := histogram(entries, window, axis)
	return sums
}

// HistogramAverage buckets income amounts by the axis and divides each
// bucket sum by the number of DISTINCT calendar dates observed in that
// bucket across the window. "What does a typical Friday bring in." This is
// a different statistic from the total and both are needed; a bucket with
// no observed dates averages to zero.
func HistogramAverage(entries []journal.Entry, window temporal.Period, axis Axis) []decimal.Decimal {
	sums, dates := histogram(entries, window, axis)
	out := make([]decimal.Decimal, len(sums))
	for i, sum := range sums {
		if n := len(dates[i]); n > 0 {
			out[i] = sum.Div(decimal.NewFromInt(int64(n)))
		} else {
			out[i] = decimal.Zero
		}
	}
	return out
}

func histogram(entries []journal.Entry, window temporal.Period, axis Axis) ([]decimal.Decimal, []map[temporal.Day]bool) {
	sums := make([]decimal.Decimal, axis.size())
	for i := range sums {
		sums[i] = decimal.Zero
	}
	dates := make([]map[temporal.Day]bool, axis.size())
	for i := range dates {
		dates[i] = make(map[temporal.Day]bool)
	}

	for _, e := range entries {
		if err := e.Validate(); err != nil {
			slog.Warn("skipping malformed journal entry", "id", e.ID, "at", e.At)
			continue
		}
		if e.Kind != journal.KindIncome || !window.ContainsTime(e.At) {
			continue
		}

		var bucket int
		if axis == AxisDayOfWeek {
			bucket = int(e.At.Weekday()) // Sunday = 0
		} else {
			bucket = e.At.Hour()
		}

		sums[bucket] = sums[bucket].Add(e.Amount)
		dates[bucket][temporal.DayOf(e.At)] = true
	}
	return sums, dates
}
