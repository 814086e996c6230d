package report

import "github.com/shopspring/decimal"

// =============================================================================
// GOAL ATTAINMENT AND RUN-RATE PROJECTION
// =============================================================================

// GoalInput carries everything the goal math needs. Worked-day counts come
// from the data-access layer (a worked day is a day with at least one
// income or shift entry); they are inputs here, never recomputed.
type GoalInput struct {
	DailyTarget        decimal.Decimal
	IncomeSoFar        decimal.Decimal
	WorkedDaysSoFar    int
	WorkedDaysInPeriod int
}

// GoalResult is the attainment summary for the elapsed portion of the
// current period.
type GoalResult struct {
	TargetSoFar       decimal.Decimal
	AttainmentPercent decimal.Decimal
	ProjectedTotal    decimal.Decimal
}

// Attainment computes target-so-far, attainment percentage, and a linear
// run-rate projection to the full period. Every division guards its
// denominator: a zero denominator yields zero, by definition.
func Attainment(in GoalInput) GoalResult {
	var out GoalResult

	workedSoFar := decimal.NewFromInt(int64(in.WorkedDaysSoFar))
	out.TargetSoFar = in.DailyTarget.Mul(workedSoFar)

	if !out.TargetSoFar.IsZero() {
		out.AttainmentPercent = in.IncomeSoFar.Div(out.TargetSoFar).Mul(decimal.NewFromInt(100))
	}

	if in.WorkedDaysSoFar > 0 {
		perDay := in.IncomeSoFar.Div(workedSoFar)
		out.ProjectedTotal = perDay.Mul(decimal.NewFromInt(int64(in.WorkedDaysInPeriod)))
	}

	return out
}
