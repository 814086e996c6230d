/*
dto.go - Data Transfer Objects for API requests and responses

NAMING CONVENTION:
  - *DTO: response types returned to clients
  - *Request: request body types from clients

Validation happens in handlers; DTOs are pure data carriers. Amounts cross
the wire as strings so clients never see float artifacts.
*/
package api

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/shift-ledger/journal"
	"github.com/warp/shift-ledger/report"
	"github.com/warp/shift-ledger/schedule"
)

// =============================================================================
// CALENDAR
// =============================================================================

// DayDTO is the classification of one day of the month.
type DayDTO struct {
	Letters    string `json:"letters"` // "" = no classification
	IsVacation bool   `json:"is_vacation"`
	IsRestDay  bool   `json:"is_rest_day"`
}

// CalendarDTO maps day-of-month to its classification.
type CalendarDTO struct {
	Year  int            `json:"year"`
	Month int            `json:"month"`
	Days  map[int]DayDTO `json:"days"`
}

func toDayDTO(r schedule.DayResult) DayDTO {
	return DayDTO{
		Letters:    r.Letters.String(),
		IsVacation: r.IsVacation,
		IsRestDay:  r.IsRest,
	}
}

// =============================================================================
// TARIFF
// =============================================================================

// BandDTO is the quick-log prefill answer.
type BandDTO struct {
	Band     string `json:"band"`
	Rate     string `json:"rate"`
	Schedule string `json:"schedule"`
}

// =============================================================================
// CONFIGURATION
// =============================================================================

// RotationConfigRequest mirrors schedule.RawRotation on the wire.
type RotationConfigRequest struct {
	StartDate   string `json:"start_date"`
	StartLetter string `json:"start_letter"`
	WeekendText string `json:"weekend_text"`
	RestLetter  string `json:"rest_letter"`
}

// ExceptionRequest mirrors schedule.RawException on the wire.
type ExceptionRequest struct {
	ID       string `json:"id"`
	DateFrom string `json:"date_from"`
	DateTo   string `json:"date_to"`
	Kind     string `json:"kind"`
	Letter   string `json:"letter,omitempty"`
}

// RatesRequest carries the user-edited band rates.
type RatesRequest struct {
	Rates map[string]string `json:"rates"`
}

// =============================================================================
// JOURNAL
// =============================================================================

// EntryRequest is the quick-log body for income/expense/shift entries.
type EntryRequest struct {
	ID       string `json:"id"`
	At       string `json:"at"` // RFC3339
	Kind     string `json:"kind"`
	Amount   string `json:"amount"`
	Meter    string `json:"meter,omitempty"`
	Payment  string `json:"payment,omitempty"`
	Airport  bool   `json:"airport,omitempty"`
	Dispatch bool   `json:"dispatch,omitempty"`
	Note     string `json:"note,omitempty"`
}

// EntryDTO is an entry in API responses.
type EntryDTO struct {
	ID       string `json:"id"`
	At       string `json:"at"`
	Kind     string `json:"kind"`
	Amount   string `json:"amount"`
	Meter    string `json:"meter,omitempty"`
	Tip      string `json:"tip,omitempty"`
	Payment  string `json:"payment,omitempty"`
	Airport  bool   `json:"airport,omitempty"`
	Dispatch bool   `json:"dispatch,omitempty"`
	Note     string `json:"note,omitempty"`
}

func toEntryDTO(e journal.Entry) EntryDTO {
	dto := EntryDTO{
		ID:       e.ID,
		At:       e.At.Format(time.RFC3339),
		Kind:     string(e.Kind),
		Amount:   e.Amount.String(),
		Payment:  string(e.Payment),
		Airport:  e.Airport,
		Dispatch: e.Dispatch,
		Note:     e.Note,
	}
	if e.Kind == journal.KindIncome {
		dto.Meter = e.Meter.String()
		dto.Tip = e.Tip().String()
	}
	return dto
}

// =============================================================================
// REPORTS
// =============================================================================

// TotalsDTO renders a report partition.
type TotalsDTO struct {
	Income         string            `json:"income"`
	Expense        string            `json:"expense"`
	Net            string            `json:"net"`
	Tips           string            `json:"tips"`
	Trips          int               `json:"trips"`
	Expenses       int               `json:"expenses"`
	Shifts         int               `json:"shifts"`
	ByPayment      map[string]string `json:"by_payment"`
	AirportIncome  string            `json:"airport_income"`
	DispatchIncome string            `json:"dispatch_income"`
}

// BucketDTO is one granularity slice.
type BucketDTO struct {
	From   string    `json:"from"`
	To     string    `json:"to"`
	Totals TotalsDTO `json:"totals"`
}

// SummaryDTO is a full windowed aggregation.
type SummaryDTO struct {
	From    string      `json:"from"`
	To      string      `json:"to"`
	Totals  TotalsDTO   `json:"totals"`
	Buckets []BucketDTO `json:"buckets"`
}

// ComparisonDTO is a period-over-period delta.
type ComparisonDTO struct {
	Current      string `json:"current"`
	Previous     string `json:"previous"`
	Delta        string `json:"delta"`
	DeltaPercent string `json:"delta_percent"`
}

// HistogramDTO is an hour/weekday distribution.
type HistogramDTO struct {
	Axis    string   `json:"axis"`
	Stat    string   `json:"stat"`
	Buckets []string `json:"buckets"`
}

// GoalDTO is the goal-attainment summary.
type GoalDTO struct {
	DailyTarget        string `json:"daily_target"`
	IncomeSoFar        string `json:"income_so_far"`
	WorkedDaysSoFar    int    `json:"worked_days_so_far"`
	WorkedDaysInPeriod int    `json:"worked_days_in_period"`
	TargetSoFar        string `json:"target_so_far"`
	AttainmentPercent  string `json:"attainment_percent"`
	ProjectedTotal     string `json:"projected_total"`
}

func toTotalsDTO(t report.Totals) TotalsDTO {
	byPayment := make(map[string]string, len(t.ByPayment))
	for method, amount := range t.ByPayment {
		byPayment[string(method)] = amount.String()
	}
	return TotalsDTO{
		Income:         t.Income.String(),
		Expense:        t.Expense.String(),
		Net:            t.Net.String(),
		Tips:           t.Tips.String(),
		Trips:          t.Trips,
		Expenses:       t.Expenses,
		Shifts:         t.Shifts,
		ByPayment:      byPayment,
		AirportIncome:  t.AirportIncome.String(),
		DispatchIncome: t.DispatchIncome.String(),
	}
}

func toSummaryDTO(r report.Result) SummaryDTO {
	dto := SummaryDTO{
		From:   r.Window.Start.String(),
		To:     r.Window.End.String(),
		Totals: toTotalsDTO(r.Totals),
	}
	for _, b := range r.Buckets {
		dto.Buckets = append(dto.Buckets, BucketDTO{
			From:   b.Period.Start.String(),
			To:     b.Period.End.String(),
			Totals: toTotalsDTO(b.Totals),
		})
	}
	return dto
}

func toHistogramDTO(axis, stat string, buckets []decimal.Decimal) HistogramDTO {
	dto := HistogramDTO{Axis: axis, Stat: stat, Buckets: make([]string, len(buckets))}
	for i, b := range buckets {
		dto.Buckets[i] = b.String()
	}
	return dto
}
