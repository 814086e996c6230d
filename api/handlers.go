/*
handlers.go - HTTP handlers over the classification engine

PURPOSE:
  Exposes the temporal classification core via REST. Handlers load
  snapshots from the store, hand them to the pure core packages, and
  serialize the results. No domain rule lives here.

ENDPOINTS:
  Calendar:
    GET    /api/calendar/{year}/{month}    Per-day letter/vacation/rest map

  Tariff:
    GET    /api/tariff/classify            Band for a quick-logged trip

  Configuration:
    GET/PUT /api/config/rotation           Rotation anchor + weekend text
    GET/PUT /api/config/rates              Band rates
    GET/POST /api/exceptions               Exception rows (collection order)
    DELETE  /api/exceptions/{id}

  Journal:
    GET/POST /api/entries                  Records for a window / quick-log
    DELETE   /api/entries/{id}

  Reports:
    GET /api/reports/summary               Windowed aggregation
    GET /api/reports/compare               MoM / YoY delta
    GET /api/reports/histogram             Hour/weekday distribution
    GET /api/reports/goal                  Attainment + projection

ERROR HANDLING:
  400 for invalid input and ConfigError ("configuration unavailable" is the
  screen's rendering of it), 404 for unknown routes, 500 for store
  failures. "No classification" is never an error: days before the rotation
  anchor simply come back with empty letters.
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/warp/shift-ledger/journal"
	"github.com/warp/shift-ledger/report"
	"github.com/warp/shift-ledger/schedule"
	"github.com/warp/shift-ledger/tariff"
	"github.com/warp/shift-ledger/temporal"
)

// Store is the data-access collaborator surface the handlers need. The
// SQLite store implements it for production and the in-memory journal
// store for tests.
type Store interface {
	journal.Store

	RotationConfig(ctx context.Context) (*schedule.RawRotation, error)
	SaveRotationConfig(ctx context.Context, raw schedule.RawRotation) error

	Exceptions(ctx context.Context) ([]schedule.RawException, error)
	SaveException(ctx context.Context, raw schedule.RawException) error
	DeleteException(ctx context.Context, id string) error

	Rates(ctx context.Context) (map[string]string, error)
	SaveRates(ctx context.Context, rates map[string]string) error
}

// Handler holds the handler dependencies.
type Handler struct {
	Store  Store
	Logger *slog.Logger
}

// NewHandler creates a handler over the given store.
func NewHandler(store Store, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{Store: store, Logger: logger}
}

// =============================================================================
// CALENDAR
// =============================================================================

// GetCalendar resolves the per-day classification map for a month.
func (h *Handler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil || year < 1 {
		writeError(w, http.StatusBadRequest, "invalid year", err)
		return
	}
	month, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil || month < 1 || month > 12 {
		writeError(w, http.StatusBadRequest, "invalid month", err)
		return
	}

	cfg, exceptions, err := h.loadClassification(r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load configuration", err)
		return
	}

	days := schedule.ClassifyMonth(year, time.Month(month), cfg, exceptions)
	dto := CalendarDTO{Year: year, Month: month, Days: make(map[int]DayDTO, len(days))}
	for dom, result := range days {
		dto.Days[dom] = toDayDTO(result)
	}
	writeJSON(w, http.StatusOK, dto)
}

// loadClassification materializes the rotation config and exception
// overlay. A missing config yields nil (no classification, not an error);
// a structurally invalid stored config also yields nil but is logged. A
// bad exception row is skipped with a diagnostic so the rest of the month
// is unaffected.
func (h *Handler) loadClassification(r *http.Request) (*schedule.RotationConfig, []schedule.Exception, error) {
	ctx := r.Context()

	raw, err := h.Store.RotationConfig(ctx)
	if err != nil {
		return nil, nil, err
	}

	var cfg *schedule.RotationConfig
	if raw != nil {
		parsed, err := schedule.ParseRotation(*raw)
		if err != nil {
			h.Logger.Warn("stored rotation config is invalid", "error", err)
		} else {
			cfg = &parsed
		}
	}

	rawExceptions, err := h.Store.Exceptions(ctx)
	if err != nil {
		return nil, nil, err
	}
	var exceptions []schedule.Exception
	for _, rawExc := range rawExceptions {
		exc, err := schedule.ParseException(rawExc)
		if err != nil {
			h.Logger.Warn("skipping invalid exception", "id", rawExc.ID, "error", err)
			continue
		}
		exceptions = append(exceptions, exc)
	}

	return cfg, exceptions, nil
}

// =============================================================================
// TARIFF
// =============================================================================

// ClassifyTariff answers the quick-log prefill: which band applies to a
// trip started at ?at= under ?schedule=standard|airport.
func (h *Handler) ClassifyTariff(w http.ResponseWriter, r *http.Request) {
	atParam := r.URL.Query().Get("at")
	at := time.Now()
	if atParam != "" {
		parsed, err := time.Parse(time.RFC3339, atParam)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid 'at' timestamp, want RFC3339", err)
			return
		}
		at = parsed
	}

	kind := tariff.Standard
	if r.URL.Query().Get("schedule") == string(tariff.Airport) {
		kind = tariff.Airport
	}

	rates, err := h.loadRates(r)
	if err != nil {
		if errors.Is(err, temporal.ErrInvalidConfig) {
			writeError(w, http.StatusBadRequest, "tariff configuration unavailable", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load rates", err)
		return
	}

	band := tariff.NewClassifier(rates).Classify(at, kind)
	writeJSON(w, http.StatusOK, BandDTO{Band: band.Name, Rate: band.Rate.String(), Schedule: string(kind)})
}

func (h *Handler) loadRates(r *http.Request) (tariff.RateTable, error) {
	stored, err := h.Store.Rates(r.Context())
	if err != nil {
		return nil, err
	}
	return tariff.ParseRateTable(stored)
}

// =============================================================================
// CONFIGURATION
// =============================================================================

func (h *Handler) GetRotationConfig(w http.ResponseWriter, r *http.Request) {
	raw, err := h.Store.RotationConfig(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load rotation config", err)
		return
	}
	if raw == nil {
		writeJSON(w, http.StatusOK, nil)
		return
	}
	writeJSON(w, http.StatusOK, RotationConfigRequest{
		StartDate:   raw.StartDate,
		StartLetter: raw.StartLetter,
		WeekendText: raw.WeekendText,
		RestLetter:  raw.RestLetter,
	})
}

// PutRotationConfig validates through the core parser before persisting,
// so a config the classifier cannot use never reaches the store.
func (h *Handler) PutRotationConfig(w http.ResponseWriter, r *http.Request) {
	var req RotationConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	raw := schedule.RawRotation{
		StartDate:   req.StartDate,
		StartLetter: req.StartLetter,
		WeekendText: req.WeekendText,
		RestLetter:  req.RestLetter,
	}
	if _, err := schedule.ParseRotation(raw); err != nil {
		writeError(w, http.StatusBadRequest, "invalid rotation configuration", err)
		return
	}

	if err := h.Store.SaveRotationConfig(r.Context(), raw); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save rotation config", err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

func (h *Handler) ListExceptions(w http.ResponseWriter, r *http.Request) {
	raws, err := h.Store.Exceptions(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load exceptions", err)
		return
	}
	out := make([]ExceptionRequest, 0, len(raws))
	for _, raw := range raws {
		out = append(out, ExceptionRequest{
			ID: raw.ID, DateFrom: raw.DateFrom, DateTo: raw.DateTo,
			Kind: raw.Kind, Letter: raw.Letter,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) CreateException(w http.ResponseWriter, r *http.Request) {
	var req ExceptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if req.ID == "" {
		req.ID = fmt.Sprintf("exc-%d", time.Now().UnixNano())
	}

	raw := schedule.RawException{
		ID: req.ID, DateFrom: req.DateFrom, DateTo: req.DateTo,
		Kind: req.Kind, Letter: req.Letter,
	}
	if _, err := schedule.ParseException(raw); err != nil {
		writeError(w, http.StatusBadRequest, "invalid exception", err)
		return
	}

	if err := h.Store.SaveException(r.Context(), raw); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save exception", err)
		return
	}
	writeJSON(w, http.StatusCreated, req)
}

func (h *Handler) DeleteException(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteException(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete exception", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetRates(w http.ResponseWriter, r *http.Request) {
	rates, err := h.loadRates(r)
	if err != nil {
		if errors.Is(err, temporal.ErrInvalidConfig) {
			writeError(w, http.StatusBadRequest, "tariff configuration unavailable", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load rates", err)
		return
	}
	out := make(map[string]string, len(rates))
	for band, rate := range rates {
		out[band] = rate.String()
	}
	writeJSON(w, http.StatusOK, RatesRequest{Rates: out})
}

func (h *Handler) PutRates(w http.ResponseWriter, r *http.Request) {
	var req RatesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if _, err := tariff.ParseRateTable(req.Rates); err != nil {
		writeError(w, http.StatusBadRequest, "invalid rates", err)
		return
	}
	if err := h.Store.SaveRates(r.Context(), req.Rates); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save rates", err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

// =============================================================================
// JOURNAL
// =============================================================================

func (h *Handler) ListEntries(w http.ResponseWriter, r *http.Request) {
	window, err := windowFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid window", err)
		return
	}

	entries, err := h.Store.ListEntries(r.Context(), window.Start.Time(), window.End.AddDays(1).Time())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list entries", err)
		return
	}

	out := make([]EntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, toEntryDTO(e))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	var req EntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	entry, err := entryFromRequest(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid entry", err)
		return
	}

	if err := h.Store.SaveEntry(r.Context(), entry); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save entry", err)
		return
	}
	writeJSON(w, http.StatusCreated, toEntryDTO(entry))
}

func (h *Handler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteEntry(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete entry", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func entryFromRequest(req EntryRequest) (journal.Entry, error) {
	at, err := time.Parse(time.RFC3339, req.At)
	if err != nil {
		return journal.Entry{}, fmt.Errorf("invalid 'at' timestamp: %w", err)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return journal.Entry{}, fmt.Errorf("invalid amount: %w", err)
	}
	meter := decimal.Zero
	if req.Meter != "" {
		if meter, err = decimal.NewFromString(req.Meter); err != nil {
			return journal.Entry{}, fmt.Errorf("invalid meter amount: %w", err)
		}
	}

	id := req.ID
	if id == "" {
		id = fmt.Sprintf("entry-%d", time.Now().UnixNano())
	}

	entry := journal.Entry{
		ID:       id,
		At:       at,
		Kind:     journal.Kind(req.Kind),
		Amount:   amount,
		Meter:    meter,
		Payment:  journal.PaymentMethod(req.Payment),
		Airport:  req.Airport,
		Dispatch: req.Dispatch,
		Note:     req.Note,
	}
	if err := entry.Validate(); err != nil {
		return journal.Entry{}, err
	}
	return entry, nil
}

// =============================================================================
// REPORTS
// =============================================================================

// GetSummary aggregates entries over ?from=&to= (YYYY-MM-DD, inclusive)
// at ?granularity=day|week|month|year.
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	window, err := windowFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid window", err)
		return
	}

	granularity := report.Granularity(r.URL.Query().Get("granularity"))
	switch granularity {
	case report.ByDay, report.ByWeek, report.ByMonth, report.ByYear:
	case "":
		granularity = report.ByDay
	default:
		writeError(w, http.StatusBadRequest, "invalid granularity", nil)
		return
	}

	entries, err := h.Store.ListEntries(r.Context(), window.Start.Time(), window.End.AddDays(1).Time())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list entries", err)
		return
	}

	writeJSON(w, http.StatusOK, toSummaryDTO(report.Aggregate(entries, window, granularity)))
}

// GetComparison computes a month-over-month or year-over-year delta for
// the period containing ?date= (default today): two independent
// aggregations over disjoint windows.
func (h *Handler) GetComparison(w http.ResponseWriter, r *http.Request) {
	anchor := temporal.Today()
	if ds := r.URL.Query().Get("date"); ds != "" {
		t, err := time.Parse("2006-01-02", ds)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date, want YYYY-MM-DD", err)
			return
		}
		anchor = temporal.DayOf(t)
	}

	var current, previous temporal.Period
	switch r.URL.Query().Get("period") {
	case "year":
		current = temporal.YearPeriod(anchor.Year())
		previous = temporal.PreviousYear(anchor)
	case "month", "":
		current = temporal.MonthPeriod(anchor.Year(), anchor.Month())
		previous = temporal.PreviousMonth(anchor)
	default:
		writeError(w, http.StatusBadRequest, "invalid period, want month or year", nil)
		return
	}

	currentAgg, err := h.aggregateWindow(r, current)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to aggregate", err)
		return
	}
	previousAgg, err := h.aggregateWindow(r, previous)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to aggregate", err)
		return
	}

	c := report.CompareResults(currentAgg, previousAgg)
	writeJSON(w, http.StatusOK, ComparisonDTO{
		Current:      c.Current.String(),
		Previous:     c.Previous.String(),
		Delta:        c.Delta.String(),
		DeltaPercent: c.DeltaPercent.String(),
	})
}

// GetHistogram buckets income by ?axis=hour|weekday with ?stat=total|average.
func (h *Handler) GetHistogram(w http.ResponseWriter, r *http.Request) {
	window, err := windowFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid window", err)
		return
	}

	axis := report.Axis(r.URL.Query().Get("axis"))
	if axis != report.AxisHourOfDay && axis != report.AxisDayOfWeek {
		writeError(w, http.StatusBadRequest, "invalid axis, want hour or weekday", nil)
		return
	}

	entries, err := h.Store.ListEntries(r.Context(), window.Start.Time(), window.End.AddDays(1).Time())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list entries", err)
		return
	}

	stat := r.URL.Query().Get("stat")
	var buckets []decimal.Decimal
	switch stat {
	case "average":
		buckets = report.HistogramAverage(entries, window, axis)
	case "total", "":
		stat = "total"
		buckets = report.HistogramTotal(entries, window, axis)
	default:
		writeError(w, http.StatusBadRequest, "invalid stat, want total or average", nil)
		return
	}

	writeJSON(w, http.StatusOK, toHistogramDTO(string(axis), stat, buckets))
}

// GetGoal computes attainment for the month of ?month=YYYY-MM (default the
// current month) against ?target= daily income and ?planned_days= worked
// days planned for the month.
func (h *Handler) GetGoal(w http.ResponseWriter, r *http.Request) {
	anchor := temporal.Today()
	if ms := r.URL.Query().Get("month"); ms != "" {
		t, err := time.Parse("2006-01", ms)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid month, want YYYY-MM", err)
			return
		}
		anchor = temporal.DayOf(t)
	}

	target, err := decimal.NewFromString(r.URL.Query().Get("target"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid target", err)
		return
	}
	plannedDays, err := strconv.Atoi(r.URL.Query().Get("planned_days"))
	if err != nil || plannedDays < 0 {
		writeError(w, http.StatusBadRequest, "invalid planned_days", err)
		return
	}

	window := temporal.MonthPeriod(anchor.Year(), anchor.Month())
	agg, err := h.aggregateWindow(r, window)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to aggregate", err)
		return
	}
	worked, err := h.Store.WorkedDays(r.Context(), window)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to derive worked days", err)
		return
	}

	in := report.GoalInput{
		DailyTarget:        target,
		IncomeSoFar:        agg.Totals.Income,
		WorkedDaysSoFar:    len(worked),
		WorkedDaysInPeriod: plannedDays,
	}
	out := report.Attainment(in)
	writeJSON(w, http.StatusOK, GoalDTO{
		DailyTarget:        in.DailyTarget.String(),
		IncomeSoFar:        in.IncomeSoFar.String(),
		WorkedDaysSoFar:    in.WorkedDaysSoFar,
		WorkedDaysInPeriod: in.WorkedDaysInPeriod,
		TargetSoFar:        out.TargetSoFar.String(),
		AttainmentPercent:  out.AttainmentPercent.String(),
		ProjectedTotal:     out.ProjectedTotal.String(),
	})
}

func (h *Handler) aggregateWindow(r *http.Request, window temporal.Period) (report.Result, error) {
	entries, err := h.Store.ListEntries(r.Context(), window.Start.Time(), window.End.AddDays(1).Time())
	if err != nil {
		return report.Result{}, err
	}
	return report.Aggregate(entries, window, report.ByMonth), nil
}

// =============================================================================
// HELPERS
// =============================================================================

// windowFromQuery reads ?from=&to= as inclusive YYYY-MM-DD bounds,
// defaulting to the current month.
func windowFromQuery(r *http.Request) (temporal.Period, error) {
	fromParam := r.URL.Query().Get("from")
	toParam := r.URL.Query().Get("to")

	if fromParam == "" && toParam == "" {
		today := temporal.Today()
		return temporal.MonthPeriod(today.Year(), today.Month()), nil
	}
	if fromParam == "" || toParam == "" {
		return temporal.Period{}, errors.New("both from and to are required")
	}

	from, err := time.Parse("2006-01-02", fromParam)
	if err != nil {
		return temporal.Period{}, fmt.Errorf("invalid from: %w", err)
	}
	to, err := time.Parse("2006-01-02", toParam)
	if err != nil {
		return temporal.Period{}, fmt.Errorf("invalid to: %w", err)
	}

	window := temporal.Period{Start: temporal.DayOf(from), End: temporal.DayOf(to)}
	if window.End.Before(window.Start) {
		return temporal.Period{}, errors.New("window ends before it starts")
	}
	return window, nil
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	detail := ""
	if err != nil {
		detail = err.Error()
	}
	writeJSON(w, status, map[string]string{"error": message, "detail": detail})
}
