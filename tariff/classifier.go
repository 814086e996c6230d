package tariff

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// BANDS AND SCHEDULES
// =============================================================================

// Band is a named fare rate.
type Band struct {
	Name string
	Rate decimal.Decimal
}

// Band names. Tarifa 1-3 belong to the standard schedule, Tarifa 4-5 to the
// airport schedule.
const (
	BandStandardDay   = "Tarifa 1" // weekday daytime
	BandNightWeekend  = "Tarifa 2" // weekend daytime, weekday early/late
	BandWeekendNight  = "Tarifa 3" // Fri/Sat/Sun late night, weekend small hours
	BandAirportDay    = "Tarifa 4" // airport weekday daytime
	BandAirportNights = "Tarifa 5" // airport weekend or early/late
)

// ScheduleKind selects which rule list applies.
type ScheduleKind string

const (
	Standard ScheduleKind = "standard"
	Airport  ScheduleKind = "airport"
)

// rule binds a set of clock windows to a band name. Rules are evaluated in
// order; the first rule with a matching window wins.
type rule struct {
	windows []ClockWindow
	band    string
}

func (r rule) matches(day time.Weekday, hour int) bool {
	for _, w := range r.windows {
		if w.Contains(day, hour) {
			return true
		}
	}
	return false
}

// schedule is an ordered rule list with a default band for the remainder.
type schedule struct {
	rules       []rule
	defaultBand string
}

func (s schedule) resolve(day time.Weekday, hour int) string {
	for _, r := range s.rules {
		if r.matches(day, hour) {
			return r.band
		}
	}
	return s.defaultBand
}

// standardSchedule:
//  1. Tarifa 3 - Fri/Sat/Sun from 22:00, Sat/Sun before 06:00
//  2. Tarifa 2 - Sat/Sun 07:00-22:00, or weekday early morning / from 21:00
//  3. Tarifa 1 - everything else (weekday 07:00-21:00)
//
// Two gaps fall through to the default on purpose, matching how the meter
// actually behaves: Sat/Sun 06:00-07:00, and Monday 00:00-06:00 (the
// tarification sheet calls the latter "technically T2 unless holiday" but
// the meter charges T1; do not fix).
var standardSchedule = schedule{
	rules: []rule{
		{band: BandWeekendNight, windows: []ClockWindow{
			{Days: On(time.Friday, time.Saturday, time.Sunday), HourStart: 22, HourEnd: 24},
			{Days: Weekend(), HourStart: 0, HourEnd: 6},
		}},
		{band: BandNightWeekend, windows: []ClockWindow{
			{Days: Weekend(), HourStart: 7, HourEnd: 22},
			{Days: On(time.Tuesday, time.Wednesday, time.Thursday, time.Friday), HourStart: 0, HourEnd: 7},
			{Days: On(time.Monday), HourStart: 6, HourEnd: 7},
			{Days: Weekdays(), HourStart: 21, HourEnd: 24},
		}},
	},
	defaultBand: BandStandardDay,
}

// airportSchedule:
//  1. Tarifa 5 - weekend any hour, or any day before 07:00 / from 21:00
//  2. Tarifa 4 - weekday 07:00-21:00
var airportSchedule = schedule{
	rules: []rule{
		{band: BandAirportNights, windows: []ClockWindow{
			{Days: Weekend(), HourStart: 0, HourEnd: 24},
			{Days: EveryDay(), HourStart: 0, HourEnd: 7},
			{Days: EveryDay(), HourStart: 21, HourEnd: 24},
		}},
	},
	defaultBand: BandAirportDay,
}

// =============================================================================
// CLASSIFIER
// =============================================================================

// Classifier resolves instants to fare bands using a validated rate table.
// It is pure: the same (instant, schedule) pair always yields the same band.
type Classifier struct {
	rates RateTable
}

// NewClassifier builds a classifier over a rate table. The table must carry
// a numeric rate for every band; RateTable construction enforces that.
func NewClassifier(rates RateTable) *Classifier {
	return &Classifier{rates: rates}
}

// Classify returns the band for a trip started at the given instant.
// Total: every (weekday, hour) pair resolves to exactly one band.
func (c *Classifier) Classify(at time.Time, kind ScheduleKind) Band {
	name := ScheduleFor(kind).resolve(at.Weekday(), at.Hour())
	return Band{Name: name, Rate: c.rates.Rate(name)}
}

// BandName resolves only the band name, without a rate table. Useful for
// previews before any rates are configured.
func BandName(at time.Time, kind ScheduleKind) string {
	return ScheduleFor(kind).resolve(at.Weekday(), at.Hour())
}

// ScheduleFor maps the kind to its rule list. Unknown kinds fall back to
// the standard schedule.
func ScheduleFor(kind ScheduleKind) schedule {
	if kind == Airport {
		return airportSchedule
	}
	return standardSchedule
}
