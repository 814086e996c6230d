package tariff

import (
	"github.com/shopspring/decimal"

	"github.com/warp/shift-ledger/temporal"
)

// =============================================================================
// RATE TABLE - User-editable band rates
// =============================================================================

// RateTable maps band names to their configured rates. Built only through
// ParseRateTable or DefaultRates, so every band is guaranteed numeric.
type RateTable map[string]decimal.Decimal

// AllBands lists every band a rate table must cover.
var AllBands = []string{
	BandStandardDay,
	BandNightWeekend,
	BandWeekendNight,
	BandAirportDay,
	BandAirportNights,
}

// DefaultRates returns the out-of-the-box rate table.
func DefaultRates() RateTable {
	return RateTable{
		BandStandardDay:   decimal.NewFromFloat(3.70),
		BandNightWeekend:  decimal.NewFromFloat(4.45),
		BandWeekendNight:  decimal.NewFromFloat(5.50),
		BandAirportDay:    decimal.NewFromFloat(20.00),
		BandAirportNights: decimal.NewFromFloat(23.00),
	}
}

// ParseRateTable validates a stored band->value mapping. A missing band
// keeps its default; a present but non-numeric value is a ConfigError, the
// rates screen must never fall back silently.
func ParseRateTable(stored map[string]string) (RateTable, error) {
	table := DefaultRates()
	for band, value := range stored {
		rate, err := decimal.NewFromString(value)
		if err != nil {
			return nil, temporal.NewConfigError("rate:"+band, value, "rate is not numeric")
		}
		table[band] = rate
	}
	return table, nil
}

// Rate returns the configured rate for a band, zero when the band is
// unknown (cannot happen for names produced by the schedules).
func (t RateTable) Rate(band string) decimal.Decimal {
	return t[band]
}
