package tariff_test

import (
	"errors"
	"testing"
	"time"

	"github.com/warp/shift-ledger/tariff"
	"github.com/warp/shift-ledger/temporal"
)

// at builds an instant on a known week: 07/01/2024 is a Sunday, so
// 08/01 is Monday ... 13/01 Saturday.
func at(weekday time.Weekday, hour int) time.Time {
	return time.Date(2024, time.January, 7+int(weekday), hour, 30, 0, 0, time.UTC)
}

func newClassifier(t *testing.T) *tariff.Classifier {
	t.Helper()
	return tariff.NewClassifier(tariff.DefaultRates())
}

// =============================================================================
// STANDARD SCHEDULE
// =============================================================================

func TestClassify_StandardScenarios(t *testing.T) {
	c := newClassifier(t)

	cases := []struct {
		name    string
		weekday time.Weekday
		hour    int
		want    string
	}{
		{"friday late night", time.Friday, 23, tariff.BandWeekendNight},
		{"saturday late night", time.Saturday, 22, tariff.BandWeekendNight},
		{"sunday small hours", time.Sunday, 3, tariff.BandWeekendNight},
		{"saturday morning", time.Saturday, 10, tariff.BandNightWeekend},
		{"sunday afternoon", time.Sunday, 15, tariff.BandNightWeekend},
		{"tuesday early", time.Tuesday, 5, tariff.BandNightWeekend},
		{"wednesday evening", time.Wednesday, 21, tariff.BandNightWeekend},
		{"tuesday midday", time.Tuesday, 14, tariff.BandStandardDay},
		{"monday morning", time.Monday, 9, tariff.BandStandardDay},
	}
	for _, c2 := range cases {
		t.Run(c2.name, func(t *testing.T) {
			band := c.Classify(at(c2.weekday, c2.hour), tariff.Standard)
			if band.Name != c2.want {
				t.Errorf("%s %02d:30 = %s, want %s", c2.weekday, c2.hour, band.Name, c2.want)
			}
		})
	}
}

func TestClassify_MondaySmallHoursStayOnDayBand(t *testing.T) {
	// Monday 00:00-06:00 charges the day band. The tarification sheet
	// arguably wants T2 there; the meter disagrees and the meter wins.
	c := newClassifier(t)
	for hour := 0; hour < 6; hour++ {
		band := c.Classify(at(time.Monday, hour), tariff.Standard)
		if band.Name != tariff.BandStandardDay {
			t.Errorf("Monday %02d:30 = %s, want %s", hour, band.Name, tariff.BandStandardDay)
		}
	}
	// 06:00-07:00 joins the other weekdays on T2.
	if band := c.Classify(at(time.Monday, 6), tariff.Standard); band.Name != tariff.BandNightWeekend {
		t.Errorf("Monday 06:30 = %s, want %s", band.Name, tariff.BandNightWeekend)
	}
}

func TestClassify_WeekendSixToSevenGap(t *testing.T) {
	// Sat/Sun 06:00-07:00 is covered by neither weekend rule and falls to
	// the default band. Matches the meter, left as-is.
	c := newClassifier(t)
	for _, wd := range []time.Weekday{time.Saturday, time.Sunday} {
		if band := c.Classify(at(wd, 6), tariff.Standard); band.Name != tariff.BandStandardDay {
			t.Errorf("%s 06:30 = %s, want %s", wd, band.Name, tariff.BandStandardDay)
		}
	}
}

// =============================================================================
// AIRPORT SCHEDULE
// =============================================================================

func TestClassify_AirportScenarios(t *testing.T) {
	c := newClassifier(t)

	cases := []struct {
		name    string
		weekday time.Weekday
		hour    int
		want    string
	}{
		{"saturday morning is night band regardless of hour", time.Saturday, 10, tariff.BandAirportNights},
		{"sunday midday", time.Sunday, 12, tariff.BandAirportNights},
		{"tuesday early", time.Tuesday, 6, tariff.BandAirportNights},
		{"thursday evening", time.Thursday, 21, tariff.BandAirportNights},
		{"tuesday midday", time.Tuesday, 10, tariff.BandAirportDay},
		{"friday afternoon", time.Friday, 15, tariff.BandAirportDay},
	}
	for _, c2 := range cases {
		t.Run(c2.name, func(t *testing.T) {
			band := c.Classify(at(c2.weekday, c2.hour), tariff.Airport)
			if band.Name != c2.want {
				t.Errorf("%s %02d:30 = %s, want %s", c2.weekday, c2.hour, band.Name, c2.want)
			}
		})
	}
}

// =============================================================================
// TOTALITY
// =============================================================================

func TestClassify_TotalOverFullWeekGrid(t *testing.T) {
	// Every (weekday, hour) pair must resolve to exactly one band on both
	// schedules, and that band must belong to the right schedule.
	c := newClassifier(t)

	standardBands := map[string]bool{
		tariff.BandStandardDay: true, tariff.BandNightWeekend: true, tariff.BandWeekendNight: true,
	}
	airportBands := map[string]bool{
		tariff.BandAirportDay: true, tariff.BandAirportNights: true,
	}

	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		for hour := 0; hour < 24; hour++ {
			std := c.Classify(at(wd, hour), tariff.Standard)
			if !standardBands[std.Name] {
				t.Fatalf("standard %s %02d:00 = %q, not a standard band", wd, hour, std.Name)
			}
			if !std.Rate.IsPositive() {
				t.Fatalf("standard %s %02d:00 has no rate", wd, hour)
			}

			air := c.Classify(at(wd, hour), tariff.Airport)
			if !airportBands[air.Name] {
				t.Fatalf("airport %s %02d:00 = %q, not an airport band", wd, hour, air.Name)
			}
		}
	}
}

func TestClassify_PureOverRepeatedCalls(t *testing.T) {
	c := newClassifier(t)
	instant := at(time.Friday, 22)
	first := c.Classify(instant, tariff.Standard)
	second := c.Classify(instant, tariff.Standard)
	if first != second {
		t.Errorf("same instant classified differently: %v then %v", first, second)
	}
}

// =============================================================================
// RATE TABLE
// =============================================================================

func TestParseRateTable_OverridesAndDefaults(t *testing.T) {
	table, err := tariff.ParseRateTable(map[string]string{
		tariff.BandWeekendNight: "6.20",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if table.Rate(tariff.BandWeekendNight).String() != "6.2" {
		t.Errorf("override not applied: %s", table.Rate(tariff.BandWeekendNight))
	}
	if !table.Rate(tariff.BandStandardDay).IsPositive() {
		t.Error("unlisted bands must keep their defaults")
	}
}

func TestParseRateTable_NonNumericIsConfigError(t *testing.T) {
	_, err := tariff.ParseRateTable(map[string]string{
		tariff.BandStandardDay: "three euros",
	})
	if err == nil {
		t.Fatal("expected error for non-numeric rate")
	}
	if !errors.Is(err, temporal.ErrInvalidConfig) {
		t.Errorf("error %v must unwrap to ErrInvalidConfig", err)
	}
}

// =============================================================================
// CLOCK WINDOWS
// =============================================================================

func TestClockWindow_HalfOpenHours(t *testing.T) {
	w := tariff.ClockWindow{Days: tariff.On(time.Friday), HourStart: 22, HourEnd: 24}

	if !w.Contains(time.Friday, 22) {
		t.Error("start hour is inclusive")
	}
	if !w.Contains(time.Friday, 23) {
		t.Error("hour inside the window")
	}
	if w.Contains(time.Friday, 21) {
		t.Error("hour before the window")
	}
	if w.Contains(time.Saturday, 22) {
		t.Error("day outside the set")
	}
}

func TestDaySet_Membership(t *testing.T) {
	wd := tariff.Weekdays()
	if wd.Has(time.Saturday) || wd.Has(time.Sunday) {
		t.Error("Weekdays must exclude the weekend")
	}
	if !wd.Has(time.Monday) || !wd.Has(time.Friday) {
		t.Error("Weekdays must include Monday..Friday")
	}
	if ed := tariff.EveryDay(); !ed.Has(time.Sunday) || !ed.Has(time.Wednesday) {
		t.Error("EveryDay must include all weekdays")
	}
}
