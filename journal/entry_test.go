package journal_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/shift-ledger/journal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestEntry_Tip(t *testing.T) {
	now := time.Date(2024, time.March, 12, 14, 0, 0, 0, time.UTC)

	cases := []struct {
		name  string
		entry journal.Entry
		want  string
	}{
		{"charged above meter", journal.Entry{At: now, Kind: journal.KindIncome, Amount: dec("11.50"), Meter: dec("10")}, "1.5"},
		{"charged equals meter", journal.Entry{At: now, Kind: journal.KindIncome, Amount: dec("10"), Meter: dec("10")}, "0"},
		{"discounted trip clamps to zero", journal.Entry{At: now, Kind: journal.KindIncome, Amount: dec("8"), Meter: dec("10")}, "0"},
		{"expense never tips", journal.Entry{At: now, Kind: journal.KindExpense, Amount: dec("20")}, "0"},
		{"shift never tips", journal.Entry{At: now, Kind: journal.KindShift}, "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.entry.Tip(); !got.Equal(dec(tc.want)) {
				t.Errorf("tip = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestEntry_Validate(t *testing.T) {
	now := time.Date(2024, time.March, 12, 14, 0, 0, 0, time.UTC)

	valid := journal.Entry{At: now, Kind: journal.KindIncome, Amount: dec("10")}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid entry rejected: %v", err)
	}

	bad := []struct {
		name  string
		entry journal.Entry
	}{
		{"zero timestamp", journal.Entry{Kind: journal.KindIncome, Amount: dec("10")}},
		{"unknown kind", journal.Entry{At: now, Kind: journal.Kind("mystery"), Amount: dec("10")}},
		{"negative amount", journal.Entry{At: now, Kind: journal.KindExpense, Amount: dec("-1")}},
	}
	for _, tc := range bad {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.entry.Validate()
			if !errors.Is(err, journal.ErrMalformedEntry) {
				t.Errorf("err = %v, want ErrMalformedEntry", err)
			}
		})
	}
}

func TestEntry_CountsAsWorked(t *testing.T) {
	now := time.Date(2024, time.March, 12, 14, 0, 0, 0, time.UTC)

	if !(journal.Entry{At: now, Kind: journal.KindIncome}).CountsAsWorked() {
		t.Error("income entry should mark a worked day")
	}
	if !(journal.Entry{At: now, Kind: journal.KindShift}).CountsAsWorked() {
		t.Error("shift entry should mark a worked day")
	}
	if (journal.Entry{At: now, Kind: journal.KindExpense}).CountsAsWorked() {
		t.Error("an expense alone is not a worked day")
	}
}
