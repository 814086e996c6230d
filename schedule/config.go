/*
config.go - Parsing of the loosely structured stored configuration

PURPOSE:
  The configuration screen stores the rotation setup as free text:

    startDate:     "DD/MM/YYYY"
    startLetter:   "A".."D"
    weekendText:   free text containing "sabado:<letters>" and
                   "domingo:<letters>" substrings
    restLetter:    "A".."D" (may be empty)

  The weekend substrings are matched accent- and case-insensitively
  ("Sábado: AC" and "sabado:ac" both work). A group that cannot be found
  falls back to the defaults: AC for Saturday, BD for Sunday.

FAILURE MODES:
  An unparseable date or unknown letter is a ConfigError (the screen shows
  "configuration unavailable"). A missing weekend group is NOT an error -
  the default pair applies.
*/
package schedule

import (
	"regexp"
	"strings"

	"github.com/warp/shift-ledger/temporal"
)

// RawRotation is the stored form of the rotation configuration, exactly as
// the configuration screen persists it.
type RawRotation struct {
	StartDate   string `json:"start_date"`
	StartLetter string `json:"start_letter"`
	WeekendText string `json:"weekend_text"`
	RestLetter  string `json:"rest_letter"`
}

var (
	saturdayGroup = regexp.MustCompile(`sabado\s*:\s*([a-dA-D]+)`)
	sundayGroup   = regexp.MustCompile(`domingo\s*:\s*([a-dA-D]+)`)

	// Spanish accented vowels folded to their plain forms before matching.
	accentFolder = strings.NewReplacer(
		"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u",
		"Á", "a", "É", "e", "Í", "i", "Ó", "o", "Ú", "u",
	)
)

// ParseRotation converts the stored text form into a RotationConfig.
// Returns a ConfigError when the date or a letter is structurally invalid.
func ParseRotation(raw RawRotation) (RotationConfig, error) {
	start, err := temporal.ParseDay(raw.StartDate)
	if err != nil {
		return RotationConfig{}, temporal.NewConfigError("startDate", raw.StartDate, "unparseable date, want DD/MM/YYYY")
	}

	startLetter, err := ParseLetter(strings.ToUpper(strings.TrimSpace(raw.StartLetter)))
	if err != nil {
		return RotationConfig{}, temporal.NewConfigError("startLetter", raw.StartLetter, "unknown rotation letter")
	}

	cfg := RotationConfig{
		StartDate:   start,
		StartLetter: startLetter,
		Weekend:     ParseWeekendPattern(raw.WeekendText),
	}

	if rest := strings.ToUpper(strings.TrimSpace(raw.RestLetter)); rest != "" {
		restLetter, err := ParseLetter(rest)
		if err != nil {
			return RotationConfig{}, temporal.NewConfigError("restLetter", raw.RestLetter, "unknown rotation letter")
		}
		cfg.RestLetter = restLetter
	}

	return cfg, nil
}

// ParseWeekendPattern extracts the saturday/domingo letter groups from the
// stored free text. Unmatched groups take the default pair.
func ParseWeekendPattern(text string) WeekendPattern {
	folded := strings.ToLower(accentFolder.Replace(text))
	pattern := DefaultWeekendPattern()

	if m := saturdayGroup.FindStringSubmatch(folded); m != nil {
		if set, err := ParseLetterSet(strings.ToUpper(m[1])); err == nil {
			pattern.Saturday = set
		}
	}
	if m := sundayGroup.FindStringSubmatch(folded); m != nil {
		if set, err := ParseLetterSet(strings.ToUpper(m[1])); err == nil {
			pattern.Sunday = set
		}
	}

	return pattern
}
