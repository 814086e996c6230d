/*
store.go - Persistence contract for journal entries

PURPOSE:
  Defines the interface between the logging screens / reporting engine and
  the database. The classification and aggregation packages never touch a
  Store; they receive materialized snapshots. Only the HTTP layer talks to
  a Store and hands the results down.

IMPLEMENTATIONS:
  - store/sqlite:      production SQLite store
  - journal/store:     in-memory store for tests and zero-config runs
*/
package journal

import (
	"context"
	"time"

	"github.com/warp/shift-ledger/temporal"
)

// Store persists journal entries and answers the range queries the report
// screens need.
type Store interface {
	// SaveEntry inserts or replaces an entry by ID.
	SaveEntry(ctx context.Context, e Entry) error

	// DeleteEntry removes an entry. Deleting an unknown ID is not an error.
	DeleteEntry(ctx context.Context, id string) error

	// ListEntries returns entries with At in [from, to), ordered by At.
	ListEntries(ctx context.Context, from, to time.Time) ([]Entry, error)

	// WorkedDays returns the distinct calendar days inside the period with
	// at least one income or shift entry. Reports take this as input, they
	// never recompute it.
	WorkedDays(ctx context.Context, period temporal.Period) ([]temporal.Day, error)
}
