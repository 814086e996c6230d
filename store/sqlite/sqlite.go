/*
Package sqlite is the SQLite-backed data-access collaborator.

PURPOSE:
  Owns everything the classification and reporting core deliberately does
  not: persistence of journal entries, the stored rotation configuration
  text, the exception rows, and the editable tariff rates, plus the
  process-wide cache of the rotation configuration. The core packages
  receive immutable snapshots loaded here and never reach into storage
  themselves.

INTERFACES IMPLEMENTED:
  journal.Store: entry persistence and worked-day derivation
  api.Store:     the full collaborator surface for the HTTP layer

KEY TABLES:
  entries:    journal entries (income, expense, shift)
  exceptions: rotation overrides, collection order preserved via position
  settings:   key/value rows for the rotation configuration text
  rates:      band name -> stored rate value

CONFIG CACHE:
  The rotation text is read once and cached; SaveRotationConfig
  invalidates. The parsed form stays out of the cache on purpose - parsing
  is pure and cheap, and the stored text is the source of truth the
  configuration screen edits.

CONCURRENCY:
  sync.RWMutex around the cache; SQLite opened with WAL for concurrent
  readers. Use ":memory:" for tests.
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/warp/shift-ledger/journal"
	"github.com/warp/shift-ledger/schedule"
	"github.com/warp/shift-ledger/temporal"
)

// Store implements the collaborator interfaces on SQLite.
type Store struct {
	db *sql.DB

	mu            sync.RWMutex
	rotationCache *schedule.RawRotation
	rotationOK    bool // cache holds a definitive answer (possibly "absent")
}

// New opens (or creates) the database at dbPath and migrates the schema.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS entries (
		id TEXT PRIMARY KEY,
		at TEXT NOT NULL,
		kind TEXT NOT NULL,
		amount TEXT NOT NULL,
		meter TEXT NOT NULL DEFAULT '0',
		payment TEXT,
		airport INTEGER NOT NULL DEFAULT 0,
		dispatch INTEGER NOT NULL DEFAULT 0,
		note TEXT,
		created_at TEXT NOT NULL
	);

	-- Range scans are the hot path: every report loads a window of entries.
	CREATE INDEX IF NOT EXISTS idx_entries_at ON entries(at);
	CREATE INDEX IF NOT EXISTS idx_entries_kind_at ON entries(kind, at);

	-- Exceptions keep their collection order in "position": the overlay is
	-- first-match-wins in the order the rows were entered.
	CREATE TABLE IF NOT EXISTS exceptions (
		id TEXT PRIMARY KEY,
		position INTEGER NOT NULL,
		date_from TEXT NOT NULL,
		date_to TEXT NOT NULL,
		kind TEXT NOT NULL,
		letter TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_exceptions_position ON exceptions(position);

	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS rates (
		band TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// JOURNAL ENTRIES (journal.Store)
// =============================================================================

// SaveEntry inserts or replaces an entry by ID.
func (s *Store) SaveEntry(ctx context.Context, e journal.Entry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO entries (id, at, kind, amount, meter, payment, airport, dispatch, note, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			at = excluded.at, kind = excluded.kind, amount = excluded.amount,
			meter = excluded.meter, payment = excluded.payment,
			airport = excluded.airport, dispatch = excluded.dispatch,
			note = excluded.note`,
		e.ID, e.At.UTC().Format(time.RFC3339), string(e.Kind),
		e.Amount.String(), e.Meter.String(), string(e.Payment),
		boolToInt(e.Airport), boolToInt(e.Dispatch), e.Note,
		e.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save entry %s: %w", e.ID, err)
	}
	return nil
}

// DeleteEntry removes an entry; unknown IDs are a no-op.
func (s *Store) DeleteEntry(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM entries WHERE id = ?`, id)
	return err
}

// ListEntries returns entries with At in [from, to), ordered by At.
func (s *Store) ListEntries(ctx context.Context, from, to time.Time) ([]journal.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, at, kind, amount, meter, payment, airport, dispatch, note, created_at
		FROM entries
		WHERE at >= ? AND at < ?
		ORDER BY at`,
		from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var entries []journal.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// WorkedDays returns the distinct calendar days in the period carrying at
// least one income or shift entry.
func (s *Store) WorkedDays(ctx context.Context, period temporal.Period) ([]temporal.Day, error) {
	from := period.Start.Time()
	to := period.End.AddDays(1).Time()
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT DATE(at) FROM entries
		WHERE kind IN (?, ?) AND at >= ? AND at < ?
		ORDER BY DATE(at)`,
		string(journal.KindIncome), string(journal.KindShift),
		from.Format(time.RFC3339), to.Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("worked days: %w", err)
	}
	defer rows.Close()

	var days []temporal.Day
	for rows.Next() {
		var ds string
		if err := rows.Scan(&ds); err != nil {
			return nil, err
		}
		t, err := time.Parse("2006-01-02", ds)
		if err != nil {
			return nil, fmt.Errorf("worked days: bad date %q: %w", ds, err)
		}
		days = append(days, temporal.DayOf(t))
	}
	return days, rows.Err()
}

func scanEntry(rows *sql.Rows) (journal.Entry, error) {
	var (
		e                      journal.Entry
		at, amount, meter, createdAt string
		kind, payment, note    string
		airport, dispatch      int
	)
	if err := rows.Scan(&e.ID, &at, &kind, &amount, &meter, &payment, &airport, &dispatch, &note, &createdAt); err != nil {
		return journal.Entry{}, fmt.Errorf("scan entry: %w", err)
	}

	atTime, err := time.Parse(time.RFC3339, at)
	if err != nil {
		return journal.Entry{}, fmt.Errorf("scan entry: bad timestamp %q: %w", at, err)
	}
	e.At = atTime
	if created, err := time.Parse(time.RFC3339, createdAt); err == nil {
		e.CreatedAt = created
	}

	e.Kind = journal.Kind(kind)
	e.Payment = journal.PaymentMethod(payment)
	e.Airport = airport != 0
	e.Dispatch = dispatch != 0
	e.Note = note

	if e.Amount, err = decimal.NewFromString(amount); err != nil {
		return journal.Entry{}, fmt.Errorf("scan entry: bad amount %q: %w", amount, err)
	}
	if e.Meter, err = decimal.NewFromString(meter); err != nil {
		return journal.Entry{}, fmt.Errorf("scan entry: bad meter %q: %w", meter, err)
	}
	return e, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// =============================================================================
// ROTATION CONFIGURATION
// =============================================================================

const (
	settingStartDate   = "rotation.start_date"
	settingStartLetter = "rotation.start_letter"
	settingWeekendText = "rotation.weekend_text"
	settingRestLetter  = "rotation.rest_letter"
)

// RotationConfig returns the stored rotation text, nil when none has been
// configured. Cached after the first read.
func (s *Store) RotationConfig(ctx context.Context) (*schedule.RawRotation, error) {
	s.mu.RLock()
	if s.rotationOK {
		cached := s.rotationCache
		s.mu.RUnlock()
		if cached == nil {
			return nil, nil
		}
		raw := *cached
		return &raw, nil
	}
	s.mu.RUnlock()

	settings, err := s.loadSettings(ctx)
	if err != nil {
		return nil, err
	}

	var raw *schedule.RawRotation
	if _, present := settings[settingStartDate]; present {
		raw = &schedule.RawRotation{
			StartDate:   settings[settingStartDate],
			StartLetter: settings[settingStartLetter],
			WeekendText: settings[settingWeekendText],
			RestLetter:  settings[settingRestLetter],
		}
	}

	s.mu.Lock()
	s.rotationCache = raw
	s.rotationOK = true
	s.mu.Unlock()

	if raw == nil {
		return nil, nil
	}
	out := *raw
	return &out, nil
}

// SaveRotationConfig persists the rotation text and invalidates the cache.
func (s *Store) SaveRotationConfig(ctx context.Context, raw schedule.RawRotation) error {
	pairs := map[string]string{
		settingStartDate:   raw.StartDate,
		settingStartLetter: raw.StartLetter,
		settingWeekendText: raw.WeekendText,
		settingRestLetter:  raw.RestLetter,
	}
	for key, value := range pairs {
		if _, err := s.db.ExecContext(ctx, `
			INSERT INTO settings (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
			key, value,
		); err != nil {
			return fmt.Errorf("save rotation config: %w", err)
		}
	}

	s.mu.Lock()
	s.rotationCache = nil
	s.rotationOK = false
	s.mu.Unlock()
	return nil
}

func (s *Store) loadSettings(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM settings`)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	defer rows.Close()

	settings := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		settings[k] = v
	}
	return settings, rows.Err()
}

// =============================================================================
// EXCEPTIONS
// =============================================================================

// Exceptions returns the stored exception rows in collection order.
func (s *Store) Exceptions(ctx context.Context) ([]schedule.RawException, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, date_from, date_to, kind, letter
		FROM exceptions ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("list exceptions: %w", err)
	}
	defer rows.Close()

	var out []schedule.RawException
	for rows.Next() {
		var raw schedule.RawException
		if err := rows.Scan(&raw.ID, &raw.DateFrom, &raw.DateTo, &raw.Kind, &raw.Letter); err != nil {
			return nil, err
		}
		out = append(out, raw)
	}
	return out, rows.Err()
}

// SaveException inserts a row at the end of the collection order, or
// updates an existing row in place keeping its position.
func (s *Store) SaveException(ctx context.Context, raw schedule.RawException) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO exceptions (id, position, date_from, date_to, kind, letter)
		VALUES (?, (SELECT COALESCE(MAX(position), 0) + 1 FROM exceptions), ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			date_from = excluded.date_from, date_to = excluded.date_to,
			kind = excluded.kind, letter = excluded.letter`,
		raw.ID, raw.DateFrom, raw.DateTo, raw.Kind, raw.Letter,
	)
	if err != nil {
		return fmt.Errorf("save exception %s: %w", raw.ID, err)
	}
	return nil
}

// DeleteException removes a row; unknown IDs are a no-op.
func (s *Store) DeleteException(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM exceptions WHERE id = ?`, id)
	return err
}

// =============================================================================
// RATES
// =============================================================================

// Rates returns the stored band -> value mapping, exactly as entered.
// Validation happens in tariff.ParseRateTable, not here.
func (s *Store) Rates(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT band, value FROM rates`)
	if err != nil {
		return nil, fmt.Errorf("list rates: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var band, value string
		if err := rows.Scan(&band, &value); err != nil {
			return nil, err
		}
		out[band] = value
	}
	return out, rows.Err()
}

// SaveRates upserts the given band values.
func (s *Store) SaveRates(ctx context.Context, rates map[string]string) error {
	bands := make([]string, 0, len(rates))
	for band := range rates {
		bands = append(bands, band)
	}
	sort.Strings(bands)

	for _, band := range bands {
		if _, err := s.db.ExecContext(ctx, `
			INSERT INTO rates (band, value) VALUES (?, ?)
			ON CONFLICT(band) DO UPDATE SET value = excluded.value`,
			band, rates[band],
		); err != nil {
			return fmt.Errorf("save rate %s: %w", band, err)
		}
	}
	return nil
}
