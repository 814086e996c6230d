// Package store provides an in-memory Store implementation.
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/warp/shift-ledger/journal"
	"github.com/warp/shift-ledger/schedule"
	"github.com/warp/shift-ledger/temporal"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

// Memory holds everything the SQLite store holds, in maps. Safe for
// concurrent use.
type Memory struct {
	mu         sync.RWMutex
	entries    map[string]journal.Entry
	exceptions []schedule.RawException
	rotation   *schedule.RawRotation
	rates      map[string]string
}

func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]journal.Entry),
		rates:   make(map[string]string),
	}
}

// -----------------------------------------------------------------------------
// journal.Store
// -----------------------------------------------------------------------------

func (m *Memory) SaveEntry(_ context.Context, e journal.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[e.ID] = e
	return nil
}

func (m *Memory) DeleteEntry(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, id)
	return nil
}

func (m *Memory) ListEntries(_ context.Context, from, to time.Time) ([]journal.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []journal.Entry
	for _, e := range m.entries {
		if !e.At.Before(from) && e.At.Before(to) {
			result = append(result, e)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].At.Before(result[j].At) })
	return result, nil
}

func (m *Memory) WorkedDays(_ context.Context, period temporal.Period) ([]temporal.Day, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	seen := make(map[temporal.Day]bool)
	for _, e := range m.entries {
		if !e.CountsAsWorked() {
			continue
		}
		d := temporal.DayOf(e.At)
		if period.Contains(d) {
			seen[d] = true
		}
	}

	days := make([]temporal.Day, 0, len(seen))
	for d := range seen {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days, nil
}

// -----------------------------------------------------------------------------
// Configuration
// -----------------------------------------------------------------------------

func (m *Memory) RotationConfig(_ context.Context) (*schedule.RawRotation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.rotation == nil {
		return nil, nil
	}
	raw := *m.rotation
	return &raw, nil
}

func (m *Memory) SaveRotationConfig(_ context.Context, raw schedule.RawRotation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rotation = &raw
	return nil
}

func (m *Memory) Exceptions(_ context.Context) ([]schedule.RawException, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]schedule.RawException, len(m.exceptions))
	copy(out, m.exceptions)
	return out, nil
}

func (m *Memory) SaveException(_ context.Context, raw schedule.RawException) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, e := range m.exceptions {
		if e.ID == raw.ID {
			m.exceptions[i] = raw
			return nil
		}
	}
	m.exceptions = append(m.exceptions, raw)
	return nil
}

func (m *Memory) DeleteException(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, e := range m.exceptions {
		if e.ID == id {
			m.exceptions = append(m.exceptions[:i], m.exceptions[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *Memory) Rates(_ context.Context) (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]string, len(m.rates))
	for k, v := range m.rates {
		out[k] = v
	}
	return out, nil
}

func (m *Memory) SaveRates(_ context.Context, rates map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, v := range rates {
		m.rates[k] = v
	}
	return nil
}
