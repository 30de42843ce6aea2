// Package memory is the zero-dependency persistence backend. It implements
// every store interface the engine needs and backs the test suites plus the
// server when no database is configured.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/iho/gobooks/internal/blueprint"
	"github.com/iho/gobooks/internal/domain"
)

// Store keeps ledgers, journal entries and transaction lines in process
// memory. All methods are safe for concurrent use; AppendBatch is atomic
// under the store mutex.
type Store struct {
	mu sync.RWMutex

	ledgersByID  map[string]domain.Ledger
	ledgersByXID map[string]string
	entriesByID  map[string]domain.JournalEntry
	lines        []storedLine
}

// storedLine carries the entry's posted flag alongside the line. Lines of
// unposted entries are kept but excluded from FetchLines, matching the
// posted predicate in the database backend's query.
type storedLine struct {
	domain.PostedLine

	posted bool
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		ledgersByID:  make(map[string]domain.Ledger),
		ledgersByXID: make(map[string]string),
		entriesByID:  make(map[string]domain.JournalEntry),
	}
}

// CreateLedger registers a new ledger. The XID must be unique.
func (s *Store) CreateLedger(_ context.Context, ledger domain.Ledger) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createLedgerLocked(ledger)
}

func (s *Store) createLedgerLocked(ledger domain.Ledger) error {
	if _, ok := s.ledgersByXID[ledger.XID]; ok {
		return fmt.Errorf("%w: xid %s", domain.ErrLedgerExists, ledger.XID)
	}
	if _, ok := s.ledgersByID[ledger.ID]; ok {
		return fmt.Errorf("%w: id %s", domain.ErrLedgerExists, ledger.ID)
	}
	s.ledgersByID[ledger.ID] = ledger
	s.ledgersByXID[ledger.XID] = ledger.ID
	return nil
}

// LedgerByXID resolves a ledger by its external identifier.
func (s *Store) LedgerByXID(_ context.Context, xid string) (domain.Ledger, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.ledgersByXID[xid]
	if !ok {
		return domain.Ledger{}, fmt.Errorf("%w: xid %s", domain.ErrLedgerNotFound, xid)
	}
	return s.ledgersByID[id], nil
}

// LedgerByID resolves a ledger by its primary identifier.
func (s *Store) LedgerByID(_ context.Context, id string) (domain.Ledger, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ledger, ok := s.ledgersByID[id]
	if !ok {
		return domain.Ledger{}, fmt.Errorf("%w: id %s", domain.ErrLedgerNotFound, id)
	}
	return ledger, nil
}

// Ledgers lists every ledger sorted by creation time, then ID.
func (s *Store) Ledgers(_ context.Context) ([]domain.Ledger, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Ledger, 0, len(s.ledgersByID))
	for _, ledger := range s.ledgersByID {
		out = append(out, ledger)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// SetLedgerLocked toggles the ledger lock flag.
func (s *Store) SetLedgerLocked(_ context.Context, id string, locked bool) (domain.Ledger, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ledger, ok := s.ledgersByID[id]
	if !ok {
		return domain.Ledger{}, fmt.Errorf("%w: id %s", domain.ErrLedgerNotFound, id)
	}
	ledger.Locked = locked
	s.ledgersByID[id] = ledger
	return ledger, nil
}

// AppendBatch persists created ledgers and committed entries as one unit.
// On any error the store is left untouched.
func (s *Store) AppendBatch(_ context.Context, ledgers []domain.Ledger, entries []blueprint.EntryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Check everything before mutating so a failure leaves no partial batch.
	seenXID := make(map[string]bool)
	for _, ledger := range ledgers {
		if _, ok := s.ledgersByXID[ledger.XID]; ok || seenXID[ledger.XID] {
			return fmt.Errorf("%w: xid %s", domain.ErrLedgerExists, ledger.XID)
		}
		seenXID[ledger.XID] = true
	}
	batchLedgers := make(map[string]bool, len(ledgers))
	for _, ledger := range ledgers {
		batchLedgers[ledger.ID] = true
	}
	for _, rec := range entries {
		if _, ok := s.ledgersByID[rec.Entry.LedgerID]; !ok && !batchLedgers[rec.Entry.LedgerID] {
			return fmt.Errorf("%w: id %s", domain.ErrLedgerNotFound, rec.Entry.LedgerID)
		}
		if _, ok := s.entriesByID[rec.Entry.ID]; ok {
			return fmt.Errorf("%w: entry %s", domain.ErrDuplicateEntry, rec.Entry.ID)
		}
	}

	for _, ledger := range ledgers {
		s.ledgersByID[ledger.ID] = ledger
		s.ledgersByXID[ledger.XID] = ledger.ID
	}
	for _, rec := range entries {
		s.entriesByID[rec.Entry.ID] = rec.Entry
		for _, line := range rec.Lines {
			s.lines = append(s.lines, storedLine{
				PostedLine: domain.PostedLine{
					TransactionLine: line,
					LedgerID:        rec.Entry.LedgerID,
					Timestamp:       rec.Entry.Timestamp,
					Activity:        rec.Entry.Activity,
					EntityUnitID:    rec.Entry.EntityUnitID,
				},
				posted: rec.Entry.Posted,
			})
		}
	}
	return nil
}

// FetchLines returns the lines of posted entries matching the filter.
func (s *Store) FetchLines(_ context.Context, filter domain.LineFilter) ([]domain.PostedLine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.PostedLine, 0, len(s.lines))
	for _, line := range s.lines {
		if line.posted && filter.Match(line.PostedLine) {
			out = append(out, line.PostedLine)
		}
	}
	return out, nil
}

// EntryByID returns a stored journal entry.
func (s *Store) EntryByID(_ context.Context, id string) (domain.JournalEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entriesByID[id]
	if !ok {
		return domain.JournalEntry{}, fmt.Errorf("%w: entry %s", domain.ErrEntryNotFound, id)
	}
	return entry, nil
}
