package blueprint

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iho/gobooks/internal/domain"
)

// LedgerStore resolves and stages ledgers for the cursor. Lookup is by XID,
// the caller-facing ledger name.
type LedgerStore interface {
	LedgerByXID(ctx context.Context, xid string) (domain.Ledger, error)
}

// Recorder persists a committed batch. AppendBatch must be all-or-nothing:
// either every ledger, entry and line in the batch becomes visible or none
// do.
type Recorder interface {
	AppendBatch(ctx context.Context, ledgers []domain.Ledger, entries []EntryRecord) error
}

// IDGenerator mints identifiers for ledgers, entries and lines.
type IDGenerator interface {
	Generate() string
}

// EntryRecord pairs a journal entry with its transaction lines for
// persistence.
type EntryRecord struct {
	Entry domain.JournalEntry
	Lines []domain.TransactionLine
}

// CommitOptions controls a cursor commit.
type CommitOptions struct {
	// Timestamp stamps every created ledger and entry.
	Timestamp time.Time
	// Post marks created entries (and on-demand ledgers) as posted.
	Post bool
	// StrictLedgers disables on-demand ledger creation: dispatching against
	// an unknown ledger XID fails the commit instead.
	StrictLedgers bool
}

// CommitResult reports what a successful commit persisted.
type CommitResult struct {
	// Ledgers lists ledgers created on demand, in first-reference order.
	Ledgers []domain.Ledger
	// Entries lists the committed entries in dispatch order.
	Entries []EntryRecord
}

type dispatch struct {
	blueprintName string
	ledgerXID     string
	blueprint     *Blueprint
}

// Cursor stages blueprint dispatches and commits them as one batch. A cursor
// is single-use and not safe for concurrent use: stage from one goroutine,
// commit once.
type Cursor struct {
	library  *Library
	chart    *domain.ChartOfAccounts
	ledgers  LedgerStore
	recorder Recorder
	ids      IDGenerator

	staged    []dispatch
	committed bool
}

// NewCursor binds a cursor to its collaborators.
func NewCursor(library *Library, chart *domain.ChartOfAccounts, ledgers LedgerStore, recorder Recorder, ids IDGenerator) *Cursor {
	return &Cursor{
		library:  library,
		chart:    chart,
		ledgers:  ledgers,
		recorder: recorder,
		ids:      ids,
	}
}

// Dispatch resolves the named blueprint with args and stages its
// instructions against the ledger identified by ledgerXID. Nothing touches
// persistent state until Commit. The reserved arg "entity_unit" tags the
// resulting entry without the blueprint function's involvement.
func (c *Cursor) Dispatch(name, ledgerXID string, args Args) error {
	if c.committed {
		return ErrCursorCommitted
	}
	fn, err := c.library.Get(name)
	if err != nil {
		return err
	}
	bp, err := fn(args)
	if err != nil {
		return fmt.Errorf("blueprint %s: %w", name, err)
	}
	if unit := args.String("entity_unit"); unit != "" && bp.EntityUnit() == "" {
		bp.SetEntityUnit(unit)
	}
	c.staged = append(c.staged, dispatch{blueprintName: name, ledgerXID: ledgerXID, blueprint: bp})
	return nil
}

// Stage stages an already-built blueprint against a ledger, bypassing the
// library. Used by callers that assemble instructions directly, like the
// HTTP commit endpoint.
func (c *Cursor) Stage(bp *Blueprint, ledgerXID string) error {
	if c.committed {
		return ErrCursorCommitted
	}
	c.staged = append(c.staged, dispatch{blueprintName: "adhoc", ledgerXID: ledgerXID, blueprint: bp})
	return nil
}

// Staged returns the number of staged dispatches.
func (c *Cursor) Staged() int { return len(c.staged) }

// Commit materializes every staged dispatch into journal entries and
// transaction lines, validates each entry, and appends the whole batch
// atomically. Any validation failure aborts with a BatchCommitError listing
// every failing entry; in that case nothing is persisted and the cursor
// stays open. After a successful commit the cursor is spent and rejects
// further dispatches and commits.
func (c *Cursor) Commit(ctx context.Context, opts CommitOptions) (*CommitResult, error) {
	if c.committed {
		return nil, ErrCursorCommitted
	}

	ledgerIDs, newLedgers, err := c.resolveLedgers(ctx, opts)
	if err != nil {
		return nil, err
	}

	records := make([]EntryRecord, 0, len(c.staged))
	var batchErr BatchCommitError
	for i, d := range c.staged {
		entry := domain.JournalEntry{
			ID:           c.ids.Generate(),
			LedgerID:     ledgerIDs[d.ledgerXID],
			Timestamp:    opts.Timestamp,
			Description:  d.blueprint.Description(),
			Activity:     d.blueprint.Activity(),
			EntityUnitID: d.blueprint.EntityUnit(),
			Posted:       opts.Post,
		}
		lines := make([]domain.TransactionLine, 0, len(d.blueprint.Instructions()))
		for _, ins := range d.blueprint.Instructions() {
			lines = append(lines, domain.TransactionLine{
				ID:             c.ids.Generate(),
				JournalEntryID: entry.ID,
				AccountCode:    ins.AccountCode,
				Amount:         ins.Amount,
				TxType:         ins.TxType,
				Description:    ins.Description,
			})
		}

		if err := domain.ValidateEntry(c.chart, entry, lines); err != nil {
			batchErr.Failures = append(batchErr.Failures, EntryFailure{
				Index:       i,
				Blueprint:   d.blueprintName,
				Description: entry.Description,
				Err:         err,
			})
			continue
		}
		records = append(records, EntryRecord{Entry: entry, Lines: lines})
	}

	if len(batchErr.Failures) > 0 {
		return nil, &batchErr
	}

	if err := c.recorder.AppendBatch(ctx, newLedgers, records); err != nil {
		return nil, fmt.Errorf("append batch: %w", err)
	}

	c.committed = true
	return &CommitResult{Ledgers: newLedgers, Entries: records}, nil
}

// resolveLedgers maps every staged ledger XID to a ledger ID, creating
// missing ledgers in memory when permitted. Created ledgers are persisted
// with the batch, not here.
func (c *Cursor) resolveLedgers(ctx context.Context, opts CommitOptions) (map[string]string, []domain.Ledger, error) {
	ids := make(map[string]string)
	var created []domain.Ledger

	for _, d := range c.staged {
		if _, ok := ids[d.ledgerXID]; ok {
			continue
		}

		ledger, err := c.ledgers.LedgerByXID(ctx, d.ledgerXID)
		switch {
		case err == nil:
			if ledger.Locked {
				return nil, nil, fmt.Errorf("%w: %s", domain.ErrLedgerLocked, d.ledgerXID)
			}
			ids[d.ledgerXID] = ledger.ID

		case errors.Is(err, domain.ErrLedgerNotFound):
			if opts.StrictLedgers {
				return nil, nil, fmt.Errorf("%w: %s", domain.ErrLedgerNotFound, d.ledgerXID)
			}
			ledger = domain.Ledger{
				ID:        c.ids.Generate(),
				Name:      d.ledgerXID,
				XID:       d.ledgerXID,
				Posted:    opts.Post,
				CreatedAt: opts.Timestamp,
			}
			ids[d.ledgerXID] = ledger.ID
			created = append(created, ledger)

		default:
			return nil, nil, fmt.Errorf("resolve ledger %s: %w", d.ledgerXID, err)
		}
	}
	return ids, created, nil
}
