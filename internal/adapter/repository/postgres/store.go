// Package postgres is the durable persistence backend. The Store implements
// the same interfaces as the in-memory store: ledger lookup for cursors,
// atomic batch appends, and the line source the report builders read from.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/gobooks/internal/blueprint"
	"github.com/iho/gobooks/internal/domain"
)

const pgErrUniqueViolation = "23505"

// Store executes all ledger persistence against a pgx pool. Batch appends
// run in a single transaction and go through the retrier so deadlocks and
// serialization failures are retried transparently.
type Store struct {
	pool    *pgxpool.Pool
	retrier *Retrier
}

// NewStore creates a Store on top of an existing pool.
func NewStore(pool *pgxpool.Pool, retrier *Retrier) *Store {
	return &Store{pool: pool, retrier: retrier}
}

// CreateLedger inserts a new ledger row.
func (s *Store) CreateLedger(ctx context.Context, ledger domain.Ledger) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO ledgers (id, name, xid, posted, locked, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		ledger.ID, ledger.Name, ledger.XID, ledger.Posted, ledger.Locked,
		timeToPgTimestamptz(ledger.CreatedAt),
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: xid %s", domain.ErrLedgerExists, ledger.XID)
	}
	return err
}

// LedgerByXID resolves a ledger by its external identifier.
func (s *Store) LedgerByXID(ctx context.Context, xid string) (domain.Ledger, error) {
	return s.scanLedger(ctx, `
		SELECT id, name, xid, posted, locked, created_at
		FROM ledgers WHERE xid = $1`, xid)
}

// LedgerByID resolves a ledger by its primary identifier.
func (s *Store) LedgerByID(ctx context.Context, id string) (domain.Ledger, error) {
	return s.scanLedger(ctx, `
		SELECT id, name, xid, posted, locked, created_at
		FROM ledgers WHERE id = $1`, id)
}

func (s *Store) scanLedger(ctx context.Context, query, arg string) (domain.Ledger, error) {
	var ledger domain.Ledger
	err := s.pool.QueryRow(ctx, query, arg).Scan(
		&ledger.ID, &ledger.Name, &ledger.XID,
		&ledger.Posted, &ledger.Locked, &ledger.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Ledger{}, fmt.Errorf("%w: %s", domain.ErrLedgerNotFound, arg)
	}
	if err != nil {
		return domain.Ledger{}, err
	}
	return ledger, nil
}

// Ledgers lists all ledgers ordered by creation time.
func (s *Store) Ledgers(ctx context.Context) ([]domain.Ledger, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, xid, posted, locked, created_at
		FROM ledgers ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Ledger
	for rows.Next() {
		var ledger domain.Ledger
		if err := rows.Scan(
			&ledger.ID, &ledger.Name, &ledger.XID,
			&ledger.Posted, &ledger.Locked, &ledger.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, ledger)
	}
	return out, rows.Err()
}

// SetLedgerLocked toggles the ledger lock flag.
func (s *Store) SetLedgerLocked(ctx context.Context, id string, locked bool) (domain.Ledger, error) {
	tag, err := s.pool.Exec(ctx, `UPDATE ledgers SET locked = $2 WHERE id = $1`, id, locked)
	if err != nil {
		return domain.Ledger{}, err
	}
	if tag.RowsAffected() == 0 {
		return domain.Ledger{}, fmt.Errorf("%w: id %s", domain.ErrLedgerNotFound, id)
	}
	return s.LedgerByID(ctx, id)
}

// AppendBatch persists created ledgers and committed entries in one
// transaction.
func (s *Store) AppendBatch(ctx context.Context, ledgers []domain.Ledger, entries []blueprint.EntryRecord) error {
	return s.retrier.Retry(ctx, func() error {
		return s.appendBatchOnce(ctx, ledgers, entries)
	})
}

func (s *Store) appendBatchOnce(ctx context.Context, ledgers []domain.Ledger, entries []blueprint.EntryRecord) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, ledger := range ledgers {
		if _, err := tx.Exec(ctx, `
			INSERT INTO ledgers (id, name, xid, posted, locked, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			ledger.ID, ledger.Name, ledger.XID, ledger.Posted, ledger.Locked,
			timeToPgTimestamptz(ledger.CreatedAt),
		); err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: xid %s", domain.ErrLedgerExists, ledger.XID)
			}
			return err
		}
	}

	batch := &pgx.Batch{}
	for _, rec := range entries {
		batch.Queue(`
			INSERT INTO journal_entries
				(id, ledger_id, ts, description, activity, entity_unit_id, posted, locked)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			rec.Entry.ID, rec.Entry.LedgerID, timeToPgTimestamptz(rec.Entry.Timestamp),
			rec.Entry.Description, string(rec.Entry.Activity), rec.Entry.EntityUnitID,
			rec.Entry.Posted, rec.Entry.Locked,
		)
		for _, line := range rec.Lines {
			batch.Queue(`
				INSERT INTO transaction_lines
					(id, journal_entry_id, account_code, amount, tx_type, description)
				VALUES ($1, $2, $3, $4, $5, $6)`,
				line.ID, line.JournalEntryID, line.AccountCode,
				decimalToNumeric(line.Amount), string(line.TxType), line.Description,
			)
		}
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %v", domain.ErrDuplicateEntry, err)
		}
		return err
	}

	return tx.Commit(ctx)
}

// FetchLines reads posted lines joined with their entry metadata, pushing
// the filter down into the query.
func (s *Store) FetchLines(ctx context.Context, filter domain.LineFilter) ([]domain.PostedLine, error) {
	query := strings.Builder{}
	query.WriteString(`
		SELECT l.id, l.journal_entry_id, l.account_code, l.amount, l.tx_type, l.description,
		       e.ledger_id, e.ts, e.activity, e.entity_unit_id
		FROM transaction_lines l
		JOIN journal_entries e ON e.id = l.journal_entry_id
		WHERE e.posted`)

	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if filter.From != nil {
		query.WriteString(" AND e.ts >= " + arg(timeToPgTimestamptz(*filter.From)))
	}
	if filter.To != nil {
		query.WriteString(" AND e.ts <= " + arg(timeToPgTimestamptz(*filter.To)))
	}
	if filter.Activity != domain.ActivityNone {
		query.WriteString(" AND e.activity = " + arg(string(filter.Activity)))
	}
	if filter.EntityUnitID != "" {
		query.WriteString(" AND e.entity_unit_id = " + arg(filter.EntityUnitID))
	}
	query.WriteString(" ORDER BY e.ts, l.id")

	rows, err := s.pool.Query(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.PostedLine
	for rows.Next() {
		var (
			line   domain.PostedLine
			amount pgtype.Numeric
			txType string
			act    string
		)
		if err := rows.Scan(
			&line.ID, &line.JournalEntryID, &line.AccountCode, &amount, &txType, &line.Description,
			&line.LedgerID, &line.Timestamp, &act, &line.EntityUnitID,
		); err != nil {
			return nil, err
		}
		line.Amount = numericToDecimal(amount)
		line.TxType = domain.TxType(txType)
		line.Activity = domain.Activity(act)
		out = append(out, line)
	}
	return out, rows.Err()
}

// EntryByID returns a stored journal entry.
func (s *Store) EntryByID(ctx context.Context, id string) (domain.JournalEntry, error) {
	var (
		entry domain.JournalEntry
		act   string
	)
	err := s.pool.QueryRow(ctx, `
		SELECT id, ledger_id, ts, description, activity, entity_unit_id, posted, locked
		FROM journal_entries WHERE id = $1`, id).Scan(
		&entry.ID, &entry.LedgerID, &entry.Timestamp, &entry.Description,
		&act, &entry.EntityUnitID, &entry.Posted, &entry.Locked,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.JournalEntry{}, fmt.Errorf("%w: %s", domain.ErrEntryNotFound, id)
	}
	if err != nil {
		return domain.JournalEntry{}, err
	}
	entry.Activity = domain.Activity(act)
	return entry, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation
}
