package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/gobooks/internal/adapter/http/dto"
	"github.com/iho/gobooks/internal/blueprint"
	"github.com/iho/gobooks/internal/domain"
	"github.com/iho/gobooks/internal/infrastructure/metrics"
)

// DigestInvalidator drops cached statements after a commit changes the
// underlying lines. Nil-able: a deployment without redis skips it.
type DigestInvalidator interface {
	Flush(ctx context.Context) error
}

// CommitHandler turns commit requests into cursor batches.
type CommitHandler struct {
	library  *blueprint.Library
	chart    *domain.ChartOfAccounts
	ledgers  blueprint.LedgerStore
	recorder blueprint.Recorder
	ids      blueprint.IDGenerator
	cache    DigestInvalidator
	metrics  *metrics.Metrics
	logger   zerolog.Logger
}

// NewCommitHandler creates a new CommitHandler. cache may be nil.
func NewCommitHandler(
	library *blueprint.Library,
	chart *domain.ChartOfAccounts,
	ledgers blueprint.LedgerStore,
	recorder blueprint.Recorder,
	ids blueprint.IDGenerator,
	cache DigestInvalidator,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *CommitHandler {
	return &CommitHandler{
		library:  library,
		chart:    chart,
		ledgers:  ledgers,
		recorder: recorder,
		ids:      ids,
		cache:    cache,
		metrics:  m,
		logger:   logger,
	}
}

// Commit handles POST /commit. The whole batch posts atomically; a
// validation failure returns 422 with every failing entry and persists
// nothing.
func (h *CommitHandler) Commit(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req dto.CommitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.metrics.CommitsRejected.WithLabelValues("bad_request").Inc()
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		h.metrics.CommitsRejected.WithLabelValues("bad_request").Inc()
		writeError(w, http.StatusBadRequest, "invalid request", err.Error())
		return
	}
	if req.Timestamp.IsZero() {
		req.Timestamp = time.Now().UTC()
	}

	cursor := blueprint.NewCursor(h.library, h.chart, h.ledgers, h.recorder, h.ids)
	for i := range req.Entries {
		if err := h.stageEntry(cursor, &req.Entries[i]); err != nil {
			h.metrics.CommitsRejected.WithLabelValues("staging").Inc()
			writeError(w, mapDomainError(err), "failed to stage entry", err.Error())
			return
		}
	}

	result, err := cursor.Commit(r.Context(), blueprint.CommitOptions{
		Timestamp:     req.Timestamp,
		Post:          req.Post,
		StrictLedgers: req.StrictLedgers,
	})
	if err != nil {
		var batchErr *blueprint.BatchCommitError
		if errors.As(err, &batchErr) {
			h.metrics.CommitsRejected.WithLabelValues("validation").Inc()
			writeJSON(w, http.StatusUnprocessableEntity, dto.BatchErrorFromCommit(batchErr))
			return
		}
		h.metrics.CommitsRejected.WithLabelValues("commit").Inc()
		writeError(w, mapDomainError(err), "failed to commit batch", err.Error())
		return
	}

	h.metrics.CommitsAccepted.Inc()
	h.metrics.CommitDuration.Observe(time.Since(start).Seconds())
	h.metrics.LedgersCreated.Add(float64(len(result.Ledgers)))
	h.metrics.EntriesCommitted.Add(float64(len(result.Entries)))
	for _, rec := range result.Entries {
		h.metrics.LinesCommitted.Add(float64(len(rec.Lines)))
	}

	if h.cache != nil {
		if err := h.cache.Flush(r.Context()); err != nil {
			// Stale cache entries expire on TTL anyway.
			h.logger.Warn().Err(err).Msg("digest cache flush failed after commit")
		}
	}

	h.logger.Info().
		Int("entries", len(result.Entries)).
		Int("new_ledgers", len(result.Ledgers)).
		Bool("posted", req.Post).
		Msg("batch committed")

	writeJSON(w, http.StatusCreated, dto.CommitFromResult(result))
}

// stageEntry stages one request entry, either through the library or from
// raw lines.
func (h *CommitHandler) stageEntry(cursor *blueprint.Cursor, entry *dto.CommitEntry) error {
	if entry.Blueprint != "" {
		args := make(blueprint.Args, len(entry.Args)+1)
		for k, v := range entry.Args {
			args[k] = v
		}
		if entry.EntityUnitID != "" {
			args["entity_unit"] = entry.EntityUnitID
		}
		return cursor.Dispatch(entry.Blueprint, entry.LedgerXID, args)
	}

	bp := blueprint.New(entry.Description, domain.Activity(entry.Activity))
	bp.SetEntityUnit(entry.EntityUnitID)
	for _, line := range entry.Lines {
		amount, err := decimal.NewFromString(line.Amount)
		if err != nil {
			return fmt.Errorf("%w: amount %q", blueprint.ErrInvalidArgument, line.Amount)
		}
		switch domain.TxType(line.TxType) {
		case domain.Debit:
			err = bp.Debit(line.AccountCode, amount, line.Description)
		case domain.Credit:
			err = bp.Credit(line.AccountCode, amount, line.Description)
		default:
			return domain.ErrInvalidTxType
		}
		if err != nil {
			return err
		}
	}
	return cursor.Stage(bp, entry.LedgerXID)
}
