package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iho/gobooks/internal/adapter/http/dto"
	"github.com/iho/gobooks/internal/domain"
)

// LedgerStore is the persistence surface the ledger endpoints need.
type LedgerStore interface {
	CreateLedger(ctx context.Context, ledger domain.Ledger) error
	Ledgers(ctx context.Context) ([]domain.Ledger, error)
	LedgerByID(ctx context.Context, id string) (domain.Ledger, error)
	SetLedgerLocked(ctx context.Context, id string, locked bool) (domain.Ledger, error)
}

// IDGenerator mints ledger identifiers.
type IDGenerator interface {
	Generate() string
}

// LedgerHandler handles ledger management requests.
type LedgerHandler struct {
	store LedgerStore
	ids   IDGenerator
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(store LedgerStore, ids IDGenerator) *LedgerHandler {
	return &LedgerHandler{store: store, ids: ids}
}

// Create handles POST /ledgers.
func (h *LedgerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateLedgerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request", err.Error())
		return
	}

	ledger := domain.Ledger{
		ID:        h.ids.Generate(),
		Name:      req.Name,
		XID:       req.XID,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.store.CreateLedger(r.Context(), ledger); err != nil {
		writeError(w, mapDomainError(err), "failed to create ledger", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.LedgerFromDomain(ledger))
}

// List handles GET /ledgers.
func (h *LedgerHandler) List(w http.ResponseWriter, r *http.Request) {
	ledgers, err := h.store.Ledgers(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list ledgers", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, dto.LedgersFromDomain(ledgers))
}

// Get handles GET /ledgers/{id}.
func (h *LedgerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ledger, err := h.store.LedgerByID(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get ledger", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, dto.LedgerFromDomain(ledger))
}

// Lock handles POST /ledgers/{id}/lock.
func (h *LedgerHandler) Lock(w http.ResponseWriter, r *http.Request) {
	h.setLocked(w, r, true)
}

// Unlock handles POST /ledgers/{id}/unlock.
func (h *LedgerHandler) Unlock(w http.ResponseWriter, r *http.Request) {
	h.setLocked(w, r, false)
}

func (h *LedgerHandler) setLocked(w http.ResponseWriter, r *http.Request, locked bool) {
	id := chi.URLParam(r, "id")
	ledger, err := h.store.SetLedgerLocked(r.Context(), id, locked)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update ledger lock", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, dto.LedgerFromDomain(ledger))
}
