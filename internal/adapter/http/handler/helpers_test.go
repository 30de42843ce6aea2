package handler

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/iho/gobooks/internal/domain"
	"github.com/iho/gobooks/internal/infrastructure/metrics"
)

var (
	sharedMetrics *metrics.Metrics
	metricsOnce   sync.Once
)

// testMetrics returns a process-wide metrics instance; promauto registers
// against the default registry, so New may only run once per binary.
func testMetrics() *metrics.Metrics {
	metricsOnce.Do(func() { sharedMetrics = metrics.New() })
	return sharedMetrics
}

type seqIDs struct {
	mu sync.Mutex
	n  int
}

func (s *seqIDs) Generate() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("id-%03d", s.n)
}

func setChiURLParam(r *http.Request, key, value string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, &chi.Context{
		URLParams: chi.RouteParams{
			Keys:   []string{key},
			Values: []string{value},
		},
	}))
}

func nopLogger() zerolog.Logger { return zerolog.Nop() }

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatalf("parse time %s: %v", s, err)
	}
	return ts
}

type ledgerStoreStub struct {
	createFn    func(ctx context.Context, ledger domain.Ledger) error
	ledgersFn   func(ctx context.Context) ([]domain.Ledger, error)
	byIDFn      func(ctx context.Context, id string) (domain.Ledger, error)
	setLockedFn func(ctx context.Context, id string, locked bool) (domain.Ledger, error)
}

func (s *ledgerStoreStub) CreateLedger(ctx context.Context, ledger domain.Ledger) error {
	return s.createFn(ctx, ledger)
}

func (s *ledgerStoreStub) Ledgers(ctx context.Context) ([]domain.Ledger, error) {
	return s.ledgersFn(ctx)
}

func (s *ledgerStoreStub) LedgerByID(ctx context.Context, id string) (domain.Ledger, error) {
	return s.byIDFn(ctx, id)
}

func (s *ledgerStoreStub) SetLedgerLocked(ctx context.Context, id string, locked bool) (domain.Ledger, error) {
	return s.setLockedFn(ctx, id, locked)
}
