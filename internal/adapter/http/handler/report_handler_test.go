package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/gobooks/internal/adapter/repository/memory"
	"github.com/iho/gobooks/internal/blueprint"
	"github.com/iho/gobooks/internal/domain"
	"github.com/iho/gobooks/internal/report"
)

type fakeDigestCache struct {
	store map[string][]byte
	gets  int
	sets  int
}

func newFakeDigestCache() *fakeDigestCache {
	return &fakeDigestCache{store: make(map[string][]byte)}
}

func (c *fakeDigestCache) Key(kind string, meta report.StatementMeta) string {
	payload, _ := json.Marshal(meta)
	return kind + ":" + string(payload)
}

func (c *fakeDigestCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.gets++
	payload, ok := c.store[key]
	return payload, ok, nil
}

func (c *fakeDigestCache) Set(_ context.Context, key string, payload []byte) error {
	c.sets++
	c.store[key] = payload
	return nil
}

// seedStore commits a small trading history: owner capital, one sale and one
// expense, all in March 2024.
func seedStore(t *testing.T, store *memory.Store) {
	t.Helper()

	chart := domain.DefaultChart()
	cursor := blueprint.NewCursor(blueprint.StandardLibrary(), chart, store, store, &seqIDs{})
	for _, d := range []struct {
		name   string
		amount string
	}{
		{"owner-investment", "10000.00"},
		{"cash-sale", "2500.00"},
		{"cash-expense", "700.00"},
	} {
		if err := cursor.Dispatch(d.name, "books", blueprint.Args{"amount": d.amount}); err != nil {
			t.Fatalf("dispatch %s: %v", d.name, err)
		}
	}
	if _, err := cursor.Commit(context.Background(), blueprint.CommitOptions{
		Timestamp: mustTime(t, "2024-03-10T00:00:00Z"),
		Post:      true,
	}); err != nil {
		t.Fatalf("commit: %v", err)
	}
}

func newReportHandler(store *memory.Store, cache DigestCache) *ReportHandler {
	chart := domain.DefaultChart()
	return NewReportHandler(report.NewBuilder(chart, store), chart, cache, testMetrics(), nopLogger())
}

func TestReportHandler_BalanceSheet(t *testing.T) {
	store := memory.NewStore()
	seedStore(t, store)
	h := newReportHandler(store, nil)

	req := httptest.NewRequest(http.MethodGet, "/reports/balance-sheet?as_of=2024-03-31", nil)
	rec := httptest.NewRecorder()
	h.BalanceSheet(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var bs report.BalanceSheetStatement
	if err := json.Unmarshal(rec.Body.Bytes(), &bs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !bs.Balanced() {
		t.Fatalf("balance sheet does not balance: %s", rec.Body.String())
	}
	if !bs.Assets.Total.Equal(decimal.NewFromInt(11800)) {
		t.Fatalf("total assets = %s, want 11800", bs.Assets.Total)
	}
}

func TestReportHandler_IncomeStatementRequiresFrom(t *testing.T) {
	h := newReportHandler(memory.NewStore(), nil)

	rec := httptest.NewRecorder()
	h.IncomeStatement(rec, httptest.NewRequest(http.MethodGet, "/reports/income-statement", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without from, got %d", rec.Code)
	}
}

func TestReportHandler_PeriodOrdering(t *testing.T) {
	h := newReportHandler(memory.NewStore(), nil)

	req := httptest.NewRequest(http.MethodGet, "/reports/cash-flow?from=2024-04-01&to=2024-03-01", nil)
	rec := httptest.NewRecorder()
	h.CashFlow(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for inverted period, got %d", rec.Code)
	}
}

func TestReportHandler_DigestCache(t *testing.T) {
	store := memory.NewStore()
	seedStore(t, store)
	cache := newFakeDigestCache()
	h := newReportHandler(store, cache)

	url := "/reports/income-statement?from=2024-03-01&to=2024-03-31"

	first := httptest.NewRecorder()
	h.IncomeStatement(first, httptest.NewRequest(http.MethodGet, url, nil))
	if first.Code != http.StatusOK {
		t.Fatalf("first request: %d: %s", first.Code, first.Body.String())
	}
	if cache.sets != 1 {
		t.Fatalf("expected one cache write, got %d", cache.sets)
	}
	if first.Header().Get("X-Digest-Cache") == "hit" {
		t.Fatalf("first request must not be a cache hit")
	}

	second := httptest.NewRecorder()
	h.IncomeStatement(second, httptest.NewRequest(http.MethodGet, url, nil))
	if second.Code != http.StatusOK {
		t.Fatalf("second request: %d", second.Code)
	}
	if second.Header().Get("X-Digest-Cache") != "hit" {
		t.Fatalf("expected cache hit on second request")
	}
	if second.Body.String() != first.Body.String() {
		t.Fatalf("cached payload differs from built payload")
	}
}

func TestReportHandler_FinancialStatements(t *testing.T) {
	store := memory.NewStore()
	seedStore(t, store)
	h := newReportHandler(store, nil)

	req := httptest.NewRequest(http.MethodGet, "/reports/financial-statements?from=2024-03-01&to=2024-03-31", nil)
	rec := httptest.NewRecorder()
	h.FinancialStatements(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var fs report.FinancialStatements
	if err := json.Unmarshal(rec.Body.Bytes(), &fs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if fs.BalanceSheet == nil || fs.IncomeStatement == nil || fs.CashFlow == nil || fs.Ratios == nil {
		t.Fatalf("expected all four digests, got %s", rec.Body.String())
	}
	if !fs.CashFlow.Reconciles() {
		t.Fatalf("cash flow does not reconcile")
	}
}

func TestReportHandler_Accounts(t *testing.T) {
	h := newReportHandler(memory.NewStore(), nil)

	rec := httptest.NewRecorder()
	h.Accounts(rec, httptest.NewRequest(http.MethodGet, "/accounts", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var accounts []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &accounts); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(accounts) != domain.DefaultChart().Len() {
		t.Fatalf("expected %d accounts, got %d", domain.DefaultChart().Len(), len(accounts))
	}
}
