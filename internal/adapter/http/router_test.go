package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/iho/gobooks/internal/adapter/http/dto"
	"github.com/iho/gobooks/internal/adapter/http/handler"
	"github.com/iho/gobooks/internal/adapter/repository/memory"
	"github.com/iho/gobooks/internal/blueprint"
	"github.com/iho/gobooks/internal/domain"
	"github.com/iho/gobooks/internal/infrastructure/metrics"
	"github.com/iho/gobooks/internal/report"
)

var (
	routerMetrics *metrics.Metrics
	metricsOnce   sync.Once
)

// newTestServer wires the full HTTP stack against the in-memory store.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	metricsOnce.Do(func() { routerMetrics = metrics.New() })

	store := memory.NewStore()
	chart := domain.DefaultChart()
	library := blueprint.StandardLibrary()
	ids := &ulidLikeIDs{}
	logger := zerolog.Nop()

	router := NewRouter(RouterConfig{
		LedgerHandler: handler.NewLedgerHandler(store, ids),
		CommitHandler: handler.NewCommitHandler(library, chart, store, store, ids, nil, routerMetrics, logger),
		ReportHandler: handler.NewReportHandler(report.NewBuilder(chart, store), chart, nil, routerMetrics, logger),
		HealthHandler: handler.NewHealthHandler(nil, nil),
		Logger:        logger,
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

type ulidLikeIDs struct {
	mu sync.Mutex
	n  int
}

func (s *ulidLikeIDs) Generate() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("id-%03d", s.n)
}

func TestRouterHealthEndpoints(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/health", "/ready", "/metrics"} {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err, path)
		require.Equal(t, http.StatusOK, resp.StatusCode, path)
		resp.Body.Close()
	}
}

func TestRouterLedgerLifecycle(t *testing.T) {
	srv := newTestServer(t)

	body, _ := json.Marshal(dto.CreateLedgerRequest{Name: "Main", XID: "main"})
	resp, err := http.Post(srv.URL+"/api/v1/ledgers", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created dto.LedgerResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	require.Equal(t, "main", created.XID)

	resp, err = http.Get(srv.URL + "/api/v1/ledgers/" + created.ID)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Post(srv.URL+"/api/v1/ledgers/"+created.ID+"/lock", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var locked dto.LedgerResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&locked))
	require.True(t, locked.Locked)

	// Commits against a locked ledger are refused.
	commit, _ := json.Marshal(dto.CommitRequest{
		Entries: []dto.CommitEntry{
			{LedgerXID: "main", Blueprint: "cash-sale", Args: map[string]string{"amount": "10.00"}},
		},
	})
	resp, err = http.Post(srv.URL+"/api/v1/commit", "application/json", bytes.NewReader(commit))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestRouterCommitAndReport(t *testing.T) {
	srv := newTestServer(t)

	commit, _ := json.Marshal(dto.CommitRequest{
		Post: true,
		Entries: []dto.CommitEntry{
			{LedgerXID: "books", Blueprint: "owner-investment", Args: map[string]string{"amount": "5000.00"}},
			{LedgerXID: "books", Blueprint: "cash-sale", Args: map[string]string{"amount": "1200.00"}},
			{LedgerXID: "books", Blueprint: "cash-expense", Args: map[string]string{"amount": "200.00"}},
		},
	})
	resp, err := http.Post(srv.URL+"/api/v1/commit", "application/json", bytes.NewReader(commit))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var result dto.CommitResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	require.Len(t, result.Ledgers, 1)
	require.Len(t, result.Entries, 3)

	resp, err = http.Get(srv.URL + "/api/v1/reports/balance-sheet")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var bs report.BalanceSheetStatement
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&bs))
	require.True(t, bs.Balanced())
	require.Equal(t, "6000", bs.Assets.Total.String())
}

func TestRouterBatchValidationError(t *testing.T) {
	srv := newTestServer(t)

	commit, _ := json.Marshal(dto.CommitRequest{
		Entries: []dto.CommitEntry{
			{
				LedgerXID:   "books",
				Description: "unbalanced",
				Activity:    "op",
				Lines: []dto.LineInstruction{
					{AccountCode: "1010", Amount: "500.00", TxType: "debit"},
					{AccountCode: "4010", Amount: "400.00", TxType: "credit"},
				},
			},
		},
	})
	resp, err := http.Post(srv.URL+"/api/v1/commit", "application/json", bytes.NewReader(commit))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var batch dto.BatchErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&batch))
	require.Len(t, batch.Failures, 1)

	// The rejected batch must leave no ledger behind.
	resp, err = http.Get(srv.URL + "/api/v1/ledgers")
	require.NoError(t, err)
	defer resp.Body.Close()
	var ledgers []dto.LedgerResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&ledgers))
	require.Empty(t, ledgers)
}

func TestRouterAccounts(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/v1/accounts")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var accounts []dto.AccountResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&accounts))
	require.Equal(t, domain.DefaultChart().Len(), len(accounts))
}
