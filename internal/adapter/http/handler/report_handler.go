package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/gobooks/internal/adapter/http/dto"
	"github.com/iho/gobooks/internal/domain"
	"github.com/iho/gobooks/internal/infrastructure/metrics"
	"github.com/iho/gobooks/internal/report"
)

// DigestCache caches serialized statements. Nil-able like the invalidator.
type DigestCache interface {
	Key(kind string, meta report.StatementMeta) string
	Get(ctx context.Context, key string) (payload []byte, ok bool, err error)
	Set(ctx context.Context, key string, payload []byte) error
}

// ReportHandler serves financial statements and ratios.
type ReportHandler struct {
	builder *report.Builder
	chart   *domain.ChartOfAccounts
	cache   DigestCache
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

// NewReportHandler creates a new ReportHandler. cache may be nil.
func NewReportHandler(builder *report.Builder, chart *domain.ChartOfAccounts, cache DigestCache, m *metrics.Metrics, logger zerolog.Logger) *ReportHandler {
	return &ReportHandler{
		builder: builder,
		chart:   chart,
		cache:   cache,
		metrics: m,
		logger:  logger,
	}
}

// Accounts handles GET /accounts, listing the chart of accounts.
func (h *ReportHandler) Accounts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.AccountsFromChart(h.chart))
}

// BalanceSheet handles GET /reports/balance-sheet?as_of=...&unit=...
// as_of defaults to now.
func (h *ReportHandler) BalanceSheet(w http.ResponseWriter, r *http.Request) {
	asOf, ok, err := parseTimeQuery(r, "as_of")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid query", err.Error())
		return
	}
	if !ok {
		asOf = time.Now().UTC()
	}
	scope := report.Scope{EntityUnitID: r.URL.Query().Get("unit")}

	meta := report.StatementMeta{ToDate: asOf, EntityUnitID: scope.EntityUnitID}
	h.serve(w, r, "balance_sheet", meta, func(ctx context.Context) (any, error) {
		return h.builder.BalanceSheet(ctx, asOf, scope)
	})
}

// IncomeStatement handles GET /reports/income-statement?from=...&to=...
func (h *ReportHandler) IncomeStatement(w http.ResponseWriter, r *http.Request) {
	h.servePeriod(w, r, "income_statement", func(ctx context.Context, from, to time.Time, scope report.Scope) (any, error) {
		return h.builder.IncomeStatement(ctx, from, to, scope)
	})
}

// CashFlow handles GET /reports/cash-flow?from=...&to=...
func (h *ReportHandler) CashFlow(w http.ResponseWriter, r *http.Request) {
	h.servePeriod(w, r, "cash_flow", func(ctx context.Context, from, to time.Time, scope report.Scope) (any, error) {
		return h.builder.CashFlow(ctx, from, to, scope)
	})
}

// Ratios handles GET /reports/ratios?from=...&to=...
func (h *ReportHandler) Ratios(w http.ResponseWriter, r *http.Request) {
	h.servePeriod(w, r, "ratios", func(ctx context.Context, from, to time.Time, scope report.Scope) (any, error) {
		return h.builder.Ratios(ctx, from, to, scope)
	})
}

// FinancialStatements handles GET /reports/financial-statements, bundling
// all statements for one period.
func (h *ReportHandler) FinancialStatements(w http.ResponseWriter, r *http.Request) {
	h.servePeriod(w, r, "financial_statements", func(ctx context.Context, from, to time.Time, scope report.Scope) (any, error) {
		return h.builder.FinancialStatements(ctx, from, to, scope)
	})
}

func (h *ReportHandler) servePeriod(w http.ResponseWriter, r *http.Request, kind string, build func(context.Context, time.Time, time.Time, report.Scope) (any, error)) {
	from, ok, err := parseTimeQuery(r, "from")
	if err != nil || !ok {
		writeError(w, http.StatusBadRequest, "invalid query", "from is required (RFC3339 or YYYY-MM-DD)")
		return
	}
	to, ok, err := parseTimeQuery(r, "to")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid query", err.Error())
		return
	}
	if !ok {
		to = time.Now().UTC()
	}
	if to.Before(from) {
		writeError(w, http.StatusBadRequest, "invalid query", "to precedes from")
		return
	}
	scope := report.Scope{EntityUnitID: r.URL.Query().Get("unit")}

	meta := report.StatementMeta{FromDate: &from, ToDate: to, EntityUnitID: scope.EntityUnitID}
	h.serve(w, r, kind, meta, func(ctx context.Context) (any, error) {
		return build(ctx, from, to, scope)
	})
}

// serve renders one statement, going through the digest cache when
// configured.
func (h *ReportHandler) serve(w http.ResponseWriter, r *http.Request, kind string, meta report.StatementMeta, build func(context.Context) (any, error)) {
	ctx := r.Context()

	var cacheKey string
	if h.cache != nil {
		cacheKey = h.cache.Key(kind, meta)
		payload, ok, err := h.cache.Get(ctx, cacheKey)
		if err != nil {
			h.logger.Warn().Err(err).Str("kind", kind).Msg("digest cache read failed")
		} else if ok {
			h.metrics.DigestCacheHits.WithLabelValues("hit").Inc()
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-Digest-Cache", "hit")
			w.WriteHeader(http.StatusOK)
			w.Write(payload)
			return
		}
		h.metrics.DigestCacheHits.WithLabelValues("miss").Inc()
	}

	start := time.Now()
	stmt, err := build(ctx)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to build report", err.Error())
		return
	}
	h.metrics.ReportsBuilt.WithLabelValues(kind).Inc()
	h.metrics.ReportDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())

	payload, err := json.Marshal(stmt)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to encode report", err.Error())
		return
	}
	if h.cache != nil {
		if err := h.cache.Set(ctx, cacheKey, payload); err != nil {
			h.logger.Warn().Err(err).Str("kind", kind).Msg("digest cache write failed")
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(payload)
}
