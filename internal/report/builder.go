package report

import (
	"context"
	"fmt"
	"time"

	"github.com/iho/gobooks/internal/domain"
)

// Builder generates financial statements from a chart of accounts and a line
// source. A Builder is stateless and safe for concurrent use.
type Builder struct {
	chart  *domain.ChartOfAccounts
	source LineSource
}

// NewBuilder binds a chart and a line source.
func NewBuilder(chart *domain.ChartOfAccounts, source LineSource) *Builder {
	return &Builder{chart: chart, source: source}
}

// Scope narrows a statement to one entity unit. The zero value means the
// whole entity.
type Scope struct {
	EntityUnitID string
}

// BalanceSheet builds a point-in-time balance sheet as of asOf, aggregating
// cumulatively from ledger inception.
func (b *Builder) BalanceSheet(ctx context.Context, asOf time.Time, scope Scope) (*BalanceSheetStatement, error) {
	agg, err := AggregateSource(ctx, b.chart, b.source, domain.LineFilter{
		To:           &asOf,
		EntityUnitID: scope.EntityUnitID,
	})
	if err != nil {
		return nil, fmt.Errorf("balance sheet: %w", err)
	}
	return buildBalanceSheet(agg, snapshotMeta(asOf, scope.EntityUnitID)), nil
}

// IncomeStatement builds an income statement over [from, to] inclusive.
func (b *Builder) IncomeStatement(ctx context.Context, from, to time.Time, scope Scope) (*IncomeStatement, error) {
	agg, err := b.periodAggregate(ctx, from, to, scope)
	if err != nil {
		return nil, fmt.Errorf("income statement: %w", err)
	}
	return buildIncomeStatement(agg, periodMeta(from, to, scope.EntityUnitID)), nil
}

// CashFlow builds an indirect-method cash flow statement over [from, to].
// It runs three aggregations: the period flows plus the cumulative balances
// just before from and through to for working-capital deltas.
func (b *Builder) CashFlow(ctx context.Context, from, to time.Time, scope Scope) (*CashFlowStatement, error) {
	period, err := b.periodAggregate(ctx, from, to, scope)
	if err != nil {
		return nil, fmt.Errorf("cash flow: %w", err)
	}

	openTo := openingInstant(from)
	open, err := AggregateSource(ctx, b.chart, b.source, domain.LineFilter{
		To:           &openTo,
		EntityUnitID: scope.EntityUnitID,
	})
	if err != nil {
		return nil, fmt.Errorf("cash flow: opening balances: %w", err)
	}

	close, err := AggregateSource(ctx, b.chart, b.source, domain.LineFilter{
		To:           &to,
		EntityUnitID: scope.EntityUnitID,
	})
	if err != nil {
		return nil, fmt.Errorf("cash flow: closing balances: %w", err)
	}

	return buildCashFlowStatement(period, open, close, periodMeta(from, to, scope.EntityUnitID)), nil
}

// Ratios computes the full ratio set over a single [from, to] aggregate.
func (b *Builder) Ratios(ctx context.Context, from, to time.Time, scope Scope) (*RatioReport, error) {
	agg, err := b.periodAggregate(ctx, from, to, scope)
	if err != nil {
		return nil, fmt.Errorf("ratios: %w", err)
	}
	return buildRatioReport(agg, periodMeta(from, to, scope.EntityUnitID)), nil
}

// FinancialStatements bundles the three statements and the ratio report for
// one period. The balance sheet is taken as of the period end.
type FinancialStatements struct {
	BalanceSheet    *BalanceSheetStatement `json:"balance_sheet"`
	IncomeStatement *IncomeStatement       `json:"income_statement"`
	CashFlow        *CashFlowStatement     `json:"cash_flow"`
	Ratios          *RatioReport           `json:"ratios"`
}

// FinancialStatements builds all statements for [from, to] in one call.
func (b *Builder) FinancialStatements(ctx context.Context, from, to time.Time, scope Scope) (*FinancialStatements, error) {
	bs, err := b.BalanceSheet(ctx, to, scope)
	if err != nil {
		return nil, err
	}
	is, err := b.IncomeStatement(ctx, from, to, scope)
	if err != nil {
		return nil, err
	}
	cf, err := b.CashFlow(ctx, from, to, scope)
	if err != nil {
		return nil, err
	}
	ratios, err := b.Ratios(ctx, from, to, scope)
	if err != nil {
		return nil, err
	}
	return &FinancialStatements{
		BalanceSheet:    bs,
		IncomeStatement: is,
		CashFlow:        cf,
		Ratios:          ratios,
	}, nil
}

func (b *Builder) periodAggregate(ctx context.Context, from, to time.Time, scope Scope) (*BalanceAggregate, error) {
	return AggregateSource(ctx, b.chart, b.source, domain.LineFilter{
		From:         &from,
		To:           &to,
		EntityUnitID: scope.EntityUnitID,
	})
}
