// Package report derives balance aggregates, financial statements and ratios
// from posted transaction lines. Everything in this package is a pure,
// read-only reduction over its inputs: aggregations never mutate the line
// collection and are safe to run concurrently with different filters.
package report

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/iho/gobooks/internal/domain"
)

// LineSource supplies posted transaction lines to the aggregation layer.
// Implementations live behind this interface so the aggregator stays
// storage-agnostic (in-memory, postgres, ...).
type LineSource interface {
	FetchLines(ctx context.Context, filter domain.LineFilter) ([]domain.PostedLine, error)
}

// StaticSource adapts an in-memory line slice to the LineSource interface.
// Filtering happens at aggregation time.
type StaticSource []domain.PostedLine

// FetchLines returns the lines matching the filter.
func (s StaticSource) FetchLines(_ context.Context, filter domain.LineFilter) ([]domain.PostedLine, error) {
	out := make([]domain.PostedLine, 0, len(s))
	for _, line := range s {
		if filter.Match(line) {
			out = append(out, line)
		}
	}
	return out, nil
}

// AccountBalance is the per-account slice of a BalanceAggregate.
type AccountBalance struct {
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Role        domain.Role     `json:"role"`
	RoleName    string          `json:"role_name"`
	BalanceType domain.TxType   `json:"balance_type"`
	Balance     decimal.Decimal `json:"balance"`
}

// BalanceAggregate holds per-account, per-role and per-group balances over a
// filtered set of lines. Balances are statement-signed: normalized against
// each role's balance sheet side, so asset balances are positive when
// debit-heavy, liability/equity/income balances positive when credit-heavy,
// and COGS/expense balances come out negative. The three maps are mutually
// reconcilable by construction.
type BalanceAggregate struct {
	ByAccount map[string]AccountBalance
	ByRole    map[domain.Role]decimal.Decimal
	ByGroup   map[domain.RoleGroup]decimal.Decimal

	// CashByActivity tracks signed cash-account contributions keyed by the
	// owning entry's activity tag. Consumed by the cash flow statement's
	// financing and investing sections.
	CashByActivity map[domain.Activity]decimal.Decimal

	Filter domain.LineFilter
}

// Account returns the aggregated balance record for an account code. Missing
// codes yield a zero balance.
func (a *BalanceAggregate) Account(code string) AccountBalance {
	return a.ByAccount[code]
}

// Role returns the aggregated balance for a role, zero if absent.
func (a *BalanceAggregate) Role(r domain.Role) decimal.Decimal {
	return a.ByRole[r]
}

// Group returns the aggregated balance for a role group, zero if absent.
func (a *BalanceAggregate) Group(g domain.RoleGroup) decimal.Decimal {
	return a.ByGroup[g]
}

// CashActivity returns the signed cash movement recorded under the given
// activity tag, zero if absent.
func (a *BalanceAggregate) CashActivity(act domain.Activity) decimal.Decimal {
	return a.CashByActivity[act]
}

// GroupAccounts returns the account balances belonging to a role group,
// sorted by account code.
func (a *BalanceAggregate) GroupAccounts(g domain.RoleGroup) []AccountBalance {
	inGroup := make(map[domain.Role]bool)
	for _, r := range domain.GroupRoles(g) {
		inGroup[r] = true
	}

	var out []AccountBalance
	for _, acc := range a.ByAccount {
		if inGroup[acc.Role] {
			out = append(out, acc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// Aggregate folds the filtered lines into a consistent balance snapshot.
// Each matching line contributes +amount when its tx type equals the
// account role's side balance type and -amount otherwise, accumulated with
// exact decimal arithmetic into all maps simultaneously. Empty input yields
// all-zero balances, not an error. The input slice is never mutated.
func Aggregate(chart *domain.ChartOfAccounts, lines []domain.PostedLine, filter domain.LineFilter) (*BalanceAggregate, error) {
	agg := &BalanceAggregate{
		ByAccount:      make(map[string]AccountBalance),
		ByRole:         make(map[domain.Role]decimal.Decimal),
		ByGroup:        make(map[domain.RoleGroup]decimal.Decimal),
		CashByActivity: make(map[domain.Activity]decimal.Decimal),
		Filter:         filter,
	}

	for _, line := range lines {
		if !filter.Match(line) {
			continue
		}

		acc, err := chart.Resolve(line.AccountCode)
		if err != nil {
			return nil, err
		}

		contribution := line.Amount
		if line.TxType != acc.Role.SideBalanceType() {
			contribution = contribution.Neg()
		}

		bal, ok := agg.ByAccount[acc.Code]
		if !ok {
			bal = AccountBalance{
				Code:        acc.Code,
				Name:        acc.Name,
				Role:        acc.Role,
				RoleName:    acc.Role.Name(),
				BalanceType: acc.Role.BalanceType(),
			}
		}
		bal.Balance = bal.Balance.Add(contribution)
		agg.ByAccount[acc.Code] = bal

		agg.ByRole[acc.Role] = agg.ByRole[acc.Role].Add(contribution)
		for _, g := range domain.GroupsOf(acc.Role) {
			agg.ByGroup[g] = agg.ByGroup[g].Add(contribution)
		}

		if acc.Role == domain.AssetCACash {
			agg.CashByActivity[line.Activity] = agg.CashByActivity[line.Activity].Add(contribution)
		}
	}

	return agg, nil
}

// AggregateSource fetches lines through the source and aggregates them.
func AggregateSource(ctx context.Context, chart *domain.ChartOfAccounts, source LineSource, filter domain.LineFilter) (*BalanceAggregate, error) {
	lines, err := source.FetchLines(ctx, filter)
	if err != nil {
		return nil, err
	}
	return Aggregate(chart, lines, filter)
}
