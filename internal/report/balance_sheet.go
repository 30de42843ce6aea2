package report

import (
	"github.com/shopspring/decimal"

	"github.com/iho/gobooks/internal/domain"
)

// BalanceSheetSection is one side of the balance sheet with its current /
// non-current split and the contributing account balances.
type BalanceSheetSection struct {
	Total      decimal.Decimal  `json:"total"`
	Current    decimal.Decimal  `json:"current"`
	NonCurrent decimal.Decimal  `json:"non_current"`
	Accounts   []AccountBalance `json:"accounts"`
}

// EquitySection splits equity into contributed capital and retained
// earnings derived from the earnings role group.
type EquitySection struct {
	Total            decimal.Decimal  `json:"total"`
	Capital          decimal.Decimal  `json:"capital"`
	RetainedEarnings decimal.Decimal  `json:"retained_earnings"`
	Accounts         []AccountBalance `json:"accounts"`
}

// BalanceSheetStatement is a point-in-time snapshot over cumulative
// aggregation from ledger inception through Meta.ToDate.
type BalanceSheetStatement struct {
	Meta                   StatementMeta       `json:"meta"`
	Assets                 BalanceSheetSection `json:"assets"`
	Liabilities            BalanceSheetSection `json:"liabilities"`
	Equity                 EquitySection       `json:"equity"`
	TotalLiabilitiesEquity decimal.Decimal     `json:"total_liabilities_equity"`
}

// Balanced reports whether Assets == Liabilities + Equity, exactly.
func (s *BalanceSheetStatement) Balanced() bool {
	return s.Assets.Total.Equal(s.TotalLiabilitiesEquity)
}

// buildBalanceSheet assembles the statement from a cumulative aggregate.
func buildBalanceSheet(agg *BalanceAggregate, meta StatementMeta) *BalanceSheetStatement {
	return &BalanceSheetStatement{
		Meta: meta,
		Assets: BalanceSheetSection{
			Total:      agg.Group(domain.GroupAssets),
			Current:    agg.Group(domain.GroupCurrentAssets),
			NonCurrent: agg.Group(domain.GroupNonCurrentAssets),
			Accounts:   agg.GroupAccounts(domain.GroupAssets),
		},
		Liabilities: BalanceSheetSection{
			Total:      agg.Group(domain.GroupLiabilities),
			Current:    agg.Group(domain.GroupCurrentLiabilities),
			NonCurrent: agg.Group(domain.GroupLTLiabilities),
			Accounts:   agg.GroupAccounts(domain.GroupLiabilities),
		},
		Equity: EquitySection{
			Total:            agg.Group(domain.GroupEquity),
			Capital:          agg.Group(domain.GroupCapital),
			RetainedEarnings: agg.Group(domain.GroupEarnings),
			Accounts:         agg.GroupAccounts(domain.GroupCapital),
		},
		TotalLiabilitiesEquity: agg.Group(domain.GroupLiabilitiesEquity),
	}
}
