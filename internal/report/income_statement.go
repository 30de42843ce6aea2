package report

import (
	"github.com/shopspring/decimal"

	"github.com/iho/gobooks/internal/domain"
)

// OperatingSection reports the usual-and-frequent portion of the income
// statement. All figures are positive magnitudes except the computed
// subtotals, which carry their natural sign.
type OperatingSection struct {
	Revenues           decimal.Decimal  `json:"revenues"`
	COGS               decimal.Decimal  `json:"cogs"`
	Expenses           decimal.Decimal  `json:"expenses"`
	GrossProfit        decimal.Decimal  `json:"gross_profit"`
	NetOperatingIncome decimal.Decimal  `json:"net_operating_income"`
	RevenueAccounts    []AccountBalance `json:"revenue_accounts"`
	COGSAccounts       []AccountBalance `json:"cogs_accounts"`
	ExpenseAccounts    []AccountBalance `json:"expense_accounts"`
}

// OtherSection reports unusual-or-infrequent revenues and expenses.
type OtherSection struct {
	Revenues        decimal.Decimal  `json:"revenues"`
	Expenses        decimal.Decimal  `json:"expenses"`
	NetOtherIncome  decimal.Decimal  `json:"net_other_income"`
	RevenueAccounts []AccountBalance `json:"revenue_accounts"`
	ExpenseAccounts []AccountBalance `json:"expense_accounts"`
}

// IncomeStatement aggregates income and expense role groups over
// [Meta.FromDate, Meta.ToDate].
type IncomeStatement struct {
	Meta      StatementMeta    `json:"meta"`
	Operating OperatingSection `json:"operating"`
	Other     OtherSection     `json:"other"`
	NetIncome decimal.Decimal  `json:"net_income"`

	// TotalIncome and TotalExpenses are positive-magnitude convenience
	// totals across both sections; NetIncome == TotalIncome - TotalExpenses.
	TotalIncome   decimal.Decimal `json:"total_income"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
}

// SignedForDisplay returns a copy with expense and COGS figures flipped to
// negative, the convention some renderers prefer. A presentation transform
// only; the computed subtotals are untouched.
func (s *IncomeStatement) SignedForDisplay() *IncomeStatement {
	out := *s
	out.Operating.COGS = s.Operating.COGS.Neg()
	out.Operating.Expenses = s.Operating.Expenses.Neg()
	out.Other.Expenses = s.Other.Expenses.Neg()
	out.TotalExpenses = s.TotalExpenses.Neg()
	return &out
}

// buildIncomeStatement assembles the statement from a period aggregate.
// Aggregate balances are statement-signed (COGS and expenses negative), so
// subtotals are plain sums and the displayed magnitudes are negations.
func buildIncomeStatement(agg *BalanceAggregate, meta StatementMeta) *IncomeStatement {
	opRevenues := agg.Group(domain.GroupICOperatingRevenues)
	opCOGS := agg.Group(domain.GroupICOperatingCOGS)
	opExpenses := agg.Group(domain.GroupICOperatingExpenses)
	otherRevenues := agg.Group(domain.GroupICOtherRevenues)
	otherExpenses := agg.Group(domain.GroupICOtherExpenses)

	netOperating := opRevenues.Add(opCOGS).Add(opExpenses)
	netOther := otherRevenues.Add(otherExpenses)

	return &IncomeStatement{
		Meta: meta,
		Operating: OperatingSection{
			Revenues:           opRevenues,
			COGS:               opCOGS.Neg(),
			Expenses:           opExpenses.Neg(),
			GrossProfit:        opRevenues.Add(opCOGS),
			NetOperatingIncome: netOperating,
			RevenueAccounts:    agg.GroupAccounts(domain.GroupICOperatingRevenues),
			COGSAccounts:       agg.GroupAccounts(domain.GroupICOperatingCOGS),
			ExpenseAccounts:    agg.GroupAccounts(domain.GroupICOperatingExpenses),
		},
		Other: OtherSection{
			Revenues:        otherRevenues,
			Expenses:        otherExpenses.Neg(),
			NetOtherIncome:  netOther,
			RevenueAccounts: agg.GroupAccounts(domain.GroupICOtherRevenues),
			ExpenseAccounts: agg.GroupAccounts(domain.GroupICOtherExpenses),
		},
		NetIncome:     netOperating.Add(netOther),
		TotalIncome:   agg.Group(domain.GroupIncome),
		TotalExpenses: agg.Group(domain.GroupCOGS).Add(agg.Group(domain.GroupExpenses)).Neg(),
	}
}
