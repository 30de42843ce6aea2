package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gobooks/internal/domain"
)

// CashFlowAdjustment is a single operating-section adjustment of the
// indirect method, signed as a cash effect (positive adds cash).
type CashFlowAdjustment struct {
	Group       domain.RoleGroup `json:"group"`
	Description string           `json:"description"`
	Balance     decimal.Decimal  `json:"balance"`
}

// CashFlowActivityLine reports cash movements attributed to one financing or
// investing activity tag.
type CashFlowActivityLine struct {
	Activity    domain.Activity `json:"activity"`
	Description string          `json:"description"`
	Balance     decimal.Decimal `json:"balance"`
}

// CashFlowStatement is the indirect-method cash flow statement over
// [Meta.FromDate, Meta.ToDate].
type CashFlowStatement struct {
	Meta StatementMeta `json:"meta"`

	NetIncome            decimal.Decimal        `json:"net_income"`
	OperatingAdjustments []CashFlowAdjustment   `json:"operating_adjustments"`
	NetCashOperating     decimal.Decimal        `json:"net_cash_operating"`
	Financing            []CashFlowActivityLine `json:"financing"`
	NetCashFinancing     decimal.Decimal        `json:"net_cash_financing"`
	Investing            []CashFlowActivityLine `json:"investing"`
	NetCashInvesting     decimal.Decimal        `json:"net_cash_investing"`
	NetCash              decimal.Decimal        `json:"net_cash"`

	// Opening and closing cash balances bracket the period so callers can
	// reconcile NetCash against the raw movement of cash accounts.
	CashOpening decimal.Decimal `json:"cash_opening"`
	CashClosing decimal.Decimal `json:"cash_closing"`
}

// Reconciles reports whether NetCash equals the raw change in cash-account
// balances over the period. A mismatch usually means journal entries touch
// cash without a correct activity tag.
func (s *CashFlowStatement) Reconciles() bool {
	return s.NetCash.Equal(s.CashClosing.Sub(s.CashOpening))
}

// workingCapitalGroups lists the current asset/liability groups adjusted by
// period-over-period deltas, with the cash-effect sign of an increase.
var workingCapitalGroups = []struct {
	group       domain.RoleGroup
	description string
	// cashSign is -1 for current assets (an increase consumes cash) and +1
	// for current liabilities (an increase frees cash).
	cashSign int
}{
	{domain.GroupCFSOpAccountsReceivable, "Accounts Receivable", -1},
	{domain.GroupCFSOpInventory, "Inventories", -1},
	{domain.GroupCFSOpAccountsPayable, "Accounts Payable", +1},
	{domain.GroupCFSOpOtherCurrentAssets, "Other Current Assets", -1},
	{domain.GroupCFSOpOtherCurrentLiabilities, "Other Current Liabilities", +1},
}

// financingLines and investingLines fix the section ordering and wording.
var financingLines = []struct {
	activity    domain.Activity
	description string
}{
	{domain.ActivityFinancingEquity, "Common Stock, Preferred Stock and Capital Raised"},
	{domain.ActivityFinancingDividends, "Dividends Paid Out to Shareholders"},
	{domain.ActivityFinancingSTD, "Increase/Reduction of Short-Term Debt Principal"},
	{domain.ActivityFinancingLTD, "Increase/Reduction of Long-Term Debt Principal"},
	{domain.ActivityFinancingOther, "Other Financing Activity"},
}

var investingLines = []struct {
	activity    domain.Activity
	description string
}{
	{domain.ActivityInvestingSecurities, "Purchase, Maturity and Sales of Investments & Securities"},
	{domain.ActivityInvestingPPE, "Addition and Disposition of Property, Plant & Equipment"},
	{domain.ActivityInvestingOther, "Other Investing Activity"},
}

// buildCashFlowStatement implements the indirect method.
//
// period carries the flows within [from, to]; open and close are cumulative
// point-in-time aggregates through the instant before from and through to,
// used for working-capital deltas. Financing and investing sections trust
// the activity tag assigned at entry time; they are not re-derived from
// account roles.
func buildCashFlowStatement(period, open, close *BalanceAggregate, meta StatementMeta) *CashFlowStatement {
	stmt := &CashFlowStatement{
		Meta:      meta,
		NetIncome: period.Group(domain.GroupCFSNetIncome),
	}

	// Non-cash charges to non-current accounts. The aggregate carries
	// depreciation/amortization as negative (expense side), so the add-back
	// is its negation. Investment gains carry the income statement sign and
	// must be inverted: a gain reduces reported operating cash.
	adjustments := []CashFlowAdjustment{
		{
			Group:       domain.GroupCFSOpDeprAmort,
			Description: "Depreciation & Amortization of Assets",
			Balance:     period.Group(domain.GroupCFSOpDeprAmort).Neg(),
		},
		{
			Group:       domain.GroupCFSOpInvestmentGains,
			Description: "Gain/Loss on Sale of Assets",
			Balance:     period.Group(domain.GroupCFSOpInvestmentGains).Neg(),
		},
	}

	// Working-capital deltas from two point-in-time aggregations.
	for _, wc := range workingCapitalGroups {
		delta := close.Group(wc.group).Sub(open.Group(wc.group))
		if wc.cashSign < 0 {
			delta = delta.Neg()
		}
		adjustments = append(adjustments, CashFlowAdjustment{
			Group:       wc.group,
			Description: wc.description,
			Balance:     delta,
		})
	}

	stmt.OperatingAdjustments = adjustments
	stmt.NetCashOperating = stmt.NetIncome
	for _, adj := range adjustments {
		stmt.NetCashOperating = stmt.NetCashOperating.Add(adj.Balance)
	}

	for _, fl := range financingLines {
		bal := period.CashActivity(fl.activity)
		stmt.Financing = append(stmt.Financing, CashFlowActivityLine{
			Activity:    fl.activity,
			Description: fl.description,
			Balance:     bal,
		})
		stmt.NetCashFinancing = stmt.NetCashFinancing.Add(bal)
	}

	for _, il := range investingLines {
		bal := period.CashActivity(il.activity)
		stmt.Investing = append(stmt.Investing, CashFlowActivityLine{
			Activity:    il.activity,
			Description: il.description,
			Balance:     bal,
		})
		stmt.NetCashInvesting = stmt.NetCashInvesting.Add(bal)
	}

	stmt.NetCash = stmt.NetCashOperating.Add(stmt.NetCashFinancing).Add(stmt.NetCashInvesting)
	stmt.CashOpening = open.Role(domain.AssetCACash)
	stmt.CashClosing = close.Role(domain.AssetCACash)

	return stmt
}

// openingInstant returns the inclusive upper bound for the aggregate that
// captures everything before from.
func openingInstant(from time.Time) time.Time {
	return from.Add(-time.Nanosecond)
}
