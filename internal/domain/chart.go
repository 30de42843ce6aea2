package domain

import "sort"

// ChartOfAccounts maps account codes to accounts. Registration validates
// roles eagerly: an unmapped role is a configuration defect surfaced at
// startup, never at transaction time.
type ChartOfAccounts struct {
	accounts map[string]Account
}

// NewChart builds a chart from the given accounts. Returns an
// UnknownRoleError for the first account declaring a role outside the
// taxonomy, or ErrDuplicateAccount on repeated codes.
func NewChart(accounts []Account) (*ChartOfAccounts, error) {
	chart := &ChartOfAccounts{accounts: make(map[string]Account, len(accounts))}
	for _, acc := range accounts {
		if err := chart.Register(acc); err != nil {
			return nil, err
		}
	}
	return chart, nil
}

// Register adds a single account to the chart.
func (c *ChartOfAccounts) Register(acc Account) error {
	if !acc.Role.Valid() {
		return &UnknownRoleError{AccountCode: acc.Code, Role: acc.Role}
	}
	if _, exists := c.accounts[acc.Code]; exists {
		return ErrDuplicateAccount
	}
	c.accounts[acc.Code] = acc
	return nil
}

// Resolve returns the account registered under code.
func (c *ChartOfAccounts) Resolve(code string) (Account, error) {
	acc, ok := c.accounts[code]
	if !ok {
		return Account{}, &UnknownAccountError{AccountCode: code}
	}
	return acc, nil
}

// Has reports whether code is registered.
func (c *ChartOfAccounts) Has(code string) bool {
	_, ok := c.accounts[code]
	return ok
}

// Accounts returns every registered account sorted by code.
func (c *ChartOfAccounts) Accounts() []Account {
	out := make([]Account, 0, len(c.accounts))
	for _, acc := range c.accounts {
		out = append(out, acc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// Len returns the number of registered accounts.
func (c *ChartOfAccounts) Len() int {
	return len(c.accounts)
}

// DefaultChart returns a compact conventional chart of accounts covering
// every statement category. Codes follow the usual 1xxx assets / 2xxx
// liabilities / 3xxx equity / 4xxx income / 5xxx COGS / 6xxx expenses
// numbering.
func DefaultChart() *ChartOfAccounts {
	chart, err := NewChart([]Account{
		{Code: "1010", Name: "Cash", Role: AssetCACash},
		{Code: "1050", Name: "Marketable Securities", Role: AssetCAMktSecurities},
		{Code: "1100", Name: "Accounts Receivable", Role: AssetCAReceivables},
		{Code: "1200", Name: "Inventory", Role: AssetCAInventory},
		{Code: "1300", Name: "Prepaid Expenses", Role: AssetCAPrepaid},
		{Code: "1510", Name: "Land", Role: AssetLTILand},
		{Code: "1610", Name: "Equipment", Role: AssetPPEEquipment},
		{Code: "1611", Name: "Equipment - Accum. Depreciation", Role: AssetPPEEquipmentDepr},
		{Code: "1620", Name: "Buildings", Role: AssetPPEBuildings},
		{Code: "1621", Name: "Buildings - Accum. Depreciation", Role: AssetPPEBuildingsDepr},
		{Code: "1810", Name: "Long Term Securities", Role: AssetLTISecurities},

		{Code: "2010", Name: "Accounts Payable", Role: LiabilityCLAccPayable},
		{Code: "2020", Name: "Wages Payable", Role: LiabilityCLWagesPayable},
		{Code: "2030", Name: "Interest Payable", Role: LiabilityCLInterestPayable},
		{Code: "2040", Name: "Taxes Payable", Role: LiabilityCLTaxesPayable},
		{Code: "2050", Name: "Short Term Notes Payable", Role: LiabilityCLSTNotesPayable},
		{Code: "2060", Name: "Deferred Revenue", Role: LiabilityCLDeferredRevenue},
		{Code: "2110", Name: "Long Term Notes Payable", Role: LiabilityLTLNotesPayable},
		{Code: "2120", Name: "Bonds Payable", Role: LiabilityLTLBondsPayable},
		{Code: "2130", Name: "Mortgage Payable", Role: LiabilityLTLMortgagePayable},

		{Code: "3010", Name: "Capital", Role: EquityCapital},
		{Code: "3110", Name: "Common Stock", Role: EquityCommonStock},
		{Code: "3120", Name: "Preferred Stock", Role: EquityPreferredStock},
		{Code: "3910", Name: "Dividends", Role: EquityDividends},

		{Code: "4010", Name: "Sales Income", Role: IncomeOperational},
		{Code: "4020", Name: "Investing Income", Role: IncomeInvesting},
		{Code: "4030", Name: "Interest Income", Role: IncomeInterest},
		{Code: "4040", Name: "Capital Gain/Loss Income", Role: IncomeCapitalGainLoss},

		{Code: "5010", Name: "Cost of Goods Sold", Role: COGS},

		{Code: "6010", Name: "Operating Expenses", Role: ExpenseOperational},
		{Code: "6020", Name: "Interest Expense", Role: ExpenseInterest},
		{Code: "6030", Name: "Tax Expense", Role: ExpenseTaxes},
		{Code: "6070", Name: "Depreciation Expense", Role: ExpenseDepreciation},
		{Code: "6075", Name: "Amortization Expense", Role: ExpenseAmortization},
		{Code: "6090", Name: "Other Expense", Role: ExpenseOther},
	})
	if err != nil {
		// The default chart is static; a failure here is a programming error.
		panic(err)
	}
	return chart
}
