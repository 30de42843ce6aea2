package domain

// Role is the fine-grained accounting classification of an account.
// The set of roles is closed: every role maps to exactly one statement
// category and one natural balance type.
type Role string

// Asset roles.
const (
	AssetCACash          Role = "asset_ca_cash"
	AssetCAMktSecurities Role = "asset_ca_mkt_sec"
	AssetCAReceivables   Role = "asset_ca_recv"
	AssetCAInventory     Role = "asset_ca_inv"
	AssetCAUncollectible Role = "asset_ca_uncoll"
	AssetCAPrepaid       Role = "asset_ca_prepaid"
	AssetCAOther         Role = "asset_ca_other"

	AssetLTINotesReceivable Role = "asset_lti_notes"
	AssetLTILand            Role = "asset_lti_land"
	AssetLTISecurities      Role = "asset_lti_sec"

	AssetPPEBuildings      Role = "asset_ppe_build"
	AssetPPEBuildingsDepr  Role = "asset_ppe_build_accum_depr"
	AssetPPEEquipment      Role = "asset_ppe_equip"
	AssetPPEEquipmentDepr  Role = "asset_ppe_equip_accum_depr"
	AssetPPEPlant          Role = "asset_ppe_plant"
	AssetPPEPlantDepr      Role = "asset_ppe_plant_depr"
	AssetIntangibles       Role = "asset_ia"
	AssetIntangiblesAmort  Role = "asset_ia_accum_amort"
	AssetAdjustments       Role = "asset_adjustment"
)

// Liability roles.
const (
	LiabilityCLAccPayable      Role = "lia_cl_acc_payable"
	LiabilityCLWagesPayable    Role = "lia_cl_wages_payable"
	LiabilityCLTaxesPayable    Role = "lia_cl_taxes_payable"
	LiabilityCLInterestPayable Role = "lia_cl_int_payable"
	LiabilityCLSTNotesPayable  Role = "lia_cl_st_notes_payable"
	LiabilityCLLTDMaturities   Role = "lia_cl_ltd_mat"
	LiabilityCLDeferredRevenue Role = "lia_cl_def_rev"
	LiabilityCLOther           Role = "lia_cl_other"

	LiabilityLTLNotesPayable    Role = "lia_ltl_notes"
	LiabilityLTLBondsPayable    Role = "lia_ltl_bonds"
	LiabilityLTLMortgagePayable Role = "lia_ltl_mortgage"
)

// Equity roles.
const (
	EquityCapital        Role = "eq_capital"
	EquityAdjustment     Role = "eq_adjustment"
	EquityCommonStock    Role = "eq_stock_common"
	EquityPreferredStock Role = "eq_stock_preferred"
	EquityDividends      Role = "eq_dividends"
)

// Income, COGS and expense roles.
const (
	IncomeOperational     Role = "in_operational"
	IncomeInvesting       Role = "in_passive"
	IncomeCapitalGainLoss Role = "in_gain_loss"
	IncomeInterest        Role = "in_interest"
	IncomeOther           Role = "in_other"

	COGS Role = "cogs_regular"

	ExpenseOperational  Role = "ex_regular"
	ExpenseCapital      Role = "ex_capital"
	ExpenseDepreciation Role = "ex_depreciation"
	ExpenseAmortization Role = "ex_amortization"
	ExpenseTaxes        Role = "ex_taxes"
	ExpenseInterest     Role = "ex_interest"
	ExpenseOther        Role = "ex_other"
)

// RoleCategory is the coarse statement side a role belongs to. Each category
// has a root balance type that determines the sign convention used when
// balances roll up into statement groups.
type RoleCategory string

const (
	CategoryAsset     RoleCategory = "asset"
	CategoryLiability RoleCategory = "liability"
	CategoryEquity    RoleCategory = "equity"
	CategoryIncome    RoleCategory = "income"
	CategoryCOGS      RoleCategory = "cogs"
	CategoryExpense   RoleCategory = "expense"
)

type roleInfo struct {
	category    RoleCategory
	balanceType TxType
	name        string
}

// roleDirectory is the single source of truth for the taxonomy. Contra
// accounts (accumulated depreciation/amortization, uncollectibles, dividends)
// carry the balance type opposite to their category's root.
var roleDirectory = map[Role]roleInfo{
	AssetCACash:          {CategoryAsset, Debit, "Cash"},
	AssetCAMktSecurities: {CategoryAsset, Debit, "Marketable Securities"},
	AssetCAReceivables:   {CategoryAsset, Debit, "Receivables"},
	AssetCAInventory:     {CategoryAsset, Debit, "Inventory"},
	AssetCAUncollectible: {CategoryAsset, Credit, "Uncollectibles"},
	AssetCAPrepaid:       {CategoryAsset, Debit, "Prepaid"},
	AssetCAOther:         {CategoryAsset, Debit, "Other Liquid Assets"},

	AssetLTINotesReceivable: {CategoryAsset, Debit, "Notes Receivable"},
	AssetLTILand:            {CategoryAsset, Debit, "Land"},
	AssetLTISecurities:      {CategoryAsset, Debit, "Securities"},

	AssetPPEBuildings:     {CategoryAsset, Debit, "Buildings"},
	AssetPPEBuildingsDepr: {CategoryAsset, Credit, "Buildings - Accum. Depreciation"},
	AssetPPEEquipment:     {CategoryAsset, Debit, "Equipment"},
	AssetPPEEquipmentDepr: {CategoryAsset, Credit, "Equipment - Accum. Depreciation"},
	AssetPPEPlant:         {CategoryAsset, Debit, "Plant"},
	AssetPPEPlantDepr:     {CategoryAsset, Credit, "Plant - Accum. Depreciation"},
	AssetIntangibles:      {CategoryAsset, Debit, "Intangible Assets"},
	AssetIntangiblesAmort: {CategoryAsset, Credit, "Intangible Assets - Accum. Amortization"},
	AssetAdjustments:      {CategoryAsset, Debit, "Other Assets"},

	LiabilityCLAccPayable:      {CategoryLiability, Credit, "Accounts Payable"},
	LiabilityCLWagesPayable:    {CategoryLiability, Credit, "Wages Payable"},
	LiabilityCLTaxesPayable:    {CategoryLiability, Credit, "Taxes Payable"},
	LiabilityCLInterestPayable: {CategoryLiability, Credit, "Interest Payable"},
	LiabilityCLSTNotesPayable:  {CategoryLiability, Credit, "Short Term Notes Payable"},
	LiabilityCLLTDMaturities:   {CategoryLiability, Credit, "Current Maturities of Long Term Debt"},
	LiabilityCLDeferredRevenue: {CategoryLiability, Credit, "Deferred Revenue"},
	LiabilityCLOther:           {CategoryLiability, Credit, "Other Liabilities"},

	LiabilityLTLNotesPayable:    {CategoryLiability, Credit, "Long Term Notes Payable"},
	LiabilityLTLBondsPayable:    {CategoryLiability, Credit, "Bonds Payable"},
	LiabilityLTLMortgagePayable: {CategoryLiability, Credit, "Mortgage Payable"},

	EquityCapital:        {CategoryEquity, Credit, "Capital"},
	EquityAdjustment:     {CategoryEquity, Credit, "Other Equity Adjustments"},
	EquityCommonStock:    {CategoryEquity, Credit, "Common Stock"},
	EquityPreferredStock: {CategoryEquity, Credit, "Preferred Stock"},
	EquityDividends:      {CategoryEquity, Debit, "Dividends & Distributions"},

	IncomeOperational:     {CategoryIncome, Credit, "Operational Income"},
	IncomeInvesting:       {CategoryIncome, Credit, "Investing/Passive Income"},
	IncomeCapitalGainLoss: {CategoryIncome, Credit, "Capital Gain/Loss Income"},
	IncomeInterest:        {CategoryIncome, Credit, "Interest Income"},
	IncomeOther:           {CategoryIncome, Credit, "Other Income"},

	COGS: {CategoryCOGS, Debit, "Cost of Goods Sold"},

	ExpenseOperational:  {CategoryExpense, Debit, "Regular Expense"},
	ExpenseCapital:      {CategoryExpense, Debit, "Capital Expense"},
	ExpenseDepreciation: {CategoryExpense, Debit, "Depreciation Expense"},
	ExpenseAmortization: {CategoryExpense, Debit, "Amortization Expense"},
	ExpenseTaxes:        {CategoryExpense, Debit, "Tax Expense"},
	ExpenseInterest:     {CategoryExpense, Debit, "Interest Expense"},
	ExpenseOther:        {CategoryExpense, Debit, "Other Expense"},
}

// categoryBalanceType is the root balance type per statement category.
var categoryBalanceType = map[RoleCategory]TxType{
	CategoryAsset:     Debit,
	CategoryLiability: Credit,
	CategoryEquity:    Credit,
	CategoryIncome:    Credit,
	CategoryCOGS:      Debit,
	CategoryExpense:   Debit,
}

// Valid reports whether r is a registered role.
func (r Role) Valid() bool {
	_, ok := roleDirectory[r]
	return ok
}

// Category returns the statement category of the role.
func (r Role) Category() RoleCategory {
	return roleDirectory[r].category
}

// BalanceType returns the natural balance type of the role: the transaction
// type under which the account balance increases.
func (r Role) BalanceType() TxType {
	return roleDirectory[r].balanceType
}

// RootBalanceType returns the balance type of the role's statement category.
// For contra roles it differs from BalanceType.
func (r Role) RootBalanceType() TxType {
	return categoryBalanceType[roleDirectory[r].category]
}

// SideBalanceType returns the balance type of the role's balance sheet side:
// Debit for asset roles, Credit for everything else. Income, COGS and
// expense roles sit on the equity side since they roll into equity through
// retained earnings. Aggregation normalizes signs against this type so that
// role group totals stay mutually reconcilable (Assets == Liabilities +
// Equity holds by construction for balanced entries).
func (r Role) SideBalanceType() TxType {
	if roleDirectory[r].category == CategoryAsset {
		return Debit
	}
	return Credit
}

// IsContra reports whether the role carries a balance type opposite to its
// category root (e.g. accumulated depreciation, dividends).
func (r Role) IsContra() bool {
	info := roleDirectory[r]
	return info.balanceType != categoryBalanceType[info.category]
}

// Name returns the human-readable role name.
func (r Role) Name() string {
	return roleDirectory[r].name
}

// AllRoles returns every registered role. The slice is a copy.
func AllRoles() []Role {
	roles := make([]Role, 0, len(roleDirectory))
	for r := range roleDirectory {
		roles = append(roles, r)
	}
	return roles
}

// RoleGroup is a named bucket combining multiple roles for statement
// presentation and cash flow adjustments.
type RoleGroup string

const (
	GroupQuickAssets      RoleGroup = "GROUP_QUICK_ASSETS"
	GroupCurrentAssets    RoleGroup = "GROUP_CURRENT_ASSETS"
	GroupNonCurrentAssets RoleGroup = "GROUP_NON_CURRENT_ASSETS"
	GroupAssets           RoleGroup = "GROUP_ASSETS"

	GroupCurrentLiabilities RoleGroup = "GROUP_CURRENT_LIABILITIES"
	GroupLTLiabilities      RoleGroup = "GROUP_LT_LIABILITIES"
	GroupLiabilities        RoleGroup = "GROUP_LIABILITIES"

	GroupCapital          RoleGroup = "GROUP_CAPITAL"
	GroupIncome           RoleGroup = "GROUP_INCOME"
	GroupCOGS             RoleGroup = "GROUP_COGS"
	GroupExpenses         RoleGroup = "GROUP_EXPENSES"
	GroupEarnings         RoleGroup = "GROUP_EARNINGS"
	GroupEquity           RoleGroup = "GROUP_EQUITY"
	GroupLiabilitiesEquity RoleGroup = "GROUP_LIABILITIES_EQUITY"

	GroupNetSales    RoleGroup = "GROUP_NET_SALES"
	GroupNetProfit   RoleGroup = "GROUP_NET_PROFIT"
	GroupGrossProfit RoleGroup = "GROUP_GROSS_PROFIT"

	GroupICOperatingRevenues RoleGroup = "GROUP_IC_OPERATING_REVENUES"
	GroupICOperatingCOGS     RoleGroup = "GROUP_IC_OPERATING_COGS"
	GroupICOperatingExpenses RoleGroup = "GROUP_IC_OPERATING_EXPENSES"
	GroupICOtherRevenues     RoleGroup = "GROUP_IC_OTHER_REVENUES"
	GroupICOtherExpenses     RoleGroup = "GROUP_IC_OTHER_EXPENSES"

	GroupCFSNetIncome          RoleGroup = "GROUP_CFS_NET_INCOME"
	GroupCFSOpDeprAmort        RoleGroup = "GROUP_CFS_OP_DEPRECIATION_AMORTIZATION"
	GroupCFSOpInvestmentGains  RoleGroup = "GROUP_CFS_OP_INVESTMENT_GAINS"
	GroupCFSOpAccountsReceivable RoleGroup = "GROUP_CFS_OP_ACCOUNTS_RECEIVABLE"
	GroupCFSOpInventory        RoleGroup = "GROUP_CFS_OP_INVENTORY"
	GroupCFSOpAccountsPayable  RoleGroup = "GROUP_CFS_OP_ACCOUNTS_PAYABLE"
	GroupCFSOpOtherCurrentAssets      RoleGroup = "GROUP_CFS_OP_OTHER_CURRENT_ASSETS"
	GroupCFSOpOtherCurrentLiabilities RoleGroup = "GROUP_CFS_OP_OTHER_CURRENT_LIABILITIES"
)

var groupCurrentAssets = []Role{
	AssetCACash, AssetCAMktSecurities, AssetCAInventory, AssetCAReceivables,
	AssetCAPrepaid, AssetCAUncollectible, AssetCAOther,
}

var groupNonCurrentAssets = []Role{
	AssetLTINotesReceivable, AssetLTILand, AssetLTISecurities,
	AssetPPEBuildings, AssetPPEBuildingsDepr,
	AssetPPEEquipment, AssetPPEEquipmentDepr,
	AssetPPEPlant, AssetPPEPlantDepr,
	AssetIntangibles, AssetIntangiblesAmort,
	AssetAdjustments,
}

var groupCurrentLiabilities = []Role{
	LiabilityCLAccPayable, LiabilityCLDeferredRevenue, LiabilityCLInterestPayable,
	LiabilityCLLTDMaturities, LiabilityCLOther, LiabilityCLSTNotesPayable,
	LiabilityCLWagesPayable, LiabilityCLTaxesPayable,
}

var groupLTLiabilities = []Role{
	LiabilityLTLNotesPayable, LiabilityLTLBondsPayable, LiabilityLTLMortgagePayable,
}

var groupCapital = []Role{
	EquityCapital, EquityCommonStock, EquityPreferredStock, EquityDividends, EquityAdjustment,
}

var groupIncome = []Role{
	IncomeOperational, IncomeInvesting, IncomeInterest, IncomeCapitalGainLoss, IncomeOther,
}

var groupExpenses = []Role{
	ExpenseOperational, ExpenseInterest, ExpenseTaxes, ExpenseCapital,
	ExpenseDepreciation, ExpenseAmortization, ExpenseOther,
}

// roleGroups maps each group to its constituent roles.
var roleGroups = map[RoleGroup][]Role{
	GroupQuickAssets:      {AssetCACash, AssetCAMktSecurities},
	GroupCurrentAssets:    groupCurrentAssets,
	GroupNonCurrentAssets: groupNonCurrentAssets,
	GroupAssets:           concatRoles(groupCurrentAssets, groupNonCurrentAssets),

	GroupCurrentLiabilities: groupCurrentLiabilities,
	GroupLTLiabilities:      groupLTLiabilities,
	GroupLiabilities:        concatRoles(groupCurrentLiabilities, groupLTLiabilities),

	GroupCapital:  groupCapital,
	GroupIncome:   groupIncome,
	GroupCOGS:     {COGS},
	GroupExpenses: groupExpenses,

	GroupEarnings: concatRoles(groupIncome, []Role{COGS}, groupExpenses),
	GroupEquity: concatRoles(groupCapital, groupIncome, []Role{COGS}, groupExpenses),
	GroupLiabilitiesEquity: concatRoles(
		groupCurrentLiabilities, groupLTLiabilities,
		groupCapital, groupIncome, []Role{COGS}, groupExpenses,
	),

	GroupNetSales:    {IncomeOperational, IncomeInvesting},
	GroupNetProfit:   concatRoles(groupIncome, []Role{COGS}),
	GroupGrossProfit: {IncomeOperational, COGS},

	GroupICOperatingRevenues: {IncomeOperational},
	GroupICOperatingCOGS:     {COGS},
	GroupICOperatingExpenses: {ExpenseOperational},
	GroupICOtherRevenues:     {IncomeInvesting, IncomeInterest, IncomeCapitalGainLoss, IncomeOther},
	GroupICOtherExpenses: {
		ExpenseInterest, ExpenseTaxes, ExpenseCapital,
		ExpenseDepreciation, ExpenseAmortization, ExpenseOther,
	},

	GroupCFSNetIncome:            concatRoles(groupIncome, []Role{COGS}, groupExpenses),
	GroupCFSOpDeprAmort:          {ExpenseDepreciation, ExpenseAmortization},
	GroupCFSOpInvestmentGains:    {IncomeCapitalGainLoss},
	GroupCFSOpAccountsReceivable: {AssetCAReceivables},
	GroupCFSOpInventory:          {AssetCAInventory},
	GroupCFSOpAccountsPayable:    {LiabilityCLAccPayable},
	GroupCFSOpOtherCurrentAssets: {AssetCAPrepaid, AssetCAUncollectible, AssetCAOther},
	GroupCFSOpOtherCurrentLiabilities: {
		LiabilityCLWagesPayable, LiabilityCLInterestPayable, LiabilityCLTaxesPayable,
		LiabilityCLLTDMaturities, LiabilityCLDeferredRevenue, LiabilityCLOther,
	},
}

// membership is derived once from roleGroups for O(1) lookups.
var groupMembership = func() map[Role][]RoleGroup {
	m := make(map[Role][]RoleGroup)
	for g, roles := range roleGroups {
		for _, r := range roles {
			m[r] = append(m[r], g)
		}
	}
	return m
}()

// GroupRoles returns the roles belonging to a group. The slice must not be
// mutated by callers.
func GroupRoles(g RoleGroup) []Role {
	return roleGroups[g]
}

// GroupsOf returns every group the role belongs to. The slice must not be
// mutated by callers.
func GroupsOf(r Role) []RoleGroup {
	return groupMembership[r]
}

// AllRoleGroups returns every registered group. The slice is a copy.
func AllRoleGroups() []RoleGroup {
	groups := make([]RoleGroup, 0, len(roleGroups))
	for g := range roleGroups {
		groups = append(groups, g)
	}
	return groups
}

func concatRoles(groups ...[]Role) []Role {
	var out []Role
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}
