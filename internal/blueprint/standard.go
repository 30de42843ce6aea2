package blueprint

import (
	"github.com/iho/gobooks/internal/domain"
)

// StandardLibrary returns a library preloaded with common bookkeeping
// blueprints against the default chart codes. Servers register these at
// startup; callers with custom charts build their own library instead.
func StandardLibrary() *Library {
	lib := NewLibrary()
	for name, fn := range standardBlueprints {
		if err := lib.Register(name, fn); err != nil {
			// The table is static, so a duplicate is a programming error.
			panic(err)
		}
	}
	return lib
}

var standardBlueprints = map[string]BlueprintFunc{
	"cash-sale":           cashSale,
	"credit-sale":         creditSale,
	"cash-expense":        cashExpense,
	"inventory-on-credit": inventoryOnCredit,
	"asset-purchase":      assetPurchase,
	"owner-investment":    ownerInvestment,
	"pay-dividends":       payDividends,
	"depreciation":        depreciation,
}

// cashSale records revenue collected immediately. Args: amount.
func cashSale(args Args) (*Blueprint, error) {
	amount, err := args.Decimal("amount")
	if err != nil {
		return nil, err
	}
	bp := New(describe(args, "Cash sale"), domain.ActivityOperating)
	if err := bp.Debit("1010", amount, "cash received"); err != nil {
		return nil, err
	}
	if err := bp.Credit("4010", amount, "sales income"); err != nil {
		return nil, err
	}
	return bp, nil
}

// creditSale records revenue billed to a customer. Args: amount.
func creditSale(args Args) (*Blueprint, error) {
	amount, err := args.Decimal("amount")
	if err != nil {
		return nil, err
	}
	bp := New(describe(args, "Credit sale"), domain.ActivityOperating)
	if err := bp.Debit("1100", amount, "receivable"); err != nil {
		return nil, err
	}
	if err := bp.Credit("4010", amount, "sales income"); err != nil {
		return nil, err
	}
	return bp, nil
}

// cashExpense records an operating expense paid in cash. Args: amount.
func cashExpense(args Args) (*Blueprint, error) {
	amount, err := args.Decimal("amount")
	if err != nil {
		return nil, err
	}
	bp := New(describe(args, "Operating expense"), domain.ActivityOperating)
	if err := bp.Debit("6010", amount, "expense"); err != nil {
		return nil, err
	}
	if err := bp.Credit("1010", amount, "cash paid"); err != nil {
		return nil, err
	}
	return bp, nil
}

// inventoryOnCredit records stock purchased on supplier credit. Args: amount.
func inventoryOnCredit(args Args) (*Blueprint, error) {
	amount, err := args.Decimal("amount")
	if err != nil {
		return nil, err
	}
	bp := New(describe(args, "Inventory purchase on credit"), domain.ActivityOperating)
	if err := bp.Debit("1200", amount, "inventory"); err != nil {
		return nil, err
	}
	if err := bp.Credit("2010", amount, "accounts payable"); err != nil {
		return nil, err
	}
	return bp, nil
}

// assetPurchase records equipment bought with cash. Args: amount.
func assetPurchase(args Args) (*Blueprint, error) {
	amount, err := args.Decimal("amount")
	if err != nil {
		return nil, err
	}
	bp := New(describe(args, "Equipment purchase"), domain.ActivityInvestingPPE)
	if err := bp.Debit("1610", amount, "equipment"); err != nil {
		return nil, err
	}
	if err := bp.Credit("1010", amount, "cash paid"); err != nil {
		return nil, err
	}
	return bp, nil
}

// ownerInvestment records capital contributed by the owners. Args: amount.
func ownerInvestment(args Args) (*Blueprint, error) {
	amount, err := args.Decimal("amount")
	if err != nil {
		return nil, err
	}
	bp := New(describe(args, "Owner investment"), domain.ActivityFinancingEquity)
	if err := bp.Debit("1010", amount, "cash received"); err != nil {
		return nil, err
	}
	if err := bp.Credit("3010", amount, "capital"); err != nil {
		return nil, err
	}
	return bp, nil
}

// payDividends records a cash dividend. Args: amount.
func payDividends(args Args) (*Blueprint, error) {
	amount, err := args.Decimal("amount")
	if err != nil {
		return nil, err
	}
	bp := New(describe(args, "Dividend payment"), domain.ActivityFinancingDividends)
	if err := bp.Debit("3910", amount, "dividends"); err != nil {
		return nil, err
	}
	if err := bp.Credit("1010", amount, "cash paid"); err != nil {
		return nil, err
	}
	return bp, nil
}

// depreciation records periodic equipment depreciation. Args: amount.
func depreciation(args Args) (*Blueprint, error) {
	amount, err := args.Decimal("amount")
	if err != nil {
		return nil, err
	}
	bp := New(describe(args, "Depreciation"), domain.ActivityOperating)
	if err := bp.Debit("6070", amount, "depreciation expense"); err != nil {
		return nil, err
	}
	if err := bp.Credit("1611", amount, "accumulated depreciation"); err != nil {
		return nil, err
	}
	return bp, nil
}

// describe uses the caller-supplied description when present.
func describe(args Args, fallback string) string {
	if d := args.String("description"); d != "" {
		return d
	}
	return fallback
}
