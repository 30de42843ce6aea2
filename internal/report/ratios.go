package report

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/iho/gobooks/internal/domain"
)

// Ratio names as reported in RatioReport and over the wire.
const (
	RatioCurrent           = "current_ratio"
	RatioQuick             = "quick_ratio"
	RatioDebtToEquity      = "debt_to_equity"
	RatioReturnOnEquity    = "return_on_equity"
	RatioReturnOnAssets    = "return_on_assets"
	RatioNetProfitMargin   = "net_profit_margin"
	RatioGrossProfitMargin = "gross_profit_margin"
)

// ratioPrecision is the decimal scale ratios are rounded to.
const ratioPrecision = 6

// UndefinedRatioError marks a ratio whose denominator aggregated to zero.
type UndefinedRatioError struct {
	Ratio       string
	Denominator domain.RoleGroup
}

func (e *UndefinedRatioError) Error() string {
	return fmt.Sprintf("%s: %s has zero denominator %s",
		domain.ErrUndefinedRatio, e.Ratio, e.Denominator)
}

func (e *UndefinedRatioError) Unwrap() error { return domain.ErrUndefinedRatio }

// RatioReport carries every computed ratio for a period. Ratios whose
// denominator was zero are listed in Undefined instead of Values.
type RatioReport struct {
	Meta      StatementMeta              `json:"meta"`
	Values    map[string]decimal.Decimal `json:"values"`
	Undefined []string                   `json:"undefined,omitempty"`
}

// Ratio returns a computed value by name. The error is ErrUndefinedRatio for
// ratios the report could not compute and for unknown names.
func (r *RatioReport) Ratio(name string) (decimal.Decimal, error) {
	if v, ok := r.Values[name]; ok {
		return v, nil
	}
	return decimal.Zero, fmt.Errorf("%w: %s", domain.ErrUndefinedRatio, name)
}

// divide computes num/den rounded to ratioPrecision, or an
// UndefinedRatioError when den is zero.
func divide(name string, num, den decimal.Decimal, denGroup domain.RoleGroup) (decimal.Decimal, error) {
	if den.IsZero() {
		return decimal.Zero, &UndefinedRatioError{Ratio: name, Denominator: denGroup}
	}
	return num.Div(den).Round(ratioPrecision), nil
}

// CurrentRatio is current assets over current liabilities.
func CurrentRatio(agg *BalanceAggregate) (decimal.Decimal, error) {
	return divide(RatioCurrent,
		agg.Group(domain.GroupCurrentAssets),
		agg.Group(domain.GroupCurrentLiabilities),
		domain.GroupCurrentLiabilities)
}

// QuickRatio is quick assets (cash and marketable securities) over current
// liabilities.
func QuickRatio(agg *BalanceAggregate) (decimal.Decimal, error) {
	return divide(RatioQuick,
		agg.Group(domain.GroupQuickAssets),
		agg.Group(domain.GroupCurrentLiabilities),
		domain.GroupCurrentLiabilities)
}

// DebtToEquity is total liabilities over contributed capital.
func DebtToEquity(agg *BalanceAggregate) (decimal.Decimal, error) {
	return divide(RatioDebtToEquity,
		agg.Group(domain.GroupLiabilities),
		agg.Group(domain.GroupCapital),
		domain.GroupCapital)
}

// ReturnOnEquity is net profit over contributed capital.
func ReturnOnEquity(agg *BalanceAggregate) (decimal.Decimal, error) {
	return divide(RatioReturnOnEquity,
		agg.Group(domain.GroupNetProfit),
		agg.Group(domain.GroupCapital),
		domain.GroupCapital)
}

// ReturnOnAssets is net profit over total assets.
func ReturnOnAssets(agg *BalanceAggregate) (decimal.Decimal, error) {
	return divide(RatioReturnOnAssets,
		agg.Group(domain.GroupNetProfit),
		agg.Group(domain.GroupAssets),
		domain.GroupAssets)
}

// NetProfitMargin is net profit over net sales.
func NetProfitMargin(agg *BalanceAggregate) (decimal.Decimal, error) {
	return divide(RatioNetProfitMargin,
		agg.Group(domain.GroupNetProfit),
		agg.Group(domain.GroupNetSales),
		domain.GroupNetSales)
}

// GrossProfitMargin is gross profit over net sales.
func GrossProfitMargin(agg *BalanceAggregate) (decimal.Decimal, error) {
	return divide(RatioGrossProfitMargin,
		agg.Group(domain.GroupGrossProfit),
		agg.Group(domain.GroupNetSales),
		domain.GroupNetSales)
}

// ratioFuncs fixes the computation order of the full report.
var ratioFuncs = []struct {
	name string
	fn   func(*BalanceAggregate) (decimal.Decimal, error)
}{
	{RatioCurrent, CurrentRatio},
	{RatioQuick, QuickRatio},
	{RatioDebtToEquity, DebtToEquity},
	{RatioReturnOnEquity, ReturnOnEquity},
	{RatioReturnOnAssets, ReturnOnAssets},
	{RatioNetProfitMargin, NetProfitMargin},
	{RatioGrossProfitMargin, GrossProfitMargin},
}

// buildRatioReport computes every known ratio over the aggregate. Undefined
// ratios are collected rather than failing the whole report.
func buildRatioReport(agg *BalanceAggregate, meta StatementMeta) *RatioReport {
	report := &RatioReport{
		Meta:   meta,
		Values: make(map[string]decimal.Decimal, len(ratioFuncs)),
	}
	for _, rf := range ratioFuncs {
		v, err := rf.fn(agg)
		if err != nil {
			report.Undefined = append(report.Undefined, rf.name)
			continue
		}
		report.Values[rf.name] = v
	}
	return report
}
