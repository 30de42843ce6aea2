package report

import (
	"context"
	"errors"
	"testing"

	"github.com/iho/gobooks/internal/domain"
)

func TestAggregateEmptyInput(t *testing.T) {
	t.Parallel()

	agg, err := Aggregate(domain.DefaultChart(), nil, domain.LineFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !agg.Group(domain.GroupAssets).IsZero() {
		t.Errorf("empty aggregate assets = %s, want 0", agg.Group(domain.GroupAssets))
	}
	if !agg.Role(domain.AssetCACash).IsZero() {
		t.Errorf("empty aggregate cash role = %s, want 0", agg.Role(domain.AssetCACash))
	}
	if !agg.Account("1010").Balance.IsZero() {
		t.Errorf("empty aggregate account = %s, want 0", agg.Account("1010").Balance)
	}
}

func TestAggregateSignConvention(t *testing.T) {
	t.Parallel()

	ts := mustTime("2024-01-15T00:00:00Z")
	tests := []struct {
		name string
		code string
		tx   domain.TxType
		want string
	}{
		{"debit increases asset", "1010", domain.Debit, "100"},
		{"credit decreases asset", "1010", domain.Credit, "-100"},
		{"credit increases liability", "2010", domain.Credit, "100"},
		{"debit decreases liability", "2010", domain.Debit, "-100"},
		{"credit increases equity", "3110", domain.Credit, "100"},
		{"credit increases income", "4010", domain.Credit, "100"},
		{"debit carries expense negative", "6010", domain.Debit, "-100"},
		{"debit carries cogs negative", "5010", domain.Debit, "-100"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			lines := []domain.PostedLine{testLine(tc.code, "100", tc.tx, ts, domain.ActivityOperating)}
			agg, err := Aggregate(domain.DefaultChart(), lines, domain.LineFilter{})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := agg.Account(tc.code).Balance; !got.Equal(dec(tc.want)) {
				t.Errorf("balance = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestAggregateAccountingEquation(t *testing.T) {
	t.Parallel()

	jan := mustTime("2024-01-01T00:00:00Z")
	feb := mustTime("2024-02-10T00:00:00Z")
	var lines []domain.PostedLine
	lines = append(lines, balancedPair("1010", "3110", "10000", jan, domain.ActivityFinancingEquity)...)
	lines = append(lines, balancedPair("1200", "2010", "2500", feb, domain.ActivityOperating)...)
	lines = append(lines, balancedPair("1010", "4010", "1200", feb, domain.ActivityOperating)...)
	lines = append(lines, balancedPair("5010", "1200", "700", feb, domain.ActivityOperating)...)
	lines = append(lines, balancedPair("6010", "1010", "300", feb, domain.ActivityOperating)...)

	agg, err := Aggregate(domain.DefaultChart(), lines, domain.LineFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assets := agg.Group(domain.GroupAssets)
	liabEquity := agg.Group(domain.GroupLiabilitiesEquity)
	if !assets.Equal(liabEquity) {
		t.Errorf("assets %s != liabilities+equity %s", assets, liabEquity)
	}

	// Group totals reconcile with the per-account map.
	sum := agg.Account("1010").Balance.Add(agg.Account("1200").Balance)
	if !assets.Equal(sum) {
		t.Errorf("assets group %s != account sum %s", assets, sum)
	}
}

func TestAggregateCashByActivity(t *testing.T) {
	t.Parallel()

	jan := mustTime("2024-01-01T00:00:00Z")
	var lines []domain.PostedLine
	lines = append(lines, balancedPair("1010", "3110", "5000", jan, domain.ActivityFinancingEquity)...)
	lines = append(lines, balancedPair("1610", "1010", "2000", jan, domain.ActivityInvestingPPE)...)
	// No cash touched, must not show up in CashByActivity.
	lines = append(lines, balancedPair("1200", "2010", "900", jan, domain.ActivityOperating)...)

	agg, err := Aggregate(domain.DefaultChart(), lines, domain.LineFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := agg.CashActivity(domain.ActivityFinancingEquity); !got.Equal(dec("5000")) {
		t.Errorf("fin_equity cash = %s, want 5000", got)
	}
	if got := agg.CashActivity(domain.ActivityInvestingPPE); !got.Equal(dec("-2000")) {
		t.Errorf("inv_ppe cash = %s, want -2000", got)
	}
	if got := agg.CashActivity(domain.ActivityOperating); !got.IsZero() {
		t.Errorf("op cash = %s, want 0", got)
	}
}

func TestAggregateFilterBoundsInclusive(t *testing.T) {
	t.Parallel()

	from := mustTime("2024-02-01T00:00:00Z")
	to := mustTime("2024-02-29T00:00:00Z")
	lines := []domain.PostedLine{
		testLine("1010", "1", domain.Debit, mustTime("2024-01-31T23:59:59Z"), domain.ActivityOperating),
		testLine("1010", "10", domain.Debit, from, domain.ActivityOperating),
		testLine("1010", "100", domain.Debit, to, domain.ActivityOperating),
		testLine("1010", "1000", domain.Debit, mustTime("2024-03-01T00:00:00Z"), domain.ActivityOperating),
	}

	agg, err := Aggregate(domain.DefaultChart(), lines, domain.LineFilter{From: &from, To: &to})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := agg.Role(domain.AssetCACash); !got.Equal(dec("110")) {
		t.Errorf("filtered cash = %s, want 110", got)
	}
}

func TestAggregateIdempotent(t *testing.T) {
	t.Parallel()

	lines := balancedPair("1010", "4010", "42.42", mustTime("2024-06-01T00:00:00Z"), domain.ActivityOperating)

	first, err := Aggregate(domain.DefaultChart(), lines, domain.LineFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Aggregate(domain.DefaultChart(), lines, domain.LineFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !first.Role(domain.AssetCACash).Equal(second.Role(domain.AssetCACash)) {
		t.Error("re-aggregation changed the cash balance")
	}
	if !lines[0].Amount.Equal(dec("42.42")) {
		t.Error("aggregation mutated the input lines")
	}
}

func TestAggregateUnknownAccount(t *testing.T) {
	t.Parallel()

	lines := []domain.PostedLine{testLine("9999", "5", domain.Debit, mustTime("2024-01-01T00:00:00Z"), domain.ActivityOperating)}
	_, err := Aggregate(domain.DefaultChart(), lines, domain.LineFilter{})
	if !errors.Is(err, domain.ErrUnknownAccount) {
		t.Fatalf("error = %v, want ErrUnknownAccount", err)
	}

	var unknownErr *domain.UnknownAccountError
	if !errors.As(err, &unknownErr) || unknownErr.AccountCode != "9999" {
		t.Errorf("error = %v, want UnknownAccountError for 9999", err)
	}
}

func TestStaticSourceFiltersLines(t *testing.T) {
	t.Parallel()

	from := mustTime("2024-02-01T00:00:00Z")
	source := StaticSource{
		testLine("1010", "1", domain.Debit, mustTime("2024-01-10T00:00:00Z"), domain.ActivityOperating),
		testLine("1010", "2", domain.Debit, mustTime("2024-02-10T00:00:00Z"), domain.ActivityOperating),
	}

	got, err := source.FetchLines(context.Background(), domain.LineFilter{From: &from})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || !got[0].Amount.Equal(dec("2")) {
		t.Errorf("fetched %d lines, want the single february line", len(got))
	}
}
