package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func testEntry() JournalEntry {
	return JournalEntry{ID: "je-1", LedgerID: "lg-1", Activity: ActivityOperating}
}

func TestValidateEntryBalanced(t *testing.T) {
	t.Parallel()

	chart := DefaultChart()
	lines := []TransactionLine{
		{AccountCode: "1010", Amount: decimal.NewFromInt(1000), TxType: Debit},
		{AccountCode: "3110", Amount: decimal.NewFromInt(1000), TxType: Credit},
	}

	if err := ValidateEntry(chart, testEntry(), lines); err != nil {
		t.Fatalf("expected balanced entry to validate, got %v", err)
	}
}

func TestValidateEntryUnbalanced(t *testing.T) {
	t.Parallel()

	chart := DefaultChart()
	lines := []TransactionLine{
		{AccountCode: "1010", Amount: decimal.NewFromInt(500), TxType: Debit},
		{AccountCode: "2010", Amount: decimal.NewFromInt(400), TxType: Credit},
	}

	err := ValidateEntry(chart, testEntry(), lines)
	if !errors.Is(err, ErrUnbalancedEntry) {
		t.Fatalf("expected ErrUnbalancedEntry, got %v", err)
	}

	var ub *UnbalancedEntryError
	if !errors.As(err, &ub) {
		t.Fatalf("expected *UnbalancedEntryError, got %T", err)
	}
	if !ub.Debits.Equal(decimal.NewFromInt(500)) || !ub.Credits.Equal(decimal.NewFromInt(400)) {
		t.Fatalf("wrong totals reported: debits=%s credits=%s", ub.Debits, ub.Credits)
	}
}

func TestValidateEntryExactDecimalEquality(t *testing.T) {
	t.Parallel()

	chart := DefaultChart()

	// 0.1 + 0.2 must equal 0.3 exactly; float arithmetic would drift.
	lines := []TransactionLine{
		{AccountCode: "1010", Amount: decimal.RequireFromString("0.1"), TxType: Debit},
		{AccountCode: "1010", Amount: decimal.RequireFromString("0.2"), TxType: Debit},
		{AccountCode: "4010", Amount: decimal.RequireFromString("0.3"), TxType: Credit},
	}
	if err := ValidateEntry(chart, testEntry(), lines); err != nil {
		t.Fatalf("exact decimal sums should balance, got %v", err)
	}

	// A one-cent drift is never tolerated.
	lines[2].Amount = decimal.RequireFromString("0.31")
	if err := ValidateEntry(chart, testEntry(), lines); !errors.Is(err, ErrUnbalancedEntry) {
		t.Fatalf("expected ErrUnbalancedEntry, got %v", err)
	}
}

func TestValidateEntryEmpty(t *testing.T) {
	t.Parallel()

	err := ValidateEntry(DefaultChart(), testEntry(), nil)
	if !errors.Is(err, ErrEmptyEntry) {
		t.Fatalf("expected ErrEmptyEntry, got %v", err)
	}
}

func TestValidateEntryLocked(t *testing.T) {
	t.Parallel()

	entry := testEntry()
	entry.Locked = true

	lines := []TransactionLine{
		{AccountCode: "1010", Amount: decimal.NewFromInt(10), TxType: Debit},
		{AccountCode: "4010", Amount: decimal.NewFromInt(10), TxType: Credit},
	}

	err := ValidateEntry(DefaultChart(), entry, lines)
	if !errors.Is(err, ErrEntryLocked) {
		t.Fatalf("expected ErrEntryLocked, got %v", err)
	}
}

func TestValidateEntryUnknownAccount(t *testing.T) {
	t.Parallel()

	lines := []TransactionLine{
		{AccountCode: "0000", Amount: decimal.NewFromInt(10), TxType: Debit},
		{AccountCode: "4010", Amount: decimal.NewFromInt(10), TxType: Credit},
	}

	err := ValidateEntry(DefaultChart(), testEntry(), lines)
	if !errors.Is(err, ErrUnknownAccount) {
		t.Fatalf("expected ErrUnknownAccount, got %v", err)
	}
}

func TestValidateEntryNegativeAmount(t *testing.T) {
	t.Parallel()

	lines := []TransactionLine{
		{AccountCode: "1010", Amount: decimal.NewFromInt(-10), TxType: Debit},
		{AccountCode: "4010", Amount: decimal.NewFromInt(-10), TxType: Credit},
	}

	err := ValidateEntry(DefaultChart(), testEntry(), lines)
	if !errors.Is(err, ErrNegativeAmount) {
		t.Fatalf("expected ErrNegativeAmount, got %v", err)
	}
}

func TestValidateEntryInvalidTxType(t *testing.T) {
	t.Parallel()

	lines := []TransactionLine{
		{AccountCode: "1010", Amount: decimal.NewFromInt(10), TxType: TxType("sideways")},
		{AccountCode: "4010", Amount: decimal.NewFromInt(10), TxType: Credit},
	}

	err := ValidateEntry(DefaultChart(), testEntry(), lines)
	if !errors.Is(err, ErrInvalidTxType) {
		t.Fatalf("expected ErrInvalidTxType, got %v", err)
	}
}

func TestValidateEntryInvalidActivity(t *testing.T) {
	t.Parallel()

	entry := testEntry()
	entry.Activity = Activity("speculating")

	lines := []TransactionLine{
		{AccountCode: "1010", Amount: decimal.NewFromInt(10), TxType: Debit},
		{AccountCode: "4010", Amount: decimal.NewFromInt(10), TxType: Credit},
	}

	err := ValidateEntry(DefaultChart(), entry, lines)
	if !errors.Is(err, ErrInvalidActivity) {
		t.Fatalf("expected ErrInvalidActivity, got %v", err)
	}
}

func TestLineFilterMatch(t *testing.T) {
	t.Parallel()

	line := PostedLine{
		TransactionLine: TransactionLine{AccountCode: "1010", Amount: decimal.NewFromInt(1), TxType: Debit},
		Timestamp:       mustTime("2024-02-15T00:00:00Z"),
		Activity:        ActivityOperating,
		EntityUnitID:    "unit-a",
	}

	from := mustTime("2024-02-01T00:00:00Z")
	to := mustTime("2024-02-28T00:00:00Z")

	tests := []struct {
		name   string
		filter LineFilter
		want   bool
	}{
		{"open filter", LineFilter{}, true},
		{"inside range", LineFilter{From: &from, To: &to}, true},
		{"before range", LineFilter{From: &to}, false},
		{"after range", LineFilter{To: &from}, false},
		{"activity match", LineFilter{Activity: ActivityOperating}, true},
		{"activity mismatch", LineFilter{Activity: ActivityFinancingEquity}, false},
		{"unit match", LineFilter{EntityUnitID: "unit-a"}, true},
		{"unit mismatch", LineFilter{EntityUnitID: "unit-b"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Match(line); got != tt.want {
				t.Fatalf("Match() = %v, want %v", got, tt.want)
			}
		})
	}
}
