package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// SumByTxType totals line amounts per transaction type using exact decimal
// arithmetic.
func SumByTxType(lines []TransactionLine) (debits, credits decimal.Decimal) {
	for _, line := range lines {
		switch line.TxType {
		case Debit:
			debits = debits.Add(line.Amount)
		case Credit:
			credits = credits.Add(line.Amount)
		}
	}
	return debits, credits
}

// ValidateEntry checks a journal entry and its transaction lines against the
// double-entry invariants. It is pure: no ledger state is touched and the
// caller decides what to do with a failure.
//
// Rules enforced, in order:
//   - a locked entry rejects validation of new lines
//   - an entry with zero lines is invalid
//   - every line must carry a valid tx type and a non-negative amount
//   - every account code must resolve through the chart of accounts
//   - debits must equal credits exactly (decimal equality, zero tolerance)
func ValidateEntry(chart *ChartOfAccounts, entry JournalEntry, lines []TransactionLine) error {
	if entry.Locked {
		return fmt.Errorf("%w: entry %s", ErrEntryLocked, entry.ID)
	}
	if len(lines) == 0 {
		return fmt.Errorf("%w: entry %s", ErrEmptyEntry, entry.ID)
	}
	if !entry.Activity.Valid() {
		return fmt.Errorf("%w: %q on entry %s", ErrInvalidActivity, entry.Activity, entry.ID)
	}

	for _, line := range lines {
		if !line.TxType.Valid() {
			return fmt.Errorf("%w: %q on account %s", ErrInvalidTxType, line.TxType, line.AccountCode)
		}
		if line.Amount.IsNegative() {
			return fmt.Errorf("%w: %s on account %s", ErrNegativeAmount, line.Amount, line.AccountCode)
		}
		if _, err := chart.Resolve(line.AccountCode); err != nil {
			return err
		}
	}

	debits, credits := SumByTxType(lines)
	if !debits.Equal(credits) {
		return &UnbalancedEntryError{
			EntryID: entry.ID,
			Debits:  debits,
			Credits: credits,
		}
	}

	return nil
}
