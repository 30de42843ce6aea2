package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// Validation errors
	ErrUnbalancedEntry = errors.New("journal entry debits do not equal credits")
	ErrEmptyEntry      = errors.New("journal entry has no transaction lines")
	ErrEntryLocked     = errors.New("journal entry is locked")
	ErrUnknownAccount  = errors.New("account code is not registered")
	ErrInvalidTxType   = errors.New("invalid transaction type")
	ErrInvalidActivity = errors.New("invalid journal entry activity")
	ErrNegativeAmount  = errors.New("transaction amount cannot be negative")

	// Chart of accounts errors
	ErrUnknownRole      = errors.New("account role is not part of the taxonomy")
	ErrDuplicateAccount = errors.New("account code already registered")

	// Ledger errors
	ErrLedgerNotFound = errors.New("ledger not found")
	ErrLedgerExists   = errors.New("ledger already exists")
	ErrLedgerLocked   = errors.New("ledger is locked")
	ErrEntryNotFound  = errors.New("journal entry not found")
	ErrDuplicateEntry = errors.New("journal entry already recorded")

	// Ratio errors
	ErrUndefinedRatio = errors.New("ratio is undefined: zero denominator")
)

// UnbalancedEntryError reports the exact debit/credit totals of an entry
// that fails the double-entry invariant.
type UnbalancedEntryError struct {
	EntryID string
	Debits  decimal.Decimal
	Credits decimal.Decimal
}

func (e *UnbalancedEntryError) Error() string {
	return fmt.Sprintf(
		"journal entry %s is unbalanced: debits=%s credits=%s difference=%s",
		e.EntryID, e.Debits, e.Credits, e.Debits.Sub(e.Credits),
	)
}

func (e *UnbalancedEntryError) Unwrap() error { return ErrUnbalancedEntry }

// UnknownRoleError identifies the offending role at chart registration time.
type UnknownRoleError struct {
	AccountCode string
	Role        Role
}

func (e *UnknownRoleError) Error() string {
	return fmt.Sprintf("account %s declares unknown role %q", e.AccountCode, e.Role)
}

func (e *UnknownRoleError) Unwrap() error { return ErrUnknownRole }

// UnknownAccountError identifies a transaction line referencing an account
// code absent from the chart of accounts.
type UnknownAccountError struct {
	AccountCode string
}

func (e *UnknownAccountError) Error() string {
	return fmt.Sprintf("account code %s is not registered in the chart of accounts", e.AccountCode)
}

func (e *UnknownAccountError) Unwrap() error { return ErrUnknownAccount }
