package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TxType is the direction of a transaction line. The same values double as
// balance types: an account increases when transacted in its balance type
// direction.
type TxType string

const (
	Debit  TxType = "debit"
	Credit TxType = "credit"
)

// Valid reports whether t is a known transaction type.
func (t TxType) Valid() bool {
	return t == Debit || t == Credit
}

// Activity classifies a journal entry for the cash flow statement. The
// investing and financing activities carry sub-tags so the statement can
// break them into sections.
type Activity string

const (
	ActivityNone Activity = ""

	ActivityOperating Activity = "op"

	ActivityInvestingPPE        Activity = "inv_ppe"
	ActivityInvestingSecurities Activity = "inv_securities"
	ActivityInvestingOther      Activity = "inv"

	ActivityFinancingSTD       Activity = "fin_std"
	ActivityFinancingLTD       Activity = "fin_ltd"
	ActivityFinancingEquity    Activity = "fin_equity"
	ActivityFinancingDividends Activity = "fin_dividends"
	ActivityFinancingOther     Activity = "fin"
)

// ValidActivities lists every assignable activity tag.
var ValidActivities = []Activity{
	ActivityOperating,
	ActivityInvestingPPE, ActivityInvestingSecurities, ActivityInvestingOther,
	ActivityFinancingSTD, ActivityFinancingLTD,
	ActivityFinancingEquity, ActivityFinancingDividends, ActivityFinancingOther,
}

// Valid reports whether a is empty or a known activity tag.
func (a Activity) Valid() bool {
	if a == ActivityNone {
		return true
	}
	for _, v := range ValidActivities {
		if a == v {
			return true
		}
	}
	return false
}

// IsOperating reports whether the activity is an operating activity.
func (a Activity) IsOperating() bool { return a == ActivityOperating }

// IsInvesting reports whether the activity is an investing activity.
func (a Activity) IsInvesting() bool { return strings.HasPrefix(string(a), "inv") }

// IsFinancing reports whether the activity is a financing activity.
func (a Activity) IsFinancing() bool { return strings.HasPrefix(string(a), "fin") }

// Account binds an account code to its role in the taxonomy. Immutable once
// referenced by posted transactions.
type Account struct {
	Code string
	Name string
	Role Role
}

// BalanceType returns the natural balance type of the account's role.
func (a Account) BalanceType() TxType {
	return a.Role.BalanceType()
}

// TransactionLine is a single debit or credit against an account, owned by a
// journal entry. Never mutated after the owning entry is posted and locked.
type TransactionLine struct {
	ID             string
	JournalEntryID string
	AccountCode    string
	Amount         decimal.Decimal
	TxType         TxType
	Description    string
}

// JournalEntry groups transaction lines that must balance. An entry that is
// locked rejects any further mutation.
type JournalEntry struct {
	ID           string
	LedgerID     string
	Timestamp    time.Time
	Description  string
	Activity     Activity
	EntityUnitID string
	Posted       bool
	Locked       bool
}

// Ledger is a named container of journal entries. Balances are always
// derived, never stored on the ledger.
type Ledger struct {
	ID        string
	Name      string
	XID       string
	Posted    bool
	Locked    bool
	CreatedAt time.Time
}

// PostedLine joins a transaction line with the metadata of its owning entry.
// It is the unit of input to balance aggregation.
type PostedLine struct {
	TransactionLine
	LedgerID     string
	Timestamp    time.Time
	Activity     Activity
	EntityUnitID string
}

// LineFilter scopes a balance aggregation. Nil time bounds are open ended;
// both bounds are inclusive. Empty Activity and EntityUnitID match all.
type LineFilter struct {
	From         *time.Time
	To           *time.Time
	Activity     Activity
	EntityUnitID string
}

// Match reports whether the posted line passes the filter.
func (f LineFilter) Match(line PostedLine) bool {
	if f.From != nil && line.Timestamp.Before(*f.From) {
		return false
	}
	if f.To != nil && line.Timestamp.After(*f.To) {
		return false
	}
	if f.Activity != ActivityNone && line.Activity != f.Activity {
		return false
	}
	if f.EntityUnitID != "" && line.EntityUnitID != f.EntityUnitID {
		return false
	}
	return true
}
