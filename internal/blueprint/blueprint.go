// Package blueprint is a small instruction DSL for composing journal
// entries. Callers register named blueprint functions in a Library, then use
// a Cursor to stage instructions against target ledgers and commit the whole
// batch atomically through entry validation.
package blueprint

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/iho/gobooks/internal/domain"
)

// amountPrecision is the decimal scale instruction amounts are normalized to.
const amountPrecision = 2

// Instruction is a single staged debit or credit.
type Instruction struct {
	TxType      domain.TxType
	AccountCode string
	Amount      decimal.Decimal
	Description string
}

// Blueprint is an ordered set of debit/credit instructions sharing one
// journal entry. A blueprint is a template: it references accounts by code
// and no ledger until a cursor dispatches it.
type Blueprint struct {
	description  string
	activity     domain.Activity
	entityUnitID string
	instructions []Instruction
}

// New starts an empty blueprint for the given entry description and
// activity classification.
func New(description string, activity domain.Activity) *Blueprint {
	return &Blueprint{description: description, activity: activity}
}

// Debit appends a debit instruction. Amounts are normalized to two decimal
// places; negative amounts are rejected.
func (b *Blueprint) Debit(accountCode string, amount decimal.Decimal, description string) error {
	return b.add(domain.Debit, accountCode, amount, description)
}

// Credit appends a credit instruction.
func (b *Blueprint) Credit(accountCode string, amount decimal.Decimal, description string) error {
	return b.add(domain.Credit, accountCode, amount, description)
}

func (b *Blueprint) add(tx domain.TxType, accountCode string, amount decimal.Decimal, description string) error {
	if amount.IsNegative() {
		return fmt.Errorf("%w: %s %s on account %s",
			domain.ErrNegativeAmount, tx, amount, accountCode)
	}
	b.instructions = append(b.instructions, Instruction{
		TxType:      tx,
		AccountCode: accountCode,
		Amount:      amount.Round(amountPrecision),
		Description: description,
	})
	return nil
}

// Description returns the entry description the blueprint was created with.
func (b *Blueprint) Description() string { return b.description }

// Activity returns the activity tag the dispatched entry will carry.
func (b *Blueprint) Activity() domain.Activity { return b.activity }

// SetEntityUnit tags the dispatched entry with an entity unit, scoping it
// for per-unit statements.
func (b *Blueprint) SetEntityUnit(id string) { b.entityUnitID = id }

// EntityUnit returns the entity unit tag, empty when unscoped.
func (b *Blueprint) EntityUnit() string { return b.entityUnitID }

// Instructions returns the staged instructions in dispatch order.
func (b *Blueprint) Instructions() []Instruction { return b.instructions }

// Balanced reports whether staged debits equal staged credits. Commit
// validates this again through the entry validator; the method exists so
// blueprint functions can check themselves early.
func (b *Blueprint) Balanced() bool {
	debits, credits := decimal.Zero, decimal.Zero
	for _, ins := range b.instructions {
		switch ins.TxType {
		case domain.Debit:
			debits = debits.Add(ins.Amount)
		case domain.Credit:
			credits = credits.Add(ins.Amount)
		}
	}
	return debits.Equal(credits)
}

// Args carries named blueprint parameters.
type Args map[string]any

// Decimal extracts a decimal argument. Accepts decimal.Decimal or a numeric
// string.
func (a Args) Decimal(key string) (decimal.Decimal, error) {
	v, ok := a[key]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrMissingArgument, key)
	}
	switch t := v.(type) {
	case decimal.Decimal:
		return t, nil
	case string:
		d, err := decimal.NewFromString(t)
		if err != nil {
			return decimal.Zero, fmt.Errorf("%w: %s: %v", ErrInvalidArgument, key, err)
		}
		return d, nil
	default:
		return decimal.Zero, fmt.Errorf("%w: %s is %T, want decimal", ErrInvalidArgument, key, v)
	}
}

// String extracts a string argument, empty string if absent.
func (a Args) String(key string) string {
	s, _ := a[key].(string)
	return s
}

// BlueprintFunc builds a blueprint from caller arguments. Functions are
// registered by name in a Library.
type BlueprintFunc func(args Args) (*Blueprint, error)
