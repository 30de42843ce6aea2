package dto

import (
	"time"
)

// CreateLedgerRequest creates a ledger ahead of commits. XID is the
// caller-facing name commits reference.
type CreateLedgerRequest struct {
	Name string `json:"name"`
	XID  string `json:"xid"`
}

// Validate checks required fields.
func (r *CreateLedgerRequest) Validate() error {
	if r.XID == "" {
		return errMissingField("xid")
	}
	if r.Name == "" {
		r.Name = r.XID
	}
	return nil
}

// CommitRequest posts a batch of journal entries. Every entry either names
// a registered blueprint with args, or carries raw lines.
type CommitRequest struct {
	Timestamp     time.Time     `json:"timestamp"`
	Post          bool          `json:"post"`
	StrictLedgers bool          `json:"strict_ledgers"`
	Entries       []CommitEntry `json:"entries"`
}

// Validate checks the batch shape. Accounting validation happens in the
// cursor commit.
func (r *CommitRequest) Validate() error {
	if len(r.Entries) == 0 {
		return errMissingField("entries")
	}
	for i := range r.Entries {
		if err := r.Entries[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// CommitEntry is one journal entry of a commit batch.
type CommitEntry struct {
	LedgerXID    string            `json:"ledger_xid"`
	Description  string            `json:"description"`
	Activity     string            `json:"activity"`
	EntityUnitID string            `json:"entity_unit_id,omitempty"`
	Blueprint    string            `json:"blueprint,omitempty"`
	Args         map[string]string `json:"args,omitempty"`
	Lines        []LineInstruction `json:"lines,omitempty"`
}

// Validate checks that the entry is either a blueprint reference or a raw
// line set, not both and not neither.
func (e *CommitEntry) Validate() error {
	if e.LedgerXID == "" {
		return errMissingField("ledger_xid")
	}
	hasBlueprint := e.Blueprint != ""
	hasLines := len(e.Lines) > 0
	if hasBlueprint == hasLines {
		return errEntryShape
	}
	return nil
}

// LineInstruction is a raw debit or credit. Amount is a decimal string so
// callers never round through floats.
type LineInstruction struct {
	AccountCode string `json:"account_code"`
	Amount      string `json:"amount"`
	TxType      string `json:"tx_type"`
	Description string `json:"description,omitempty"`
}
