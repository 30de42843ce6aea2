package dto

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gobooks/internal/blueprint"
	"github.com/iho/gobooks/internal/domain"
)

var errEntryShape = errors.New("entry must carry either a blueprint reference or raw lines")

func errMissingField(field string) error {
	return fmt.Errorf("missing required field %s", field)
}

// LedgerResponse represents a ledger in API responses.
type LedgerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	XID       string    `json:"xid"`
	Posted    bool      `json:"posted"`
	Locked    bool      `json:"locked"`
	CreatedAt time.Time `json:"created_at"`
}

// LedgerFromDomain converts a domain ledger to a response.
func LedgerFromDomain(l domain.Ledger) *LedgerResponse {
	return &LedgerResponse{
		ID:        l.ID,
		Name:      l.Name,
		XID:       l.XID,
		Posted:    l.Posted,
		Locked:    l.Locked,
		CreatedAt: l.CreatedAt,
	}
}

// LedgersFromDomain converts domain ledgers to responses.
func LedgersFromDomain(ledgers []domain.Ledger) []*LedgerResponse {
	result := make([]*LedgerResponse, len(ledgers))
	for i, l := range ledgers {
		result[i] = LedgerFromDomain(l)
	}
	return result
}

// EntryResponse represents a committed journal entry.
type EntryResponse struct {
	ID           string         `json:"id"`
	LedgerID     string         `json:"ledger_id"`
	Timestamp    time.Time      `json:"timestamp"`
	Description  string         `json:"description"`
	Activity     string         `json:"activity"`
	EntityUnitID string         `json:"entity_unit_id,omitempty"`
	Posted       bool           `json:"posted"`
	Lines        []LineResponse `json:"lines"`
}

// LineResponse represents a committed transaction line.
type LineResponse struct {
	ID          string          `json:"id"`
	AccountCode string          `json:"account_code"`
	Amount      decimal.Decimal `json:"amount"`
	TxType      string          `json:"tx_type"`
	Description string          `json:"description,omitempty"`
}

// CommitResponse reports what a successful batch commit created.
type CommitResponse struct {
	Ledgers []*LedgerResponse `json:"ledgers"`
	Entries []EntryResponse   `json:"entries"`
}

// CommitFromResult converts a cursor commit result.
func CommitFromResult(result *blueprint.CommitResult) *CommitResponse {
	resp := &CommitResponse{
		Ledgers: LedgersFromDomain(result.Ledgers),
		Entries: make([]EntryResponse, len(result.Entries)),
	}
	for i, rec := range result.Entries {
		entry := EntryResponse{
			ID:           rec.Entry.ID,
			LedgerID:     rec.Entry.LedgerID,
			Timestamp:    rec.Entry.Timestamp,
			Description:  rec.Entry.Description,
			Activity:     string(rec.Entry.Activity),
			EntityUnitID: rec.Entry.EntityUnitID,
			Posted:       rec.Entry.Posted,
			Lines:        make([]LineResponse, len(rec.Lines)),
		}
		for j, line := range rec.Lines {
			entry.Lines[j] = LineResponse{
				ID:          line.ID,
				AccountCode: line.AccountCode,
				Amount:      line.Amount,
				TxType:      string(line.TxType),
				Description: line.Description,
			}
		}
		resp.Entries[i] = entry
	}
	return resp
}

// EntryFailureResponse identifies one rejected entry of a failed batch.
type EntryFailureResponse struct {
	Index       int    `json:"index"`
	Blueprint   string `json:"blueprint,omitempty"`
	Description string `json:"description,omitempty"`
	Reason      string `json:"reason"`
}

// BatchErrorResponse enumerates every failing entry of a rejected commit.
type BatchErrorResponse struct {
	Error    string                 `json:"error"`
	Failures []EntryFailureResponse `json:"failures"`
}

// BatchErrorFromCommit converts a BatchCommitError.
func BatchErrorFromCommit(err *blueprint.BatchCommitError) *BatchErrorResponse {
	resp := &BatchErrorResponse{
		Error:    "batch validation failed",
		Failures: make([]EntryFailureResponse, len(err.Failures)),
	}
	for i, f := range err.Failures {
		resp.Failures[i] = EntryFailureResponse{
			Index:       f.Index,
			Blueprint:   f.Blueprint,
			Description: f.Description,
			Reason:      f.Err.Error(),
		}
	}
	return resp
}

// AccountResponse represents a chart-of-accounts entry.
type AccountResponse struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	RoleName    string `json:"role_name"`
	BalanceType string `json:"balance_type"`
}

// AccountsFromChart converts the chart to responses, sorted by code.
func AccountsFromChart(chart *domain.ChartOfAccounts) []AccountResponse {
	accounts := chart.Accounts()
	result := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		result[i] = AccountResponse{
			Code:        acc.Code,
			Name:        acc.Name,
			Role:        string(acc.Role),
			RoleName:    acc.Role.Name(),
			BalanceType: string(acc.Role.BalanceType()),
		}
	}
	return result
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
