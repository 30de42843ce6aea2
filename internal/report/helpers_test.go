package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gobooks/internal/domain"
)

func mustTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// testLine builds a posted line for aggregation tests. The entry metadata
// fields that aggregation ignores are left zero.
func testLine(code, amount string, tx domain.TxType, ts time.Time, activity domain.Activity) domain.PostedLine {
	return domain.PostedLine{
		TransactionLine: domain.TransactionLine{
			AccountCode: code,
			Amount:      dec(amount),
			TxType:      tx,
		},
		Timestamp: ts,
		Activity:  activity,
	}
}

// balancedPair builds a two-line posted entry: debit one account, credit
// another, same amount.
func balancedPair(debitCode, creditCode, amount string, ts time.Time, activity domain.Activity) []domain.PostedLine {
	return []domain.PostedLine{
		testLine(debitCode, amount, domain.Debit, ts, activity),
		testLine(creditCode, amount, domain.Credit, ts, activity),
	}
}
