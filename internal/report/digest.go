package report

import "time"

// StatementMeta carries the scope a statement was generated for. FromDate is
// nil for point-in-time statements (balance sheet).
type StatementMeta struct {
	FromDate     *time.Time `json:"from_date,omitempty"`
	ToDate       time.Time  `json:"to_date"`
	EntityUnitID string     `json:"entity_unit_id,omitempty"`
}

func periodMeta(from, to time.Time, unit string) StatementMeta {
	f := from
	return StatementMeta{FromDate: &f, ToDate: to, EntityUnitID: unit}
}

func snapshotMeta(asOf time.Time, unit string) StatementMeta {
	return StatementMeta{ToDate: asOf, EntityUnitID: unit}
}
