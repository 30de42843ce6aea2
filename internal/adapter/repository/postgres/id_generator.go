package postgres

import (
	"github.com/oklog/ulid/v2"
)

// ULIDGenerator mints lexicographically sortable IDs for ledgers, journal
// entries and transaction lines. Sortable IDs keep index pages warm on
// append-heavy tables.
type ULIDGenerator struct{}

// NewULIDGenerator creates a new ULIDGenerator.
func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{}
}

// Generate returns a new ULID string.
func (g *ULIDGenerator) Generate() string {
	return ulid.Make().String()
}
