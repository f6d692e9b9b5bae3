package postgres

import "github.com/oklog/ulid/v2"

// ULIDGenerator implements usecase.IDGenerator. ULIDs sort by creation time,
// which keeps "ORDER BY created_at, id" stable for rows written in the same
// millisecond.
type ULIDGenerator struct{}

// NewULIDGenerator creates a new ULIDGenerator.
func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{}
}

// Generate returns a new monotonic ULID string.
func (g *ULIDGenerator) Generate() string {
	return ulid.Make().String()
}
