package catalog

import (
	"context"

	"github.com/libris/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Book is a catalog entry identified by its ISBN. The catalog is
// read-only at runtime; books are loaded through the import tooling.
type Book struct {
	shared.BaseEntity
	ISBN   string
	Title  string
	Author string
	Year   int
}

// BookStats holds aggregate rating data fetched from the external
// ratings provider. A nil *BookStats on a detail page means the
// provider was unavailable or had no record for the ISBN.
type BookStats struct {
	ISBN             string
	RatingsCount     int64
	WorkRatingsCount int64
	AverageRating    decimal.Decimal
}

// ReviewStatsProvider fetches aggregate rating statistics for a book
// from an external source.
type ReviewStatsProvider interface {
	StatsByISBN(ctx context.Context, isbn string) (*BookStats, error)
}
