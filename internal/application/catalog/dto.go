package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SearchInput contains input for a catalog search
type SearchInput struct {
	Query string
	Limit int
}

// BookSummary is a single search result
type BookSummary struct {
	ISBN   string
	Title  string
	Author string
	Year   int
}

// SearchResult holds the outcome of a catalog search
type SearchResult struct {
	Query string
	Books []BookSummary
}

// StatsInfo carries the external rating aggregates for a book
type StatsInfo struct {
	RatingsCount     int64
	WorkRatingsCount int64
	AverageRating    decimal.Decimal
}

// ReviewInfo is a single review shown on the detail page
type ReviewInfo struct {
	ID        uuid.UUID
	Username  string
	Rating    int
	Comment   string
	CreatedAt time.Time
}

// BookDetail is the full book page payload. Stats is nil when the
// external provider had no data or was unreachable.
type BookDetail struct {
	ISBN    string
	Title   string
	Author  string
	Year    int
	Stats   *StatsInfo
	Reviews []ReviewInfo
}

// SubmitReviewInput contains input for submitting a review
type SubmitReviewInput struct {
	UserID  uuid.UUID
	ISBN    string
	Rating  int
	Comment string
}
