package catalog

import (
	"context"
	"strings"

	"github.com/libris/backend/internal/domain/catalog"
	"github.com/libris/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CatalogService handles search, book detail, and review submission
type CatalogService struct {
	bookRepo      catalog.BookRepository
	reviewRepo    catalog.ReviewRepository
	statsProvider catalog.ReviewStatsProvider
	logger        *zap.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(
	bookRepo catalog.BookRepository,
	reviewRepo catalog.ReviewRepository,
	statsProvider catalog.ReviewStatsProvider,
	logger *zap.Logger,
) *CatalogService {
	return &CatalogService{
		bookRepo:      bookRepo,
		reviewRepo:    reviewRepo,
		statsProvider: statsProvider,
		logger:        logger,
	}
}

// Search runs a case-insensitive substring search over the catalog
func (s *CatalogService) Search(ctx context.Context, input SearchInput) (*SearchResult, error) {
	query := strings.TrimSpace(input.Query)
	if query == "" {
		return nil, shared.NewDomainError("MISSING_QUERY", "Please provide a search term")
	}

	books, err := s.bookRepo.Search(ctx, query, input.Limit)
	if err != nil {
		s.logger.Error("Catalog search failed", zap.String("query", query), zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Search failed")
	}

	summaries := make([]BookSummary, len(books))
	for i, book := range books {
		summaries[i] = BookSummary{
			ISBN:   book.ISBN,
			Title:  book.Title,
			Author: book.Author,
			Year:   book.Year,
		}
	}

	return &SearchResult{Query: query, Books: summaries}, nil
}

// GetBookDetail loads a book with its reviews and external rating
// stats. Stats failures are logged and the page renders without them.
func (s *CatalogService) GetBookDetail(ctx context.Context, isbn string) (*BookDetail, error) {
	book, err := s.bookRepo.FindByISBN(ctx, isbn)
	if err != nil {
		if err == shared.ErrNotFound {
			return nil, shared.NewDomainError("BOOK_NOT_FOUND", "No book with that ISBN")
		}
		s.logger.Error("Failed to load book", zap.String("isbn", isbn), zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load book")
	}

	detail := &BookDetail{
		ISBN:   book.ISBN,
		Title:  book.Title,
		Author: book.Author,
		Year:   book.Year,
	}

	stats, err := s.statsProvider.StatsByISBN(ctx, book.ISBN)
	if err != nil {
		s.logger.Warn("Review stats unavailable",
			zap.String("isbn", book.ISBN),
			zap.Error(err))
	} else {
		detail.Stats = &StatsInfo{
			RatingsCount:     stats.RatingsCount,
			WorkRatingsCount: stats.WorkRatingsCount,
			AverageRating:    stats.AverageRating,
		}
	}

	reviews, err := s.reviewRepo.FindByBook(ctx, book.ID)
	if err != nil {
		s.logger.Error("Failed to load reviews", zap.String("isbn", book.ISBN), zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load reviews")
	}

	detail.Reviews = make([]ReviewInfo, len(reviews))
	for i, review := range reviews {
		detail.Reviews[i] = ReviewInfo{
			ID:        review.ID,
			Username:  review.Username,
			Rating:    review.Rating,
			Comment:   review.Comment,
			CreatedAt: review.CreatedAt,
		}
	}

	return detail, nil
}

// SubmitReview records a user's review of a book. One review per
// user/book pair; a second submission is rejected without a write.
func (s *CatalogService) SubmitReview(ctx context.Context, input SubmitReviewInput) error {
	book, err := s.bookRepo.FindByISBN(ctx, input.ISBN)
	if err != nil {
		if err == shared.ErrNotFound {
			return shared.NewDomainError("BOOK_NOT_FOUND", "No book with that ISBN")
		}
		s.logger.Error("Failed to load book for review", zap.String("isbn", input.ISBN), zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to submit review")
	}

	exists, err := s.reviewRepo.ExistsByUserAndBook(ctx, input.UserID, book.ID)
	if err != nil {
		s.logger.Error("Failed to check for existing review", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to submit review")
	}
	if exists {
		return shared.NewDomainError("REVIEW_EXISTS", "You have already reviewed this book")
	}

	review, err := catalog.NewReview(input.UserID, book.ID, input.Rating, input.Comment)
	if err != nil {
		return err
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		if err == shared.ErrAlreadyExists {
			// Unique index caught a concurrent duplicate
			return shared.NewDomainError("REVIEW_EXISTS", "You have already reviewed this book")
		}
		s.logger.Error("Failed to create review", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to submit review")
	}

	s.logger.Info("Review submitted",
		zap.String("isbn", book.ISBN),
		zap.String("user_id", input.UserID.String()),
		zap.Int("rating", input.Rating))

	return nil
}
