package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/libris/backend/internal/domain/catalog"
	"github.com/libris/backend/internal/domain/shared"
	"github.com/libris/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormReviewRepository implements ReviewRepository using GORM
type GormReviewRepository struct {
	db *gorm.DB
}

// NewGormReviewRepository creates a new GormReviewRepository
func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// Create creates a new review. The unique index on (user_id, book_id)
// backstops the application-level duplicate check.
func (r *GormReviewRepository) Create(ctx context.Context, review *catalog.Review) error {
	var model models.ReviewModel
	model.FromDomain(review)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// ExistsByUserAndBook checks if the user has already reviewed the book
func (r *GormReviewRepository) ExistsByUserAndBook(ctx context.Context, userID, bookID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ReviewModel{}).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// reviewWithAuthorRow is the scan target for the review listing join
type reviewWithAuthorRow struct {
	ID        uuid.UUID
	Username  string
	Rating    int
	Comment   string
	CreatedAt time.Time
}

// FindByBook returns all reviews for a book with reviewer usernames, newest first
func (r *GormReviewRepository) FindByBook(ctx context.Context, bookID uuid.UUID) ([]*catalog.ReviewWithAuthor, error) {
	var rows []reviewWithAuthorRow
	if err := r.db.WithContext(ctx).
		Model(&models.ReviewModel{}).
		Select("reviews.id, users.username, reviews.rating, reviews.comment, reviews.created_at").
		Joins("JOIN users ON users.id = reviews.user_id").
		Where("reviews.book_id = ?", bookID).
		Order("reviews.created_at desc").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	reviews := make([]*catalog.ReviewWithAuthor, len(rows))
	for i, row := range rows {
		reviews[i] = &catalog.ReviewWithAuthor{
			ID:        row.ID,
			Username:  row.Username,
			Rating:    row.Rating,
			Comment:   row.Comment,
			CreatedAt: row.CreatedAt,
		}
	}
	return reviews, nil
}

// Ensure GormReviewRepository implements ReviewRepository
var _ catalog.ReviewRepository = (*GormReviewRepository)(nil)
