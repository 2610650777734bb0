package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/libris/backend/internal/domain/catalog"
	"github.com/libris/backend/internal/domain/shared"
	"github.com/libris/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

const defaultSearchLimit = 50

// GormBookRepository implements BookRepository using GORM
type GormBookRepository struct {
	db *gorm.DB
}

// NewGormBookRepository creates a new GormBookRepository
func NewGormBookRepository(db *gorm.DB) *GormBookRepository {
	return &GormBookRepository{db: db}
}

// FindByISBN finds a book by its ISBN
func (r *GormBookRepository) FindByISBN(ctx context.Context, isbn string) (*catalog.Book, error) {
	var model models.BookModel
	if err := r.db.WithContext(ctx).
		Where("isbn = ?", isbn).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Search matches the query case-insensitively against isbn, title, and
// author. LOWER() rather than ILIKE keeps the query portable between
// postgres and sqlite.
func (r *GormBookRepository) Search(ctx context.Context, query string, limit int) ([]*catalog.Book, error) {
	if limit <= 0 || limit > defaultSearchLimit {
		limit = defaultSearchLimit
	}

	pattern := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"

	var bookModels []*models.BookModel
	if err := r.db.WithContext(ctx).
		Where("LOWER(isbn) LIKE ? OR LOWER(title) LIKE ? OR LOWER(author) LIKE ?",
			pattern, pattern, pattern).
		Order("title asc").
		Limit(limit).
		Find(&bookModels).Error; err != nil {
		return nil, err
	}

	books := make([]*catalog.Book, len(bookModels))
	for i, model := range bookModels {
		books[i] = model.ToDomain()
	}
	return books, nil
}

// Ensure GormBookRepository implements BookRepository
var _ catalog.BookRepository = (*GormBookRepository)(nil)
