package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ReviewWithAuthor is the read model for listing reviews on a book
// detail page, joining in the reviewer's username.
type ReviewWithAuthor struct {
	ID        uuid.UUID
	Username  string
	Rating    int
	Comment   string
	CreatedAt time.Time
}

// ReviewRepository defines the persistence contract for reviews
type ReviewRepository interface {
	Create(ctx context.Context, review *Review) error
	ExistsByUserAndBook(ctx context.Context, userID, bookID uuid.UUID) (bool, error)
	// FindByBook returns all reviews for a book, newest first.
	FindByBook(ctx context.Context, bookID uuid.UUID) ([]*ReviewWithAuthor, error)
}
