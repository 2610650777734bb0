package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/libris/backend/internal/domain/shared"
)

// Review is a single user's opinion on a single book. The pair
// (UserID, BookID) is unique; a user reviews a book at most once.
type Review struct {
	shared.BaseEntity
	UserID  uuid.UUID
	BookID  uuid.UUID
	Rating  int
	Comment string
}

// NewReview creates a review after validating the rating and comment
func NewReview(userID, bookID uuid.UUID, rating int, comment string) (*Review, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_REVIEW", "Review must belong to a user")
	}
	if bookID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_REVIEW", "Review must reference a book")
	}
	if rating < 1 || rating > 5 {
		return nil, shared.NewDomainError("INVALID_RATING", "Rating must be between 1 and 5")
	}
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return nil, shared.NewDomainError("INVALID_COMMENT", "Comment cannot be empty")
	}
	if len(comment) > 2000 {
		return nil, shared.NewDomainError("INVALID_COMMENT", "Comment cannot exceed 2000 characters")
	}

	return &Review{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		BookID:     bookID,
		Rating:     rating,
		Comment:    comment,
	}, nil
}
