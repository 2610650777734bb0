package models

import (
	"github.com/google/uuid"
	"github.com/libris/backend/internal/domain/catalog"
)

// BookModel is the persistence model for catalog books
type BookModel struct {
	BaseModel
	ISBN   string `gorm:"type:varchar(20);not null;uniqueIndex"`
	Title  string `gorm:"type:varchar(255);not null;index"`
	Author string `gorm:"type:varchar(255);not null;index"`
	Year   int    `gorm:"not null"`
}

// TableName returns the table name for BookModel
func (BookModel) TableName() string {
	return "books"
}

// ToDomain converts BookModel to domain Book
func (m *BookModel) ToDomain() *catalog.Book {
	return &catalog.Book{
		BaseEntity: m.BaseModel.ToDomain(),
		ISBN:       m.ISBN,
		Title:      m.Title,
		Author:     m.Author,
		Year:       m.Year,
	}
}

// FromDomain populates BookModel from domain Book
func (m *BookModel) FromDomain(b *catalog.Book) {
	m.FromDomainBaseEntity(b.BaseEntity)
	m.ISBN = b.ISBN
	m.Title = b.Title
	m.Author = b.Author
	m.Year = b.Year
}

// ReviewModel is the persistence model for reviews
type ReviewModel struct {
	BaseModel
	UserID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_user_book"`
	BookID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_user_book;index"`
	Rating  int       `gorm:"not null"`
	Comment string    `gorm:"type:text;not null"`
}

// TableName returns the table name for ReviewModel
func (ReviewModel) TableName() string {
	return "reviews"
}

// ToDomain converts ReviewModel to domain Review
func (m *ReviewModel) ToDomain() *catalog.Review {
	return &catalog.Review{
		BaseEntity: m.BaseModel.ToDomain(),
		UserID:     m.UserID,
		BookID:     m.BookID,
		Rating:     m.Rating,
		Comment:    m.Comment,
	}
}

// FromDomain populates ReviewModel from domain Review
func (m *ReviewModel) FromDomain(r *catalog.Review) {
	m.FromDomainBaseEntity(r.BaseEntity)
	m.UserID = r.UserID
	m.BookID = r.BookID
	m.Rating = r.Rating
	m.Comment = r.Comment
}
