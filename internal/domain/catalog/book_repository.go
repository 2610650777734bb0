package catalog

import "context"

// BookRepository defines read access to the catalog
type BookRepository interface {
	FindByISBN(ctx context.Context, isbn string) (*Book, error)
	// Search matches the query case-insensitively as a substring of
	// the ISBN, title, or author. Results are ordered by title.
	Search(ctx context.Context, query string, limit int) ([]*Book, error)
}
