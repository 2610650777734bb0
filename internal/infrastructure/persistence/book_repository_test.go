package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/libris/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockBookRepository(t *testing.T) (*GormBookRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormBookRepository(gormDB), mock, mockDB
}

func TestGormBookRepository_FindByISBN(t *testing.T) {
	t.Run("finds existing book", func(t *testing.T) {
		repo, mock, mockDB := newMockBookRepository(t)
		defer mockDB.Close()

		bookID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "isbn", "title", "author", "year"}).
			AddRow(bookID, "0441172717", "Dune", "Frank Herbert", 1965)

		mock.ExpectQuery(`SELECT \* FROM "books" WHERE isbn = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("0441172717", 1).
			WillReturnRows(rows)

		book, err := repo.FindByISBN(context.Background(), "0441172717")

		assert.NoError(t, err)
		require.NotNil(t, book)
		assert.Equal(t, "Dune", book.Title)
		assert.Equal(t, "Frank Herbert", book.Author)
		assert.Equal(t, 1965, book.Year)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for unknown isbn", func(t *testing.T) {
		repo, mock, mockDB := newMockBookRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "books" WHERE isbn = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("0000000000", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		book, err := repo.FindByISBN(context.Background(), "0000000000")

		assert.Error(t, err)
		assert.Nil(t, book)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormBookRepository_Search(t *testing.T) {
	t.Run("matches case-insensitively across columns", func(t *testing.T) {
		repo, mock, mockDB := newMockBookRepository(t)
		defer mockDB.Close()

		rows := sqlmock.NewRows([]string{"id", "isbn", "title", "author", "year"}).
			AddRow(uuid.New(), "0441172717", "Dune", "Frank Herbert", 1965).
			AddRow(uuid.New(), "0593099322", "Dune Messiah", "Frank Herbert", 1969)

		mock.ExpectQuery(`SELECT \* FROM "books" WHERE LOWER\(isbn\) LIKE \$1 OR LOWER\(title\) LIKE \$2 OR LOWER\(author\) LIKE \$3 ORDER BY title asc LIMIT .*`).
			WithArgs("%dune%", "%dune%", "%dune%", defaultSearchLimit).
			WillReturnRows(rows)

		books, err := repo.Search(context.Background(), "  DUNE ", 0)

		assert.NoError(t, err)
		require.Len(t, books, 2)
		assert.Equal(t, "Dune", books[0].Title)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns empty slice when nothing matches", func(t *testing.T) {
		repo, mock, mockDB := newMockBookRepository(t)
		defer mockDB.Close()

		rows := sqlmock.NewRows([]string{"id", "isbn", "title", "author", "year"})

		mock.ExpectQuery(`SELECT \* FROM "books" WHERE LOWER\(isbn\) LIKE \$1 OR LOWER\(title\) LIKE \$2 OR LOWER\(author\) LIKE \$3 ORDER BY title asc LIMIT .*`).
			WithArgs("%xyzzy%", "%xyzzy%", "%xyzzy%", defaultSearchLimit).
			WillReturnRows(rows)

		books, err := repo.Search(context.Background(), "xyzzy", 0)

		assert.NoError(t, err)
		assert.Empty(t, books)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
