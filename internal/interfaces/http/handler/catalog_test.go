package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appcatalog "github.com/libris/backend/internal/application/catalog"
	"github.com/libris/backend/internal/domain/catalog"
	"github.com/libris/backend/internal/domain/shared"
	"github.com/libris/backend/internal/infrastructure/auth"
	"github.com/libris/backend/internal/infrastructure/config"
	"github.com/libris/backend/internal/interfaces/http/middleware"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockBookRepository is a mock implementation of catalog.BookRepository
type MockBookRepository struct {
	mock.Mock
}

func (m *MockBookRepository) FindByISBN(ctx context.Context, isbn string) (*catalog.Book, error) {
	args := m.Called(ctx, isbn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Book), args.Error(1)
}

func (m *MockBookRepository) Search(ctx context.Context, query string, limit int) ([]*catalog.Book, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.Book), args.Error(1)
}

// MockReviewRepository is a mock implementation of catalog.ReviewRepository
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, review *catalog.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) ExistsByUserAndBook(ctx context.Context, userID, bookID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, bookID)
	return args.Bool(0), args.Error(1)
}

func (m *MockReviewRepository) FindByBook(ctx context.Context, bookID uuid.UUID) ([]*catalog.ReviewWithAuthor, error) {
	args := m.Called(ctx, bookID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.ReviewWithAuthor), args.Error(1)
}

// MockStatsProvider is a mock implementation of catalog.ReviewStatsProvider
type MockStatsProvider struct {
	mock.Mock
}

func (m *MockStatsProvider) StatsByISBN(ctx context.Context, isbn string) (*catalog.BookStats, error) {
	args := m.Called(ctx, isbn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.BookStats), args.Error(1)
}

type catalogTestEnv struct {
	router         *gin.Engine
	sessionService *auth.SessionService
	userID         uuid.UUID
}

func newCatalogEnv(bookRepo catalog.BookRepository, reviewRepo catalog.ReviewRepository, stats catalog.ReviewStatsProvider) *catalogTestEnv {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()

	sessionService := auth.NewSessionService(config.SessionConfig{
		Secret:     "test-secret-at-least-32-characters-long",
		Expiration: time.Hour,
		Issuer:     "libris-test",
	})

	svc := appcatalog.NewCatalogService(bookRepo, reviewRepo, stats, zap.NewNop())
	h := NewCatalogHandler(svc)

	r := gin.New()
	guarded := r.Group("/", middleware.SessionGuard(sessionService, "session"))
	h.RegisterRoutes(guarded)

	return &catalogTestEnv{
		router:         r,
		sessionService: sessionService,
		userID:         uuid.New(),
	}
}

func (env *catalogTestEnv) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	token, err := env.sessionService.Issue(env.userID, "alice")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: token})
	env.router.ServeHTTP(w, req)
	return w
}

func (env *catalogTestEnv) postForm(t *testing.T, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	token, err := env.sessionService.Issue(env.userID, "alice")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "session", Value: token})
	env.router.ServeHTTP(w, req)
	return w
}

func testBook() *catalog.Book {
	return &catalog.Book{
		BaseEntity: shared.BaseEntity{ID: uuid.New()},
		ISBN:       "0441172717",
		Title:      "Dune",
		Author:     "Frank Herbert",
		Year:       1965,
	}
}

func TestCatalogHandler_GuardApplies(t *testing.T) {
	env := newCatalogEnv(new(MockBookRepository), new(MockReviewRepository), new(MockStatsProvider))

	for _, path := range []string{"/", "/search?book=dune", "/book/0441172717"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		env.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusFound, w.Code, path)
		assert.Equal(t, "/login", w.Header().Get("Location"), path)
	}
}

func TestCatalogHandler_Index(t *testing.T) {
	env := newCatalogEnv(new(MockBookRepository), new(MockReviewRepository), new(MockStatsProvider))

	w := env.get(t, "/")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"alice"`)
}

func TestCatalogHandler_Search(t *testing.T) {
	t.Run("returns matches", func(t *testing.T) {
		bookRepo := new(MockBookRepository)
		bookRepo.On("Search", mock.Anything, "dune", 0).Return([]*catalog.Book{testBook()}, nil)

		env := newCatalogEnv(bookRepo, new(MockReviewRepository), new(MockStatsProvider))
		w := env.get(t, "/search?book=dune")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"count":1`)
		assert.Contains(t, w.Body.String(), "Dune")
	})

	t.Run("missing query is a validation error", func(t *testing.T) {
		env := newCatalogEnv(new(MockBookRepository), new(MockReviewRepository), new(MockStatsProvider))
		w := env.get(t, "/search")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("no matches is not found", func(t *testing.T) {
		bookRepo := new(MockBookRepository)
		bookRepo.On("Search", mock.Anything, "xyzzy", 0).Return([]*catalog.Book{}, nil)

		env := newCatalogEnv(bookRepo, new(MockReviewRepository), new(MockStatsProvider))
		w := env.get(t, "/search?book=xyzzy")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCatalogHandler_BookDetail(t *testing.T) {
	t.Run("renders book with stats and reviews", func(t *testing.T) {
		book := testBook()

		bookRepo := new(MockBookRepository)
		bookRepo.On("FindByISBN", mock.Anything, book.ISBN).Return(book, nil)

		stats := new(MockStatsProvider)
		stats.On("StatsByISBN", mock.Anything, book.ISBN).Return(&catalog.BookStats{
			ISBN:             book.ISBN,
			RatingsCount:     712843,
			WorkRatingsCount: 810294,
			AverageRating:    decimal.RequireFromString("4.23"),
		}, nil)

		reviewRepo := new(MockReviewRepository)
		reviewRepo.On("FindByBook", mock.Anything, book.ID).Return([]*catalog.ReviewWithAuthor{
			{ID: uuid.New(), Username: "bob", Rating: 5, Comment: "Classic.", CreatedAt: time.Now()},
		}, nil)

		env := newCatalogEnv(bookRepo, reviewRepo, stats)
		w := env.get(t, "/book/"+book.ISBN)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"ratings_count":712843`)
		assert.Contains(t, w.Body.String(), `"average_rating":"4.23"`)
		assert.Contains(t, w.Body.String(), `"username":"bob"`)
	})

	t.Run("renders null stats when provider fails", func(t *testing.T) {
		book := testBook()

		bookRepo := new(MockBookRepository)
		bookRepo.On("FindByISBN", mock.Anything, book.ISBN).Return(book, nil)

		stats := new(MockStatsProvider)
		stats.On("StatsByISBN", mock.Anything, book.ISBN).Return(nil, shared.ErrUnavailable)

		reviewRepo := new(MockReviewRepository)
		reviewRepo.On("FindByBook", mock.Anything, book.ID).Return([]*catalog.ReviewWithAuthor{}, nil)

		env := newCatalogEnv(bookRepo, reviewRepo, stats)
		w := env.get(t, "/book/"+book.ISBN)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"stats":null`)
	})

	t.Run("rejects malformed isbn", func(t *testing.T) {
		env := newCatalogEnv(new(MockBookRepository), new(MockReviewRepository), new(MockStatsProvider))
		w := env.get(t, "/book/not-an-isbn")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown isbn is 404", func(t *testing.T) {
		bookRepo := new(MockBookRepository)
		bookRepo.On("FindByISBN", mock.Anything, "0306406152").Return(nil, shared.ErrNotFound)

		env := newCatalogEnv(bookRepo, new(MockReviewRepository), new(MockStatsProvider))
		w := env.get(t, "/book/0306406152")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCatalogHandler_SubmitReview(t *testing.T) {
	t.Run("creates review and redirects back", func(t *testing.T) {
		book := testBook()

		bookRepo := new(MockBookRepository)
		bookRepo.On("FindByISBN", mock.Anything, book.ISBN).Return(book, nil)

		reviewRepo := new(MockReviewRepository)
		reviewRepo.On("ExistsByUserAndBook", mock.Anything, mock.Anything, book.ID).Return(false, nil)
		reviewRepo.On("Create", mock.Anything, mock.AnythingOfType("*catalog.Review")).Return(nil)

		env := newCatalogEnv(bookRepo, reviewRepo, new(MockStatsProvider))
		w := env.postForm(t, "/book/"+book.ISBN, url.Values{
			"rating":  {"5"},
			"comment": {"Classic."},
		})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"redirect":"/book/0441172717"`)
	})

	t.Run("duplicate review is a conflict", func(t *testing.T) {
		book := testBook()

		bookRepo := new(MockBookRepository)
		bookRepo.On("FindByISBN", mock.Anything, book.ISBN).Return(book, nil)

		reviewRepo := new(MockReviewRepository)
		reviewRepo.On("ExistsByUserAndBook", mock.Anything, mock.Anything, book.ID).Return(true, nil)

		env := newCatalogEnv(bookRepo, reviewRepo, new(MockStatsProvider))
		w := env.postForm(t, "/book/"+book.ISBN, url.Values{
			"rating":  {"3"},
			"comment": {"Again."},
		})

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "already reviewed")
	})

	t.Run("out-of-range rating rejected by binding", func(t *testing.T) {
		env := newCatalogEnv(new(MockBookRepository), new(MockReviewRepository), new(MockStatsProvider))
		w := env.postForm(t, "/book/0441172717", url.Values{
			"rating":  {"9"},
			"comment": {"Too good."},
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing comment rejected by binding", func(t *testing.T) {
		env := newCatalogEnv(new(MockBookRepository), new(MockReviewRepository), new(MockStatsProvider))
		w := env.postForm(t, "/book/0441172717", url.Values{
			"rating": {"4"},
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
