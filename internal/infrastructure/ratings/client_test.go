package ratings

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/libris/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) *Client {
	return NewClient(config.RatingsConfig{
		BaseURL: baseURL,
		APIKey:  "test-key",
		Timeout: 2 * time.Second,
	})
}

func TestClient_StatsByISBN(t *testing.T) {
	t.Run("parses a successful response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "test-key", r.URL.Query().Get("key"))
			assert.Equal(t, "0441172717", r.URL.Query().Get("isbns"))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"books":[{"isbn":"0441172717","ratings_count":712843,"work_ratings_count":810294,"average_rating":"4.23"}]}`))
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		stats, err := client.StatsByISBN(context.Background(), "0441172717")

		require.NoError(t, err)
		assert.Equal(t, "0441172717", stats.ISBN)
		assert.Equal(t, int64(712843), stats.RatingsCount)
		assert.Equal(t, int64(810294), stats.WorkRatingsCount)
		assert.Equal(t, "4.23", stats.AverageRating.String())
	})

	t.Run("returns ErrNoRecord when isbn missing from response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"books":[]}`))
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		_, err := client.StatsByISBN(context.Background(), "0441172717")

		assert.ErrorIs(t, err, ErrNoRecord)
	})

	t.Run("returns ErrNoRecord on 404", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		_, err := client.StatsByISBN(context.Background(), "0441172717")

		assert.ErrorIs(t, err, ErrNoRecord)
	})

	t.Run("returns ErrUnavailable on server error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		_, err := client.StatsByISBN(context.Background(), "0441172717")

		assert.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("returns ErrUnavailable on malformed body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		_, err := client.StatsByISBN(context.Background(), "0441172717")

		assert.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("returns ErrUnavailable when server unreachable", func(t *testing.T) {
		client := newTestClient("http://127.0.0.1:1")
		_, err := client.StatsByISBN(context.Background(), "0441172717")

		assert.ErrorIs(t, err, ErrUnavailable)
	})

	t.Run("returns ErrNotConfigured without base URL", func(t *testing.T) {
		client := NewClient(config.RatingsConfig{})
		_, err := client.StatsByISBN(context.Background(), "0441172717")

		assert.ErrorIs(t, err, ErrNotConfigured)
	})
}
