package ratings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/libris/backend/internal/domain/catalog"
	"github.com/libris/backend/internal/infrastructure/config"
	"github.com/shopspring/decimal"
)

// maxResponseSize is the maximum allowed response size from the ratings API (1MB)
const maxResponseSize = 1 * 1024 * 1024

// Common errors
var (
	ErrNotConfigured = errors.New("ratings: client not configured")
	ErrUnavailable   = errors.New("ratings: service unavailable")
	ErrNoRecord      = errors.New("ratings: no record for isbn")
)

// Client fetches aggregate rating statistics from the external review
// API. The API takes a key and a comma-separated isbns parameter and
// returns one record per requested ISBN.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a ratings API client
func NewClient(cfg config.RatingsConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

type apiResponse struct {
	Books []apiBook `json:"books"`
}

type apiBook struct {
	ISBN             string          `json:"isbn"`
	RatingsCount     int64           `json:"ratings_count"`
	WorkRatingsCount int64           `json:"work_ratings_count"`
	AverageRating    decimal.Decimal `json:"average_rating"`
}

// StatsByISBN fetches rating statistics for a single ISBN
func (c *Client) StatsByISBN(ctx context.Context, isbn string) (*catalog.BookStats, error) {
	if c.baseURL == "" {
		return nil, ErrNotConfigured
	}

	reqURL, err := c.buildURL(isbn)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNoRecord
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	var parsed apiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: malformed response: %v", ErrUnavailable, err)
	}

	for _, book := range parsed.Books {
		if book.ISBN == isbn {
			return &catalog.BookStats{
				ISBN:             book.ISBN,
				RatingsCount:     book.RatingsCount,
				WorkRatingsCount: book.WorkRatingsCount,
				AverageRating:    book.AverageRating,
			}, nil
		}
	}
	return nil, ErrNoRecord
}

func (c *Client) buildURL(isbn string) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("ratings: invalid base URL: %w", err)
	}
	q := u.Query()
	if c.apiKey != "" {
		q.Set("key", c.apiKey)
	}
	q.Set("isbns", isbn)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Ensure Client implements ReviewStatsProvider
var _ catalog.ReviewStatsProvider = (*Client)(nil)
