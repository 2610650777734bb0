package handler

// SearchRequest binds the search query parameter
type SearchRequest struct {
	Book string `form:"book" binding:"required"`
}

// BookISBNRequest binds the isbn path parameter
type BookISBNRequest struct {
	ISBN string `uri:"isbn" binding:"required,isbn10"`
}

// SubmitReviewRequest is the body of POST /book/:isbn
type SubmitReviewRequest struct {
	Rating  int    `json:"rating" form:"rating" binding:"required,gte=1,lte=5"`
	Comment string `json:"comment" form:"comment" binding:"required"`
}

// BookSummaryResponse is a single search result
type BookSummaryResponse struct {
	ISBN   string `json:"isbn"`
	Title  string `json:"title"`
	Author string `json:"author"`
	Year   int    `json:"year"`
}

// SearchResponse is the payload of GET /search
type SearchResponse struct {
	Query   string                `json:"query"`
	Count   int                   `json:"count"`
	Results []BookSummaryResponse `json:"results"`
}

// StatsResponse carries the external rating aggregates
type StatsResponse struct {
	RatingsCount     int64  `json:"ratings_count"`
	WorkRatingsCount int64  `json:"work_ratings_count"`
	AverageRating    string `json:"average_rating"`
}

// ReviewResponse is a single review on the detail page
type ReviewResponse struct {
	Username  string `json:"username"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	CreatedAt string `json:"created_at"`
}

// BookDetailResponse is the payload of GET /book/:isbn. Stats is null
// when the external provider had no data.
type BookDetailResponse struct {
	ISBN    string           `json:"isbn"`
	Title   string           `json:"title"`
	Author  string           `json:"author"`
	Year    int              `json:"year"`
	Stats   *StatsResponse   `json:"stats"`
	Reviews []ReviewResponse `json:"reviews"`
}

// IndexResponse is the payload of the guarded index page
type IndexResponse struct {
	Username string `json:"username"`
	Message  string `json:"message"`
}
