package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	appcatalog "github.com/libris/backend/internal/application/catalog"
	"github.com/libris/backend/internal/interfaces/http/dto"
	"github.com/libris/backend/internal/interfaces/http/middleware"
)

// CatalogHandler handles the guarded index, search, and book pages
type CatalogHandler struct {
	BaseHandler
	catalogService *appcatalog.CatalogService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *appcatalog.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// RegisterRoutes registers catalog routes on the session-guarded group
func (h *CatalogHandler) RegisterRoutes(guarded *gin.RouterGroup) {
	guarded.GET("/", h.Index)
	guarded.GET("/search", h.Search)
	guarded.GET("/book/:isbn", h.BookDetail)
	guarded.POST("/book/:isbn", h.SubmitReview)
}

// Index greets the logged-in user
func (h *CatalogHandler) Index(c *gin.Context) {
	h.Success(c, IndexResponse{
		Username: middleware.GetSessionUsername(c),
		Message:  "Search the catalog by ISBN, title, or author.",
	})
}

// Search runs a catalog search from the book query parameter
func (h *CatalogHandler) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.Error(c, dto.GetHTTPStatus(dto.ErrCodeValidationRequired),
			dto.ErrCodeValidationRequired, "Please provide a search term")
		return
	}

	result, err := h.catalogService.Search(c.Request.Context(), appcatalog.SearchInput{
		Query: req.Book,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if len(result.Books) == 0 {
		h.NotFound(c, "No books matched your search")
		return
	}

	resp := SearchResponse{
		Query:   result.Query,
		Count:   len(result.Books),
		Results: make([]BookSummaryResponse, len(result.Books)),
	}
	for i, book := range result.Books {
		resp.Results[i] = BookSummaryResponse{
			ISBN:   book.ISBN,
			Title:  book.Title,
			Author: book.Author,
			Year:   book.Year,
		}
	}
	h.Success(c, resp)
}

// BookDetail renders a book with its reviews and external rating stats
func (h *CatalogHandler) BookDetail(c *gin.Context) {
	var req BookISBNRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.Error(c, dto.GetHTTPStatus(dto.ErrCodeValidationFormat),
			dto.ErrCodeValidationFormat, middleware.FirstValidationMessage(err))
		return
	}

	detail, err := h.catalogService.GetBookDetail(c.Request.Context(), req.ISBN)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toBookDetailResponse(detail))
}

// SubmitReview records the logged-in user's review of a book
func (h *CatalogHandler) SubmitReview(c *gin.Context) {
	var uriReq BookISBNRequest
	if err := c.ShouldBindUri(&uriReq); err != nil {
		h.Error(c, dto.GetHTTPStatus(dto.ErrCodeValidationFormat),
			dto.ErrCodeValidationFormat, middleware.FirstValidationMessage(err))
		return
	}

	var req SubmitReviewRequest
	if err := c.ShouldBind(&req); err != nil {
		h.Error(c, dto.GetHTTPStatus(dto.ErrCodeValidation),
			dto.ErrCodeValidation, middleware.FirstValidationMessage(err))
		return
	}

	userID, ok := middleware.GetSessionUserID(c)
	if !ok {
		h.Unauthorized(c, "Please log in to submit a review")
		return
	}

	err := h.catalogService.SubmitReview(c.Request.Context(), appcatalog.SubmitReviewInput{
		UserID:  userID,
		ISBN:    uriReq.ISBN,
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithRedirect(c, gin.H{"submitted": true}, "/book/"+uriReq.ISBN)
}

func toBookDetailResponse(detail *appcatalog.BookDetail) BookDetailResponse {
	resp := BookDetailResponse{
		ISBN:    detail.ISBN,
		Title:   detail.Title,
		Author:  detail.Author,
		Year:    detail.Year,
		Reviews: make([]ReviewResponse, len(detail.Reviews)),
	}
	if detail.Stats != nil {
		resp.Stats = &StatsResponse{
			RatingsCount:     detail.Stats.RatingsCount,
			WorkRatingsCount: detail.Stats.WorkRatingsCount,
			AverageRating:    detail.Stats.AverageRating.String(),
		}
	}
	for i, review := range detail.Reviews {
		resp.Reviews[i] = ReviewResponse{
			Username:  review.Username,
			Rating:    review.Rating,
			Comment:   review.Comment,
			CreatedAt: review.CreatedAt.Format(time.RFC3339),
		}
	}
	return resp
}
