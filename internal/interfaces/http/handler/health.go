package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/libris/backend/internal/infrastructure/persistence"
)

// HealthHandler reports process and database liveness
type HealthHandler struct {
	BaseHandler
	db *persistence.Database
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db *persistence.Database) *HealthHandler {
	return &HealthHandler{db: db}
}

// RegisterRoutes registers the health route on the public group
func (h *HealthHandler) RegisterRoutes(public *gin.RouterGroup) {
	public.GET("/health", h.Health)
}

// Health returns 200 when the database is reachable, 503 otherwise
func (h *HealthHandler) Health(c *gin.Context) {
	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": "unreachable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
