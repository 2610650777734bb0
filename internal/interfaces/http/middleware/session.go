package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/libris/backend/internal/infrastructure/auth"
)

// Context keys for session data
const (
	ContextKeySessionUserID   = "session_user_id"
	ContextKeySessionUsername = "session_username"
)

// loginPath is where unauthenticated browsers are sent
const loginPath = "/login"

// SessionGuard validates the session cookie and redirects to the login
// page when it is missing or invalid. On success the user's id and
// username are stored in the request context.
func SessionGuard(sessionService *auth.SessionService, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}

		claims, err := sessionService.Validate(token)
		if err != nil {
			// Expired or tampered cookie; clear it so the browser
			// stops sending it.
			c.SetCookie(cookieName, "", -1, "/", "", false, true)
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}

		c.Set(ContextKeySessionUserID, claims.UserID)
		c.Set(ContextKeySessionUsername, claims.Username)
		c.Next()
	}
}

// GetSessionUserID retrieves the authenticated user's ID from context
func GetSessionUserID(c *gin.Context) (uuid.UUID, bool) {
	idStr := c.GetString(ContextKeySessionUserID)
	if idStr == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// GetSessionUsername retrieves the authenticated user's name from context
func GetSessionUsername(c *gin.Context) string {
	return c.GetString(ContextKeySessionUsername)
}
