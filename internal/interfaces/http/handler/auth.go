package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	appidentity "github.com/libris/backend/internal/application/identity"
	"github.com/libris/backend/internal/infrastructure/config"
	"github.com/libris/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// AuthHandler handles registration, login, and logout
type AuthHandler struct {
	BaseHandler
	authService *appidentity.AuthService
	cookieCfg   config.CookieConfig
	maxAge      int
}

// NewAuthHandler creates a new auth handler. maxAge is the session
// cookie lifetime in seconds.
func NewAuthHandler(authService *appidentity.AuthService, cookieCfg config.CookieConfig, maxAge int) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cookieCfg:   cookieCfg,
		maxAge:      maxAge,
	}
}

// RegisterRoutes registers auth routes on the public group
func (h *AuthHandler) RegisterRoutes(public *gin.RouterGroup) {
	public.GET("/register", h.ShowRegisterForm)
	public.POST("/register", h.Register)
	public.GET("/login", h.ShowLoginForm)
	public.POST("/login", h.Login)
	public.GET("/logout", h.Logout)
}

// ShowRegisterForm returns the registration form descriptor
func (h *AuthHandler) ShowRegisterForm(c *gin.Context) {
	h.Success(c, FormDescriptor{
		Action: "/register",
		Method: http.MethodPost,
		Fields: []FormField{
			{Name: "username", Type: "text"},
			{Name: "password", Type: "password"},
			{Name: "confirmation", Type: "password"},
		},
	})
}

// Register creates a new account
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		h.BadRequest(c, "Malformed request body")
		return
	}

	user, err := h.authService.Register(c.Request.Context(), appidentity.RegisterInput{
		Username:     req.Username,
		Password:     req.Password,
		Confirmation: req.Confirmation,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithRedirect(c, UserResponse{
		ID:       user.ID.String(),
		Username: user.Username,
	}, "/login")
}

// ShowLoginForm returns the login form descriptor
func (h *AuthHandler) ShowLoginForm(c *gin.Context) {
	h.Success(c, FormDescriptor{
		Action: "/login",
		Method: http.MethodPost,
		Fields: []FormField{
			{Name: "username", Type: "text"},
			{Name: "password", Type: "password"},
		},
	})
}

// Login authenticates the user and sets the session cookie. Any
// existing session cookie is replaced.
func (h *AuthHandler) Login(c *gin.Context) {
	h.clearSessionCookie(c)

	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		h.BadRequest(c, "Malformed request body")
		return
	}

	result, err := h.authService.Login(c.Request.Context(), appidentity.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.setSessionCookie(c, result.SessionToken)

	h.SuccessWithRedirect(c, UserResponse{
		ID:       result.User.ID.String(),
		Username: result.User.Username,
	}, "/")
}

// Logout clears the session cookie and redirects home. The home route
// is guarded, so an unauthenticated browser lands on the login page.
func (h *AuthHandler) Logout(c *gin.Context) {
	logger.GetGinLogger(c).Info("User logged out",
		zap.String("client_ip", c.ClientIP()))

	h.clearSessionCookie(c)
	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(parseSameSite(h.cookieCfg.SameSite))
	c.SetCookie(h.cookieCfg.Name, token, h.maxAge, h.cookieCfg.Path, h.cookieCfg.Domain, h.cookieCfg.Secure, true)
}

func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(parseSameSite(h.cookieCfg.SameSite))
	c.SetCookie(h.cookieCfg.Name, "", -1, h.cookieCfg.Path, h.cookieCfg.Domain, h.cookieCfg.Secure, true)
}

func parseSameSite(mode string) http.SameSite {
	switch mode {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
