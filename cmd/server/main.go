package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/libris/backend/internal/application/catalog"
	identityapp "github.com/libris/backend/internal/application/identity"
	"github.com/libris/backend/internal/infrastructure/auth"
	"github.com/libris/backend/internal/infrastructure/config"
	"github.com/libris/backend/internal/infrastructure/logger"
	"github.com/libris/backend/internal/infrastructure/persistence"
	"github.com/libris/backend/internal/infrastructure/ratings"
	"github.com/libris/backend/internal/interfaces/http/handler"
	"github.com/libris/backend/internal/interfaces/http/middleware"
	"github.com/libris/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log := logger.New(logger.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting libris backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	bookRepo := persistence.NewGormBookRepository(db.DB)
	reviewRepo := persistence.NewGormReviewRepository(db.DB)

	// External review statistics client
	statsClient := ratings.NewClient(cfg.Ratings)
	if cfg.Ratings.APIKey == "" {
		log.Warn("Ratings API key not configured, book pages will omit aggregate ratings")
	}

	// Session token service
	sessionService := auth.NewSessionService(cfg.Session)

	// Application services
	authService := identityapp.NewAuthService(userRepo, sessionService, log)
	catalogService := catalogapp.NewCatalogService(bookRepo, reviewRepo, statsClient, log)

	// HTTP handlers
	cookieMaxAge := int(sessionService.Expiration().Seconds())
	authHandler := handler.NewAuthHandler(authService, cfg.Cookie, cookieMaxAge)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	healthHandler := handler.NewHealthHandler(db)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.BodySizeLimit(cfg.HTTP.MaxBodySize))

	// Auth and health stay public, the catalog sits behind the session guard
	guard := middleware.SessionGuard(sessionService, cfg.Cookie.Name)
	r := router.NewRouter(engine, guard)
	r.Public(authHandler).
		Public(healthHandler).
		Guarded(catalogHandler)
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
