package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pageza/recipe-picker/backend/config"
	"github.com/pageza/recipe-picker/backend/internal/api"
	"github.com/pageza/recipe-picker/backend/internal/cache"
	"github.com/pageza/recipe-picker/backend/internal/metrics"
	"github.com/pageza/recipe-picker/backend/internal/middleware"
	"github.com/pageza/recipe-picker/backend/internal/router"
	"github.com/pageza/recipe-picker/backend/internal/service"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
}

// New wires the services and routes. redisClient may be nil, which disables
// the search cache and rate limiting.
func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	auth, err := service.NewAuthService(cfg.APIUser, cfg.APIPassword, cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("creating auth service: %w", err)
	}

	m := metrics.New()
	var resultCache service.ResultCache
	if redisClient != nil {
		resultCache = cache.New(redisClient, cfg.SearchCacheTTL)
	} else {
		slog.Warn("redis not configured, search cache and rate limiting disabled")
	}

	r := router.SetupRouter(router.Dependencies{
		DB:          db,
		Redis:       redisClient,
		Metrics:     m,
		CORSOrigins: cfg.CORSOrigins,
		Services: api.Services{
			Recipes:     service.NewRecipeService(db, resultCache, m),
			Ingredients: service.NewIngredientService(db),
			Auth:        auth,
			RateLimiter: middleware.NewWriteRateLimiter(redisClient, cfg.WriteRateLimit),
			BaseURL:     cfg.BaseURL,
		},
	})

	return &Server{
		router: r,
		http: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// Handler returns the routed handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves HTTP until Shutdown is called
func (s *Server) Start() error {
	slog.Info("starting server", "addr", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.http.Shutdown(ctx)
}
