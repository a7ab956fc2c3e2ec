package api

import (
	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-picker/backend/internal/middleware"
	"github.com/pageza/recipe-picker/backend/internal/service"
)

// Services bundles what the API handlers need.
type Services struct {
	Recipes     service.IRecipeService
	Ingredients service.IIngredientService
	Auth        service.IAuthService
	// RateLimiter guards write routes; nil disables it
	RateLimiter *middleware.RateLimiter
	BaseURL     string
}

// SetupAPI registers the /api/v1 routes. Everything except the token
// endpoint requires credentials.
func SetupAPI(router *gin.Engine, s Services) {
	v1 := router.Group("/api/v1")
	{
		NewAuthHandler(s.Auth).RegisterRoutes(v1)

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(s.Auth))

		var write []gin.HandlerFunc
		if s.RateLimiter != nil {
			write = append(write, s.RateLimiter.RateLimitMiddleware())
		}

		NewRecipeHandler(s.Recipes, s.BaseURL).RegisterRoutes(protected, write...)
		NewIngredientHandler(s.Ingredients, s.BaseURL).RegisterRoutes(protected, write...)
	}
}

// guarded returns the write middleware followed by handler in a fresh slice.
func guarded(write []gin.HandlerFunc, handler gin.HandlerFunc) []gin.HandlerFunc {
	handlers := make([]gin.HandlerFunc, 0, len(write)+1)
	return append(append(handlers, write...), handler)
}
