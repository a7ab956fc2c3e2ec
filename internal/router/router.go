package router

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pageza/recipe-picker/backend/internal/api"
	"github.com/pageza/recipe-picker/backend/internal/metrics"
	"github.com/pageza/recipe-picker/backend/internal/middleware"
)

// Dependencies are the components the routes are built from
type Dependencies struct {
	DB          *gorm.DB
	Redis       *redis.Client
	Metrics     *metrics.Metrics
	CORSOrigins []string
	Services    api.Services
}

// SetupRouter configures the application routes
func SetupRouter(deps Dependencies) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.RequestID(),
		middleware.AccessLog(),
		middleware.ErrorHandler(),
		middleware.CORS(deps.CORSOrigins),
		middleware.Metrics(deps.Metrics),
	)

	// Public routes
	health := api.NewHealthHandler(deps.DB, deps.Redis)
	router.GET("/health", health.HealthCheck)
	router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))

	api.SetupAPI(router, deps.Services)

	return router
}
