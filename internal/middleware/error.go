package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-picker/backend/internal/logger"
	"github.com/pageza/recipe-picker/backend/internal/types"
)

// ErrorHandler recovers from panics in later handlers and answers with a JSON
// error response
func ErrorHandler() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.FromContext(c.Request.Context()).Error("panic while handling request",
			"error", recovered,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, types.ErrorResponse{
			ErrorCode: types.ErrorCodeInternal,
			Details:   "Internal Server Error",
		})
	})
}
