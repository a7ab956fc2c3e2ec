package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-picker/backend/internal/logger"
	"github.com/pageza/recipe-picker/backend/internal/search"
	"github.com/pageza/recipe-picker/backend/internal/service"
	"github.com/pageza/recipe-picker/backend/internal/types"
)

func invalidParam(c *gin.Context, details string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, types.ErrorResponse{
		ErrorCode: types.ErrorCodeInvalidParam,
		Details:   details,
	})
}

// respondError maps service and search errors to an HTTP error response.
func respondError(c *gin.Context, err error) {
	status, code := http.StatusInternalServerError, types.ErrorCodeInternal
	switch {
	case errors.Is(err, search.ErrOverlappingIngredients),
		errors.Is(err, service.ErrInvalidRecipe),
		errors.Is(err, service.ErrInvalidIngredient),
		errors.Is(err, service.ErrUnknownIngredient),
		errors.Is(err, service.ErrDuplicateIngredient),
		errors.Is(err, service.ErrIngredientInUse):
		status, code = http.StatusBadRequest, types.ErrorCodeInvalidParam
	case errors.Is(err, service.ErrRecipeNotFound),
		errors.Is(err, service.ErrIngredientNotFound):
		status, code = http.StatusNotFound, types.ErrorCodeEntityNotFound
	case errors.Is(err, service.ErrInvalidCredentials):
		status, code = http.StatusUnauthorized, types.ErrorCodeUnauthorized
	}

	details := err.Error()
	if status == http.StatusInternalServerError {
		logger.FromContext(c.Request.Context()).Error("request failed", "path", c.FullPath(), "error", err)
		details = "Internal Server Error"
	}
	c.AbortWithStatusJSON(status, types.ErrorResponse{ErrorCode: code, Details: details})
}
