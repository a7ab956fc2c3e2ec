package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-picker/backend/internal/service"
	"github.com/pageza/recipe-picker/backend/internal/types"
)

type AuthHandler struct {
	auth service.IAuthService
}

func NewAuthHandler(auth service.IAuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/auth/token", h.IssueToken)
}

// IssueToken exchanges HTTP basic credentials for a bearer token
func (h *AuthHandler) IssueToken(c *gin.Context) {
	username, password, ok := c.Request.BasicAuth()
	if !ok {
		c.Header("WWW-Authenticate", `Basic realm="recipe-picker"`)
		c.AbortWithStatusJSON(http.StatusUnauthorized, types.ErrorResponse{
			ErrorCode: types.ErrorCodeUnauthorized,
			Details:   "basic credentials required",
		})
		return
	}
	if err := h.auth.CheckCredentials(username, password); err != nil {
		respondError(c, err)
		return
	}

	token, expiresAt, err := h.auth.GenerateToken(username)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, TokenResponse{Token: token, TokenType: "Bearer", ExpiresAt: expiresAt})
}
