package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/pageza/recipe-picker/backend/internal/testhelpers"
)

func limitedRouter(rl *RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(ContextUsername, c.GetHeader("X-User"))
		c.Next()
	})
	r.Use(rl.RateLimitMiddleware())
	r.POST("/write", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return r
}

func post(r *gin.Engine, user string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/write", nil)
	req.Header.Set("X-User", user)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestRateLimitDisabledWithoutRedis(t *testing.T) {
	r := limitedRouter(NewWriteRateLimiter(nil, 1))

	for i := 0; i < 3; i++ {
		rr := post(r, "chef")
		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.Empty(t, rr.Header().Get("X-RateLimit-Limit"))
	}
}

func TestRateLimitWithRedis(t *testing.T) {
	client := testhelpers.SetupRedis(t)
	r := limitedRouter(NewWriteRateLimiter(client, 2))

	first := post(r, "chef")
	assert.Equal(t, http.StatusNoContent, first.Code)
	assert.Equal(t, "2", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Remaining"))

	assert.Equal(t, http.StatusNoContent, post(r, "chef").Code)

	third := post(r, "chef")
	assert.Equal(t, http.StatusTooManyRequests, third.Code)
	assert.Contains(t, third.Body.String(), `"error_code":"RATE_LIMITED"`)
	assert.Equal(t, "0", third.Header().Get("X-RateLimit-Remaining"))

	assert.Equal(t, http.StatusNoContent, post(r, "other-user").Code)
}
