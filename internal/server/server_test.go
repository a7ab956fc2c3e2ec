package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-picker/backend/config"
	"github.com/pageza/recipe-picker/backend/internal/testhelpers"
)

func testConfig() *config.Config {
	return &config.Config{
		ServerHost:  "localhost",
		ServerPort:  "8080",
		BaseURL:     "http://localhost:8080",
		APIUser:     "chef",
		APIPassword: "s3cret",
		JWTSecret:   "test-secret",
		TokenTTL:    time.Hour,
	}
}

func TestNew(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testhelpers.SetupTestDatabase(t)

	server, err := New(testConfig(), db, nil)
	require.NoError(t, err)
	require.NotNil(t, server)

	w := httptest.NewRecorder()
	server.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy","database":"up","redis":"disabled"}`, w.Body.String())

	w = httptest.NewRecorder()
	server.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `http_requests_total{method="GET",route="/health",status="200"} 1`)
}

func TestNewRequiresCredentials(t *testing.T) {
	cfg := testConfig()
	cfg.JWTSecret = ""

	_, err := New(cfg, testhelpers.SetupTestDatabase(t), nil)
	assert.Error(t, err)
}
