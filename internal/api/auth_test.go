package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-picker/backend/internal/models"
	"github.com/pageza/recipe-picker/backend/internal/types"
)

func TestIssueToken(t *testing.T) {
	a := setupTestAPI(t)
	expires := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	a.auth.On("GenerateToken", "chef").Return("signed-token", expires, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/token", nil)
	req.SetBasicAuth("chef", "s3cret")
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	requireStatus(t, w, http.StatusOK)

	var resp TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "signed-token", resp.Token)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.True(t, expires.Equal(resp.ExpiresAt))
}

func TestIssueTokenRejectsBadCredentials(t *testing.T) {
	a := setupTestAPI(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/token", nil)
	req.SetBasicAuth("chef", "wrong")
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	requireStatus(t, w, http.StatusUnauthorized)
	assert.Equal(t, types.ErrorCodeUnauthorized, decodeError(t, w).ErrorCode)

	w = httptest.NewRecorder()
	a.router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/auth/token", nil))
	requireStatus(t, w, http.StatusUnauthorized)
}

func TestProtectedRoutesAcceptBearerTokens(t *testing.T) {
	a := setupTestAPI(t)
	a.auth.On("ValidateToken", "signed-token").Return(&types.TokenClaims{Username: "chef"}, nil).Once()
	a.recipes.On("SearchRecipes", mock.Anything, mock.Anything).Return([]models.Recipe{}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/recipes", nil)
	req.Header.Set("Authorization", "Bearer signed-token")
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	requireStatus(t, w, http.StatusOK)
}

func TestProtectedRoutesRequireCredentials(t *testing.T) {
	a := setupTestAPI(t)

	for _, path := range []string{"/api/v1/recipes", "/api/v1/ingredients"} {
		w := httptest.NewRecorder()
		a.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		requireStatus(t, w, http.StatusUnauthorized)
	}
}
