package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-picker/backend/internal/mocks"
	"github.com/pageza/recipe-picker/backend/internal/service"
	"github.com/pageza/recipe-picker/backend/internal/types"
)

const testBaseURL = "http://recipes.test"

type testAPI struct {
	router      *gin.Engine
	recipes     *mocks.MockRecipeService
	ingredients *mocks.MockIngredientService
	auth        *mocks.MockAuthService
}

func setupTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	a := &testAPI{
		router:      gin.New(),
		recipes:     new(mocks.MockRecipeService),
		ingredients: new(mocks.MockIngredientService),
		auth:        new(mocks.MockAuthService),
	}
	a.auth.On("CheckCredentials", "chef", "s3cret").Return(nil).Maybe()
	a.auth.On("CheckCredentials", mock.Anything, mock.Anything).Return(service.ErrInvalidCredentials).Maybe()

	SetupAPI(a.router, Services{
		Recipes:     a.recipes,
		Ingredients: a.ingredients,
		Auth:        a.auth,
		BaseURL:     testBaseURL,
	})

	t.Cleanup(func() {
		a.recipes.AssertExpectations(t)
		a.ingredients.AssertExpectations(t)
	})
	return a
}

// do sends an authenticated request with an optional JSON body.
func (a *testAPI) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.SetBasicAuth("chef", "s3cret")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) types.ErrorResponse {
	t.Helper()
	var resp types.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

func requireStatus(t *testing.T, w *httptest.ResponseRecorder, status int) {
	t.Helper()
	require.Equal(t, status, w.Code, w.Body.String())
}

