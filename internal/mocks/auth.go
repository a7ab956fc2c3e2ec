package mocks

import (
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/recipe-picker/backend/internal/types"
)

// MockAuthService is a mock implementation of the auth service
type MockAuthService struct {
	mock.Mock
}

// CheckCredentials mocks the CheckCredentials method
func (m *MockAuthService) CheckCredentials(username, password string) error {
	args := m.Called(username, password)
	return args.Error(0)
}

// GenerateToken mocks the GenerateToken method
func (m *MockAuthService) GenerateToken(username string) (string, time.Time, error) {
	args := m.Called(username)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

// ValidateToken mocks the ValidateToken method
func (m *MockAuthService) ValidateToken(token string) (*types.TokenClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TokenClaims), args.Error(1)
}
