package mocks

import "github.com/trisers/shopauth/domain"

// MockTokenService implements domain.TokenService for testing
type MockTokenService struct {
	IssueAccessTokenFunc   func(claims *domain.TokenClaims) (string, error)
	IssueRefreshTokenFunc  func(claims *domain.TokenClaims) (string, error)
	VerifyAccessTokenFunc  func(token string) (*domain.TokenClaims, error)
	VerifyRefreshTokenFunc func(token string) (*domain.TokenClaims, error)
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

// IssueAccessToken mints an access token
func (m *MockTokenService) IssueAccessToken(claims *domain.TokenClaims) (string, error) {
	if m.IssueAccessTokenFunc != nil {
		return m.IssueAccessTokenFunc(claims)
	}
	return "access_token_" + claims.Email, nil
}

// IssueRefreshToken mints a refresh token
func (m *MockTokenService) IssueRefreshToken(claims *domain.TokenClaims) (string, error) {
	if m.IssueRefreshTokenFunc != nil {
		return m.IssueRefreshTokenFunc(claims)
	}
	return "refresh_token_" + claims.Email, nil
}

// VerifyAccessToken validates an access token
func (m *MockTokenService) VerifyAccessToken(token string) (*domain.TokenClaims, error) {
	if m.VerifyAccessTokenFunc != nil {
		return m.VerifyAccessTokenFunc(token)
	}
	// Default behavior: reject
	return nil, domain.ErrTokenInvalid
}

// VerifyRefreshToken validates a refresh token
func (m *MockTokenService) VerifyRefreshToken(token string) (*domain.TokenClaims, error) {
	if m.VerifyRefreshTokenFunc != nil {
		return m.VerifyRefreshTokenFunc(token)
	}
	// Default behavior: reject
	return nil, domain.ErrTokenInvalid
}

// Compile-time interface compliance verification
var _ domain.TokenService = (*MockTokenService)(nil)
