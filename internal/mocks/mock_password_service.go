package mocks

import "github.com/trisers/shopauth/domain"

// MockPasswordService implements domain.PasswordService for testing
type MockPasswordService struct {
	HashFunc   func(secret string) (string, error)
	VerifyFunc func(hashedSecret, candidate string) bool
}

// NewMockPasswordService creates a new MockPasswordService with default behaviors
func NewMockPasswordService() *MockPasswordService {
	return &MockPasswordService{}
}

// Hash hashes a secret
func (m *MockPasswordService) Hash(secret string) (string, error) {
	if m.HashFunc != nil {
		return m.HashFunc(secret)
	}
	// Default behavior: deterministic fake hash
	return "hashed_" + secret, nil
}

// Verify compares a candidate against a hashed secret
func (m *MockPasswordService) Verify(hashedSecret, candidate string) bool {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(hashedSecret, candidate)
	}
	// Default behavior: match the fake hash scheme
	return hashedSecret == "hashed_"+candidate
}

// Compile-time interface compliance verification
var _ domain.PasswordService = (*MockPasswordService)(nil)
