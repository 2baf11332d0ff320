package mocks

import (
	"context"

	"github.com/trisers/shopauth/domain"
)

// MockOTPService implements domain.OTPService for testing
type MockOTPService struct {
	IssueFunc          func(ctx context.Context, account *domain.Account) (string, error)
	ConsumeFunc        func(ctx context.Context, account *domain.Account, code string) error
	ValidateFormatFunc func(code string) bool
}

// NewMockOTPService creates a new MockOTPService with default behaviors
func NewMockOTPService() *MockOTPService {
	return &MockOTPService{}
}

// Issue stores a fresh challenge and returns the plaintext code
func (m *MockOTPService) Issue(ctx context.Context, account *domain.Account) (string, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(ctx, account)
	}
	// Default behavior: fixed code with a populated slot
	account.OTPHash = "hashed_123456"
	return "123456", nil
}

// Consume validates and clears the challenge
func (m *MockOTPService) Consume(ctx context.Context, account *domain.Account, code string) error {
	if m.ConsumeFunc != nil {
		return m.ConsumeFunc(ctx, account, code)
	}
	// Default behavior: accept and clear the slot
	account.OTPHash = ""
	account.OTPExpiresAt = nil
	return nil
}

// ValidateFormat checks the 6-digit shape
func (m *MockOTPService) ValidateFormat(code string) bool {
	if m.ValidateFormatFunc != nil {
		return m.ValidateFormatFunc(code)
	}
	if len(code) != 6 {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}
	return true
}

// Compile-time interface compliance verification
var _ domain.OTPService = (*MockOTPService)(nil)
