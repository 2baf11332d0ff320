package mocks

import (
	"context"

	"github.com/trisers/shopauth/domain"
)

// MockAuthService implements domain.AuthService for testing handlers
type MockAuthService struct {
	RegisterFunc             func(ctx context.Context, input domain.RegisterInput) (*domain.Account, error)
	VerifyEmailFunc          func(ctx context.Context, email, otp string) (*domain.TokenPair, error)
	LoginFunc                func(ctx context.Context, email, password string) (*domain.TokenPair, error)
	RequestPasswordResetFunc func(ctx context.Context, email string) error
	ResetPasswordFunc        func(ctx context.Context, email, otp, newPassword, confirmPassword string) error
	ResendOTPFunc            func(ctx context.Context, email string) error
	RefreshAccessTokenFunc   func(ctx context.Context, refreshToken string) (string, error)
	InviteDashboardUserFunc  func(ctx context.Context, invite domain.DashboardInvite) (*domain.Account, error)
}

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

// Register registers a new customer account
func (m *MockAuthService) Register(ctx context.Context, input domain.RegisterInput) (*domain.Account, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, input)
	}
	return &domain.Account{
		ID:       1,
		FullName: input.FullName,
		Email:    input.Email,
		Phone:    input.Phone,
		Role:     domain.RoleCustomer,
		Status:   domain.StatusPending,
	}, nil
}

// VerifyEmail confirms the OTP and activates the account
func (m *MockAuthService) VerifyEmail(ctx context.Context, email, otp string) (*domain.TokenPair, error) {
	if m.VerifyEmailFunc != nil {
		return m.VerifyEmailFunc(ctx, email, otp)
	}
	return &domain.TokenPair{AccessToken: "access", RefreshToken: "refresh"}, nil
}

// Login authenticates with email and password
func (m *MockAuthService) Login(ctx context.Context, email, password string) (*domain.TokenPair, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return &domain.TokenPair{AccessToken: "access", RefreshToken: "refresh"}, nil
}

// RequestPasswordReset issues a reset challenge
func (m *MockAuthService) RequestPasswordReset(ctx context.Context, email string) error {
	if m.RequestPasswordResetFunc != nil {
		return m.RequestPasswordResetFunc(ctx, email)
	}
	return nil
}

// ResetPassword applies a new password after OTP verification
func (m *MockAuthService) ResetPassword(ctx context.Context, email, otp, newPassword, confirmPassword string) error {
	if m.ResetPasswordFunc != nil {
		return m.ResetPasswordFunc(ctx, email, otp, newPassword, confirmPassword)
	}
	return nil
}

// ResendOTP re-issues the verification challenge
func (m *MockAuthService) ResendOTP(ctx context.Context, email string) error {
	if m.ResendOTPFunc != nil {
		return m.ResendOTPFunc(ctx, email)
	}
	return nil
}

// RefreshAccessToken exchanges a refresh token for a fresh access token
func (m *MockAuthService) RefreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	if m.RefreshAccessTokenFunc != nil {
		return m.RefreshAccessTokenFunc(ctx, refreshToken)
	}
	return "access", nil
}

// InviteDashboardUser provisions an admin account with capability grants
func (m *MockAuthService) InviteDashboardUser(ctx context.Context, invite domain.DashboardInvite) (*domain.Account, error) {
	if m.InviteDashboardUserFunc != nil {
		return m.InviteDashboardUserFunc(ctx, invite)
	}
	return &domain.Account{
		ID:            2,
		FullName:      invite.FullName,
		Email:         invite.Email,
		Phone:         invite.Phone,
		Role:          invite.Role,
		Status:        domain.StatusPending,
		CapabilityIDs: invite.CapabilityIDs,
	}, nil
}

// Compile-time interface compliance verification
var _ domain.AuthService = (*MockAuthService)(nil)
