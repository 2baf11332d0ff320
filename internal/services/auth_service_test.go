package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/trisers/shopauth/domain"
	"github.com/trisers/shopauth/internal/mocks"
)

type authServiceFixture struct {
	svc         domain.AuthService
	accountRepo *mocks.MockAccountRepository
	passwordSvc *mocks.MockPasswordService
	tokenSvc    *mocks.MockTokenService
	otpSvc      *mocks.MockOTPService
	notifier    *mocks.MockNotificationService
}

func newAuthServiceForTest(t *testing.T) *authServiceFixture {
	t.Helper()

	f := &authServiceFixture{
		accountRepo: mocks.NewMockAccountRepository(),
		passwordSvc: mocks.NewMockPasswordService(),
		tokenSvc:    mocks.NewMockTokenService(),
		otpSvc:      mocks.NewMockOTPService(),
		notifier:    mocks.NewMockNotificationService(),
	}
	f.svc = NewAuthService(f.accountRepo, f.passwordSvc, f.tokenSvc, f.otpSvc, f.notifier, zap.NewNop(), 5*time.Minute)
	return f
}

func activeAccount() *domain.Account {
	return &domain.Account{
		ID:            1,
		FullName:      "Jane Doe",
		Email:         "jane@example.com",
		Phone:         "+15550001111",
		PasswordHash:  "hashed_secret123",
		Role:          domain.RoleCustomer,
		Status:        domain.StatusActive,
		EmailVerified: true,
	}
}

func validRegisterInput() domain.RegisterInput {
	return domain.RegisterInput{
		FullName: "Jane Doe",
		Email:    "Jane@Example.com",
		Password: "secret123",
		Phone:    "+15550001111",
	}
}

func TestAuthService_Register(t *testing.T) {
	f := newAuthServiceForTest(t)

	account, err := f.svc.Register(context.Background(), validRegisterInput())
	require.NoError(t, err)

	assert.Equal(t, "jane@example.com", account.Email, "email must be stored lowercase")
	assert.Equal(t, domain.RoleCustomer, account.Role)
	assert.Equal(t, domain.StatusPending, account.Status)
	assert.False(t, account.EmailVerified)
	assert.Equal(t, "hashed_secret123", account.PasswordHash)

	sent := f.notifier.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "jane@example.com", sent[0].To)
	assert.Equal(t, "Account Verification", sent[0].Subject)
	assert.Contains(t, sent[0].Body, "123456", "mail must carry the issued code")
}

func TestAuthService_RegisterValidation(t *testing.T) {
	f := newAuthServiceForTest(t)

	tests := []struct {
		name  string
		input domain.RegisterInput
	}{
		{"empty name", domain.RegisterInput{Email: "a@b.com", Password: "pw", Phone: "1"}},
		{"empty email", domain.RegisterInput{FullName: "A", Password: "pw", Phone: "1"}},
		{"empty password", domain.RegisterInput{FullName: "A", Email: "a@b.com", Phone: "1"}},
		{"empty phone", domain.RegisterInput{FullName: "A", Email: "a@b.com", Password: "pw"}},
		{"whitespace only", domain.RegisterInput{FullName: "  ", Email: "a@b.com", Password: "pw", Phone: "1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Register(context.Background(), tt.input)
			assert.ErrorIs(t, err, domain.ErrValidationFailed)
		})
	}
}

func TestAuthService_RegisterEmailTaken(t *testing.T) {
	f := newAuthServiceForTest(t)
	f.accountRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.Account, error) {
		return activeAccount(), nil
	}
	// Phone clashes too: the email conflict must win
	f.accountRepo.FindByPhoneFunc = func(ctx context.Context, phone string) (*domain.Account, error) {
		return activeAccount(), nil
	}

	_, err := f.svc.Register(context.Background(), validRegisterInput())
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
	assert.Empty(t, f.notifier.Sent())
}

func TestAuthService_RegisterPhoneTaken(t *testing.T) {
	f := newAuthServiceForTest(t)
	f.accountRepo.FindByPhoneFunc = func(ctx context.Context, phone string) (*domain.Account, error) {
		return activeAccount(), nil
	}

	_, err := f.svc.Register(context.Background(), validRegisterInput())
	assert.ErrorIs(t, err, domain.ErrPhoneTaken)
}

func TestAuthService_VerifyEmail(t *testing.T) {
	f := newAuthServiceForTest(t)

	account := activeAccount()
	account.EmailVerified = false
	account.Status = domain.StatusPending
	f.accountRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.Account, error) {
		return account, nil
	}

	var updated *domain.Account
	f.accountRepo.UpdateFunc = func(ctx context.Context, a *domain.Account) error {
		updated = a
		return nil
	}

	tokens, err := f.svc.VerifyEmail(context.Background(), "jane@example.com", "123456")
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)

	require.NotNil(t, updated)
	assert.True(t, updated.EmailVerified)
	assert.Equal(t, domain.StatusActive, updated.Status)
}

func TestAuthService_VerifyEmailAlreadyVerified(t *testing.T) {
	f := newAuthServiceForTest(t)
	f.accountRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.Account, error) {
		return activeAccount(), nil
	}

	_, err := f.svc.VerifyEmail(context.Background(), "jane@example.com", "123456")
	assert.ErrorIs(t, err, domain.ErrAlreadyVerified)
}

func TestAuthService_VerifyEmailBadFormat(t *testing.T) {
	f := newAuthServiceForTest(t)
	f.otpSvc.ConsumeFunc = func(ctx context.Context, account *domain.Account, code string) error {
		t.Fatal("a malformed code must be rejected before consumption")
		return nil
	}

	_, err := f.svc.VerifyEmail(context.Background(), "jane@example.com", "12ab56")
	assert.ErrorIs(t, err, domain.ErrOTPFormatInvalid)
}

func TestAuthService_VerifyEmailWrongOTP(t *testing.T) {
	f := newAuthServiceForTest(t)

	account := activeAccount()
	account.EmailVerified = false
	account.Status = domain.StatusPending
	f.accountRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.Account, error) {
		return account, nil
	}
	f.otpSvc.ConsumeFunc = func(ctx context.Context, account *domain.Account, code string) error {
		return domain.ErrOTPIncorrect
	}
	f.accountRepo.UpdateFunc = func(ctx context.Context, a *domain.Account) error {
		t.Fatal("a failed consumption must not activate the account")
		return nil
	}

	_, err := f.svc.VerifyEmail(context.Background(), "jane@example.com", "123456")
	assert.ErrorIs(t, err, domain.ErrOTPIncorrect)
}

func TestAuthService_VerifyEmailNotFound(t *testing.T) {
	f := newAuthServiceForTest(t)

	_, err := f.svc.VerifyEmail(context.Background(), "ghost@example.com", "123456")
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestAuthService_Login(t *testing.T) {
	f := newAuthServiceForTest(t)

	account := activeAccount()
	f.accountRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.Account, error) {
		return account, nil
	}

	var issuedClaims *domain.TokenClaims
	f.tokenSvc.IssueAccessTokenFunc = func(claims *domain.TokenClaims) (string, error) {
		issuedClaims = claims
		return "access", nil
	}

	tokens, err := f.svc.Login(context.Background(), "jane@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "access", tokens.AccessToken)
	assert.NotNil(t, account.LastLoginAt, "login must stamp the account")

	require.NotNil(t, issuedClaims)
	assert.Equal(t, "jane@example.com", issuedClaims.Email)
	assert.Empty(t, issuedClaims.CapabilityIDs, "customer tokens carry no grants")
}

func TestAuthService_LoginAdminClaimsCarryGrants(t *testing.T) {
	f := newAuthServiceForTest(t)

	account := activeAccount()
	account.Role = domain.RoleAdmin
	account.CapabilityIDs = []uint{7, 9}
	f.accountRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.Account, error) {
		return account, nil
	}

	var issuedClaims *domain.TokenClaims
	f.tokenSvc.IssueAccessTokenFunc = func(claims *domain.TokenClaims) (string, error) {
		issuedClaims = claims
		return "access", nil
	}

	_, err := f.svc.Login(context.Background(), "jane@example.com", "secret123")
	require.NoError(t, err)
	require.NotNil(t, issuedClaims)
	assert.Equal(t, []uint{7, 9}, issuedClaims.CapabilityIDs)
}

func TestAuthService_LoginWrongPassword(t *testing.T) {
	f := newAuthServiceForTest(t)
	f.accountRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.Account, error) {
		return activeAccount(), nil
	}

	_, err := f.svc.Login(context.Background(), "jane@example.com", "not-the-password")
	assert.ErrorIs(t, err, domain.ErrIncorrectPassword)
}

func TestAuthService_LoginAccountState(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(a *domain.Account)
		wantErr error
	}{
		{"unverified", func(a *domain.Account) { a.EmailVerified = false }, domain.ErrEmailNotVerified},
		{"pending", func(a *domain.Account) { a.Status = domain.StatusPending }, domain.ErrAccountPending},
		{"suspended", func(a *domain.Account) { a.Status = domain.StatusSuspended }, domain.ErrAccountSuspended},
		{"unverified wins over suspended", func(a *domain.Account) {
			a.EmailVerified = false
			a.Status = domain.StatusSuspended
		}, domain.ErrEmailNotVerified},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAuthServiceForTest(t)
			account := activeAccount()
			tt.mutate(account)
			f.accountRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.Account, error) {
				return account, nil
			}

			_, err := f.svc.Login(context.Background(), "jane@example.com", "secret123")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAuthService_LoginNotFound(t *testing.T) {
	f := newAuthServiceForTest(t)

	_, err := f.svc.Login(context.Background(), "ghost@example.com", "secret123")
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestAuthService_ResetPassword(t *testing.T) {
	f := newAuthServiceForTest(t)

	account := activeAccount()
	f.accountRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.Account, error) {
		return account, nil
	}

	err := f.svc.ResetPassword(context.Background(), "jane@example.com", "123456", "newpass99", "newpass99")
	require.NoError(t, err)
	assert.Equal(t, "hashed_newpass99", account.PasswordHash)
}

func TestAuthService_ResetPasswordMismatch(t *testing.T) {
	f := newAuthServiceForTest(t)
	f.otpSvc.ConsumeFunc = func(ctx context.Context, account *domain.Account, code string) error {
		t.Fatal("a mismatched confirmation must not consume the code")
		return nil
	}

	err := f.svc.ResetPassword(context.Background(), "jane@example.com", "123456", "newpass99", "different")
	assert.ErrorIs(t, err, domain.ErrPasswordMismatch)

	// The mismatch wins even when the code is malformed too
	err = f.svc.ResetPassword(context.Background(), "jane@example.com", "12ab56", "newpass99", "different")
	assert.ErrorIs(t, err, domain.ErrPasswordMismatch)
}

func TestAuthService_ResetPasswordExpiredOTP(t *testing.T) {
	f := newAuthServiceForTest(t)
	f.accountRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.Account, error) {
		return activeAccount(), nil
	}
	f.otpSvc.ConsumeFunc = func(ctx context.Context, account *domain.Account, code string) error {
		return domain.ErrOTPExpired
	}

	err := f.svc.ResetPassword(context.Background(), "jane@example.com", "123456", "newpass99", "newpass99")
	assert.ErrorIs(t, err, domain.ErrOTPExpired)
}

func TestAuthService_ResendOTP(t *testing.T) {
	f := newAuthServiceForTest(t)
	f.accountRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.Account, error) {
		account := activeAccount()
		account.EmailVerified = false
		account.Status = domain.StatusPending
		return account, nil
	}

	require.NoError(t, f.svc.ResendOTP(context.Background(), "jane@example.com"))

	sent := f.notifier.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "Your Secure OTP for Verification", sent[0].Subject)
}

func TestAuthService_ResendOTPThrottled(t *testing.T) {
	f := newAuthServiceForTest(t)
	f.accountRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.Account, error) {
		return activeAccount(), nil
	}
	f.otpSvc.IssueFunc = func(ctx context.Context, account *domain.Account) (string, error) {
		return "", domain.ErrOTPResendThrottled
	}

	err := f.svc.ResendOTP(context.Background(), "jane@example.com")
	assert.ErrorIs(t, err, domain.ErrOTPResendThrottled)
	assert.Empty(t, f.notifier.Sent())
}

func TestAuthService_RequestPasswordReset(t *testing.T) {
	f := newAuthServiceForTest(t)
	f.accountRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.Account, error) {
		return activeAccount(), nil
	}

	require.NoError(t, f.svc.RequestPasswordReset(context.Background(), "jane@example.com"))
	require.Len(t, f.notifier.Sent(), 1)
}

func TestAuthService_RequestPasswordResetNotFound(t *testing.T) {
	f := newAuthServiceForTest(t)

	err := f.svc.RequestPasswordReset(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestAuthService_RefreshAccessToken(t *testing.T) {
	f := newAuthServiceForTest(t)
	f.tokenSvc.VerifyRefreshTokenFunc = func(token string) (*domain.TokenClaims, error) {
		return &domain.TokenClaims{Email: "jane@example.com", Role: domain.RoleCustomer}, nil
	}
	f.accountRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.Account, error) {
		return activeAccount(), nil
	}

	token, err := f.svc.RefreshAccessToken(context.Background(), "some-refresh-token")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestAuthService_RefreshAccessTokenInvalid(t *testing.T) {
	f := newAuthServiceForTest(t)

	_, err := f.svc.RefreshAccessToken(context.Background(), "garbage")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestAuthService_RefreshAccessTokenSuspended(t *testing.T) {
	f := newAuthServiceForTest(t)
	f.tokenSvc.VerifyRefreshTokenFunc = func(token string) (*domain.TokenClaims, error) {
		return &domain.TokenClaims{Email: "jane@example.com", Role: domain.RoleCustomer}, nil
	}
	f.accountRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.Account, error) {
		account := activeAccount()
		account.Status = domain.StatusSuspended
		return account, nil
	}

	_, err := f.svc.RefreshAccessToken(context.Background(), "some-refresh-token")
	assert.ErrorIs(t, err, domain.ErrAccountSuspended)
}

func TestAuthService_InviteDashboardUser(t *testing.T) {
	f := newAuthServiceForTest(t)

	var hashedInput string
	f.passwordSvc.HashFunc = func(secret string) (string, error) {
		hashedInput = secret
		return "hashed_invite", nil
	}

	invite := domain.DashboardInvite{
		FullName:      "Sam Ops",
		Email:         "Sam@Example.com",
		Phone:         "+15550002222",
		Role:          domain.RoleAdmin,
		CapabilityIDs: []uint{7, 9},
	}
	account, err := f.svc.InviteDashboardUser(context.Background(), invite)
	require.NoError(t, err)

	assert.Equal(t, "sam@example.com", account.Email)
	assert.Equal(t, domain.RoleAdmin, account.Role)
	assert.Equal(t, domain.StatusPending, account.Status)
	assert.False(t, account.EmailVerified, "invited accounts activate through the normal verification flow")
	assert.Equal(t, []uint{7, 9}, account.CapabilityIDs)
	assert.Len(t, hashedInput, 12, "generated password must be 12 characters")

	sent := f.notifier.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "sam@example.com", sent[0].To)
	assert.True(t, strings.HasPrefix(sent[0].Subject, "Invitation for "))
	assert.Contains(t, sent[0].Body, hashedInput, "invite mail must carry the generated password")
}

func TestAuthService_InviteDashboardUserValidation(t *testing.T) {
	f := newAuthServiceForTest(t)

	tests := []struct {
		name   string
		invite domain.DashboardInvite
	}{
		{"no capabilities", domain.DashboardInvite{FullName: "A", Email: "a@b.com", Phone: "1", Role: domain.RoleAdmin}},
		{"customer role", domain.DashboardInvite{FullName: "A", Email: "a@b.com", Phone: "1", Role: domain.RoleCustomer, CapabilityIDs: []uint{7}}},
		{"superadmin role", domain.DashboardInvite{FullName: "A", Email: "a@b.com", Phone: "1", Role: domain.RoleSuperAdmin, CapabilityIDs: []uint{7}}},
		{"missing email", domain.DashboardInvite{FullName: "A", Phone: "1", Role: domain.RoleAdmin, CapabilityIDs: []uint{7}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.InviteDashboardUser(context.Background(), tt.invite)
			assert.ErrorIs(t, err, domain.ErrValidationFailed)
		})
	}
}

func TestAuthService_InviteDashboardUserEmailTaken(t *testing.T) {
	f := newAuthServiceForTest(t)
	f.accountRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.Account, error) {
		return activeAccount(), nil
	}

	invite := domain.DashboardInvite{
		FullName:      "Sam Ops",
		Email:         "jane@example.com",
		Phone:         "+15550002222",
		Role:          domain.RoleAdmin,
		CapabilityIDs: []uint{7},
	}
	_, err := f.svc.InviteDashboardUser(context.Background(), invite)
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestAuthService_RegisterMailFailureSurfaces(t *testing.T) {
	f := newAuthServiceForTest(t)
	f.notifier.SendFunc = func(ctx context.Context, to, subject, htmlBody string) error {
		return errors.New("smtp down")
	}

	_, err := f.svc.Register(context.Background(), validRegisterInput())
	assert.Error(t, err)
}
