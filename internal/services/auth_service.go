package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/trisers/shopauth/domain"
	"github.com/trisers/shopauth/internal/infrastructure/notifications"
)

// AuthServiceImpl implements domain.AuthService: the
// registration/verify/login/reset state machine over the account
// lifecycle UNREGISTERED -> PENDING -> ACTIVE -> {SUSPENDED}.
type AuthServiceImpl struct {
	accountRepo domain.AccountRepository
	passwordSvc domain.PasswordService
	tokenSvc    domain.TokenService
	otpSvc      domain.OTPService
	notifier    domain.NotificationService
	logger      *zap.Logger
	otpTTL      time.Duration
}

// NewAuthService creates a new auth service
func NewAuthService(
	accountRepo domain.AccountRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	otpSvc domain.OTPService,
	notifier domain.NotificationService,
	logger *zap.Logger,
	otpTTL time.Duration,
) domain.AuthService {
	return &AuthServiceImpl{
		accountRepo: accountRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		otpSvc:      otpSvc,
		notifier:    notifier,
		logger:      logger,
		otpTTL:      otpTTL,
	}
}

// Register implements domain.AuthService. Email uniqueness is checked
// before phone uniqueness, so a request that clashes on both reports
// the email conflict.
func (s *AuthServiceImpl) Register(ctx context.Context, input domain.RegisterInput) (*domain.Account, error) {
	if anyEmpty(input.FullName, input.Email, input.Password, input.Phone) {
		return nil, domain.ErrValidationFailed
	}

	if err := s.checkUniqueness(ctx, input.Email, input.Phone); err != nil {
		return nil, err
	}

	hashedPassword, err := s.passwordSvc.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := &domain.Account{
		FullName:       strings.TrimSpace(input.FullName),
		Email:          strings.ToLower(strings.TrimSpace(input.Email)),
		Phone:          strings.TrimSpace(input.Phone),
		PasswordHash:   hashedPassword,
		Role:           domain.RoleCustomer,
		Status:         domain.StatusPending,
		EmailVerified:  false,
		ProfilePicture: input.ProfilePicture,
	}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	code, err := s.otpSvc.Issue(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("failed to issue otp: %w", err)
	}

	msg, err := notifications.RegistrationOTPMessage(code, s.otpMinutes())
	if err != nil {
		return nil, fmt.Errorf("failed to render otp mail: %w", err)
	}
	if err := s.notifier.Send(ctx, account.Email, msg.Subject, msg.HTMLBody); err != nil {
		return nil, fmt.Errorf("failed to send otp mail: %w", err)
	}

	s.audit(domain.NewAuditEvent(domain.AccountRegisteredEvent).WithAccount(account.ID, account.Email))
	return account, nil
}

// VerifyEmail implements domain.AuthService. Consuming the OTP is the
// only transition from PENDING(unverified) to ACTIVE.
func (s *AuthServiceImpl) VerifyEmail(ctx context.Context, email, otp string) (*domain.TokenPair, error) {
	if anyEmpty(email, otp) {
		return nil, domain.ErrValidationFailed
	}
	if !s.otpSvc.ValidateFormat(otp) {
		return nil, domain.ErrOTPFormatInvalid
	}

	account, err := s.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if account.EmailVerified {
		return nil, domain.ErrAlreadyVerified
	}

	if err := s.otpSvc.Consume(ctx, account, otp); err != nil {
		s.audit(domain.NewAuditEvent(domain.EmailVerifyFailureEvent).WithAccount(account.ID, account.Email).WithError(err))
		return nil, err
	}

	account.EmailVerified = true
	account.Status = domain.StatusActive
	if err := s.accountRepo.Update(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to activate account: %w", err)
	}

	s.audit(domain.NewAuditEvent(domain.EmailVerifiedEvent).WithAccount(account.ID, account.Email))
	return s.issueTokens(account)
}

// Login implements domain.AuthService
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*domain.TokenPair, error) {
	if anyEmpty(email, password) {
		return nil, domain.ErrValidationFailed
	}

	account, err := s.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if err := checkAccountState(account); err != nil {
		s.audit(domain.NewAuditEvent(domain.LoginFailureEvent).WithAccount(account.ID, account.Email).WithError(err))
		return nil, err
	}
	if !s.passwordSvc.Verify(account.PasswordHash, password) {
		s.audit(domain.NewAuditEvent(domain.LoginFailureEvent).WithAccount(account.ID, account.Email).WithError(domain.ErrIncorrectPassword))
		return nil, domain.ErrIncorrectPassword
	}

	now := time.Now()
	account.LastLoginAt = &now
	if err := s.accountRepo.Update(ctx, account); err != nil {
		s.logger.Warn("failed to stamp last login", zap.Uint("account_id", account.ID), zap.Error(err))
	}

	s.audit(domain.NewAuditEvent(domain.LoginEvent).WithAccount(account.ID, account.Email))
	return s.issueTokens(account)
}

// RequestPasswordReset implements domain.AuthService. Reuses the
// single challenge slot, so any outstanding registration OTP is
// overwritten.
func (s *AuthServiceImpl) RequestPasswordReset(ctx context.Context, email string) error {
	return s.reissueOTP(ctx, email)
}

// ResendOTP implements domain.AuthService
func (s *AuthServiceImpl) ResendOTP(ctx context.Context, email string) error {
	return s.reissueOTP(ctx, email)
}

// ResetPassword implements domain.AuthService. The password mismatch
// check comes before anything that would consume the OTP.
func (s *AuthServiceImpl) ResetPassword(ctx context.Context, email, otp, newPassword, confirmPassword string) error {
	if anyEmpty(email, otp, newPassword, confirmPassword) {
		return domain.ErrValidationFailed
	}
	if newPassword != confirmPassword {
		return domain.ErrPasswordMismatch
	}
	if !s.otpSvc.ValidateFormat(otp) {
		return domain.ErrOTPFormatInvalid
	}

	account, err := s.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if err := checkAccountState(account); err != nil {
		return err
	}

	if err := s.otpSvc.Consume(ctx, account, otp); err != nil {
		s.audit(domain.NewAuditEvent(domain.OTPConsumeFailureEvent).WithAccount(account.ID, account.Email).WithError(err))
		return err
	}

	hashedPassword, err := s.passwordSvc.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	account.PasswordHash = hashedPassword
	if err := s.accountRepo.Update(ctx, account); err != nil {
		return fmt.Errorf("failed to store new password: %w", err)
	}

	s.audit(domain.NewAuditEvent(domain.PasswordResetEvent).WithAccount(account.ID, account.Email))
	return nil
}

// RefreshAccessToken implements domain.AuthService. The refresh token
// is verified against the refresh secret and a fresh access token is
// minted from the account's current role and grants. No rotation: the
// refresh token stays valid until it expires.
func (s *AuthServiceImpl) RefreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.tokenSvc.VerifyRefreshToken(refreshToken)
	if err != nil {
		return "", err
	}

	account, err := s.accountRepo.FindByEmail(ctx, claims.Email)
	if err != nil {
		return "", err
	}
	if err := checkAccountState(account); err != nil {
		return "", err
	}

	return s.tokenSvc.IssueAccessToken(s.claimsFor(account))
}

// InviteDashboardUser implements domain.AuthService. The invited
// account starts in the same PENDING/unverified state as a
// self-registered one and activates through the normal OTP flow; the
// invite mail carries a generated password.
func (s *AuthServiceImpl) InviteDashboardUser(ctx context.Context, invite domain.DashboardInvite) (*domain.Account, error) {
	if anyEmpty(invite.FullName, invite.Email, invite.Phone, invite.Role) || len(invite.CapabilityIDs) == 0 {
		return nil, domain.ErrValidationFailed
	}
	if invite.Role != domain.RoleAdmin {
		return nil, domain.ErrValidationFailed
	}

	if err := s.checkUniqueness(ctx, invite.Email, invite.Phone); err != nil {
		return nil, err
	}

	password, err := generatePassword()
	if err != nil {
		return nil, fmt.Errorf("failed to generate password: %w", err)
	}
	hashedPassword, err := s.passwordSvc.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := &domain.Account{
		FullName:       strings.TrimSpace(invite.FullName),
		Email:          strings.ToLower(strings.TrimSpace(invite.Email)),
		Phone:          strings.TrimSpace(invite.Phone),
		PasswordHash:   hashedPassword,
		Role:           invite.Role,
		Status:         domain.StatusPending,
		EmailVerified:  false,
		CapabilityIDs:  invite.CapabilityIDs,
		ProfilePicture: invite.ProfilePicture,
	}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	msg, err := notifications.DashboardInviteMessage(account.FullName, account.Role, password)
	if err != nil {
		return nil, fmt.Errorf("failed to render invite mail: %w", err)
	}
	if err := s.notifier.Send(ctx, account.Email, msg.Subject, msg.HTMLBody); err != nil {
		return nil, fmt.Errorf("failed to send invite mail: %w", err)
	}

	s.audit(domain.NewAuditEvent(domain.AccountRegisteredEvent).WithAccount(account.ID, account.Email))
	return account, nil
}

func (s *AuthServiceImpl) reissueOTP(ctx context.Context, email string) error {
	if anyEmpty(email) {
		return domain.ErrValidationFailed
	}

	account, err := s.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	code, err := s.otpSvc.Issue(ctx, account)
	if err != nil {
		if errors.Is(err, domain.ErrOTPResendThrottled) {
			return err
		}
		return fmt.Errorf("failed to issue otp: %w", err)
	}

	msg, err := notifications.OTPRequestMessage(code, s.otpMinutes())
	if err != nil {
		return fmt.Errorf("failed to render otp mail: %w", err)
	}
	if err := s.notifier.Send(ctx, account.Email, msg.Subject, msg.HTMLBody); err != nil {
		return fmt.Errorf("failed to send otp mail: %w", err)
	}

	s.audit(domain.NewAuditEvent(domain.OTPIssuedEvent).WithAccount(account.ID, account.Email))
	return nil
}

func (s *AuthServiceImpl) checkUniqueness(ctx context.Context, email, phone string) error {
	if _, err := s.accountRepo.FindByEmail(ctx, email); err == nil {
		return domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrAccountNotFound) {
		return fmt.Errorf("failed to check email uniqueness: %w", err)
	}

	if _, err := s.accountRepo.FindByPhone(ctx, phone); err == nil {
		return domain.ErrPhoneTaken
	} else if !errors.Is(err, domain.ErrAccountNotFound) {
		return fmt.Errorf("failed to check phone uniqueness: %w", err)
	}
	return nil
}

func (s *AuthServiceImpl) issueTokens(account *domain.Account) (*domain.TokenPair, error) {
	claims := s.claimsFor(account)
	accessToken, err := s.tokenSvc.IssueAccessToken(claims)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}
	refreshToken, err := s.tokenSvc.IssueRefreshToken(claims)
	if err != nil {
		return nil, fmt.Errorf("failed to issue refresh token: %w", err)
	}
	return &domain.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *AuthServiceImpl) claimsFor(account *domain.Account) *domain.TokenClaims {
	claims := &domain.TokenClaims{
		Name:  account.FullName,
		Email: account.Email,
		Role:  account.Role,
	}
	if account.Role != domain.RoleCustomer {
		claims.CapabilityIDs = account.CapabilityIDs
	}
	return claims
}

func (s *AuthServiceImpl) audit(event *domain.AuditEvent) {
	fields := []zap.Field{
		zap.String("event", string(event.EventType)),
		zap.Uint("account_id", event.AccountID),
		zap.String("email", event.Email),
		zap.Bool("success", event.Success),
	}
	if event.ErrorMsg != "" {
		fields = append(fields, zap.String("error", event.ErrorMsg))
	}
	s.logger.Info("auth event", fields...)
}

func (s *AuthServiceImpl) otpMinutes() int {
	minutes := int(s.otpTTL.Minutes())
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

// checkAccountState mirrors the login gate: unverified, then pending,
// then suspended, in that order
func checkAccountState(account *domain.Account) error {
	if !account.EmailVerified {
		return domain.ErrEmailNotVerified
	}
	switch account.Status {
	case domain.StatusPending:
		return domain.ErrAccountPending
	case domain.StatusSuspended:
		return domain.ErrAccountSuspended
	}
	return nil
}

func anyEmpty(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}

const passwordAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghjkmnpqrstuvwxyz23456789!@#$%"

// generatePassword builds a 12-character random password for invited
// dashboard accounts
func generatePassword() (string, error) {
	buf := make([]byte, 12)
	max := big.NewInt(int64(len(passwordAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = passwordAlphabet[n.Int64()]
	}
	return string(buf), nil
}
