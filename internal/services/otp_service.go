package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/trisers/shopauth/domain"
)

// OTPServiceImpl implements domain.OTPService. Codes live in a single
// slot on the account, stored only as a bcrypt hash. Redis carries the
// per-challenge attempt counter and the resend throttle.
type OTPServiceImpl struct {
	accountRepo domain.AccountRepository
	passwordSvc domain.PasswordService
	redisClient *redis.Client
	config      OTPConfig
}

type OTPConfig struct {
	TTL          time.Duration
	MaxAttempts  int
	ResendWindow time.Duration
}

// NewOTPService creates a new OTP service
func NewOTPService(accountRepo domain.AccountRepository, passwordSvc domain.PasswordService, redisClient *redis.Client, config OTPConfig) domain.OTPService {
	return &OTPServiceImpl{
		accountRepo: accountRepo,
		passwordSvc: passwordSvc,
		redisClient: redisClient,
		config:      config,
	}
}

// Issue implements domain.OTPService. It overwrites any outstanding
// challenge: at most one challenge per account, shared between the
// registration and password-reset flows. The plaintext code is
// returned for the notifier and never stored.
func (s *OTPServiceImpl) Issue(ctx context.Context, account *domain.Account) (string, error) {
	resendKey := s.resendKey(account.ID)
	ttl, err := s.redisClient.TTL(ctx, resendKey).Result()
	if err != nil {
		return "", fmt.Errorf("failed to check resend throttle: %w", err)
	}
	if ttl > 0 {
		return "", domain.ErrOTPResendThrottled
	}

	code, err := generateCode()
	if err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}

	hashed, err := s.passwordSvc.Hash(code)
	if err != nil {
		return "", fmt.Errorf("failed to hash otp: %w", err)
	}

	expiry := time.Now().Add(s.config.TTL)
	account.OTPHash = hashed
	account.OTPExpiresAt = &expiry
	if err := s.accountRepo.Update(ctx, account); err != nil {
		return "", fmt.Errorf("failed to store otp challenge: %w", err)
	}

	if err := s.redisClient.Set(ctx, s.attemptsKey(account.ID), 0, s.config.TTL).Err(); err != nil {
		return "", fmt.Errorf("failed to reset attempts counter: %w", err)
	}
	if s.config.ResendWindow > 0 {
		if err := s.redisClient.Set(ctx, resendKey, 1, s.config.ResendWindow).Err(); err != nil {
			return "", fmt.Errorf("failed to set resend throttle: %w", err)
		}
	}

	return code, nil
}

// Consume implements domain.OTPService. Expiry is checked lazily here,
// never swept in the background. On success the challenge slot is
// cleared on the account in memory; the caller persists it together
// with the resulting account state (verified vs password-reset). A
// cleared or never-armed slot reports an incorrect code, so replaying
// a consumed code fails the same way a wrong guess does.
func (s *OTPServiceImpl) Consume(ctx context.Context, account *domain.Account, code string) error {
	if !s.ValidateFormat(code) {
		return domain.ErrOTPFormatInvalid
	}
	if account.OTPHash == "" {
		return domain.ErrOTPIncorrect
	}
	if IsExpired(account.OTPExpiresAt) {
		return domain.ErrOTPExpired
	}

	attempts, err := s.redisClient.Incr(ctx, s.attemptsKey(account.ID)).Result()
	if err != nil {
		return fmt.Errorf("failed to count otp attempt: %w", err)
	}
	if s.config.MaxAttempts > 0 && attempts > int64(s.config.MaxAttempts) {
		// Invalidate the challenge outright; a fresh one must be requested
		account.OTPHash = ""
		account.OTPExpiresAt = nil
		if err := s.accountRepo.Update(ctx, account); err != nil {
			return fmt.Errorf("failed to invalidate otp challenge: %w", err)
		}
		s.redisClient.Del(ctx, s.attemptsKey(account.ID))
		return domain.ErrOTPTooManyAttempts
	}

	if !s.passwordSvc.Verify(account.OTPHash, code) {
		return domain.ErrOTPIncorrect
	}

	account.OTPHash = ""
	account.OTPExpiresAt = nil
	s.redisClient.Del(ctx, s.attemptsKey(account.ID), s.resendKey(account.ID))
	return nil
}

// ValidateFormat implements domain.OTPService: exactly 6 ASCII digits
func (s *OTPServiceImpl) ValidateFormat(code string) bool {
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

// IsExpired reports whether an OTP expiry has passed. A missing expiry
// counts as expired; Consume never reaches it with a cleared slot.
func IsExpired(expiry *time.Time) bool {
	if expiry == nil {
		return true
	}
	return expiry.Before(time.Now())
}

// generateCode draws a code uniformly from [100000, 999999], so the
// string form always has exactly 6 digits
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", n.Int64()+100000), nil
}

func (s *OTPServiceImpl) attemptsKey(accountID uint) string {
	return fmt.Sprintf("otp:att:%d", accountID)
}

func (s *OTPServiceImpl) resendKey(accountID uint) string {
	return fmt.Sprintf("otp:res:%d", accountID)
}
