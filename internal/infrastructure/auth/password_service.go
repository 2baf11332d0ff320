package auth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/trisers/shopauth/domain"
)

// PasswordServiceImpl implements domain.PasswordService.
// The same hasher covers account passwords and OTP codes; codes are
// never stored in plaintext.
type PasswordServiceImpl struct {
	cost int
}

// NewPasswordService creates a new password service. A cost of 0 falls
// back to bcrypt.DefaultCost.
func NewPasswordService(cost int) domain.PasswordService {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordServiceImpl{cost: cost}
}

// Hash implements domain.PasswordService
func (p *PasswordServiceImpl) Hash(secret string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(secret), p.cost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// Verify implements domain.PasswordService. A mismatch returns false,
// never an error.
func (p *PasswordServiceImpl) Verify(hashedSecret, candidate string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedSecret), []byte(candidate))
	return err == nil
}
