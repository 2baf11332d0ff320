package domain

import "context"

// AccountRepository defines account data access operations
type AccountRepository interface {
	Create(ctx context.Context, account *Account) error
	FindByEmail(ctx context.Context, email string) (*Account, error)
	FindByPhone(ctx context.Context, phone string) (*Account, error)
	FindByID(ctx context.Context, id uint) (*Account, error)
	Update(ctx context.Context, account *Account) error
}

// CapabilityRepository defines capability data access operations
type CapabilityRepository interface {
	Create(ctx context.Context, capability *Capability) error
	FindAll(ctx context.Context) ([]Capability, error)
	FindByID(ctx context.Context, id uint) (*Capability, error)
	FindByName(ctx context.Context, name string) (*Capability, error)
	Update(ctx context.Context, capability *Capability) error
	Delete(ctx context.Context, id uint) error
}

// AuthService defines the registration/login/verify/reset state machine
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*Account, error)
	VerifyEmail(ctx context.Context, email, otp string) (*TokenPair, error)
	Login(ctx context.Context, email, password string) (*TokenPair, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, otp, newPassword, confirmPassword string) error
	ResendOTP(ctx context.Context, email string) error
	RefreshAccessToken(ctx context.Context, refreshToken string) (string, error)
	InviteDashboardUser(ctx context.Context, invite DashboardInvite) (*Account, error)
}

// OTPService defines one-time code lifecycle operations.
// Issue returns the plaintext code so the caller can hand it to the notifier;
// only the bcrypt hash is ever persisted.
type OTPService interface {
	Issue(ctx context.Context, account *Account) (string, error)
	Consume(ctx context.Context, account *Account, code string) error
	ValidateFormat(code string) bool
}

// PasswordService defines one-way hashing for passwords and OTP codes
type PasswordService interface {
	Hash(secret string) (string, error)
	Verify(hashedSecret, candidate string) bool
}

// TokenService defines signed token issuance and verification
type TokenService interface {
	IssueAccessToken(claims *TokenClaims) (string, error)
	IssueRefreshToken(claims *TokenClaims) (string, error)
	VerifyAccessToken(token string) (*TokenClaims, error)
	VerifyRefreshToken(token string) (*TokenClaims, error)
}

// NotificationService delivers rendered content to an account's email
type NotificationService interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// CapabilityService maps request paths to required capabilities and
// carries the superadmin-only capability management operations
type CapabilityService interface {
	Authorize(ctx context.Context, claims *TokenClaims, requestedPath string) error
	Create(ctx context.Context, name, description string) (*Capability, error)
	List(ctx context.Context) ([]Capability, error)
	GetByID(ctx context.Context, id uint) (*Capability, error)
	Update(ctx context.Context, id uint, name, description string) (*Capability, error)
	Delete(ctx context.Context, id uint) error
}
