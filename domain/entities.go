package domain

import "time"

// Account roles
const (
	RoleCustomer   = "customer"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "superadmin"
)

// Account lifecycle statuses
const (
	StatusPending   = "pending"
	StatusActive    = "active"
	StatusSuspended = "suspended"
)

// Account represents an identity record in the store
type Account struct {
	ID             uint
	FullName       string
	Email          string
	Phone          string
	PasswordHash   string
	Role           string
	Status         string
	EmailVerified  bool
	CapabilityIDs  []uint
	OTPHash        string
	OTPExpiresAt   *time.Time
	LastLoginAt    *time.Time
	ProfilePicture string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Capability is a named permission unit granted to dashboard accounts.
// CapabilityID is assigned once at creation and never changes.
type Capability struct {
	ID           uint
	CapabilityID uint
	Name         string
	Description  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TokenClaims is the decoded payload of a signed token
type TokenClaims struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Role          string `json:"role"`
	CapabilityIDs []uint `json:"capability_ids,omitempty"`
	IssuedAt      int64  `json:"iat"`
	ExpiresAt     int64  `json:"exp"`
}

// TokenPair is the outcome of a successful verification or login
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// RegisterInput carries the registration request fields
type RegisterInput struct {
	FullName       string
	Email          string
	Password       string
	Phone          string
	ProfilePicture string
}

// DashboardInvite carries the admin-invite request fields.
// The invited account receives a generated password by email.
type DashboardInvite struct {
	FullName       string
	Email          string
	Phone          string
	Role           string
	CapabilityIDs  []uint
	ProfilePicture string
}

// HasCapability reports whether the claims carry the given capability id
func (c *TokenClaims) HasCapability(id uint) bool {
	for _, granted := range c.CapabilityIDs {
		if granted == id {
			return true
		}
	}
	return false
}

// CanLogin reports whether the account state allows credential checks to proceed
func (a *Account) CanLogin() bool {
	return a.EmailVerified && a.Status == StatusActive
}
