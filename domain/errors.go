package domain

import "errors"

// Registration and account state errors
var (
	ErrValidationFailed = errors.New("required fields missing or empty")
	ErrEmailTaken       = errors.New("email already registered")
	ErrPhoneTaken       = errors.New("phone already registered")
	ErrAccountNotFound  = errors.New("account not found")
	ErrEmailNotVerified = errors.New("email not verified")
	ErrAccountPending   = errors.New("account pending approval")
	ErrAccountSuspended = errors.New("account suspended")
	ErrAlreadyVerified  = errors.New("email already verified")
)

// Credential errors
var (
	ErrIncorrectPassword = errors.New("incorrect password")
	ErrPasswordMismatch  = errors.New("new password and confirmation do not match")
)

// OTP errors
var (
	ErrOTPFormatInvalid   = errors.New("otp must be a 6 digit code")
	ErrOTPExpired         = errors.New("otp has expired")
	ErrOTPIncorrect       = errors.New("incorrect otp")
	ErrOTPTooManyAttempts = errors.New("maximum otp attempts exceeded")
	ErrOTPResendThrottled = errors.New("otp resend throttled")
)

// Token errors
var (
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("invalid token")
)

// Authorization errors
var (
	ErrUnauthorized = errors.New("unauthorized access")
)

// Capability errors
var (
	ErrCapabilityNotFound  = errors.New("capability not found")
	ErrCapabilityNameTaken = errors.New("capability name already exists")
)
