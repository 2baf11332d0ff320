package domain

import "time"

// AuditEventType defines the type of audit event
type AuditEventType string

const (
	// Email verification events
	EmailVerifiedEvent      AuditEventType = "EMAIL_VERIFIED"
	EmailVerifyFailureEvent AuditEventType = "EMAIL_VERIFICATION_FAILED"
	OTPIssuedEvent          AuditEventType = "OTP_ISSUED"
	OTPConsumeFailureEvent  AuditEventType = "OTP_CONSUME_FAILED"

	// Authentication events
	AccountRegisteredEvent AuditEventType = "ACCOUNT_REGISTERED"
	LoginEvent             AuditEventType = "LOGIN"
	LoginFailureEvent      AuditEventType = "LOGIN_FAILED"
	PasswordResetEvent     AuditEventType = "PASSWORD_RESET"

	// Authorization events
	AccessGrantedEvent AuditEventType = "ACCESS_GRANTED"
	AccessDeniedEvent  AuditEventType = "ACCESS_DENIED"
)

// AuditEvent represents a security-relevant event that occurred in the system
type AuditEvent struct {
	EventType AuditEventType `json:"event_type"`
	AccountID uint           `json:"account_id,omitempty"`
	Email     string         `json:"email,omitempty"`
	Path      string         `json:"path,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
	ErrorMsg  string         `json:"error_msg,omitempty"`
	Success   bool           `json:"success"`
}

// NewAuditEvent creates a new audit event with common fields populated
func NewAuditEvent(eventType AuditEventType) *AuditEvent {
	return &AuditEvent{
		EventType: eventType,
		Timestamp: time.Now().UTC(),
		Success:   true,
	}
}

// WithError sets error information on the audit event
func (e *AuditEvent) WithError(err error) *AuditEvent {
	e.Success = false
	if err != nil {
		e.ErrorMsg = err.Error()
	}
	return e
}

// WithAccount sets the account fields
func (e *AuditEvent) WithAccount(id uint, email string) *AuditEvent {
	e.AccountID = id
	e.Email = email
	return e
}

// WithPath sets the requested path field
func (e *AuditEvent) WithPath(path string) *AuditEvent {
	e.Path = path
	return e
}
