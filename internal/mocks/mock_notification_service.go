package mocks

import (
	"context"
	"sync"

	"github.com/trisers/shopauth/domain"
)

// SentMail captures one notifier invocation
type SentMail struct {
	To      string
	Subject string
	Body    string
}

// MockNotificationService implements domain.NotificationService for testing
type MockNotificationService struct {
	SendFunc func(ctx context.Context, to, subject, htmlBody string) error

	mu   sync.Mutex
	sent []SentMail
}

// NewMockNotificationService creates a new MockNotificationService with default behaviors
func NewMockNotificationService() *MockNotificationService {
	return &MockNotificationService{}
}

// Send records the message and succeeds unless overridden
func (m *MockNotificationService) Send(ctx context.Context, to, subject, htmlBody string) error {
	m.mu.Lock()
	m.sent = append(m.sent, SentMail{To: to, Subject: subject, Body: htmlBody})
	m.mu.Unlock()
	if m.SendFunc != nil {
		return m.SendFunc(ctx, to, subject, htmlBody)
	}
	return nil
}

// Sent returns a copy of everything recorded so far
func (m *MockNotificationService) Sent() []SentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]SentMail, len(m.sent))
	copy(out, m.sent)
	return out
}

// Compile-time interface compliance verification
var _ domain.NotificationService = (*MockNotificationService)(nil)
