package notifications

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	"github.com/trisers/shopauth/domain"
)

// SendGridServiceImpl implements domain.NotificationService
type SendGridServiceImpl struct {
	client   *sendgrid.Client
	fromAddr string
	fromName string
	logger   *zap.Logger
}

// NewSendGridService creates a new SendGrid notification service. With
// an empty API key the service logs messages instead of sending them,
// which keeps local development working without credentials.
func NewSendGridService(apiKey, fromAddr, fromName string, logger *zap.Logger) domain.NotificationService {
	svc := &SendGridServiceImpl{
		fromAddr: fromAddr,
		fromName: fromName,
		logger:   logger,
	}
	if apiKey != "" {
		svc.client = sendgrid.NewSendClient(apiKey)
	}
	return svc
}

// Send implements domain.NotificationService
func (s *SendGridServiceImpl) Send(ctx context.Context, to, subject, htmlBody string) error {
	if s.client == nil {
		s.logger.Info("mail delivery skipped, no API key configured",
			zap.String("to", to),
			zap.String("subject", subject))
		return nil
	}

	message := mail.NewSingleEmail(
		mail.NewEmail(s.fromName, s.fromAddr),
		subject,
		mail.NewEmail("", to),
		"",
		htmlBody,
	)

	resp, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("mail provider rejected message: status %d", resp.StatusCode)
	}
	return nil
}
