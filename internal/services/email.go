package services

import (
	"context"
	"fmt"
	"log"

	"campusparties/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer}
}

// SendPendingPartyNotice sends the moderation notice using the "pending_party" template.
func (s *emailService) SendPendingPartyNotice(ctx context.Context, to string, data *domain.PendingPartyEmailData) error {
	if data == nil {
		return fmt.Errorf("pending party data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("pending_party", data)
	if err != nil {
		return fmt.Errorf("failed to render pending_party template: %w", err)
	}
	if err := s.mailer.Send(to, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send pending party notice: %w", err)
	}
	log.Printf("[EMAIL] Pending party notice sent to %s", to)
	return nil
}
