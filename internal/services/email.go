package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"

	"planpact/internal/domain"
)

type emailService struct {
	mailer      domain.Mailer
	renderer    domain.EmailTemplateRenderer
	frontendURL string
}

// NewEmailService returns an EmailService that renders notifications with renderer and sends them with mailer.
// Links in the e-mails point at frontendURL.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, frontendURL string) domain.EmailService {
	return &emailService{
		mailer:      mailer,
		renderer:    renderer,
		frontendURL: strings.TrimRight(frontendURL, "/"),
	}
}

// Deliver renders the template named after the notification kind and sends it to n.To.
func (s *emailService) Deliver(ctx context.Context, n *domain.Notification) error {
	if n == nil {
		return fmt.Errorf("notification is nil")
	}
	switch n.Kind {
	case domain.NotificationInvitation, domain.NotificationReminder, domain.NotificationWelcome:
	default:
		return fmt.Errorf("unknown notification kind %q", n.Kind)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	data := *n
	data.Link = s.link(n)
	msg, err := s.renderer.Render(&data)
	if err != nil {
		return fmt.Errorf("failed to render %s template: %w", n.Kind, err)
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send %s email: %w", n.Kind, err)
	}
	log.Printf("[EMAIL] %s email sent to %s", n.Kind, n.To)
	return nil
}

func (s *emailService) link(n *domain.Notification) string {
	if n.PactID == "" {
		return s.frontendURL + "/"
	}
	return s.frontendURL + "/pact-detail.html?id=" + url.QueryEscape(n.PactID)
}
