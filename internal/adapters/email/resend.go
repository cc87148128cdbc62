package email

import (
	"context"
	"fmt"
	"log"

	"github.com/resendlabs/resend-go"

	"planpact/internal/domain"
)

// sendFunc submits one request and returns the provider's message id.
type sendFunc func(req *resend.SendEmailRequest) (string, error)

type resendMailer struct {
	send sendFunc
	from string
}

func newResendMailer(apiKey, from string) *resendMailer {
	client := resend.NewClient(apiKey)
	return &resendMailer{
		from: from,
		send: func(req *resend.SendEmailRequest) (string, error) {
			resp, err := client.Emails.Send(req)
			if err != nil {
				return "", err
			}
			return resp.Id, nil
		},
	}
}

// Send submits msg. The Resend client has no context support, so ctx is only checked up front.
func (m *resendMailer) Send(ctx context.Context, msg domain.EmailMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	id, err := m.send(&resend.SendEmailRequest{
		From:    m.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
		Text:    msg.Text,
	})
	if err != nil {
		return fmt.Errorf("send email via Resend: %w", err)
	}
	log.Printf("[MAILER] Resend accepted message %s for %s", id, msg.To)
	return nil
}
