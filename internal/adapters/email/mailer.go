package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"log"
	"net/http"
	"net/mail"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"planpact/internal/domain"
)

// Supported values of MailerConfig.Provider.
const (
	ProviderSES    = "ses"
	ProviderResend = "resend"
	ProviderNoop   = "noop"
)

// SESConfig holds configuration for AWS SES.
type SESConfig struct {
	Region             string
	AccessKeyID        string
	SecretAccessKey    string
	InsecureSkipVerify bool
}

// ResendConfig holds configuration for the Resend API.
type ResendConfig struct {
	APIKey string
}

// MailerConfig holds configuration for creating a mailer.
type MailerConfig struct {
	Provider    string
	FromAddress string
	FromName    string
	SES         SESConfig
	Resend      ResendConfig
}

// NewMailer returns the mailer selected by config.Provider. An empty or unrecognised provider
// falls back to a mailer that only logs, so local runs never send real mail.
func NewMailer(config MailerConfig) (domain.Mailer, error) {
	from := fromHeader(config.FromName, config.FromAddress)
	switch config.Provider {
	case ProviderSES:
		return newSESMailer(config.SES, from)
	case ProviderResend:
		if config.Resend.APIKey == "" {
			return nil, fmt.Errorf("resend mailer: API key is required")
		}
		return newResendMailer(config.Resend.APIKey, from), nil
	case ProviderNoop, "":
		return &noopMailer{}, nil
	default:
		log.Printf("[MAILER] Unknown email provider %q, falling back to noop", config.Provider)
		return &noopMailer{}, nil
	}
}

// fromHeader formats the From header, quoting the display name when it needs it.
func fromHeader(name, address string) string {
	if name == "" {
		return address
	}
	return (&mail.Address{Name: name, Address: address}).String()
}

type sesMailer struct {
	client *ses.Client
	from   string
}

func newSESMailer(cfg SESConfig, from string) (*sesMailer, error) {
	if cfg.Region == "" {
		return nil, fmt.Errorf("ses mailer: AWS region is required")
	}
	if cfg.InsecureSkipVerify {
		log.Printf("[MAILER] WARNING: SES TLS certificate verification is disabled; development only")
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{
		InsecureSkipVerify: cfg.InsecureSkipVerify,
		MinVersion:         tls.VersionTLS12,
	}
	awsCfg := aws.Config{
		Region: cfg.Region,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		),
		HTTPClient: &http.Client{Transport: transport},
	}
	return &sesMailer{client: ses.NewFromConfig(awsCfg), from: from}, nil
}

func (s *sesMailer) Send(ctx context.Context, msg domain.EmailMessage) error {
	out, err := s.client.SendEmail(ctx, sesInput(s.from, msg))
	if err != nil {
		return fmt.Errorf("send email via SES: %w", err)
	}
	log.Printf("[MAILER] SES accepted message %s for %s", aws.ToString(out.MessageId), msg.To)
	return nil
}

// sesInput maps msg onto an SES request. Empty bodies are left out.
func sesInput(from string, msg domain.EmailMessage) *ses.SendEmailInput {
	utf8 := func(s string) *types.Content {
		return &types.Content{Data: aws.String(s), Charset: aws.String("UTF-8")}
	}
	body := &types.Body{}
	if msg.HTML != "" {
		body.Html = utf8(msg.HTML)
	}
	if msg.Text != "" {
		body.Text = utf8(msg.Text)
	}
	return &ses.SendEmailInput{
		Source:      aws.String(from),
		Destination: &types.Destination{ToAddresses: []string{msg.To}},
		Message:     &types.Message{Subject: utf8(msg.Subject), Body: body},
	}
}

type noopMailer struct{}

func (n *noopMailer) Send(_ context.Context, msg domain.EmailMessage) error {
	log.Printf("[MAILER] noop: would send %q to %s", msg.Subject, msg.To)
	return nil
}
