package notify

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
)

// Mailer sends one composed email.
type Mailer interface {
	Send(ctx context.Context, from string, email Email) error
}

// ResendMailer delivers through the Resend transactional email API.
type ResendMailer struct {
	client *resend.Client
}

func NewResendMailer(apiKey string) *ResendMailer {
	return &ResendMailer{client: resend.NewClient(apiKey)}
}

func (m *ResendMailer) Send(ctx context.Context, from string, email Email) error {
	params := &resend.SendEmailRequest{
		From:    from,
		To:      []string{email.To},
		Subject: email.Subject,
		Text:    email.Text,
	}

	if _, err := m.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("send email to %s: %w", email.To, err)
	}

	return nil
}
