package services

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/avibn/lanten-sub001/internal/utils"
)

// Mailer sends transactional email. Implementations must be safe for
// concurrent use.
type Mailer interface {
	Send(ctx context.Context, toName, toEmail, subject, plainText, htmlContent string) error
}

type sendGridMailer struct {
	client    *sendgrid.Client
	fromName  string
	fromEmail string
}

func NewSendGridMailer(apiKey, fromName, fromEmail string) Mailer {
	return &sendGridMailer{
		client:    sendgrid.NewSendClient(apiKey),
		fromName:  fromName,
		fromEmail: fromEmail,
	}
}

func (m *sendGridMailer) Send(ctx context.Context, toName, toEmail, subject, plainText, htmlContent string) error {
	from := mail.NewEmail(m.fromName, m.fromEmail)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, plainText, htmlContent)

	resp, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("%w: failed to send email via sendgrid: %v", utils.ErrExternalServiceFailure, err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("%w: sendgrid returned status %d", utils.ErrExternalServiceFailure, resp.StatusCode)
	}
	return nil
}
