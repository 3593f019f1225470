package mailer

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Sender delivers a single outbound message. One synchronous attempt, no
// retry, no queueing.
type Sender interface {
	Send(ctx context.Context, to, subject, body string, headers map[string]string) error
}

// SendGridSender sends mail through the SendGrid v3 API.
type SendGridSender struct {
	client  *sendgrid.Client
	from    string
	replyTo string
}

// NewSendGridSender creates a SendGridSender. replyTo points replies at the
// inbound-parse address so they land on the /inbound webhook.
func NewSendGridSender(apiKey, from, replyTo string) *SendGridSender {
	return &SendGridSender{
		client:  sendgrid.NewSendClient(apiKey),
		from:    from,
		replyTo: replyTo,
	}
}

// Send performs one delivery attempt. Anything but a 2xx from the provider
// is an error.
func (s *SendGridSender) Send(ctx context.Context, to, subject, body string, headers map[string]string) error {
	m := mail.NewSingleEmail(mail.NewEmail("", s.from), subject, mail.NewEmail("", to), body, "")
	m.SetReplyTo(mail.NewEmail("", s.replyTo))
	for k, v := range headers {
		m.SetHeader(k, v)
	}

	resp, err := s.client.SendWithContext(ctx, m)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid rejected message: %d %s", resp.StatusCode, resp.Body)
	}
	return nil
}
