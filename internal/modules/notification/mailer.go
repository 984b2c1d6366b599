package notification

import (
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Mailer sends notification emails. Delivery is best effort: failures are
// logged, never surfaced to the triggering flow.
type Mailer interface {
	Send(toEmail, toName, subject, body string) error
}

type SendgridMailer struct {
	apiKey   string
	from     string
	fromName string
}

func NewSendgridMailer(apiKey, from, fromName string) *SendgridMailer {
	return &SendgridMailer{apiKey: apiKey, from: from, fromName: fromName}
}

func (m *SendgridMailer) Send(toEmail, toName, subject, body string) error {
	if m.apiKey == "" {
		log.Printf("level=warn msg=sendgrid not configured, dropping email to=%s subject=%q", toEmail, subject)
		return nil
	}

	from := mail.NewEmail(m.fromName, m.from)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, body, body)

	client := sendgrid.NewSendClient(m.apiKey)
	resp, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("sendgrid: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid: status %d", resp.StatusCode)
	}
	return nil
}
