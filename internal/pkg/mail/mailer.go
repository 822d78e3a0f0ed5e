package mail

import (
	"fmt"
	"log"

	"github.com/resendlabs/resend-go"

	"github.com/shauncritzer/rewired/internal/pkg/env"
)

// Mailer sends transactional emails. The interface exists so controllers can
// be exercised without hitting the Resend API.
type Mailer interface {
	Send(to, subject, html string) error
}

// ResendMailer is the concrete Mailer backed by the Resend API.
type ResendMailer struct {
	client    *resend.Client
	fromEmail string
	fromName  string
}

// NewResendMailerFromEnv builds a mailer from RESEND_API_KEY and the FROM
// settings. A missing key yields an error so callers can fall back to a
// no-op mailer in development.
func NewResendMailerFromEnv() (*ResendMailer, error) {
	apiKey := env.GetEnv("RESEND_API_KEY", "")
	if apiKey == "" {
		return nil, fmt.Errorf("RESEND_API_KEY environment variable is required")
	}

	return &ResendMailer{
		client:    resend.NewClient(apiKey),
		fromEmail: env.GetEnv("EMAIL_FROM", "noreply@shauncritzer.com"),
		fromName:  env.GetEnv("EMAIL_FROM_NAME", "Shaun Critzer"),
	}, nil
}

func (m *ResendMailer) Send(to, subject, html string) error {
	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", m.fromName, m.fromEmail),
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}

	if _, err := m.client.Emails.Send(params); err != nil {
		return fmt.Errorf("failed to send email via Resend: %w", err)
	}

	return nil
}

// NoopMailer logs instead of sending. Used when Resend is not configured.
type NoopMailer struct{}

func (NoopMailer) Send(to, subject, _ string) error {
	log.Printf("mail disabled, would send %q to %s", subject, to)
	return nil
}

// SendLeadMagnetEmail delivers the download link for a free resource.
func SendLeadMagnetEmail(m Mailer, to, title, downloadURL string) error {
	subject := fmt.Sprintf("Your download: %s", title)
	html := fmt.Sprintf(
		`<h2>Here's your copy of %s</h2>
<p>Thanks for being here. You can download it any time:</p>
<p><a href="%s">Download %s</a></p>
<p>One day at a time,<br>Shaun</p>`,
		title, downloadURL, title,
	)
	return m.Send(to, subject, html)
}

// SendOrderConfirmation delivers the post-purchase receipt with the members
// area link.
func SendOrderConfirmation(m Mailer, to, productName, membersURL string) error {
	subject := fmt.Sprintf("You're in: %s", productName)
	html := fmt.Sprintf(
		`<h2>Welcome to %s</h2>
<p>Your payment went through. Your content is waiting for you:</p>
<p><a href="%s">Go to the members area</a></p>
<p>Proud of you for taking this step.<br>Shaun</p>`,
		productName, membersURL,
	)
	return m.Send(to, subject, html)
}
