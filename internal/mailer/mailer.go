package mailer

import (
	"fmt"
	"net/smtp"
)

// Mailer is the out-of-band delivery collaborator for account mail.
// Delivery failures are returned to the caller, never swallowed.
type Mailer interface {
	Send(to, subject, body string) error
}

type smtpMailer struct {
	host string
	port string
	from string
}

// NewSMTPMailer creates a Mailer backed by plain SMTP (no auth, suitable
// for a local MailHog or an authenticating relay in front of it).
func NewSMTPMailer(host, port, from string) Mailer {
	return &smtpMailer{host: host, port: port, from: from}
}

func (m *smtpMailer) Send(to, subject, body string) error {
	addr := m.host + ":" + m.port

	msg := "From: " + m.from + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n" +
		body

	if err := smtp.SendMail(addr, nil, m.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	return nil
}
