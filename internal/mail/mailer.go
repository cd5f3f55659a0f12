// Package mail delivers application email over SMTP.
package mail

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

const sslPort = 465

// Config holds SMTP transport settings, loaded once at startup.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPMailer sends mail through a single SMTP account.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func New(cfg Config) *SMTPMailer {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	// Implicit TLS on the SMTPS port, STARTTLS otherwise.
	d.SSL = cfg.Port == sslPort
	return &SMTPMailer{dialer: d, from: cfg.From}
}

// Send delivers a single plain-text message. Failures surface
// synchronously; there are no retries.
func (m *SMTPMailer) Send(subject, body, to string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send mail to %q: %w", to, err)
	}
	return nil
}
