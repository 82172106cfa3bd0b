package notify

import (
	"errors"

	gomail "gopkg.in/gomail.v2"

	"github.com/econest-bedding/storefront-api/config"
)

// Sender delivers one HTML email to one recipient with an optional file
// attachment. No retry and no delivery confirmation beyond the relay's
// immediate accept or reject; retrying is the outbox dispatcher's job.
type Sender interface {
	Send(to, subject, htmlBody, attachmentPath string) error
}

type SMTPSender struct {
	cfg config.SMTPConfig
}

func NewSMTPSender(cfg config.SMTPConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

func (s *SMTPSender) Send(to, subject, htmlBody, attachmentPath string) error {
	if s.cfg.Host == "" {
		return errors.New("smtp is not configured")
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.cfg.Username, s.cfg.FromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)
	if attachmentPath != "" {
		m.Attach(attachmentPath)
	}

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)
	d.SSL = s.cfg.Secure
	return d.DialAndSend(m)
}
