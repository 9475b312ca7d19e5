package mailer

import (
	"fmt"

	"salon-booking/pkg/utils"

	"gopkg.in/gomail.v2"
)

type Message struct {
	To      string
	Subject string
	Body    string
}

// Mailer sends a single outbound email. The SMTP implementation is injected
// into the notification dispatcher so tests can substitute a fake.
type Mailer interface {
	Send(msg Message) error
}

type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func New(config utils.EmailConfig) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(config.Host, config.Port, config.User, config.Password),
		from:   config.From,
	}
}

func (s *SMTPMailer) Send(msg Message) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.Body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send email to %s: %w", msg.To, err)
	}

	return nil
}
