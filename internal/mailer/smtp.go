package mailer

import (
	"fmt"
	"time"

	gomail "gopkg.in/mail.v2"
)

type SMTPMailer struct {
	dialer    *gomail.Dialer
	fromEmail string
}

func NewSMTPMailer(host string, port int, username, password, fromEmail string) (*SMTPMailer, error) {
	if host == "" {
		return nil, fmt.Errorf("smtp host is required")
	}
	if fromEmail == "" {
		return nil, fmt.Errorf("sender email is required")
	}

	d := gomail.NewDialer(host, port, username, password)
	d.Timeout = 10 * time.Second

	return &SMTPMailer{dialer: d, fromEmail: fromEmail}, nil
}

func (m *SMTPMailer) Send(templateFile, username, email string, data any) error {
	subject, body, err := render(templateFile, data)
	if err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.fromEmail, FromName)
	msg.SetAddressHeader("To", email, username)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	var retryErr error
	for i := 0; i < maxRetries; i++ {
		retryErr = m.dialer.DialAndSend(msg)
		if retryErr == nil {
			return nil
		}
		// back off before the next attempt
		time.Sleep(time.Second * time.Duration(i+1))
	}

	return fmt.Errorf("failed to send email after %d attempts, error: %v", maxRetries, retryErr)
}
