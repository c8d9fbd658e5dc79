package services

import (
	"fmt"
	"html"
	"strings"

	"gopkg.in/gomail.v2"

	"portfolio/internal/models"
)

type EmailService interface {
	// NotifyNewContact tells the site owner about a fresh contact submission.
	NotifyNewContact(c models.Contact) error
	SendReply(c models.Contact, reply string) error
}

type emailService struct {
	dialer   *gomail.Dialer
	from     string
	notifyTo string
}

func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail, notifyTo string) EmailService {
	dialer := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword)
	if notifyTo == "" {
		notifyTo = fromEmail
	}
	return &emailService{
		dialer:   dialer,
		from:     fromEmail,
		notifyTo: notifyTo,
	}
}

func (s *emailService) NotifyNewContact(c models.Contact) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", s.notifyTo)
	m.SetHeader("Reply-To", c.Email)
	m.SetHeader("Subject", fmt.Sprintf("New portfolio message from %s", c.Name))

	body := fmt.Sprintf(`
		<h3>New contact message</h3>
		<p><strong>Name:</strong> %s</p>
		<p><strong>Email:</strong> %s</p>
		<p>%s</p>
	`, html.EscapeString(c.Name), html.EscapeString(c.Email), multiline(c.Message))

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send contact notification: %w", err)
	}
	return nil
}

func (s *emailService) SendReply(c models.Contact, reply string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", c.Email)
	m.SetHeader("Subject", "Re: your message")

	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>%s</p>
		<hr>
		<p><em>Your message:</em></p>
		<blockquote>%s</blockquote>
	`, html.EscapeString(c.Name), multiline(reply), multiline(c.Message))

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send reply email: %w", err)
	}
	return nil
}

func multiline(s string) string {
	return strings.ReplaceAll(html.EscapeString(s), "\n", "<br>")
}
