package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendSupportEscalation(userId, threadId, message string) error
}

type emailService struct {
	dialer       *gomail.Dialer
	senderEmail  string
	supportEmail string
}

func NewEmailService(host string, port int, username, password, senderEmail, supportEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:       d,
		senderEmail:  senderEmail,
		supportEmail: supportEmail,
	}
}

// SendSupportEscalation notifies the support inbox that a user asked the
// assistant for help. Best effort: callers treat a failure as non-fatal.
func (s *emailService) SendSupportEscalation(userId, threadId, message string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", s.supportEmail)
	m.SetHeader("Subject", "Sahby assistant: support request")

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>A user asked Sahby for help</h2>
			<p><b>User:</b> %s</p>
			<p><b>Thread:</b> %s</p>
			<p><b>Message:</b></p>
			<blockquote>%s</blockquote>
		</div>
	`, userId, threadId, message)

	m.SetBody("text/html", body)
	return s.dialer.DialAndSend(m)
}
