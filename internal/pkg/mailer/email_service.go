package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendChatDeclined(toEmail, topic, department string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
}

func NewEmailService(host string, port int, username, password, senderName string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: username,
		senderName:  senderName,
	}
}

// SendChatDeclined tells a student their pending chat request expired without
// a faculty member picking it up.
func (s *emailService) SendChatDeclined(toEmail, topic, department string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.senderEmail, s.senderName))
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Your live chat request could not be answered")

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Live chat request expired</h2>
			<p>No %s faculty member was available to pick up your request:</p>
			<blockquote>%s</blockquote>
			<p>Please submit a new request during working hours, or reach the department office directly.</p>
		</div>
	`, department, topic)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send decline mail to %s: %w", toEmail, err)
	}

	return nil
}
