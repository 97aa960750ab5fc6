// internal/pkg/email/smtp.go
package email

import (
	"fmt"
	"net/smtp"
	"strings"
)

// sendSMTP delivers the message through the configured SMTP relay
func (s *Service) sendSMTP(msg *Email) error {
	cfg := s.config.Email
	if cfg.SMTPHost == "" {
		return fmt.Errorf("SMTP host not configured")
	}

	addr := fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort)

	var auth smtp.Auth
	if cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPHost)
	}

	headers := []string{
		fmt.Sprintf("From: %s <%s>", cfg.FromName, cfg.FromEmail),
		fmt.Sprintf("To: %s", strings.Join(msg.To, ", ")),
		fmt.Sprintf("Subject: %s", msg.Subject),
		"MIME-Version: 1.0",
		`Content-Type: text/html; charset="UTF-8"`,
	}

	message := strings.Join(headers, "\r\n") + "\r\n\r\n" + msg.HTMLContent

	if err := smtp.SendMail(addr, auth, cfg.FromEmail, msg.To, []byte(message)); err != nil {
		return fmt.Errorf("failed to send email via SMTP: %w", err)
	}

	return nil
}
