package notifications

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"

	"flytau/internal/shared/config"
	"flytau/pkg/logger"
)

// EmailService delivers a notification to its recipient.
type EmailService interface {
	SendNotification(ctx context.Context, notification *Notification) error
}

// SMTPEmailService sends plain text email over SMTP with STARTTLS.
type SMTPEmailService struct {
	config config.EmailConfig
	log    *logger.Logger
}

func NewSMTPEmailService(cfg config.EmailConfig, log *logger.Logger) (*SMTPEmailService, error) {
	if cfg.SMTPHost == "" {
		return nil, fmt.Errorf("smtp host is required")
	}
	if cfg.SMTPPort <= 0 || cfg.SMTPPort > 65535 {
		return nil, fmt.Errorf("smtp port must be between 1 and 65535")
	}
	if cfg.FromEmail == "" {
		return nil, fmt.Errorf("from email is required")
	}

	return &SMTPEmailService{config: cfg, log: log}, nil
}

func (s *SMTPEmailService) SendNotification(ctx context.Context, notification *Notification) error {
	message := s.buildMessage(notification)
	addr := fmt.Sprintf("%s:%d", s.config.SMTPHost, s.config.SMTPPort)

	var auth smtp.Auth
	if s.config.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.config.SMTPUsername, s.config.SMTPPassword, s.config.SMTPHost)
	}

	if err := s.sendWithSTARTTLS(addr, auth, notification.RecipientEmail, message); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (s *SMTPEmailService) buildMessage(notification *Notification) []byte {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("From: FlyTAU <%s>\r\n", s.config.FromEmail))
	b.WriteString(fmt.Sprintf("To: %s\r\n", notification.RecipientEmail))
	b.WriteString(fmt.Sprintf("Subject: %s\r\n", notification.Subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(notification.Body)
	b.WriteString("\r\n")
	return []byte(b.String())
}

func (s *SMTPEmailService) sendWithSTARTTLS(addr string, auth smtp.Auth, to string, message []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to connect to smtp server: %w", err)
	}
	defer client.Quit()

	tlsconfig := &tls.Config{ServerName: s.config.SMTPHost}
	if err = client.StartTLS(tlsconfig); err != nil {
		return fmt.Errorf("failed to start tls: %w", err)
	}

	if auth != nil {
		if err = client.Auth(auth); err != nil {
			return fmt.Errorf("failed to authenticate: %w", err)
		}
	}

	if err = client.Mail(s.config.FromEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err = client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}
	if _, err = w.Write(message); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	return w.Close()
}
