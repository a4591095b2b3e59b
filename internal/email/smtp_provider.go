package email

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"

	"projecthub_backend/internal/config"
)

// SMTPProvider delivers mail over plain SMTP or SMTPS, depending on config.
type SMTPProvider struct {
	host     string
	port     int
	from     string
	fromName string
	useTLS   bool
	auth     smtp.Auth
}

func NewSMTPProvider(cfg *config.Config) *SMTPProvider {
	var auth smtp.Auth
	if cfg.Email.SMTPUsername != "" && cfg.Email.SMTPPassword != "" {
		auth = smtp.PlainAuth("", cfg.Email.SMTPUsername, cfg.Email.SMTPPassword, cfg.Email.SMTPHost)
	}

	return &SMTPProvider{
		host:     cfg.Email.SMTPHost,
		port:     cfg.Email.SMTPPort,
		from:     cfg.Email.FromEmail,
		fromName: cfg.Email.FromName,
		useTLS:   cfg.Email.UseTLS,
		auth:     auth,
	}
}

func (p *SMTPProvider) Send(email *Email) error {
	if p.host == "" {
		return fmt.Errorf("SMTP host is not configured")
	}
	if email.From == "" {
		email.From = fmt.Sprintf("%s <%s>", p.fromName, p.from)
	}

	message := p.buildMessage(email)
	addr := fmt.Sprintf("%s:%d", p.host, p.port)

	if p.useTLS {
		conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: p.host})
		if err != nil {
			return fmt.Errorf("failed to dial TLS: %w", err)
		}
		defer conn.Close()

		client, err := smtp.NewClient(conn, p.host)
		if err != nil {
			return fmt.Errorf("failed to create SMTP client: %w", err)
		}
		defer client.Close()

		return p.sendWithClient(client, email, message)
	}

	return smtp.SendMail(addr, p.auth, p.from, email.To, message)
}

func (p *SMTPProvider) Close() error {
	return nil
}

func (p *SMTPProvider) buildMessage(email *Email) []byte {
	builder := &strings.Builder{}

	builder.WriteString(fmt.Sprintf("From: %s\r\n", email.From))
	builder.WriteString(fmt.Sprintf("To: %s\r\n", strings.Join(email.To, ",")))
	builder.WriteString(fmt.Sprintf("Subject: %s\r\n", email.Subject))
	builder.WriteString("MIME-Version: 1.0\r\n")

	if email.HTMLBody != "" {
		builder.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n")
		builder.WriteString(email.HTMLBody)
	} else {
		builder.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n\r\n")
		builder.WriteString(email.Body)
	}

	return []byte(builder.String())
}

func (p *SMTPProvider) sendWithClient(client *smtp.Client, email *Email, message []byte) error {
	if p.auth != nil {
		if err := client.Auth(p.auth); err != nil {
			return fmt.Errorf("failed to authenticate: %w", err)
		}
	}

	if err := client.Mail(p.from); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	for _, recipient := range email.To {
		if err := client.Rcpt(recipient); err != nil {
			return fmt.Errorf("failed to set recipient %s: %w", recipient, err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to open data writer: %w", err)
	}
	if _, err := w.Write(message); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	return w.Close()
}
