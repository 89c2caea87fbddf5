// Package mailer sends plain-text transactional mail over SMTP.
package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/agora-lab/backend/config"
)

type Mailer interface {
	SendMail(ctx context.Context, to, subject, body string) error
}

type smtpMailer struct {
	cfg    config.EmailConfigs
	server string
	auth   smtp.Auth
}

func NewSMTPMailer(cfg config.EmailConfigs) *smtpMailer {
	return &smtpMailer{
		cfg:    cfg,
		server: cfg.Host + ":" + cfg.Port,
		auth:   smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host),
	}
}

func (m *smtpMailer) SendMail(ctx context.Context, to, subject, body string) error {
	if m.cfg.Host == "" || m.cfg.Port == "" || m.cfg.From == "" {
		return fmt.Errorf("mail is not configured")
	}

	from := m.cfg.From
	if m.cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", m.cfg.FromName, m.cfg.From)
	}

	msg := strings.Join([]string{
		"To: " + to,
		"From: " + from,
		"Subject: " + subject,
		"Content-Type: text/plain; charset=UTF-8",
		"",
		body,
	}, "\r\n")

	return smtp.SendMail(m.server, m.auth, m.cfg.From, []string{to}, []byte(msg))
}
