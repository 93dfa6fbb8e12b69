package mail

import (
	"context"
	"log/slog"
	"time"

	"github.com/mailgun/mailgun-go/v4"
)

type Email struct {
	Subject string
	Body    string
	From    string
	To      []string
}

type Mailer interface {
	SendMail(ctx context.Context, e *Email) error
}

type Mailgun struct {
	domain  string
	apiKey  string
	apiBase string
}

func NewMailgun(domain, apiKey, apiBase string) *Mailgun {
	return &Mailgun{
		domain:  domain,
		apiKey:  apiKey,
		apiBase: apiBase,
	}
}

func (m *Mailgun) SendMail(ctx context.Context, e *Email) error {
	mg := mailgun.NewMailgun(m.domain, m.apiKey)
	if m.apiBase != "" {
		mg.SetAPIBase(m.apiBase)
	}

	message := mg.NewMessage(e.From, e.Subject, e.Body, e.To...)

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, _, err := mg.Send(ctx, message)
	return err
}

// LogMailer writes mail to the log instead of sending it. Used in
// development when no Mailgun credentials are configured.
type LogMailer struct {
	Logger *slog.Logger
}

func (m *LogMailer) SendMail(ctx context.Context, e *Email) error {
	m.Logger.Info("mail (not sent, no mailer configured)",
		"to", e.To,
		"subject", e.Subject,
	)
	return nil
}

var (
	_ Mailer = (*Mailgun)(nil)
	_ Mailer = (*LogMailer)(nil)
)
