package notifier

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"

	"github.com/pfrederiksen/padel-events/internal/config"
	"github.com/pfrederiksen/padel-events/internal/tournament"
)

// Envelope is one outgoing email.
type Envelope struct {
	From    string
	To      []string
	Subject string
	Body    string
}

// SendFunc delivers an envelope.
type SendFunc func(ctx context.Context, env Envelope) error

// EmailNotifier sends plain-text emails over SMTP.
type EmailNotifier struct {
	cfg    config.EmailConfig
	format Format
	send   SendFunc
}

// NewEmailNotifier validates cfg and creates an email notifier. It returns
// config.ErrEmailNotConfigured when a required setting is missing.
func NewEmailNotifier(cfg config.EmailConfig, format Format) (*EmailNotifier, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if format.Greeting == "" {
		format.Greeting = cfg.Greeting
	}

	n := &EmailNotifier{cfg: cfg, format: format}
	n.send = n.sendSMTP
	return n, nil
}

// Name returns "email".
func (n *EmailNotifier) Name() string {
	return "email"
}

// Notify sends one email for t.
func (n *EmailNotifier) Notify(ctx context.Context, t *tournament.Tournament) error {
	return n.deliver(ctx, n.format.EmailMessage(t))
}

// NotifyDigest sends one email summarizing tournaments.
func (n *EmailNotifier) NotifyDigest(ctx context.Context, tournaments []*tournament.Tournament) error {
	return n.deliver(ctx, n.format.DigestMessage(tournaments))
}

func (n *EmailNotifier) deliver(ctx context.Context, msg Message) error {
	return n.send(ctx, Envelope{
		From:    n.cfg.From,
		To:      n.cfg.Recipients(),
		Subject: msg.Title,
		Body:    msg.Body,
	})
}

func (n *EmailNotifier) sendSMTP(ctx context.Context, env Envelope) error {
	m := mail.NewMsg()
	if err := m.From(env.From); err != nil {
		return fmt.Errorf("setting sender: %w", err)
	}
	if err := m.To(env.To...); err != nil {
		return fmt.Errorf("setting recipients: %w", err)
	}
	m.Subject(env.Subject)
	m.SetBodyString(mail.TypeTextPlain, env.Body)

	opts := []mail.Option{
		mail.WithPort(n.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(n.cfg.Username),
		mail.WithPassword(n.cfg.Password),
	}
	switch {
	case n.cfg.UseSSL:
		opts = append(opts, mail.WithSSL())
	case n.cfg.UseTLS:
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	default:
		opts = append(opts, mail.WithTLSPolicy(mail.NoTLS))
	}

	client, err := mail.NewClient(n.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("creating SMTP client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("sending email: %w", err)
	}
	return nil
}
