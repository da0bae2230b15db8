package notifier

import (
	"context"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Timeout  time.Duration
	// Insecure allows plain-text connections, e.g. to a local relay.
	Insecure bool
}

// EmailSender delivers plain-text messages over SMTP. Each call opens its own
// connection.
type EmailSender struct {
	host string
	from string
	opts []mail.Option
}

func NewEmailSender(cfg SMTPConfig) *EmailSender {
	policy := mail.TLSMandatory
	if cfg.Insecure {
		policy = mail.NoTLS
	}

	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPortPolicy(policy),
	}

	if cfg.Timeout > 0 {
		opts = append(opts, mail.WithTimeout(cfg.Timeout))
	}

	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	return &EmailSender{
		host: cfg.Host,
		from: cfg.From,
		opts: opts,
	}
}

func (s *EmailSender) SendEmail(ctx context.Context, to, subject, body string) error {
	msg, err := s.message(to, subject, body)
	if err != nil {
		return err
	}

	client, err := mail.NewClient(s.host, s.opts...)
	if err != nil {
		return fmt.Errorf("mail.NewClient: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("client.DialAndSendWithContext: %w", err)
	}

	return nil
}

func (s *EmailSender) message(to, subject, body string) (*mail.Msg, error) {
	msg := mail.NewMsg()

	if err := msg.From(s.from); err != nil {
		return nil, fmt.Errorf("msg.From: %w", err)
	}

	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("msg.To: %w", err)
	}

	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	return msg, nil
}
