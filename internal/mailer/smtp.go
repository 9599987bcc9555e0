package mailer

import (
	"context"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"

	"hrcc/internal/platform/config"
)

// SMTPSender relays through the configured provider over STARTTLS.
type SMTPSender struct {
	host     string
	opts     []mail.Option
	from     string
	fromName string
}

// NewSMTPSender validates credentials for the selected provider.
func NewSMTPSender(cfg config.EmailConfig) (*SMTPSender, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &SMTPSender{
		host: cfg.Host,
		opts: []mail.Option{
			mail.WithPort(cfg.Port),
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
			mail.WithTLSPolicy(mail.TLSMandatory),
			mail.WithTimeout(20 * time.Second),
		},
		from:     cfg.From,
		fromName: cfg.FromName,
	}, nil
}

func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	m, err := s.build(msg)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDelivery, err)
	}

	// One client per message: each send gets its own SMTP session.
	client, err := mail.NewClient(s.host, s.opts...)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDelivery, err)
	}
	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("%w: %v", ErrDelivery, err)
	}
	return nil
}

func (s *SMTPSender) build(msg Message) (*mail.Msg, error) {
	m := mail.NewMsg()
	if err := m.FromFormat(s.fromName, s.from); err != nil {
		return nil, fmt.Errorf("set from: %w", err)
	}
	if err := m.AddToFormat(msg.ToName, msg.ToEmail); err != nil {
		return nil, fmt.Errorf("set recipient: %w", err)
	}
	m.Subject(msg.Subject)
	text := msg.Text
	if text == "" {
		text = msg.Subject
	}
	m.SetBodyString(mail.TypeTextPlain, text)
	m.AddAlternativeString(mail.TypeTextHTML, msg.HTML)
	return m, nil
}
