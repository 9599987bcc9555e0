package mailer

import (
	"context"
	"log/slog"

	"hrcc/internal/platform/config"
)

// LogSender writes messages to the log instead of sending them.
type LogSender struct {
	logger *slog.Logger
}

func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(ctx context.Context, msg Message) error {
	s.logger.InfoContext(ctx, "email suppressed",
		"to", msg.ToEmail,
		"subject", msg.Subject,
		"html_bytes", len(msg.HTML),
	)
	return nil
}

// New picks the SMTP sender, or the log sender when mail is disabled.
func New(cfg config.EmailConfig, logger *slog.Logger) (Sender, error) {
	if cfg.Disabled {
		return NewLogSender(logger), nil
	}
	s, err := NewSMTPSender(cfg)
	if err != nil {
		return nil, err
	}
	return s, nil
}
