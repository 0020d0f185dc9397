package mailer

import (
	"context"

	"github.com/campdir/campdir/internal/logging"
)

// LogSender is the development fallback used when no mail API key is
// configured. It logs the recipient and subject; the body is not logged
// because reset mails embed a live token.
type LogSender struct {
	logger logging.Logger
}

func NewLogSender(logger logging.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(ctx context.Context, msg Message) error {
	s.logger.Info(ctx, "mail suppressed (no API key configured)", "to", msg.To, "subject", msg.Subject)
	return nil
}
