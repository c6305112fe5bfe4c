// Package mailer sends plain-text email through a pluggable Sender.
package mailer

import (
	"context"
	"log/slog"
)

// Message is one outbound plain-text email.
type Message struct {
	From    string
	To      []string
	ReplyTo string
	Subject string
	Body    string
}

// Sender abstracts email delivery so callers can swap SMTP for a test double.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// LogSender writes messages to the default slog logger instead of sending them.
// Used when no SMTP host is configured.
type LogSender struct{}

// Send logs msg at INFO level.
func (LogSender) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	slog.InfoContext(ctx, "email (not sent, no SMTP host configured)",
		"from", msg.From,
		"to", msg.To,
		"reply_to", msg.ReplyTo,
		"subject", msg.Subject,
		"body", msg.Body,
	)
	return nil
}
