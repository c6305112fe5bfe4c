package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/portfolio/backend/internal/metrics"
	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/pkg/mailer"
)

// NotifyOutcome is the result of a notification attempt.
type NotifyOutcome int

const (
	NotifySent NotifyOutcome = iota
	NotifyFailed
)

func (o NotifyOutcome) String() string {
	if o == NotifySent {
		return metrics.ResultSent
	}
	return metrics.ResultFailed
}

// ContactNotifier relays a stored contact message to the site owner.
// Implementations never return errors: every failure is logged and reported as NotifyFailed.
type ContactNotifier interface {
	Notify(ctx context.Context, msg *model.ContactMessage) NotifyOutcome
}

const defaultNotifyTimeout = 10 * time.Second

// NotifierConfig holds the fixed sender and recipient of notification emails.
type NotifierConfig struct {
	From     string
	To       string
	SiteName string
	Timeout  time.Duration
}

// EmailNotifier sends one plain-text email per contact message.
type EmailNotifier struct {
	sender mailer.Sender
	cfg    NotifierConfig
}

// NewEmailNotifier creates an EmailNotifier delivering through sender.
func NewEmailNotifier(sender mailer.Sender, cfg NotifierConfig) *EmailNotifier {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultNotifyTimeout
	}
	return &EmailNotifier{sender: sender, cfg: cfg}
}

var _ ContactNotifier = (*EmailNotifier)(nil)

// Notify emails msg to the configured recipient with Reply-To set to the visitor.
func (n *EmailNotifier) Notify(ctx context.Context, msg *model.ContactMessage) (outcome NotifyOutcome) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "contact notification panicked", "contact_id", msg.ID, "panic", r)
			outcome = NotifyFailed
		}
		metrics.ContactNotificationDuration.Observe(time.Since(start).Seconds())
		metrics.ContactNotificationsTotal.WithLabelValues(outcome.String()).Inc()
	}()

	if err := n.send(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "contact notification failed",
			"contact_id", msg.ID,
			"recipient", n.cfg.To,
			"error", err,
		)
		return NotifyFailed
	}
	slog.InfoContext(ctx, "contact notification sent", "contact_id", msg.ID)
	return NotifySent
}

func (n *EmailNotifier) send(ctx context.Context, msg *model.ContactMessage) error {
	if n.sender == nil {
		return errors.New("no email sender configured")
	}
	if n.cfg.From == "" || n.cfg.To == "" {
		return fmt.Errorf("notification addresses not configured (from=%q, to=%q)", n.cfg.From, n.cfg.To)
	}

	ctx, cancel := context.WithTimeout(ctx, n.cfg.Timeout)
	defer cancel()
	return n.sender.Send(ctx, n.buildMessage(msg))
}

func (n *EmailNotifier) buildMessage(msg *model.ContactMessage) mailer.Message {
	subject := "New contact message: " + msg.Subject
	if n.cfg.SiteName != "" {
		subject = "[" + n.cfg.SiteName + "] " + subject
	}
	return mailer.Message{
		From:    n.cfg.From,
		To:      []string{n.cfg.To},
		ReplyTo: msg.Email,
		Subject: subject,
		Body:    notificationBody(msg),
	}
}

func notificationBody(msg *model.ContactMessage) string {
	var b strings.Builder
	b.WriteString("You have received a new message through the contact form.\n\n")
	fmt.Fprintf(&b, "Name:     %s\n", msg.Name)
	fmt.Fprintf(&b, "Email:    %s\n", msg.Email)
	fmt.Fprintf(&b, "Subject:  %s\n", msg.Subject)
	fmt.Fprintf(&b, "Received: %s\n", msg.Timestamp.UTC().Format("2006-01-02 15:04:05 MST"))
	b.WriteString("\nMessage:\n")
	b.WriteString(msg.Message)
	b.WriteString("\n")
	return b.String()
}
