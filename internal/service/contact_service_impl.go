package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/portfolio/backend/internal/metrics"
	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/internal/repository"
)

// contactServiceImpl is the production implementation of ContactService.
type contactServiceImpl struct {
	repo     repository.ContactRepository
	notifier ContactNotifier
}

// NewContactService creates a ContactService backed by the given repository and notifier.
func NewContactService(repo repository.ContactRepository, notifier ContactNotifier) ContactService {
	return &contactServiceImpl{repo: repo, notifier: notifier}
}

// Submit runs validate → store → notify. The message is always stored before the
// notifier is called, and the notification outcome never affects the stored row.
func (s *contactServiceImpl) Submit(ctx context.Context, form ContactForm) (*SubmitResult, error) {
	msg, errs := ValidateContactForm(form)
	if errs != nil {
		metrics.ContactSubmissionsTotal.WithLabelValues(metrics.ResultInvalid).Inc()
		return &SubmitResult{Errors: errs}, nil
	}

	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("store contact message: %w", err)
	}
	metrics.ContactSubmissionsTotal.WithLabelValues(metrics.ResultStored).Inc()
	slog.InfoContext(ctx, "contact message stored", "contact_id", msg.ID)

	// The record is committed; a client disconnect must not abort the email.
	outcome := s.notifier.Notify(context.WithoutCancel(ctx), msg)
	return &SubmitResult{Message: msg, Notification: outcome}, nil
}

// List returns contact messages according to the given filter/pagination options.
func (s *contactServiceImpl) List(ctx context.Context, opts model.ContactListOptions) ([]*model.ContactMessage, error) {
	return s.repo.List(ctx, opts)
}

// UpdateStatus changes the status of a contact message.
func (s *contactServiceImpl) UpdateStatus(ctx context.Context, id string, status model.ContactStatus) error {
	if !status.Valid() {
		return fmt.Errorf("invalid contact status %q", status)
	}
	return s.repo.UpdateStatus(ctx, id, status)
}
