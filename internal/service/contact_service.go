package service

import (
	"context"

	"github.com/portfolio/backend/internal/model"
)

// SubmitResult describes the outcome of one contact form submission.
// When Errors is non-empty nothing was stored and Message is nil.
type SubmitResult struct {
	Message      *model.ContactMessage
	Errors       FieldErrors
	Notification NotifyOutcome
}

// Valid reports whether the submission passed validation and was stored.
func (r *SubmitResult) Valid() bool {
	return len(r.Errors) == 0
}

// ContactService defines the business logic for contact form submissions.
type ContactService interface {
	// Submit validates form, stores the message and notifies the site owner.
	// Validation problems are reported in SubmitResult.Errors; a non-nil error
	// means the message could not be stored.
	Submit(ctx context.Context, form ContactForm) (*SubmitResult, error)

	// List returns contact messages according to the given options.
	List(ctx context.Context, opts model.ContactListOptions) ([]*model.ContactMessage, error)

	// UpdateStatus changes the review status of a contact message.
	UpdateStatus(ctx context.Context, id string, status model.ContactStatus) error
}
