package repository

import (
	"context"

	"github.com/portfolio/backend/internal/model"
)

// DB checks that the database connection is alive.
type DB interface {
	Ping(ctx context.Context) error
}

// ContactRepository defines the persistence interface for contact messages.
type ContactRepository interface {
	// Create inserts msg with status "new" and fills in its ID and Timestamp.
	Create(ctx context.Context, msg *model.ContactMessage) error
	// List returns contact messages matching opts, newest first.
	List(ctx context.Context, opts model.ContactListOptions) ([]*model.ContactMessage, error)
	// UpdateStatus changes the status of one message. Returns ErrNotFound for unknown ids.
	UpdateStatus(ctx context.Context, id string, status model.ContactStatus) error
}
