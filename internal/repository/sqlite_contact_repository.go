package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/portfolio/backend/internal/model"
)

// SqliteContactRepository is the SQLite implementation of ContactRepository.
// Timestamps are stored as unix nanoseconds.
type SqliteContactRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewSqliteContactRepository creates a SqliteContactRepository backed by db.
func NewSqliteContactRepository(db *sql.DB) *SqliteContactRepository {
	return &SqliteContactRepository{db: db, now: time.Now}
}

var _ ContactRepository = (*SqliteContactRepository)(nil)

// Create inserts a new row, assigning a UUID and the current time.
func (r *SqliteContactRepository) Create(ctx context.Context, msg *model.ContactMessage) error {
	id := uuid.NewString()
	ts := r.now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO contact_messages (id, name, email, subject, message, status, submitted_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, msg.Name, msg.Email, msg.Subject, msg.Message, model.ContactStatusNew, ts.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("insert contact message: %w", err)
	}
	msg.ID = id
	msg.Status = model.ContactStatusNew
	msg.Timestamp = ts
	return nil
}

// List returns contact messages filtered by opts, newest first. Rows sharing a
// timestamp come back in reverse insertion order.
func (r *SqliteContactRepository) List(ctx context.Context, opts model.ContactListOptions) ([]*model.ContactMessage, error) {
	var conditions []string
	var args []any

	if opts.Status != "" {
		conditions = append(conditions, "status = ?")
		args = append(args, opts.Status)
	}
	if !opts.Since.IsZero() {
		conditions = append(conditions, "submitted_at >= ?")
		args = append(args, opts.Since.UnixNano())
	}
	if !opts.Until.IsZero() {
		conditions = append(conditions, "submitted_at < ?")
		args = append(args, opts.Until.UnixNano())
	}
	if q := strings.TrimSpace(opts.Search); q != "" {
		p := likePattern(q)
		conditions = append(conditions,
			`(name LIKE ? ESCAPE '\' OR email LIKE ? ESCAPE '\' OR subject LIKE ? ESCAPE '\' OR message LIKE ? ESCAPE '\')`)
		args = append(args, p, p, p, p)
	}

	query := `SELECT id, name, email, subject, message, status, submitted_at FROM contact_messages`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY submitted_at DESC, rowid DESC"
	if opts.Limit > 0 || opts.Offset > 0 {
		limit := opts.Limit
		if limit <= 0 {
			limit = -1
		}
		query += " LIMIT ? OFFSET ?"
		args = append(args, limit, opts.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list contact messages: %w", err)
	}
	defer rows.Close()

	var messages []*model.ContactMessage
	for rows.Next() {
		var m model.ContactMessage
		var submittedAt int64
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Message, &m.Status, &submittedAt); err != nil {
			return nil, fmt.Errorf("scan contact message: %w", err)
		}
		m.Timestamp = time.Unix(0, submittedAt).UTC()
		messages = append(messages, &m)
	}
	return messages, rows.Err()
}

// UpdateStatus changes the status of the message with the given id.
func (r *SqliteContactRepository) UpdateStatus(ctx context.Context, id string, status model.ContactStatus) error {
	if !status.Valid() {
		return fmt.Errorf("invalid contact status %q", status)
	}
	res, err := r.db.ExecContext(ctx, `UPDATE contact_messages SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return fmt.Errorf("update contact status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update contact status: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
