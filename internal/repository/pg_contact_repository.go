package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/portfolio/backend/internal/model"
)

// PgContactRepository is the PostgreSQL implementation of ContactRepository.
type PgContactRepository struct {
	pool *pgxpool.Pool
}

// NewPgContactRepository creates a PgContactRepository backed by the given pool.
func NewPgContactRepository(pool *pgxpool.Pool) *PgContactRepository {
	return &PgContactRepository{pool: pool}
}

// Ensure PgContactRepository implements ContactRepository at compile time.
var _ ContactRepository = (*PgContactRepository)(nil)

// Create inserts a new contact_messages row and populates msg.ID and msg.Timestamp
// from the database RETURNING clause.
func (r *PgContactRepository) Create(ctx context.Context, msg *model.ContactMessage) error {
	msg.Status = model.ContactStatusNew
	err := r.pool.QueryRow(ctx,
		`INSERT INTO contact_messages (name, email, subject, message, status)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, submitted_at`,
		msg.Name, msg.Email, msg.Subject, msg.Message, msg.Status,
	).Scan(&msg.ID, &msg.Timestamp)
	if err != nil {
		return fmt.Errorf("insert contact message: %w", err)
	}
	return nil
}

// List returns contact messages filtered by opts, newest first.
func (r *PgContactRepository) List(ctx context.Context, opts model.ContactListOptions) ([]*model.ContactMessage, error) {
	var conditions []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if opts.Status != "" {
		conditions = append(conditions, "status = "+arg(opts.Status))
	}
	if !opts.Since.IsZero() {
		conditions = append(conditions, "submitted_at >= "+arg(opts.Since))
	}
	if !opts.Until.IsZero() {
		conditions = append(conditions, "submitted_at < "+arg(opts.Until))
	}
	if q := strings.TrimSpace(opts.Search); q != "" {
		p := arg(likePattern(q))
		conditions = append(conditions, fmt.Sprintf(
			"(name ILIKE %[1]s ESCAPE '\\' OR email ILIKE %[1]s ESCAPE '\\' OR subject ILIKE %[1]s ESCAPE '\\' OR message ILIKE %[1]s ESCAPE '\\')", p))
	}

	query := `SELECT id, name, email, subject, message, status, submitted_at FROM contact_messages`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY submitted_at DESC, seq DESC"
	if opts.Limit > 0 {
		query += " LIMIT " + arg(opts.Limit)
	}
	if opts.Offset > 0 {
		query += " OFFSET " + arg(opts.Offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list contact messages: %w", err)
	}
	defer rows.Close()

	var messages []*model.ContactMessage
	for rows.Next() {
		var m model.ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Message, &m.Status, &m.Timestamp); err != nil {
			return nil, fmt.Errorf("scan contact message: %w", err)
		}
		messages = append(messages, &m)
	}
	return messages, rows.Err()
}

// UpdateStatus changes the status of the message with the given id.
func (r *PgContactRepository) UpdateStatus(ctx context.Context, id string, status model.ContactStatus) error {
	if !status.Valid() {
		return fmt.Errorf("invalid contact status %q", status)
	}
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}
	tag, err := r.pool.Exec(ctx, `UPDATE contact_messages SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("update contact status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// likePattern wraps q in % wildcards, escaping LIKE metacharacters with a backslash.
func likePattern(q string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(q) + "%"
}
