package model

import (
	"fmt"
	"strings"
	"time"
)

// ContactStatus is the review state of a contact message.
type ContactStatus string

const (
	ContactStatusNew  ContactStatus = "new"
	ContactStatusRead ContactStatus = "read"
)

// ParseContactStatus converts s into a ContactStatus. Matching is case-insensitive
// and surrounding whitespace is ignored.
func ParseContactStatus(s string) (ContactStatus, error) {
	status := ContactStatus(strings.ToLower(strings.TrimSpace(s)))
	if !status.Valid() {
		return "", fmt.Errorf("invalid contact status %q", s)
	}
	return status, nil
}

// Valid reports whether s is one of the defined statuses.
func (s ContactStatus) Valid() bool {
	switch s {
	case ContactStatusNew, ContactStatusRead:
		return true
	default:
		return false
	}
}

func (s ContactStatus) String() string { return string(s) }

// ContactMessage represents a message submitted via the contact form.
type ContactMessage struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Subject   string        `json:"subject"`
	Message   string        `json:"message"`
	Status    ContactStatus `json:"status"`
	Timestamp time.Time     `json:"timestamp"`
}

// String returns the admin display label of the message.
func (m *ContactMessage) String() string {
	return m.Name + " — " + m.Subject
}

// ContactListOptions carries filter and pagination parameters for listing contact messages.
// Zero values mean "no filter"; results are always newest first.
type ContactListOptions struct {
	Status ContactStatus
	Since  time.Time
	Until  time.Time
	// Search matches case-insensitively against name, email, subject and message.
	Search string
	Limit  int
	Offset int
}
