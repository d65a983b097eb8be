package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Email is an archived customer email.
type Email struct {
	ID          uuid.UUID  `db:"id"`
	CustomerID  uuid.UUID  `db:"customer_id"`
	Subject     string     `db:"subject"`
	Body        string     `db:"body"`
	FromAddress string     `db:"from_address"`
	OwnerID     *uuid.UUID `db:"owner_id"`
	SentAt      time.Time  `db:"sent_at"`
}

// Meeting is a scheduled or past customer meeting.
type Meeting struct {
	ID            uuid.UUID  `db:"id"`
	CustomerID    uuid.UUID  `db:"customer_id"`
	Title         string     `db:"title"`
	Notes         string     `db:"notes"`
	AttendeeCount int        `db:"attendee_count"`
	OwnerID       *uuid.UUID `db:"owner_id"`
	ScheduledAt   time.Time  `db:"scheduled_at"`
}

// Document is shared content, optionally attached to a customer.
type Document struct {
	ID         uuid.UUID  `db:"id"`
	CustomerID *uuid.UUID `db:"customer_id"`
	Title      string     `db:"title"`
	Content    string     `db:"content"`
	OwnerID    *uuid.UUID `db:"owner_id"`
	UpdatedAt  time.Time  `db:"updated_at"`
}

// Playbook is a reusable success workflow.
type Playbook struct {
	ID          uuid.UUID  `db:"id"`
	Name        string     `db:"name"`
	Description string     `db:"description"`
	OwnerID     *uuid.UUID `db:"owner_id"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

// Task is a follow-up item, optionally attached to a customer.
type Task struct {
	ID          uuid.UUID  `db:"id"`
	CustomerID  *uuid.UUID `db:"customer_id"`
	Title       string     `db:"title"`
	Description string     `db:"description"`
	Status      string     `db:"status"`
	OwnerID     *uuid.UUID `db:"owner_id"`
	DueAt       *time.Time `db:"due_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

// Note is free-form text attached to a customer.
type Note struct {
	ID         uuid.UUID  `db:"id"`
	CustomerID uuid.UUID  `db:"customer_id"`
	Title      string     `db:"title"`
	Body       string     `db:"body"`
	OwnerID    *uuid.UUID `db:"owner_id"`
	UpdatedAt  time.Time  `db:"updated_at"`
}

// Activity is a timeline entry on a customer.
type Activity struct {
	ID         uuid.UUID  `db:"id"`
	CustomerID uuid.UUID  `db:"customer_id"`
	Kind       string     `db:"kind"`
	Summary    string     `db:"summary"`
	OwnerID    *uuid.UUID `db:"owner_id"`
	OccurredAt time.Time  `db:"occurred_at"`
}

// Repository provides create and per-customer list operations for every
// searchable record type.
type Repository interface {
	CreateEmail(ctx context.Context, tenantID uuid.UUID, email Email) (Email, error)
	ListEmails(ctx context.Context, tenantID, customerID uuid.UUID, limit int) ([]Email, error)

	CreateMeeting(ctx context.Context, tenantID uuid.UUID, meeting Meeting) (Meeting, error)
	ListMeetings(ctx context.Context, tenantID, customerID uuid.UUID, limit int) ([]Meeting, error)

	CreateDocument(ctx context.Context, tenantID uuid.UUID, doc Document) (Document, error)
	ListDocuments(ctx context.Context, tenantID uuid.UUID, customerID *uuid.UUID, limit int) ([]Document, error)

	CreatePlaybook(ctx context.Context, tenantID uuid.UUID, playbook Playbook) (Playbook, error)
	ListPlaybooks(ctx context.Context, tenantID uuid.UUID, limit int) ([]Playbook, error)

	CreateTask(ctx context.Context, tenantID uuid.UUID, task Task) (Task, error)
	ListTasks(ctx context.Context, tenantID uuid.UUID, customerID *uuid.UUID, limit int) ([]Task, error)

	CreateNote(ctx context.Context, tenantID uuid.UUID, note Note) (Note, error)
	ListNotes(ctx context.Context, tenantID, customerID uuid.UUID, limit int) ([]Note, error)

	CreateActivity(ctx context.Context, tenantID uuid.UUID, activity Activity) (Activity, error)
	ListActivities(ctx context.Context, tenantID, customerID uuid.UUID, limit int) ([]Activity, error)
}
