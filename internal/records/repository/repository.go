package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

const defaultListLimit = 50

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new records repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var _ Repository = (*Repo)(nil)

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	return limit
}

func (r *Repo) CreateEmail(ctx context.Context, tenantID uuid.UUID, email Email) (Email, error) {
	query := `
		INSERT INTO emails (tenant_id, customer_id, subject, body, from_address, owner_id, sent_at)
		VALUES ($1, $2, $3, $4, $5, $6, coalesce($7::timestamptz, now()))
		RETURNING id, customer_id, subject, body, from_address, owner_id, sent_at`

	var sentAt interface{}
	if !email.SentAt.IsZero() {
		sentAt = email.SentAt
	}
	err := r.pool.QueryRow(ctx, query,
		tenantID, email.CustomerID, email.Subject, email.Body, email.FromAddress, email.OwnerID, sentAt,
	).Scan(&email.ID, &email.CustomerID, &email.Subject, &email.Body, &email.FromAddress, &email.OwnerID, &email.SentAt)
	if err != nil {
		return Email{}, fmt.Errorf("create email: %w", err)
	}
	return email, nil
}

func (r *Repo) ListEmails(ctx context.Context, tenantID, customerID uuid.UUID, limit int) ([]Email, error) {
	query := `
		SELECT id, customer_id, subject, body, from_address, owner_id, sent_at
		FROM emails
		WHERE tenant_id = $1 AND customer_id = $2
		ORDER BY sent_at DESC, id
		LIMIT $3`

	rows, err := r.pool.Query(ctx, query, tenantID, customerID, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list emails: %w", err)
	}
	defer rows.Close()

	emails := make([]Email, 0)
	for rows.Next() {
		var e Email
		if err := rows.Scan(&e.ID, &e.CustomerID, &e.Subject, &e.Body, &e.FromAddress, &e.OwnerID, &e.SentAt); err != nil {
			return nil, err
		}
		emails = append(emails, e)
	}
	return emails, rows.Err()
}

func (r *Repo) CreateMeeting(ctx context.Context, tenantID uuid.UUID, meeting Meeting) (Meeting, error) {
	query := `
		INSERT INTO meetings (tenant_id, customer_id, title, notes, attendee_count, owner_id, scheduled_at)
		VALUES ($1, $2, $3, $4, $5, $6, coalesce($7::timestamptz, now()))
		RETURNING id, customer_id, title, notes, attendee_count, owner_id, scheduled_at`

	var scheduledAt interface{}
	if !meeting.ScheduledAt.IsZero() {
		scheduledAt = meeting.ScheduledAt
	}
	err := r.pool.QueryRow(ctx, query,
		tenantID, meeting.CustomerID, meeting.Title, meeting.Notes, meeting.AttendeeCount, meeting.OwnerID, scheduledAt,
	).Scan(&meeting.ID, &meeting.CustomerID, &meeting.Title, &meeting.Notes, &meeting.AttendeeCount, &meeting.OwnerID, &meeting.ScheduledAt)
	if err != nil {
		return Meeting{}, fmt.Errorf("create meeting: %w", err)
	}
	return meeting, nil
}

func (r *Repo) ListMeetings(ctx context.Context, tenantID, customerID uuid.UUID, limit int) ([]Meeting, error) {
	query := `
		SELECT id, customer_id, title, notes, attendee_count, owner_id, scheduled_at
		FROM meetings
		WHERE tenant_id = $1 AND customer_id = $2
		ORDER BY scheduled_at DESC, id
		LIMIT $3`

	rows, err := r.pool.Query(ctx, query, tenantID, customerID, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list meetings: %w", err)
	}
	defer rows.Close()

	meetings := make([]Meeting, 0)
	for rows.Next() {
		var m Meeting
		if err := rows.Scan(&m.ID, &m.CustomerID, &m.Title, &m.Notes, &m.AttendeeCount, &m.OwnerID, &m.ScheduledAt); err != nil {
			return nil, err
		}
		meetings = append(meetings, m)
	}
	return meetings, rows.Err()
}

func (r *Repo) CreateDocument(ctx context.Context, tenantID uuid.UUID, doc Document) (Document, error) {
	query := `
		INSERT INTO documents (tenant_id, customer_id, title, content, owner_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, customer_id, title, content, owner_id, updated_at`

	err := r.pool.QueryRow(ctx, query,
		tenantID, doc.CustomerID, doc.Title, doc.Content, doc.OwnerID,
	).Scan(&doc.ID, &doc.CustomerID, &doc.Title, &doc.Content, &doc.OwnerID, &doc.UpdatedAt)
	if err != nil {
		return Document{}, fmt.Errorf("create document: %w", err)
	}
	return doc, nil
}

func (r *Repo) ListDocuments(ctx context.Context, tenantID uuid.UUID, customerID *uuid.UUID, limit int) ([]Document, error) {
	query := `
		SELECT id, customer_id, title, content, owner_id, updated_at
		FROM documents
		WHERE tenant_id = $1 AND ($2::uuid IS NULL OR customer_id = $2)
		ORDER BY updated_at DESC, id
		LIMIT $3`

	rows, err := r.pool.Query(ctx, query, tenantID, customerID, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	docs := make([]Document, 0)
	for rows.Next() {
		var d Document
		if err := rows.Scan(&d.ID, &d.CustomerID, &d.Title, &d.Content, &d.OwnerID, &d.UpdatedAt); err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

func (r *Repo) CreatePlaybook(ctx context.Context, tenantID uuid.UUID, playbook Playbook) (Playbook, error) {
	query := `
		INSERT INTO playbooks (tenant_id, name, description, owner_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, description, owner_id, updated_at`

	err := r.pool.QueryRow(ctx, query,
		tenantID, playbook.Name, playbook.Description, playbook.OwnerID,
	).Scan(&playbook.ID, &playbook.Name, &playbook.Description, &playbook.OwnerID, &playbook.UpdatedAt)
	if err != nil {
		return Playbook{}, fmt.Errorf("create playbook: %w", err)
	}
	return playbook, nil
}

func (r *Repo) ListPlaybooks(ctx context.Context, tenantID uuid.UUID, limit int) ([]Playbook, error) {
	query := `
		SELECT id, name, description, owner_id, updated_at
		FROM playbooks
		WHERE tenant_id = $1
		ORDER BY name, id
		LIMIT $2`

	rows, err := r.pool.Query(ctx, query, tenantID, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list playbooks: %w", err)
	}
	defer rows.Close()

	playbooks := make([]Playbook, 0)
	for rows.Next() {
		var p Playbook
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.OwnerID, &p.UpdatedAt); err != nil {
			return nil, err
		}
		playbooks = append(playbooks, p)
	}
	return playbooks, rows.Err()
}

func (r *Repo) CreateTask(ctx context.Context, tenantID uuid.UUID, task Task) (Task, error) {
	status := task.Status
	if status == "" {
		status = "open"
	}

	query := `
		INSERT INTO tasks (tenant_id, customer_id, title, description, status, owner_id, due_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, customer_id, title, description, status, owner_id, due_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		tenantID, task.CustomerID, task.Title, task.Description, status, task.OwnerID, task.DueAt,
	).Scan(&task.ID, &task.CustomerID, &task.Title, &task.Description, &task.Status, &task.OwnerID, &task.DueAt, &task.UpdatedAt)
	if err != nil {
		return Task{}, fmt.Errorf("create task: %w", err)
	}
	return task, nil
}

func (r *Repo) ListTasks(ctx context.Context, tenantID uuid.UUID, customerID *uuid.UUID, limit int) ([]Task, error) {
	query := `
		SELECT id, customer_id, title, description, status, owner_id, due_at, updated_at
		FROM tasks
		WHERE tenant_id = $1 AND ($2::uuid IS NULL OR customer_id = $2)
		ORDER BY updated_at DESC, id
		LIMIT $3`

	rows, err := r.pool.Query(ctx, query, tenantID, customerID, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]Task, 0)
	for rows.Next() {
		var t Task
		if err := rows.Scan(&t.ID, &t.CustomerID, &t.Title, &t.Description, &t.Status, &t.OwnerID, &t.DueAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *Repo) CreateNote(ctx context.Context, tenantID uuid.UUID, note Note) (Note, error) {
	query := `
		INSERT INTO notes (tenant_id, customer_id, title, body, owner_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, customer_id, title, body, owner_id, updated_at`

	err := r.pool.QueryRow(ctx, query,
		tenantID, note.CustomerID, note.Title, note.Body, note.OwnerID,
	).Scan(&note.ID, &note.CustomerID, &note.Title, &note.Body, &note.OwnerID, &note.UpdatedAt)
	if err != nil {
		return Note{}, fmt.Errorf("create note: %w", err)
	}
	return note, nil
}

func (r *Repo) ListNotes(ctx context.Context, tenantID, customerID uuid.UUID, limit int) ([]Note, error) {
	query := `
		SELECT id, customer_id, title, body, owner_id, updated_at
		FROM notes
		WHERE tenant_id = $1 AND customer_id = $2
		ORDER BY updated_at DESC, id
		LIMIT $3`

	rows, err := r.pool.Query(ctx, query, tenantID, customerID, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	notes := make([]Note, 0)
	for rows.Next() {
		var n Note
		if err := rows.Scan(&n.ID, &n.CustomerID, &n.Title, &n.Body, &n.OwnerID, &n.UpdatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func (r *Repo) CreateActivity(ctx context.Context, tenantID uuid.UUID, activity Activity) (Activity, error) {
	query := `
		INSERT INTO activities (tenant_id, customer_id, kind, summary, owner_id, occurred_at)
		VALUES ($1, $2, $3, $4, $5, coalesce($6::timestamptz, now()))
		RETURNING id, customer_id, kind, summary, owner_id, occurred_at`

	var occurredAt interface{}
	if !activity.OccurredAt.IsZero() {
		occurredAt = activity.OccurredAt
	}
	err := r.pool.QueryRow(ctx, query,
		tenantID, activity.CustomerID, activity.Kind, activity.Summary, activity.OwnerID, occurredAt,
	).Scan(&activity.ID, &activity.CustomerID, &activity.Kind, &activity.Summary, &activity.OwnerID, &activity.OccurredAt)
	if err != nil {
		return Activity{}, fmt.Errorf("create activity: %w", err)
	}
	return activity, nil
}

func (r *Repo) ListActivities(ctx context.Context, tenantID, customerID uuid.UUID, limit int) ([]Activity, error) {
	query := `
		SELECT id, customer_id, kind, summary, owner_id, occurred_at
		FROM activities
		WHERE tenant_id = $1 AND customer_id = $2
		ORDER BY occurred_at DESC, id
		LIMIT $3`

	rows, err := r.pool.Query(ctx, query, tenantID, customerID, clampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	defer rows.Close()

	activities := make([]Activity, 0)
	for rows.Next() {
		var a Activity
		if err := rows.Scan(&a.ID, &a.CustomerID, &a.Kind, &a.Summary, &a.OwnerID, &a.OccurredAt); err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}
