package transport

import (
	"time"

	"github.com/google/uuid"

	"beacon_backend/internal/records/repository"
)

type CreateEmailRequest struct {
	CustomerID  uuid.UUID  `json:"customerId" validate:"required"`
	Subject     string     `json:"subject" validate:"required,min=1,max=500"`
	Body        string     `json:"body,omitempty" validate:"omitempty,max=100000"`
	FromAddress string     `json:"fromAddress,omitempty" validate:"omitempty,email,max=254"`
	OwnerID     *uuid.UUID `json:"ownerId,omitempty"`
	SentAt      *time.Time `json:"sentAt,omitempty"`
}

type CreateMeetingRequest struct {
	CustomerID    uuid.UUID  `json:"customerId" validate:"required"`
	Title         string     `json:"title" validate:"required,min=1,max=500"`
	Notes         string     `json:"notes,omitempty" validate:"omitempty,max=100000"`
	AttendeeCount int        `json:"attendeeCount,omitempty" validate:"omitempty,min=0,max=1000"`
	OwnerID       *uuid.UUID `json:"ownerId,omitempty"`
	ScheduledAt   *time.Time `json:"scheduledAt,omitempty"`
}

type CreateDocumentRequest struct {
	CustomerID *uuid.UUID `json:"customerId,omitempty"`
	Title      string     `json:"title" validate:"required,min=1,max=500"`
	Content    string     `json:"content,omitempty" validate:"omitempty,max=1000000"`
	OwnerID    *uuid.UUID `json:"ownerId,omitempty"`
}

type CreatePlaybookRequest struct {
	Name        string     `json:"name" validate:"required,min=1,max=200"`
	Description string     `json:"description,omitempty" validate:"omitempty,max=10000"`
	OwnerID     *uuid.UUID `json:"ownerId,omitempty"`
}

type CreateTaskRequest struct {
	CustomerID  *uuid.UUID `json:"customerId,omitempty"`
	Title       string     `json:"title" validate:"required,min=1,max=500"`
	Description string     `json:"description,omitempty" validate:"omitempty,max=10000"`
	Status      string     `json:"status,omitempty" validate:"omitempty,oneof=open in_progress done"`
	OwnerID     *uuid.UUID `json:"ownerId,omitempty"`
	DueAt       *time.Time `json:"dueAt,omitempty"`
}

type CreateNoteRequest struct {
	CustomerID uuid.UUID  `json:"customerId" validate:"required"`
	Title      string     `json:"title,omitempty" validate:"omitempty,max=500"`
	Body       string     `json:"body" validate:"required,min=1,max=100000"`
	OwnerID    *uuid.UUID `json:"ownerId,omitempty"`
}

type CreateActivityRequest struct {
	CustomerID uuid.UUID  `json:"customerId" validate:"required"`
	Kind       string     `json:"kind" validate:"required,min=1,max=50"`
	Summary    string     `json:"summary" validate:"required,min=1,max=2000"`
	OwnerID    *uuid.UUID `json:"ownerId,omitempty"`
	OccurredAt *time.Time `json:"occurredAt,omitempty"`
}

// ListRequest narrows record listings to one customer and pages them.
type ListRequest struct {
	CustomerID string `form:"customer_id" validate:"omitempty,uuid"`
	Limit      int    `form:"limit" validate:"omitempty,min=1,max=100"`
}

type EmailResponse struct {
	ID          uuid.UUID  `json:"id"`
	CustomerID  uuid.UUID  `json:"customerId"`
	Subject     string     `json:"subject"`
	Body        string     `json:"body,omitempty"`
	FromAddress string     `json:"fromAddress,omitempty"`
	OwnerID     *uuid.UUID `json:"ownerId,omitempty"`
	SentAt      time.Time  `json:"sentAt"`
}

type MeetingResponse struct {
	ID            uuid.UUID  `json:"id"`
	CustomerID    uuid.UUID  `json:"customerId"`
	Title         string     `json:"title"`
	Notes         string     `json:"notes,omitempty"`
	AttendeeCount int        `json:"attendeeCount"`
	OwnerID       *uuid.UUID `json:"ownerId,omitempty"`
	ScheduledAt   time.Time  `json:"scheduledAt"`
}

type DocumentResponse struct {
	ID         uuid.UUID  `json:"id"`
	CustomerID *uuid.UUID `json:"customerId,omitempty"`
	Title      string     `json:"title"`
	Content    string     `json:"content,omitempty"`
	OwnerID    *uuid.UUID `json:"ownerId,omitempty"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

type PlaybookResponse struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	OwnerID     *uuid.UUID `json:"ownerId,omitempty"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type TaskResponse struct {
	ID          uuid.UUID  `json:"id"`
	CustomerID  *uuid.UUID `json:"customerId,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status"`
	OwnerID     *uuid.UUID `json:"ownerId,omitempty"`
	DueAt       *time.Time `json:"dueAt,omitempty"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type NoteResponse struct {
	ID         uuid.UUID  `json:"id"`
	CustomerID uuid.UUID  `json:"customerId"`
	Title      string     `json:"title,omitempty"`
	Body       string     `json:"body"`
	OwnerID    *uuid.UUID `json:"ownerId,omitempty"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

type ActivityResponse struct {
	ID         uuid.UUID  `json:"id"`
	CustomerID uuid.UUID  `json:"customerId"`
	Kind       string     `json:"kind"`
	Summary    string     `json:"summary"`
	OwnerID    *uuid.UUID `json:"ownerId,omitempty"`
	OccurredAt time.Time  `json:"occurredAt"`
}

type EmailListResponse struct {
	Items []EmailResponse `json:"items"`
}

type MeetingListResponse struct {
	Items []MeetingResponse `json:"items"`
}

type DocumentListResponse struct {
	Items []DocumentResponse `json:"items"`
}

type PlaybookListResponse struct {
	Items []PlaybookResponse `json:"items"`
}

type TaskListResponse struct {
	Items []TaskResponse `json:"items"`
}

type NoteListResponse struct {
	Items []NoteResponse `json:"items"`
}

type ActivityListResponse struct {
	Items []ActivityResponse `json:"items"`
}

func FromEmail(e repository.Email) EmailResponse {
	return EmailResponse{ID: e.ID, CustomerID: e.CustomerID, Subject: e.Subject, Body: e.Body, FromAddress: e.FromAddress, OwnerID: e.OwnerID, SentAt: e.SentAt}
}

func FromMeeting(m repository.Meeting) MeetingResponse {
	return MeetingResponse{ID: m.ID, CustomerID: m.CustomerID, Title: m.Title, Notes: m.Notes, AttendeeCount: m.AttendeeCount, OwnerID: m.OwnerID, ScheduledAt: m.ScheduledAt}
}

func FromDocument(d repository.Document) DocumentResponse {
	return DocumentResponse{ID: d.ID, CustomerID: d.CustomerID, Title: d.Title, Content: d.Content, OwnerID: d.OwnerID, UpdatedAt: d.UpdatedAt}
}

func FromPlaybook(p repository.Playbook) PlaybookResponse {
	return PlaybookResponse{ID: p.ID, Name: p.Name, Description: p.Description, OwnerID: p.OwnerID, UpdatedAt: p.UpdatedAt}
}

func FromTask(t repository.Task) TaskResponse {
	return TaskResponse{ID: t.ID, CustomerID: t.CustomerID, Title: t.Title, Description: t.Description, Status: t.Status, OwnerID: t.OwnerID, DueAt: t.DueAt, UpdatedAt: t.UpdatedAt}
}

func FromNote(n repository.Note) NoteResponse {
	return NoteResponse{ID: n.ID, CustomerID: n.CustomerID, Title: n.Title, Body: n.Body, OwnerID: n.OwnerID, UpdatedAt: n.UpdatedAt}
}

func FromActivity(a repository.Activity) ActivityResponse {
	return ActivityResponse{ID: a.ID, CustomerID: a.CustomerID, Kind: a.Kind, Summary: a.Summary, OwnerID: a.OwnerID, OccurredAt: a.OccurredAt}
}

func FromEmails(records []repository.Email) EmailListResponse {
	items := make([]EmailResponse, len(records))
	for i, r := range records {
		items[i] = FromEmail(r)
	}
	return EmailListResponse{Items: items}
}

func FromMeetings(records []repository.Meeting) MeetingListResponse {
	items := make([]MeetingResponse, len(records))
	for i, r := range records {
		items[i] = FromMeeting(r)
	}
	return MeetingListResponse{Items: items}
}

func FromDocuments(records []repository.Document) DocumentListResponse {
	items := make([]DocumentResponse, len(records))
	for i, r := range records {
		items[i] = FromDocument(r)
	}
	return DocumentListResponse{Items: items}
}

func FromPlaybooks(records []repository.Playbook) PlaybookListResponse {
	items := make([]PlaybookResponse, len(records))
	for i, r := range records {
		items[i] = FromPlaybook(r)
	}
	return PlaybookListResponse{Items: items}
}

func FromTasks(records []repository.Task) TaskListResponse {
	items := make([]TaskResponse, len(records))
	for i, r := range records {
		items[i] = FromTask(r)
	}
	return TaskListResponse{Items: items}
}

func FromNotes(records []repository.Note) NoteListResponse {
	items := make([]NoteResponse, len(records))
	for i, r := range records {
		items[i] = FromNote(r)
	}
	return NoteListResponse{Items: items}
}

func FromActivities(records []repository.Activity) ActivityListResponse {
	items := make([]ActivityResponse, len(records))
	for i, r := range records {
		items[i] = FromActivity(r)
	}
	return ActivityListResponse{Items: items}
}
