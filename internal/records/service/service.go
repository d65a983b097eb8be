package service

import (
	"context"

	"github.com/google/uuid"

	"beacon_backend/internal/events"
	"beacon_backend/internal/records/repository"
	"beacon_backend/internal/search/domain"
	"beacon_backend/platform/logger"
)

// Service wraps the records repository and publishes a creation event per
// record so downstream listeners (activity feeds, caches) stay current.
type Service struct {
	repo repository.Repository
	bus  events.Bus
	log  *logger.Logger
}

func New(repo repository.Repository, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, bus: bus, log: log}
}

func (s *Service) publishCreated(ctx context.Context, tenantID, recordID, customerID uuid.UUID, t domain.SearchableType) {
	s.bus.Publish(ctx, events.RecordCreated{
		BaseEvent:  events.NewBaseEvent(),
		RecordID:   recordID,
		RecordType: string(t),
		CustomerID: customerID,
		TenantID:   tenantID,
	})
}

func (s *Service) CreateEmail(ctx context.Context, tenantID uuid.UUID, email repository.Email) (repository.Email, error) {
	created, err := s.repo.CreateEmail(ctx, tenantID, email)
	if err != nil {
		return repository.Email{}, err
	}
	s.publishCreated(ctx, tenantID, created.ID, created.CustomerID, domain.TypeEmail)
	return created, nil
}

func (s *Service) ListEmails(ctx context.Context, tenantID, customerID uuid.UUID, limit int) ([]repository.Email, error) {
	return s.repo.ListEmails(ctx, tenantID, customerID, limit)
}

func (s *Service) CreateMeeting(ctx context.Context, tenantID uuid.UUID, meeting repository.Meeting) (repository.Meeting, error) {
	created, err := s.repo.CreateMeeting(ctx, tenantID, meeting)
	if err != nil {
		return repository.Meeting{}, err
	}
	s.publishCreated(ctx, tenantID, created.ID, created.CustomerID, domain.TypeMeeting)
	return created, nil
}

func (s *Service) ListMeetings(ctx context.Context, tenantID, customerID uuid.UUID, limit int) ([]repository.Meeting, error) {
	return s.repo.ListMeetings(ctx, tenantID, customerID, limit)
}

func (s *Service) CreateDocument(ctx context.Context, tenantID uuid.UUID, doc repository.Document) (repository.Document, error) {
	created, err := s.repo.CreateDocument(ctx, tenantID, doc)
	if err != nil {
		return repository.Document{}, err
	}
	customerID := uuid.Nil
	if created.CustomerID != nil {
		customerID = *created.CustomerID
	}
	s.publishCreated(ctx, tenantID, created.ID, customerID, domain.TypeDocument)
	return created, nil
}

func (s *Service) ListDocuments(ctx context.Context, tenantID uuid.UUID, customerID *uuid.UUID, limit int) ([]repository.Document, error) {
	return s.repo.ListDocuments(ctx, tenantID, customerID, limit)
}

func (s *Service) CreatePlaybook(ctx context.Context, tenantID uuid.UUID, playbook repository.Playbook) (repository.Playbook, error) {
	created, err := s.repo.CreatePlaybook(ctx, tenantID, playbook)
	if err != nil {
		return repository.Playbook{}, err
	}
	s.publishCreated(ctx, tenantID, created.ID, uuid.Nil, domain.TypePlaybook)
	return created, nil
}

func (s *Service) ListPlaybooks(ctx context.Context, tenantID uuid.UUID, limit int) ([]repository.Playbook, error) {
	return s.repo.ListPlaybooks(ctx, tenantID, limit)
}

func (s *Service) CreateTask(ctx context.Context, tenantID uuid.UUID, task repository.Task) (repository.Task, error) {
	created, err := s.repo.CreateTask(ctx, tenantID, task)
	if err != nil {
		return repository.Task{}, err
	}
	customerID := uuid.Nil
	if created.CustomerID != nil {
		customerID = *created.CustomerID
	}
	s.publishCreated(ctx, tenantID, created.ID, customerID, domain.TypeTask)
	return created, nil
}

func (s *Service) ListTasks(ctx context.Context, tenantID uuid.UUID, customerID *uuid.UUID, limit int) ([]repository.Task, error) {
	return s.repo.ListTasks(ctx, tenantID, customerID, limit)
}

func (s *Service) CreateNote(ctx context.Context, tenantID uuid.UUID, note repository.Note) (repository.Note, error) {
	created, err := s.repo.CreateNote(ctx, tenantID, note)
	if err != nil {
		return repository.Note{}, err
	}
	s.publishCreated(ctx, tenantID, created.ID, created.CustomerID, domain.TypeNote)
	return created, nil
}

func (s *Service) ListNotes(ctx context.Context, tenantID, customerID uuid.UUID, limit int) ([]repository.Note, error) {
	return s.repo.ListNotes(ctx, tenantID, customerID, limit)
}

func (s *Service) CreateActivity(ctx context.Context, tenantID uuid.UUID, activity repository.Activity) (repository.Activity, error) {
	created, err := s.repo.CreateActivity(ctx, tenantID, activity)
	if err != nil {
		return repository.Activity{}, err
	}
	s.publishCreated(ctx, tenantID, created.ID, created.CustomerID, domain.TypeActivity)
	return created, nil
}

func (s *Service) ListActivities(ctx context.Context, tenantID, customerID uuid.UUID, limit int) ([]repository.Activity, error) {
	return s.repo.ListActivities(ctx, tenantID, customerID, limit)
}
