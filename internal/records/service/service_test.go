package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"beacon_backend/internal/events"
	"beacon_backend/internal/records/repository"
	platformevents "beacon_backend/platform/events"
	"beacon_backend/platform/logger"
)

type fakeRepo struct {
	repository.Repository
	emails    []repository.Email
	playbooks []repository.Playbook
}

func (f *fakeRepo) CreateEmail(_ context.Context, _ uuid.UUID, email repository.Email) (repository.Email, error) {
	email.ID = uuid.New()
	f.emails = append(f.emails, email)
	return email, nil
}

func (f *fakeRepo) CreatePlaybook(_ context.Context, _ uuid.UUID, playbook repository.Playbook) (repository.Playbook, error) {
	playbook.ID = uuid.New()
	f.playbooks = append(f.playbooks, playbook)
	return playbook, nil
}

func newService(repo *fakeRepo) (*Service, *platformevents.InMemoryBus) {
	bus := platformevents.NewInMemoryBus(logger.New("test"))
	return New(repo, bus, logger.New("test")), bus
}

func subscribeRecordCreated(bus *platformevents.InMemoryBus) chan events.RecordCreated {
	received := make(chan events.RecordCreated, 1)
	bus.Subscribe(events.RecordCreated{}.EventName(), events.HandlerFunc(func(_ context.Context, e events.Event) error {
		if created, ok := e.(events.RecordCreated); ok {
			received <- created
		}
		return nil
	}))
	return received
}

func TestCreateEmailPublishesRecordCreated(t *testing.T) {
	repo := &fakeRepo{}
	svc, bus := newService(repo)
	received := subscribeRecordCreated(bus)

	tenant := uuid.New()
	customer := uuid.New()
	created, err := svc.CreateEmail(context.Background(), tenant, repository.Email{
		CustomerID: customer,
		Subject:    "Renewal follow-up",
	})
	if err != nil {
		t.Fatalf("CreateEmail: %v", err)
	}

	select {
	case got := <-received:
		if got.RecordID != created.ID {
			t.Fatalf("event record id = %s, want %s", got.RecordID, created.ID)
		}
		if got.RecordType != "email" {
			t.Fatalf("event record type = %q, want %q", got.RecordType, "email")
		}
		if got.CustomerID != customer || got.TenantID != tenant {
			t.Fatalf("event scope = %s/%s, want %s/%s", got.TenantID, got.CustomerID, tenant, customer)
		}
	case <-time.After(time.Second):
		t.Fatal("record created event was not published")
	}
}

func TestCreatePlaybookPublishesWithoutCustomer(t *testing.T) {
	repo := &fakeRepo{}
	svc, bus := newService(repo)
	received := subscribeRecordCreated(bus)

	if _, err := svc.CreatePlaybook(context.Background(), uuid.New(), repository.Playbook{Name: "Onboarding"}); err != nil {
		t.Fatalf("CreatePlaybook: %v", err)
	}

	select {
	case got := <-received:
		if got.RecordType != "playbook" {
			t.Fatalf("event record type = %q, want %q", got.RecordType, "playbook")
		}
		if got.CustomerID != uuid.Nil {
			t.Fatalf("playbook event should not carry a customer, got %s", got.CustomerID)
		}
	case <-time.After(time.Second):
		t.Fatal("record created event was not published")
	}
}
