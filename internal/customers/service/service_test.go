package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"beacon_backend/internal/customers/repository"
	"beacon_backend/internal/events"
	"beacon_backend/platform/apperr"
	platformevents "beacon_backend/platform/events"
	"beacon_backend/platform/logger"
)

type fakeRepo struct {
	repository.Repository
	customers    map[uuid.UUID]repository.Customer
	created      []repository.CreateCustomerParams
	stakeholders []repository.CreateStakeholderParams
}

func (f *fakeRepo) GetByID(_ context.Context, _ uuid.UUID, id uuid.UUID) (repository.Customer, error) {
	c, ok := f.customers[id]
	if !ok {
		return repository.Customer{}, apperr.NotFound("customer not found")
	}
	return c, nil
}

func (f *fakeRepo) Create(_ context.Context, tenantID uuid.UUID, params repository.CreateCustomerParams) (repository.Customer, error) {
	f.created = append(f.created, params)
	return repository.Customer{ID: uuid.New(), TenantID: tenantID, Name: params.Name}, nil
}

func (f *fakeRepo) CreateStakeholder(_ context.Context, tenantID uuid.UUID, params repository.CreateStakeholderParams) (repository.Stakeholder, error) {
	f.stakeholders = append(f.stakeholders, params)
	return repository.Stakeholder{ID: uuid.New(), TenantID: tenantID, CustomerID: params.CustomerID, Email: params.Email}, nil
}

func newService(repo *fakeRepo) (*Service, *platformevents.InMemoryBus) {
	bus := platformevents.NewInMemoryBus(logger.New("test"))
	return New(repo, bus, logger.New("test")), bus
}

func TestCreateRejectsUnknownHealthStatus(t *testing.T) {
	svc, _ := newService(&fakeRepo{})

	_, err := svc.Create(context.Background(), uuid.New(), repository.CreateCustomerParams{
		Name:         "Acme",
		HealthStatus: "thriving",
	})
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Kind != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreatePublishesCustomerCreated(t *testing.T) {
	repo := &fakeRepo{}
	svc, bus := newService(repo)

	received := make(chan events.CustomerCreated, 1)
	bus.Subscribe(events.CustomerCreated{}.EventName(), events.HandlerFunc(func(_ context.Context, e events.Event) error {
		if created, ok := e.(events.CustomerCreated); ok {
			received <- created
		}
		return nil
	}))

	tenant := uuid.New()
	customer, err := svc.Create(context.Background(), tenant, repository.CreateCustomerParams{Name: "Acme"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	select {
	case got := <-received:
		if got.CustomerID != customer.ID || got.TenantID != tenant {
			t.Fatalf("unexpected event: %+v", got)
		}
	case <-time.After(time.Second):
		t.Fatal("customer created event was not published")
	}

	if len(repo.created) != 1 {
		t.Fatalf("expected one repository create, got %d", len(repo.created))
	}
}

func TestAddStakeholderRequiresExistingCustomer(t *testing.T) {
	repo := &fakeRepo{customers: map[uuid.UUID]repository.Customer{}}
	svc, _ := newService(repo)

	_, err := svc.AddStakeholder(context.Background(), uuid.New(), repository.CreateStakeholderParams{
		CustomerID: uuid.New(),
		Name:       "Sarah Chen",
	})
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Kind != apperr.KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
	if len(repo.stakeholders) != 0 {
		t.Fatal("stakeholder must not be created for a missing customer")
	}
}
