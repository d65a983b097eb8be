package service

import (
	"context"

	"github.com/google/uuid"

	"beacon_backend/internal/customers/repository"
	"beacon_backend/internal/events"
	"beacon_backend/platform/apperr"
	"beacon_backend/platform/logger"
)

// validHealthStatuses is the closed set a customer account can be in.
var validHealthStatuses = map[string]bool{
	"healthy": true,
	"at_risk": true,
	"churned": true,
}

type Service struct {
	repo repository.Repository
	bus  events.Bus
	log  *logger.Logger
}

func New(repo repository.Repository, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, bus: bus, log: log}
}

func (s *Service) Get(ctx context.Context, tenantID, id uuid.UUID) (repository.Customer, error) {
	return s.repo.GetByID(ctx, tenantID, id)
}

func (s *Service) List(ctx context.Context, tenantID uuid.UUID, params repository.ListCustomersParams) ([]repository.Customer, int, error) {
	if params.HealthStatus != "" && !validHealthStatuses[params.HealthStatus] {
		return nil, 0, apperr.Validation("unknown health status: " + params.HealthStatus)
	}
	return s.repo.List(ctx, tenantID, params)
}

func (s *Service) Create(ctx context.Context, tenantID uuid.UUID, params repository.CreateCustomerParams) (repository.Customer, error) {
	if params.HealthStatus != "" && !validHealthStatuses[params.HealthStatus] {
		return repository.Customer{}, apperr.Validation("unknown health status: " + params.HealthStatus)
	}

	customer, err := s.repo.Create(ctx, tenantID, params)
	if err != nil {
		return repository.Customer{}, err
	}

	ownerID := uuid.Nil
	if customer.OwnerID != nil {
		ownerID = *customer.OwnerID
	}
	s.bus.Publish(ctx, events.CustomerCreated{
		BaseEvent:  events.NewBaseEvent(),
		CustomerID: customer.ID,
		TenantID:   tenantID,
		Name:       customer.Name,
		OwnerID:    ownerID,
	})

	s.log.Info("customer created", "customer_id", customer.ID, "tenant_id", tenantID)
	return customer, nil
}

func (s *Service) Update(ctx context.Context, tenantID uuid.UUID, params repository.UpdateCustomerParams) (repository.Customer, error) {
	if params.HealthStatus != nil && !validHealthStatuses[*params.HealthStatus] {
		return repository.Customer{}, apperr.Validation("unknown health status: " + *params.HealthStatus)
	}
	return s.repo.Update(ctx, tenantID, params)
}

func (s *Service) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.repo.Delete(ctx, tenantID, id)
}

func (s *Service) AddStakeholder(ctx context.Context, tenantID uuid.UUID, params repository.CreateStakeholderParams) (repository.Stakeholder, error) {
	// The customer must exist inside the tenant before attaching contacts.
	if _, err := s.repo.GetByID(ctx, tenantID, params.CustomerID); err != nil {
		return repository.Stakeholder{}, err
	}

	stakeholder, err := s.repo.CreateStakeholder(ctx, tenantID, params)
	if err != nil {
		return repository.Stakeholder{}, err
	}

	s.bus.Publish(ctx, events.StakeholderAdded{
		BaseEvent:     events.NewBaseEvent(),
		StakeholderID: stakeholder.ID,
		CustomerID:    stakeholder.CustomerID,
		TenantID:      tenantID,
		Email:         stakeholder.Email,
	})

	return stakeholder, nil
}

func (s *Service) ListStakeholders(ctx context.Context, tenantID, customerID uuid.UUID) ([]repository.Stakeholder, error) {
	return s.repo.ListStakeholders(ctx, tenantID, customerID)
}

func (s *Service) RemoveStakeholder(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.repo.DeleteStakeholder(ctx, tenantID, id)
}
