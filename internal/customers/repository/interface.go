package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Customer is a customer account under management.
type Customer struct {
	ID           uuid.UUID  `db:"id"`
	TenantID     uuid.UUID  `db:"tenant_id"`
	Name         string     `db:"name"`
	Domain       string     `db:"domain"`
	Description  string     `db:"description"`
	HealthStatus string     `db:"health_status"`
	MRRCents     int64      `db:"mrr_cents"`
	OwnerID      *uuid.UUID `db:"owner_id"`
	RenewalDate  *time.Time `db:"renewal_date"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
}

// Stakeholder is a contact person at a customer.
type Stakeholder struct {
	ID         uuid.UUID  `db:"id"`
	TenantID   uuid.UUID  `db:"tenant_id"`
	CustomerID uuid.UUID  `db:"customer_id"`
	Name       string     `db:"name"`
	Email      string     `db:"email"`
	Title      string     `db:"title"`
	OwnerID    *uuid.UUID `db:"owner_id"`
	CreatedAt  time.Time  `db:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at"`
}

// CreateCustomerParams contains parameters for creating a customer.
type CreateCustomerParams struct {
	Name         string
	Domain       string
	Description  string
	HealthStatus string
	MRRCents     int64
	OwnerID      *uuid.UUID
	RenewalDate  *time.Time
}

// UpdateCustomerParams contains parameters for a partial customer update.
type UpdateCustomerParams struct {
	ID           uuid.UUID
	Name         *string
	Domain       *string
	Description  *string
	HealthStatus *string
	MRRCents     *int64
	OwnerID      *uuid.UUID
	RenewalDate  *time.Time
}

// ListCustomersParams narrows and pages a customer listing.
type ListCustomersParams struct {
	HealthStatus string
	OwnerID      *uuid.UUID
	Limit        int
	Offset       int
}

// CreateStakeholderParams contains parameters for adding a stakeholder.
type CreateStakeholderParams struct {
	CustomerID uuid.UUID
	Name       string
	Email      string
	Title      string
	OwnerID    *uuid.UUID
}

// CustomerReader provides read operations for customers.
type CustomerReader interface {
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (Customer, error)
	List(ctx context.Context, tenantID uuid.UUID, params ListCustomersParams) ([]Customer, int, error)
}

// CustomerWriter provides write operations for customers.
type CustomerWriter interface {
	Create(ctx context.Context, tenantID uuid.UUID, params CreateCustomerParams) (Customer, error)
	Update(ctx context.Context, tenantID uuid.UUID, params UpdateCustomerParams) (Customer, error)
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// StakeholderStore provides stakeholder operations.
type StakeholderStore interface {
	CreateStakeholder(ctx context.Context, tenantID uuid.UUID, params CreateStakeholderParams) (Stakeholder, error)
	ListStakeholders(ctx context.Context, tenantID, customerID uuid.UUID) ([]Stakeholder, error)
	DeleteStakeholder(ctx context.Context, tenantID, id uuid.UUID) error
}

// Repository combines all customer repository operations.
type Repository interface {
	CustomerReader
	CustomerWriter
	StakeholderStore
}
