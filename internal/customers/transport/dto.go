package transport

import (
	"time"

	"github.com/google/uuid"

	"beacon_backend/internal/customers/repository"
)

// CreateCustomerRequest contains data for creating a new customer.
type CreateCustomerRequest struct {
	Name         string     `json:"name" validate:"required,min=1,max=200"`
	Domain       string     `json:"domain,omitempty" validate:"omitempty,max=200"`
	Description  string     `json:"description,omitempty" validate:"omitempty,max=2000"`
	HealthStatus string     `json:"healthStatus,omitempty" validate:"omitempty,oneof=healthy at_risk churned"`
	MRRCents     int64      `json:"mrrCents,omitempty" validate:"omitempty,min=0"`
	OwnerID      *uuid.UUID `json:"ownerId,omitempty"`
	RenewalDate  *time.Time `json:"renewalDate,omitempty"`
}

// UpdateCustomerRequest contains data for a partial customer update.
type UpdateCustomerRequest struct {
	Name         *string    `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Domain       *string    `json:"domain,omitempty" validate:"omitempty,max=200"`
	Description  *string    `json:"description,omitempty" validate:"omitempty,max=2000"`
	HealthStatus *string    `json:"healthStatus,omitempty" validate:"omitempty,oneof=healthy at_risk churned"`
	MRRCents     *int64     `json:"mrrCents,omitempty" validate:"omitempty,min=0"`
	OwnerID      *uuid.UUID `json:"ownerId,omitempty"`
	RenewalDate  *time.Time `json:"renewalDate,omitempty"`
}

// ListCustomersRequest narrows and pages a customer listing.
type ListCustomersRequest struct {
	HealthStatus string `form:"health_status" validate:"omitempty,oneof=healthy at_risk churned"`
	OwnerID      string `form:"owner_id" validate:"omitempty,uuid"`
	Limit        int    `form:"limit" validate:"omitempty,min=1,max=100"`
	Offset       int    `form:"offset" validate:"omitempty,min=0"`
}

// CreateStakeholderRequest contains data for adding a stakeholder.
type CreateStakeholderRequest struct {
	Name    string     `json:"name" validate:"required,min=1,max=200"`
	Email   string     `json:"email,omitempty" validate:"omitempty,email,max=254"`
	Title   string     `json:"title,omitempty" validate:"omitempty,max=200"`
	OwnerID *uuid.UUID `json:"ownerId,omitempty"`
}

// CustomerResponse represents a customer in API responses.
type CustomerResponse struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Domain       string     `json:"domain,omitempty"`
	Description  string     `json:"description,omitempty"`
	HealthStatus string     `json:"healthStatus"`
	MRRCents     int64      `json:"mrrCents"`
	OwnerID      *uuid.UUID `json:"ownerId,omitempty"`
	RenewalDate  *time.Time `json:"renewalDate,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// CustomerListResponse wraps a paged customer listing.
type CustomerListResponse struct {
	Items []CustomerResponse `json:"items"`
	Total int                `json:"total"`
}

// StakeholderResponse represents a stakeholder in API responses.
type StakeholderResponse struct {
	ID         uuid.UUID  `json:"id"`
	CustomerID uuid.UUID  `json:"customerId"`
	Name       string     `json:"name"`
	Email      string     `json:"email,omitempty"`
	Title      string     `json:"title,omitempty"`
	OwnerID    *uuid.UUID `json:"ownerId,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// StakeholderListResponse wraps a stakeholder listing.
type StakeholderListResponse struct {
	Items []StakeholderResponse `json:"items"`
}

// FromCustomer maps a repository customer to its API form.
func FromCustomer(c repository.Customer) CustomerResponse {
	return CustomerResponse{
		ID:           c.ID,
		Name:         c.Name,
		Domain:       c.Domain,
		Description:  c.Description,
		HealthStatus: c.HealthStatus,
		MRRCents:     c.MRRCents,
		OwnerID:      c.OwnerID,
		RenewalDate:  c.RenewalDate,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

// FromStakeholder maps a repository stakeholder to its API form.
func FromStakeholder(s repository.Stakeholder) StakeholderResponse {
	return StakeholderResponse{
		ID:         s.ID,
		CustomerID: s.CustomerID,
		Name:       s.Name,
		Email:      s.Email,
		Title:      s.Title,
		OwnerID:    s.OwnerID,
		CreatedAt:  s.CreatedAt,
	}
}
