// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"beacon_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Search Domain Events
// =============================================================================

// SearchCommitted is published when a user commits a search, either by
// submitting the query or by selecting a result. The history module
// subscribes to record the recent search and bump trending counters.
type SearchCommitted struct {
	BaseEvent
	UserID   uuid.UUID `json:"userId"`
	TenantID uuid.UUID `json:"tenantId"`
	Query    string    `json:"query"`
}

func (e SearchCommitted) EventName() string { return "search.committed" }

// ResultSelected is published when a user selects a search result and the
// navigation intent is emitted to the host application.
type ResultSelected struct {
	BaseEvent
	UserID     uuid.UUID `json:"userId"`
	TenantID   uuid.UUID `json:"tenantId"`
	Query      string    `json:"query"`
	ResultType string    `json:"resultType"`
	ResultID   string    `json:"resultId"`
}

func (e ResultSelected) EventName() string { return "search.result.selected" }

// =============================================================================
// Customers Domain Events
// =============================================================================

// CustomerCreated is published when a new customer account is created.
type CustomerCreated struct {
	BaseEvent
	CustomerID uuid.UUID `json:"customerId"`
	TenantID   uuid.UUID `json:"tenantId"`
	Name       string    `json:"name"`
	OwnerID    uuid.UUID `json:"ownerId"`
}

func (e CustomerCreated) EventName() string { return "customers.customer.created" }

// StakeholderAdded is published when a stakeholder is attached to a customer.
type StakeholderAdded struct {
	BaseEvent
	StakeholderID uuid.UUID `json:"stakeholderId"`
	CustomerID    uuid.UUID `json:"customerId"`
	TenantID      uuid.UUID `json:"tenantId"`
	Email         string    `json:"email"`
}

func (e StakeholderAdded) EventName() string { return "customers.stakeholder.added" }

// =============================================================================
// Records Domain Events
// =============================================================================

// RecordCreated is published when any searchable record (note, task, email,
// meeting, document, playbook, activity) is created for a customer.
type RecordCreated struct {
	BaseEvent
	RecordID   uuid.UUID `json:"recordId"`
	RecordType string    `json:"recordType"`
	CustomerID uuid.UUID `json:"customerId"`
	TenantID   uuid.UUID `json:"tenantId"`
}

func (e RecordCreated) EventName() string { return "records.record.created" }
