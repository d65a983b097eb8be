// Package customers provides the customer accounts bounded context:
// customer records and their stakeholders.
package customers

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"beacon_backend/internal/customers/handler"
	"beacon_backend/internal/customers/repository"
	"beacon_backend/internal/customers/service"
	"beacon_backend/internal/events"
	apphttp "beacon_backend/internal/http"
	"beacon_backend/platform/logger"
	"beacon_backend/platform/validator"
)

// Module is the customers bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the customers module.
func NewModule(pool *pgxpool.Pool, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, bus, log)
	h := handler.New(svc, val)

	return &Module{handler: h, service: svc}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "customers"
}

// Service returns the service layer for other modules.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts customer routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/customers")
	m.handler.RegisterRoutes(group)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
