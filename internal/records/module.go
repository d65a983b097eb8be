// Package records provides the customer record bounded context: emails,
// meetings, documents, playbooks, tasks, notes and activities. These
// records form the corpus that universal search retrieves from.
package records

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"beacon_backend/internal/events"
	apphttp "beacon_backend/internal/http"
	"beacon_backend/internal/records/handler"
	"beacon_backend/internal/records/repository"
	"beacon_backend/internal/records/service"
	"beacon_backend/platform/logger"
	"beacon_backend/platform/validator"
)

// Module is the records bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the records module.
func NewModule(pool *pgxpool.Pool, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, bus, log)
	h := handler.New(svc, val)

	return &Module{handler: h, service: svc}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "records"
}

// Service returns the service layer for other modules.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts record routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/records")
	m.handler.RegisterRoutes(group)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
