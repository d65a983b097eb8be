// Package search wires the universal search engine: parsing, retrieval,
// ranking, suggestions, and per-user history behind one API module.
package search

import (
	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	apphttp "beacon_backend/internal/http"
	"beacon_backend/internal/search/handler"
	"beacon_backend/internal/search/history"
	"beacon_backend/internal/search/repository"
	"beacon_backend/internal/search/service"
	"beacon_backend/internal/search/suggest"
	"beacon_backend/platform/config"
	"beacon_backend/platform/events"
	"beacon_backend/platform/logger"
	"beacon_backend/platform/validator"
)

type Module struct {
	handler *handler.Handler
}

type Config interface {
	config.SearchConfig
	config.HistoryConfig
}

func NewModule(pool *pgxpool.Pool, rdb *goredis.Client, bus events.Bus, cfg Config, log *logger.Logger, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, cfg, log)
	hist := history.New(rdb, cfg, log)
	hist.SubscribeCommitted(bus)
	sug := suggest.New(hist, repo, log)
	h := handler.New(svc, sug, hist, bus, val)

	return &Module{handler: h}
}

func (m *Module) Name() string {
	return "search"
}

func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/search")
	m.handler.RegisterRoutes(group)
}

var _ apphttp.Module = (*Module)(nil)
