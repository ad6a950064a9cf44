// Package leads wires the leads bounded context into the HTTP application.
package leads

import (
	"leadcapture_backend/internal/bus"
	eventsrepo "leadcapture_backend/internal/events/repository"
	apphttp "leadcapture_backend/internal/http"
	"leadcapture_backend/internal/leads/handler"
	"leadcapture_backend/internal/leads/repository"
	"leadcapture_backend/internal/leads/service"
	"leadcapture_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module bundles the leads repository, service and handler.
type Module struct {
	handler *handler.Handler
}

var _ apphttp.Module = (*Module)(nil)

// NewModule constructs the leads module with its full dependency chain.
func NewModule(
	pool *pgxpool.Pool,
	events *eventsrepo.Repository,
	exports service.ExportStorage,
	eventBus bus.Bus,
	val *validator.Validator,
) *Module {
	repo := repository.New(pool)
	svc := service.New(events, repo, exports, eventBus)
	return &Module{handler: handler.New(svc, val)}
}

// Name returns the module identifier.
func (m *Module) Name() string { return "leads" }

// RegisterRoutes mounts the lead routes under /api/v1/events.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.V1.Group("/events"), ctx.RegistrationRateLimiter.RateLimit())
}
