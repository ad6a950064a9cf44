// Package events wires the events bounded context into the HTTP application.
package events

import (
	"leadcapture_backend/internal/events/handler"
	"leadcapture_backend/internal/events/repository"
	"leadcapture_backend/internal/events/service"
	apphttp "leadcapture_backend/internal/http"
	"leadcapture_backend/platform/config"
	"leadcapture_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module bundles the events repository, service and handler.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

var _ apphttp.Module = (*Module)(nil)

// NewModule constructs the events module with its full dependency chain.
func NewModule(
	pool *pgxpool.Pool,
	storage service.BannerStorage,
	policy config.EventPolicyConfig,
	val *validator.Validator,
) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, storage, policy.GetEventMinDuration())
	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string { return "events" }

// Service exposes the event service for modules that depend on event lookups.
func (m *Module) Service() *service.Service { return m.service }

// RegisterRoutes mounts the event routes under /api/v1/events.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.V1.Group("/events"))
}
