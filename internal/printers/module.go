// Package printers wires the printers bounded context into the HTTP application.
package printers

import (
	eventsrepo "leadcapture_backend/internal/events/repository"
	apphttp "leadcapture_backend/internal/http"
	"leadcapture_backend/internal/printers/handler"
	"leadcapture_backend/internal/printers/repository"
	"leadcapture_backend/internal/printers/service"
	printjobsrepo "leadcapture_backend/internal/printjobs/repository"
	"leadcapture_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module bundles the printers repository, service and handler.
type Module struct {
	handler    *handler.Handler
	repository *repository.Repository
}

var _ apphttp.Module = (*Module)(nil)

// NewModule constructs the printers module with its full dependency chain.
func NewModule(
	pool *pgxpool.Pool,
	events *eventsrepo.Repository,
	jobs *printjobsrepo.Repository,
	val *validator.Validator,
) *Module {
	repo := repository.New(pool)
	svc := service.New(events, repo, jobs, service.PathProber{})
	return &Module{
		handler:    handler.New(svc, val),
		repository: repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string { return "printers" }

// Repository exposes the printer store for the print-job dispatcher.
func (m *Module) Repository() *repository.Repository { return m.repository }

// RegisterRoutes mounts the printer routes under /api/v1/events.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.V1.Group("/events"))
}
