// Package service implements printer registration and queue inspection.
package service

import (
	"context"
	"errors"

	eventsrepo "leadcapture_backend/internal/events/repository"
	"leadcapture_backend/internal/printers/domain"
	"leadcapture_backend/internal/printers/repository"
	"leadcapture_backend/internal/printers/transport"
	printjobsrepo "leadcapture_backend/internal/printjobs/repository"
	"leadcapture_backend/platform/apperr"
	"leadcapture_backend/platform/slugify"

	"github.com/google/uuid"
)

// EventDirectory resolves events owning printers. Satisfied by the events
// repository.
type EventDirectory interface {
	FindByID(ctx context.Context, id uuid.UUID) (eventsrepo.Event, error)
}

// PrinterStore is the persistence contract consumed by the service.
type PrinterStore interface {
	Create(ctx context.Context, params repository.CreatePrinterParams) (repository.Printer, error)
	FindBySlug(ctx context.Context, slug string) (repository.Printer, error)
	FindByIDAndEventID(ctx context.Context, id, eventID uuid.UUID) (repository.Printer, error)
	FindManyByEventID(ctx context.Context, eventID uuid.UUID) ([]repository.Printer, error)
}

// JobQueue exposes the pending ticket jobs of a printer. Satisfied by the
// print-jobs repository.
type JobQueue interface {
	FindPendingByPrinterID(ctx context.Context, printerID uuid.UUID) ([]printjobsrepo.PrintJob, error)
}

// AvailabilityProber checks whether a printer path is reachable at
// registration time.
type AvailabilityProber interface {
	IsAvailable(ctx context.Context, printerType domain.Type, path string) bool
}

type Service struct {
	events EventDirectory
	store  PrinterStore
	jobs   JobQueue
	prober AvailabilityProber
}

func New(events EventDirectory, store PrinterStore, jobs JobQueue, prober AvailabilityProber) *Service {
	return &Service{
		events: events,
		store:  store,
		jobs:   jobs,
		prober: prober,
	}
}

// Create registers a printer for an event. The printer starts connected or
// disconnected depending on an availability probe of its path.
func (s *Service) Create(ctx context.Context, eventID uuid.UUID, req transport.CreatePrinterRequest) (transport.PrinterResponse, error) {
	if _, err := s.findEvent(ctx, eventID); err != nil {
		return transport.PrinterResponse{}, err
	}

	slug := slugify.Make(req.Name)
	if slug == "" {
		return transport.PrinterResponse{}, invalidPrinterNameError(req.Name)
	}

	_, err := s.store.FindBySlug(ctx, slug)
	if err == nil {
		return transport.PrinterResponse{}, printerAlreadyExistsError(slug)
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return transport.PrinterResponse{}, err
	}

	status := domain.StatusDisconnected
	if s.prober != nil && s.prober.IsAvailable(ctx, domain.Type(req.Type), req.Path) {
		status = domain.StatusConnected
	}

	printer, err := s.store.Create(ctx, repository.CreatePrinterParams{
		EventID:     eventID,
		Name:        req.Name,
		Slug:        slug,
		Path:        req.Path,
		Description: req.Description,
		Type:        domain.Type(req.Type),
		Status:      status,
	})
	if errors.Is(err, repository.ErrDuplicateSlug) {
		return transport.PrinterResponse{}, printerAlreadyExistsError(slug)
	}
	if err != nil {
		return transport.PrinterResponse{}, err
	}

	return toResponse(printer), nil
}

// ListByEvent returns all printers registered for an event.
func (s *Service) ListByEvent(ctx context.Context, eventID uuid.UUID) (transport.PrinterListResponse, error) {
	if _, err := s.findEvent(ctx, eventID); err != nil {
		return transport.PrinterListResponse{}, err
	}

	printers, err := s.store.FindManyByEventID(ctx, eventID)
	if err != nil {
		return transport.PrinterListResponse{}, err
	}

	items := make([]transport.PrinterResponse, 0, len(printers))
	for _, p := range printers {
		items = append(items, toResponse(p))
	}
	return transport.PrinterListResponse{Printers: items, TotalPrinter: len(items)}, nil
}

// Queue lists the pending ticket jobs of one of the event's printers.
func (s *Service) Queue(ctx context.Context, eventID, printerID uuid.UUID) (transport.PrinterQueueResponse, error) {
	_, err := s.store.FindByIDAndEventID(ctx, printerID, eventID)
	if errors.Is(err, repository.ErrNotFound) {
		return transport.PrinterQueueResponse{}, apperr.ResourceNotFound("Printer", printerID.String())
	}
	if err != nil {
		return transport.PrinterQueueResponse{}, err
	}

	jobs, err := s.jobs.FindPendingByPrinterID(ctx, printerID)
	if err != nil {
		return transport.PrinterQueueResponse{}, err
	}

	items := make([]transport.PrintJobResponse, 0, len(jobs))
	for _, j := range jobs {
		items = append(items, transport.PrintJobResponse{
			ID:        j.ID,
			LeadID:    j.LeadID,
			Status:    string(j.Status),
			Attempts:  j.Attempts,
			CreatedAt: j.CreatedAt,
		})
	}
	return transport.PrinterQueueResponse{Jobs: items, Total: len(items)}, nil
}

func (s *Service) findEvent(ctx context.Context, eventID uuid.UUID) (eventsrepo.Event, error) {
	event, err := s.events.FindByID(ctx, eventID)
	if errors.Is(err, eventsrepo.ErrNotFound) {
		return eventsrepo.Event{}, apperr.ResourceNotFound("Event", eventID.String())
	}
	return event, err
}

func toResponse(p repository.Printer) transport.PrinterResponse {
	return transport.PrinterResponse{
		ID:          p.ID,
		EventID:     p.EventID,
		Name:        p.Name,
		Slug:        p.Slug,
		Path:        p.Path,
		Description: p.Description,
		Type:        string(p.Type),
		Status:      string(p.Status),
		CreatedAt:   p.CreatedAt,
	}
}
