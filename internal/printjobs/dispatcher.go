// Package printjobs turns registered leads into ticket print jobs and hands
// them to the queue.
package printjobs

import (
	"context"
	"errors"

	"leadcapture_backend/internal/bus"
	printersrepo "leadcapture_backend/internal/printers/repository"
	"leadcapture_backend/internal/printjobs/queue"
	"leadcapture_backend/internal/printjobs/repository"
	"leadcapture_backend/platform/logger"

	"github.com/google/uuid"
)

const defaultMaxAttempts = 3

// PrinterFinder locates a printer able to take a job for an event.
type PrinterFinder interface {
	FindFirstConnectedByEventID(ctx context.Context, eventID uuid.UUID) (printersrepo.Printer, error)
}

// JobStore records print jobs. Satisfied by the print-jobs repository.
type JobStore interface {
	Create(ctx context.Context, params repository.CreatePrintJobParams) (repository.PrintJob, error)
}

// Dispatcher subscribes to lead registrations and enqueues a ticket print
// job for each one.
type Dispatcher struct {
	printers PrinterFinder
	jobs     JobStore
	enqueuer queue.TicketEnqueuer
	log      *logger.Logger
}

func NewDispatcher(printers PrinterFinder, jobs JobStore, enqueuer queue.TicketEnqueuer, log *logger.Logger) *Dispatcher {
	return &Dispatcher{
		printers: printers,
		jobs:     jobs,
		enqueuer: enqueuer,
		log:      log,
	}
}

// Subscribe registers the dispatcher on the domain event bus.
func (d *Dispatcher) Subscribe(eventBus bus.Bus) {
	eventBus.Subscribe(bus.EventTypeLeadRegistered, bus.HandlerFunc(d.handleLeadRegistered))
}

func (d *Dispatcher) handleLeadRegistered(ctx context.Context, event bus.Event) error {
	registered, ok := event.(bus.LeadRegistered)
	if !ok {
		return nil
	}

	printer, err := d.printers.FindFirstConnectedByEventID(ctx, registered.EventID)
	if errors.Is(err, printersrepo.ErrNotFound) {
		// No connected printer; the lead is registered, the ticket is skipped.
		d.log.Info("no connected printer for event, skipping ticket",
			"event", registered.EventSlug, "lead", registered.LeadID)
		return nil
	}
	if err != nil {
		return err
	}

	job, err := d.jobs.Create(ctx, repository.CreatePrintJobParams{
		EventID:     registered.EventID,
		LeadID:      registered.LeadID,
		PrinterID:   printer.ID,
		MaxAttempts: defaultMaxAttempts,
	})
	if err != nil {
		return err
	}

	err = d.enqueuer.EnqueueTicketPrint(ctx, queue.TicketPayload{
		JobID:     job.ID.String(),
		LeadID:    registered.LeadID.String(),
		EventSlug: registered.EventSlug,
		Name:      registered.Name,
		Phone:     registered.Phone,
		Email:     registered.Email,
	})
	if err != nil {
		return err
	}

	d.log.JobEvent(queue.TaskTicketPrint, job.ID.String(), nil)
	return nil
}
