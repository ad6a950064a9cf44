package printjobs

import (
	"context"
	"testing"
	"time"

	"leadcapture_backend/internal/bus"
	printersdomain "leadcapture_backend/internal/printers/domain"
	printersrepo "leadcapture_backend/internal/printers/repository"
	"leadcapture_backend/internal/printjobs/queue"
	"leadcapture_backend/internal/printjobs/repository"
	"leadcapture_backend/platform/logger"

	"github.com/google/uuid"
)

type fakePrinterFinder struct {
	printer *printersrepo.Printer
}

func (f *fakePrinterFinder) FindFirstConnectedByEventID(context.Context, uuid.UUID) (printersrepo.Printer, error) {
	if f.printer == nil {
		return printersrepo.Printer{}, printersrepo.ErrNotFound
	}
	return *f.printer, nil
}

type fakeJobStore struct {
	created []repository.CreatePrintJobParams
}

func (f *fakeJobStore) Create(_ context.Context, params repository.CreatePrintJobParams) (repository.PrintJob, error) {
	f.created = append(f.created, params)
	return repository.PrintJob{
		ID:        uuid.New(),
		EventID:   params.EventID,
		LeadID:    params.LeadID,
		PrinterID: params.PrinterID,
		Status:    repository.StatusPending,
	}, nil
}

type fakeEnqueuer struct {
	payloads []queue.TicketPayload
}

func (f *fakeEnqueuer) EnqueueTicketPrint(_ context.Context, payload queue.TicketPayload) error {
	f.payloads = append(f.payloads, payload)
	return nil
}

func TestDispatcherEnqueuesTicketForRegisteredLead(t *testing.T) {
	printer := printersrepo.Printer{
		ID:     uuid.New(),
		Status: printersdomain.StatusConnected,
	}
	finder := &fakePrinterFinder{printer: &printer}
	jobs := &fakeJobStore{}
	enqueuer := &fakeEnqueuer{}

	d := NewDispatcher(finder, jobs, enqueuer, logger.New("test"))

	event := bus.NewLeadRegistered(
		uuid.New(), uuid.New(), "festa-junina",
		"Maria Silva", "+5521983294521", "maria@example.com",
	)

	if err := d.handleLeadRegistered(context.Background(), event); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(jobs.created) != 1 {
		t.Fatalf("expected 1 job created, got %d", len(jobs.created))
	}
	if jobs.created[0].PrinterID != printer.ID {
		t.Errorf("expected job assigned to printer %s, got %s", printer.ID, jobs.created[0].PrinterID)
	}
	if jobs.created[0].MaxAttempts != defaultMaxAttempts {
		t.Errorf("expected max attempts %d, got %d", defaultMaxAttempts, jobs.created[0].MaxAttempts)
	}

	if len(enqueuer.payloads) != 1 {
		t.Fatalf("expected 1 enqueued payload, got %d", len(enqueuer.payloads))
	}
	payload := enqueuer.payloads[0]
	if payload.EventSlug != "festa-junina" || payload.Phone != "+5521983294521" {
		t.Errorf("unexpected payload: %+v", payload)
	}
	if payload.JobID == "" || payload.LeadID == "" {
		t.Errorf("expected job and lead ids in payload: %+v", payload)
	}
}

func TestDispatcherSkipsWhenNoPrinterConnected(t *testing.T) {
	finder := &fakePrinterFinder{}
	jobs := &fakeJobStore{}
	enqueuer := &fakeEnqueuer{}

	d := NewDispatcher(finder, jobs, enqueuer, logger.New("test"))

	event := bus.NewLeadRegistered(
		uuid.New(), uuid.New(), "festa-junina",
		"Maria Silva", "+5521983294521", "maria@example.com",
	)

	if err := d.handleLeadRegistered(context.Background(), event); err != nil {
		t.Fatalf("expected no error when no printer is connected, got %v", err)
	}
	if len(jobs.created) != 0 || len(enqueuer.payloads) != 0 {
		t.Errorf("expected no job or payload, got %d jobs and %d payloads", len(jobs.created), len(enqueuer.payloads))
	}
}

type unrelatedEvent struct{}

func (unrelatedEvent) EventName() string     { return "something.else" }
func (unrelatedEvent) OccurredAt() time.Time { return time.Time{} }

func TestDispatcherIgnoresForeignEvents(t *testing.T) {
	finder := &fakePrinterFinder{}
	jobs := &fakeJobStore{}
	enqueuer := &fakeEnqueuer{}

	d := NewDispatcher(finder, jobs, enqueuer, logger.New("test"))

	if err := d.handleLeadRegistered(context.Background(), unrelatedEvent{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(jobs.created) != 0 {
		t.Errorf("expected no job for unrelated event, got %d", len(jobs.created))
	}
}
