package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"leadcapture_backend/internal/bus"
	eventsdomain "leadcapture_backend/internal/events/domain"
	eventsrepo "leadcapture_backend/internal/events/repository"
	"leadcapture_backend/internal/leads/repository"
	"leadcapture_backend/internal/leads/transport"
	"leadcapture_backend/platform/apperr"
	"leadcapture_backend/platform/phone"

	"github.com/google/uuid"
)

type fakeEventDirectory struct {
	events map[uuid.UUID]eventsrepo.Event
}

func newFakeEventDirectory() *fakeEventDirectory {
	return &fakeEventDirectory{events: make(map[uuid.UUID]eventsrepo.Event)}
}

func (f *fakeEventDirectory) add(e eventsrepo.Event) {
	f.events[e.ID] = e
}

func (f *fakeEventDirectory) FindByID(_ context.Context, id uuid.UUID) (eventsrepo.Event, error) {
	if e, ok := f.events[id]; ok {
		return e, nil
	}
	return eventsrepo.Event{}, eventsrepo.ErrNotFound
}

func (f *fakeEventDirectory) FindBySlug(_ context.Context, slug string) (eventsrepo.Event, error) {
	for _, e := range f.events {
		if e.Slug == slug {
			return e, nil
		}
	}
	return eventsrepo.Event{}, eventsrepo.ErrNotFound
}

type fakeLeadStore struct {
	leads     []repository.Lead
	createdAt time.Time
}

func (f *fakeLeadStore) Create(_ context.Context, params repository.CreateLeadParams) (repository.Lead, error) {
	for _, l := range f.leads {
		if l.Email == params.Email && l.EventID == params.EventID {
			return repository.Lead{}, repository.ErrDuplicateLead
		}
	}
	lead := repository.Lead{
		ID:                     uuid.New(),
		EventID:                params.EventID,
		Name:                   params.Name,
		Phone:                  params.Phone,
		Email:                  params.Email,
		IsStudent:              params.IsStudent,
		IntendsToStudyNextYear: params.IntendsToStudyNextYear,
		TechnicalInterest:      params.TechnicalInterest,
		SegmentInterest:        params.SegmentInterest,
		Origin:                 params.Origin,
		CreatedAt:              f.createdAt,
	}
	f.leads = append(f.leads, lead)
	return lead, nil
}

func (f *fakeLeadStore) FindByEmailAndEventID(_ context.Context, email string, eventID uuid.UUID) (repository.Lead, error) {
	for _, l := range f.leads {
		if l.Email == email && l.EventID == eventID {
			return l, nil
		}
	}
	return repository.Lead{}, repository.ErrNotFound
}

func (f *fakeLeadStore) FindManyByEventID(_ context.Context, eventID uuid.UUID) ([]repository.Lead, error) {
	var items []repository.Lead
	for _, l := range f.leads {
		if l.EventID == eventID {
			items = append(items, l)
		}
	}
	return items, nil
}

type fakeExportStorage struct {
	uploads map[string][]byte
}

func (f *fakeExportStorage) Upload(_ context.Context, eventSlug string, data []byte) (string, error) {
	if f.uploads == nil {
		f.uploads = make(map[string][]byte)
	}
	key := "exports/" + eventSlug + "/leads.csv"
	f.uploads[key] = data
	return key, nil
}

func (f *fakeExportStorage) DownloadURL(_ context.Context, key string) (string, error) {
	return "https://storage.local/" + key, nil
}

type recordingBus struct {
	published []bus.Event
}

func (b *recordingBus) Publish(_ context.Context, event bus.Event)          { b.published = append(b.published, event) }
func (b *recordingBus) PublishSync(_ context.Context, event bus.Event) error {
	b.published = append(b.published, event)
	return nil
}
func (b *recordingBus) Subscribe(string, bus.Handler) {}

func activeEvent(start, end time.Time) eventsrepo.Event {
	return eventsrepo.Event{
		ID:      uuid.New(),
		Title:   "Feira de Profissões",
		Slug:    "feira-de-profissoes",
		Status:  eventsdomain.StatusActive,
		StartAt: start,
		EndsAt:  end,
	}
}

func validRequest() transport.RegisterLeadRequest {
	return transport.RegisterLeadRequest{
		Name:  "Maria Silva",
		Phone: "21 983294521",
		Email: "maria@example.com",
	}
}

func newTestService(events *fakeEventDirectory, store *fakeLeadStore, eventBus bus.Bus) *Service {
	return New(events, store, &fakeExportStorage{}, eventBus)
}

func TestRegisterAdmitsLeadDuringWindow(t *testing.T) {
	start := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	event := activeEvent(start, start.Add(72*time.Hour))

	events := newFakeEventDirectory()
	events.add(event)
	store := &fakeLeadStore{createdAt: start.Add(2 * time.Hour)}
	eventBus := &recordingBus{}

	svc := newTestService(events, store, eventBus)
	svc.SetNow(func() time.Time { return start.Add(2 * time.Hour) })

	lead, err := svc.Register(context.Background(), event.ID, validRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if lead.Phone != "+5521983294521" {
		t.Errorf("expected canonical phone, got %q", lead.Phone)
	}
	if lead.TechnicalInterest != "NONE" || lead.SegmentInterest != "NONE" || lead.Origin != "manual" {
		t.Errorf("expected categorical defaults, got %s/%s/%s",
			lead.TechnicalInterest, lead.SegmentInterest, lead.Origin)
	}
	if lead.EventID != event.ID {
		t.Errorf("expected lead bound to event %s, got %s", event.ID, lead.EventID)
	}

	if len(eventBus.published) != 1 {
		t.Fatalf("expected 1 published event, got %d", len(eventBus.published))
	}
	registered, ok := eventBus.published[0].(bus.LeadRegistered)
	if !ok {
		t.Fatalf("expected LeadRegistered event, got %T", eventBus.published[0])
	}
	if registered.EventSlug != event.Slug || registered.Phone != "+5521983294521" {
		t.Errorf("unexpected event payload: %+v", registered)
	}
}

func TestRegisterRejectsBeforeStart(t *testing.T) {
	start := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	event := activeEvent(start, start.Add(72*time.Hour))

	events := newFakeEventDirectory()
	events.add(event)

	svc := newTestService(events, &fakeLeadStore{}, nil)
	svc.SetNow(func() time.Time { return start.Add(-time.Second) })

	_, err := svc.Register(context.Background(), event.ID, validRequest())
	if apperr.GetCode(err) != CodeEventNotStartedYet {
		t.Fatalf("expected %s, got %v", CodeEventNotStartedYet, err)
	}
}

func TestRegisterRejectsAfterEnd(t *testing.T) {
	start := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	event := activeEvent(start, start.Add(72*time.Hour))

	events := newFakeEventDirectory()
	events.add(event)

	svc := newTestService(events, &fakeLeadStore{}, nil)
	svc.SetNow(func() time.Time { return start.Add(72*time.Hour + time.Second) })

	_, err := svc.Register(context.Background(), event.ID, validRequest())
	if apperr.GetCode(err) != CodeEventAlreadyEnded {
		t.Fatalf("expected %s, got %v", CodeEventAlreadyEnded, err)
	}
}

func TestRegisterRejectsInactiveEvent(t *testing.T) {
	start := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	event := activeEvent(start, start.Add(72*time.Hour))
	event.Status = eventsdomain.StatusDraft

	events := newFakeEventDirectory()
	events.add(event)

	svc := newTestService(events, &fakeLeadStore{}, nil)
	svc.SetNow(func() time.Time { return start.Add(time.Hour) })

	_, err := svc.Register(context.Background(), event.ID, validRequest())
	if apperr.GetCode(err) != CodeEventNotActive {
		t.Fatalf("expected %s, got %v", CodeEventNotActive, err)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	start := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	event := activeEvent(start, start.Add(72*time.Hour))

	events := newFakeEventDirectory()
	events.add(event)
	store := &fakeLeadStore{createdAt: start.Add(time.Hour)}

	svc := newTestService(events, store, nil)
	svc.SetNow(func() time.Time { return start.Add(time.Hour) })

	if _, err := svc.Register(context.Background(), event.ID, validRequest()); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}

	_, err := svc.Register(context.Background(), event.ID, validRequest())
	if apperr.GetCode(err) != CodeLeadAlreadyRegistered {
		t.Fatalf("expected %s, got %v", CodeLeadAlreadyRegistered, err)
	}
}

func TestRegisterRejectsUnknownEvent(t *testing.T) {
	svc := newTestService(newFakeEventDirectory(), &fakeLeadStore{}, nil)

	_, err := svc.Register(context.Background(), uuid.New(), validRequest())
	if apperr.GetKind(err) != apperr.KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRegisterPropagatesPhoneError(t *testing.T) {
	start := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	event := activeEvent(start, start.Add(72*time.Hour))

	events := newFakeEventDirectory()
	events.add(event)
	store := &fakeLeadStore{}

	svc := newTestService(events, store, nil)
	svc.SetNow(func() time.Time { return start.Add(time.Hour) })

	req := validRequest()
	req.Phone = "123"

	_, err := svc.Register(context.Background(), event.ID, req)
	if apperr.GetCode(err) != phone.CodeInvalidPhone {
		t.Fatalf("expected %s, got %v", phone.CodeInvalidPhone, err)
	}
	if len(store.leads) != 0 {
		t.Errorf("expected no lead persisted, got %d", len(store.leads))
	}
}

func TestRegisterBySlugResolvesEvent(t *testing.T) {
	start := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	event := activeEvent(start, start.Add(72*time.Hour))

	events := newFakeEventDirectory()
	events.add(event)
	store := &fakeLeadStore{createdAt: start.Add(time.Hour)}

	svc := newTestService(events, store, nil)
	svc.SetNow(func() time.Time { return start.Add(time.Hour) })

	lead, err := svc.RegisterBySlug(context.Background(), event.Slug, validRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lead.EventID != event.ID {
		t.Errorf("expected lead bound to event %s, got %s", event.ID, lead.EventID)
	}

	if _, err := svc.RegisterBySlug(context.Background(), "missing-event", validRequest()); apperr.GetKind(err) != apperr.KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestOverviewCountsTrailingHour(t *testing.T) {
	start := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	event := activeEvent(start, start.Add(72*time.Hour))
	now := start.Add(5 * time.Hour)

	events := newFakeEventDirectory()
	events.add(event)
	store := &fakeLeadStore{}
	store.leads = []repository.Lead{
		{ID: uuid.New(), EventID: event.ID, Email: "a@example.com", CreatedAt: now.Add(-30 * time.Minute)},
		{ID: uuid.New(), EventID: event.ID, Email: "b@example.com", CreatedAt: now.Add(-2 * time.Hour)},
		{ID: uuid.New(), EventID: event.ID, Email: "c@example.com", CreatedAt: now.Add(-10 * time.Minute)},
	}

	svc := newTestService(events, store, nil)
	svc.SetNow(func() time.Time { return now })

	overview, err := svc.Overview(context.Background(), event.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if overview.TotalLeads != 3 {
		t.Errorf("expected 3 total leads, got %d", overview.TotalLeads)
	}
	if overview.CurrentLeads != 2 {
		t.Errorf("expected 2 leads in the trailing hour, got %d", overview.CurrentLeads)
	}
	if overview.EventStatus != string(eventsdomain.StatusActive) {
		t.Errorf("expected status active, got %s", overview.EventStatus)
	}
}

func TestLeadsPerHourUsesScheduledWindow(t *testing.T) {
	start := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	event := activeEvent(start, start.Add(3*time.Hour))

	events := newFakeEventDirectory()
	events.add(event)
	store := &fakeLeadStore{}
	store.leads = []repository.Lead{
		{ID: uuid.New(), EventID: event.ID, Email: "a@example.com", CreatedAt: start.Add(10 * time.Minute)},
		{ID: uuid.New(), EventID: event.ID, Email: "b@example.com", CreatedAt: start.Add(40 * time.Minute)},
		{ID: uuid.New(), EventID: event.ID, Email: "c@example.com", CreatedAt: start.Add(75 * time.Minute)},
	}

	svc := newTestService(events, store, nil)

	resp, err := svc.LeadsPerHour(context.Background(), event.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Buckets) != 3 {
		t.Fatalf("expected 3 buckets, got %d", len(resp.Buckets))
	}
	wantTotals := []int{2, 1, 0}
	for i, want := range wantTotals {
		if resp.Buckets[i].Total != want {
			t.Errorf("bucket %d: expected total %d, got %d", i, want, resp.Buckets[i].Total)
		}
	}
}

func TestCaptureRateClassifiesPerformance(t *testing.T) {
	start := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	event := activeEvent(start, start.Add(72*time.Hour))
	now := start.Add(2 * time.Hour)

	events := newFakeEventDirectory()
	events.add(event)
	store := &fakeLeadStore{}
	for i := 0; i < 30; i++ {
		store.leads = append(store.leads, repository.Lead{
			ID:        uuid.New(),
			EventID:   event.ID,
			Email:     fmt.Sprintf("lead%d@example.com", i),
			CreatedAt: start.Add(10 * time.Minute),
		})
	}

	svc := newTestService(events, store, nil)
	svc.SetNow(func() time.Time { return now })

	resp, err := svc.CaptureRate(context.Background(), event.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 30 leads in 1 active hour out of 2 elapsed.
	if resp.Average != 30 {
		t.Errorf("expected average 30, got %d", resp.Average)
	}
	if resp.Status != "strong" || resp.Trend != "up" {
		t.Errorf("expected strong/up, got %s/%s", resp.Status, resp.Trend)
	}
}

func TestCaptureRateFinishedEventUsesEventEnd(t *testing.T) {
	start := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	event := activeEvent(start, start.Add(2*time.Hour))
	event.Status = eventsdomain.StatusFinished

	events := newFakeEventDirectory()
	events.add(event)
	store := &fakeLeadStore{}
	for i := 0; i < 5; i++ {
		store.leads = append(store.leads, repository.Lead{
			ID:        uuid.New(),
			EventID:   event.ID,
			Email:     fmt.Sprintf("lead%d@example.com", i),
			CreatedAt: start.Add(30 * time.Minute),
		})
	}

	svc := newTestService(events, store, nil)
	// Long after the event; the window must still stop at EndsAt.
	svc.SetNow(func() time.Time { return start.Add(100 * time.Hour) })

	resp, err := svc.CaptureRate(context.Background(), event.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Average != 5 {
		t.Errorf("expected average 5, got %d", resp.Average)
	}
	if resp.Status != "poor" || resp.Trend != "down" {
		t.Errorf("expected poor/down, got %s/%s", resp.Status, resp.Trend)
	}
}

func TestBreakdownByCategory(t *testing.T) {
	start := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	event := activeEvent(start, start.Add(72*time.Hour))

	events := newFakeEventDirectory()
	events.add(event)
	store := &fakeLeadStore{}
	store.leads = []repository.Lead{
		{ID: uuid.New(), EventID: event.ID, Email: "a@example.com", TechnicalInterest: "INF"},
		{ID: uuid.New(), EventID: event.ID, Email: "b@example.com", TechnicalInterest: "INF", IntendsToStudyNextYear: true},
		{ID: uuid.New(), EventID: event.ID, Email: "c@example.com", TechnicalInterest: "ADM"},
	}

	svc := newTestService(events, store, nil)

	resp, err := svc.BreakdownByCategory(context.Background(), event.ID, CategoryTechnical)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Items) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(resp.Items))
	}
	if resp.Items[0].Category != "INF" || resp.Items[0].Total != 2 || resp.Items[0].IntentNextYear != 1 {
		t.Errorf("unexpected first group: %+v", resp.Items[0])
	}
	if resp.Items[1].Category != "ADM" || resp.Items[1].Total != 1 {
		t.Errorf("unexpected second group: %+v", resp.Items[1])
	}

	if _, err := svc.BreakdownByCategory(context.Background(), event.ID, "nonsense"); apperr.GetCode(err) != CodeInvalidCategory {
		t.Fatalf("expected %s, got %v", CodeInvalidCategory, err)
	}
}

func TestExportCSV(t *testing.T) {
	start := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	event := activeEvent(start, start.Add(72*time.Hour))

	events := newFakeEventDirectory()
	events.add(event)
	store := &fakeLeadStore{}
	store.leads = []repository.Lead{
		{
			ID:              uuid.New(),
			EventID:         event.ID,
			Name:            "Maria Silva",
			Phone:           "+5521983294521",
			Email:           "maria@example.com",
			Origin:          "qrcode",
			SegmentInterest: "ANO_1_MEDIO",
			CreatedAt:       start.Add(time.Hour),
		},
	}
	exports := &fakeExportStorage{}

	svc := New(events, store, exports, nil)

	resp, err := svc.ExportCSV(context.Background(), event.Slug)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.TotalLeads != 1 {
		t.Errorf("expected 1 exported lead, got %d", resp.TotalLeads)
	}
	if !strings.HasPrefix(resp.DownloadURL, "https://storage.local/") {
		t.Errorf("unexpected download URL %q", resp.DownloadURL)
	}

	data := string(exports.uploads[resp.Key])
	if !strings.Contains(data, "maria@example.com") || !strings.Contains(data, "+5521983294521") {
		t.Errorf("export content missing lead fields:\n%s", data)
	}
	if !strings.HasPrefix(data, "id,name,phone,email") {
		t.Errorf("export missing header row:\n%s", data)
	}

	if _, err := svc.ExportCSV(context.Background(), "missing-event"); apperr.GetKind(err) != apperr.KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
