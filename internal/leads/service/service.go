// Package service implements lead admission and the derived metrics views.
package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"strconv"
	"time"

	"leadcapture_backend/internal/bus"
	eventsdomain "leadcapture_backend/internal/events/domain"
	eventsrepo "leadcapture_backend/internal/events/repository"
	"leadcapture_backend/internal/leads/domain"
	"leadcapture_backend/internal/leads/repository"
	"leadcapture_backend/internal/leads/transport"
	"leadcapture_backend/platform/apperr"
	"leadcapture_backend/platform/phone"

	"github.com/google/uuid"
)

// EventDirectory resolves events for admission and metrics. Satisfied by the
// events repository.
type EventDirectory interface {
	FindByID(ctx context.Context, id uuid.UUID) (eventsrepo.Event, error)
	FindBySlug(ctx context.Context, slug string) (eventsrepo.Event, error)
}

// LeadStore is the persistence contract consumed by the service.
type LeadStore interface {
	Create(ctx context.Context, params repository.CreateLeadParams) (repository.Lead, error)
	FindByEmailAndEventID(ctx context.Context, email string, eventID uuid.UUID) (repository.Lead, error)
	FindManyByEventID(ctx context.Context, eventID uuid.UUID) ([]repository.Lead, error)
}

// ExportStorage stores generated lead export files.
type ExportStorage interface {
	Upload(ctx context.Context, eventSlug string, data []byte) (string, error)
	DownloadURL(ctx context.Context, key string) (string, error)
}

type Service struct {
	events  EventDirectory
	store   LeadStore
	exports ExportStorage
	bus     bus.Bus
	now     func() time.Time
}

func New(events EventDirectory, store LeadStore, exports ExportStorage, eventBus bus.Bus) *Service {
	return &Service{
		events:  events,
		store:   store,
		exports: exports,
		bus:     eventBus,
		now:     time.Now,
	}
}

// Register admits a lead into an event. Checks run in a fixed order and the
// first violation wins: event exists, event is active, the event has started,
// the event has not ended, no lead exists for (email, eventId), the phone
// normalizes. On success the lead is persisted with its canonical phone and
// a lead.registered event is published.
func (s *Service) Register(ctx context.Context, eventID uuid.UUID, req transport.RegisterLeadRequest) (transport.LeadResponse, error) {
	event, err := s.events.FindByID(ctx, eventID)
	if errors.Is(err, eventsrepo.ErrNotFound) {
		return transport.LeadResponse{}, apperr.ResourceNotFound("Event", eventID.String())
	}
	if err != nil {
		return transport.LeadResponse{}, err
	}
	return s.admit(ctx, event, req)
}

// RegisterBySlug admits a lead into an event resolved by slug. Used by the
// public QR-code registration flow.
func (s *Service) RegisterBySlug(ctx context.Context, slug string, req transport.RegisterLeadRequest) (transport.LeadResponse, error) {
	event, err := s.events.FindBySlug(ctx, slug)
	if errors.Is(err, eventsrepo.ErrNotFound) {
		return transport.LeadResponse{}, apperr.ResourceNotFound("Event", slug)
	}
	if err != nil {
		return transport.LeadResponse{}, err
	}
	return s.admit(ctx, event, req)
}

func (s *Service) admit(ctx context.Context, event eventsrepo.Event, req transport.RegisterLeadRequest) (transport.LeadResponse, error) {
	if event.Status != eventsdomain.StatusActive {
		return transport.LeadResponse{}, eventNotActiveError(event.Slug)
	}

	now := s.now()
	if now.Before(event.StartAt) {
		return transport.LeadResponse{}, eventNotStartedYetError(event.StartAt)
	}
	if now.After(event.EndsAt) {
		return transport.LeadResponse{}, eventAlreadyEndedError(event.EndsAt)
	}

	_, err := s.store.FindByEmailAndEventID(ctx, req.Email, event.ID)
	if err == nil {
		return transport.LeadResponse{}, leadAlreadyRegisteredError(req.Email, event.Slug)
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return transport.LeadResponse{}, err
	}

	normalizedPhone, err := phone.Normalize(req.Phone)
	if err != nil {
		return transport.LeadResponse{}, err
	}

	lead, err := s.store.Create(ctx, repository.CreateLeadParams{
		EventID:                event.ID,
		Name:                   req.Name,
		Phone:                  normalizedPhone,
		Email:                  req.Email,
		IsStudent:              req.IsStudent,
		IntendsToStudyNextYear: req.IntendsToStudyNextYear,
		TechnicalInterest:      technicalInterestOrDefault(req.TechnicalInterest),
		SegmentInterest:        segmentInterestOrDefault(req.SegmentInterest),
		Origin:                 originOrDefault(req.Origin),
	})
	if errors.Is(err, repository.ErrDuplicateLead) {
		// Lost the race against a concurrent registration with the same email.
		return transport.LeadResponse{}, leadAlreadyRegisteredError(req.Email, event.Slug)
	}
	if err != nil {
		return transport.LeadResponse{}, err
	}

	if s.bus != nil {
		s.bus.Publish(ctx, bus.NewLeadRegistered(
			lead.ID, event.ID, event.Slug, lead.Name, lead.Phone, lead.Email,
		))
	}

	return toResponse(lead), nil
}

// ListByEvent returns all leads of an event in registration order.
func (s *Service) ListByEvent(ctx context.Context, eventID uuid.UUID) (transport.LeadListResponse, error) {
	_, leads, err := s.eventWithLeads(ctx, eventID)
	if err != nil {
		return transport.LeadListResponse{}, err
	}

	items := make([]transport.LeadResponse, 0, len(leads))
	for _, l := range leads {
		items = append(items, toResponse(l))
	}
	return transport.LeadListResponse{Items: items, Total: len(items)}, nil
}

// Overview reports the registration totals of an event: everything captured
// so far plus the count from the trailing hour.
func (s *Service) Overview(ctx context.Context, eventID uuid.UUID) (transport.EventOverviewResponse, error) {
	event, leads, err := s.eventWithLeads(ctx, eventID)
	if err != nil {
		return transport.EventOverviewResponse{}, err
	}

	lastHour := s.now().Add(-time.Hour)
	current := 0
	for _, l := range leads {
		if l.CreatedAt.After(lastHour) {
			current++
		}
	}

	return transport.EventOverviewResponse{
		EventStatus:  string(event.Status),
		CurrentLeads: current,
		TotalLeads:   len(leads),
	}, nil
}

// LeadsPerHour returns the dense hourly capture timeline over the event's
// scheduled window.
func (s *Service) LeadsPerHour(ctx context.Context, eventID uuid.UUID) (transport.LeadsPerHourResponse, error) {
	event, leads, err := s.eventWithLeads(ctx, eventID)
	if err != nil {
		return transport.LeadsPerHourResponse{}, err
	}

	buckets := domain.BucketByHour(creationTimes(leads), event.StartAt, event.EndsAt)
	return transport.LeadsPerHourResponse{Buckets: toBucketResponses(buckets)}, nil
}

// CaptureRate classifies the event's hourly capture rate. The window runs
// from the event start to now, or to the event end once it has finished.
func (s *Service) CaptureRate(ctx context.Context, eventID uuid.UUID) (transport.CaptureRateResponse, error) {
	event, leads, err := s.eventWithLeads(ctx, eventID)
	if err != nil {
		return transport.CaptureRateResponse{}, err
	}

	end := s.now()
	if event.Status == eventsdomain.StatusFinished && event.EndsAt.Before(end) {
		end = event.EndsAt
	}

	buckets := domain.BucketByHour(creationTimes(leads), event.StartAt, end)
	perf := domain.Classify(domain.AverageRate(buckets))

	return transport.CaptureRateResponse{
		Average: perf.Rate,
		Status:  perf.Status,
		Trend:   perf.Trend,
		Message: perf.Message,
	}, nil
}

// Breakdown categories accepted by BreakdownByCategory.
const (
	CategoryTechnical = "technical"
	CategorySegment   = "segment"
	CategoryOrigin    = "origin"
)

// BreakdownByCategory groups the event's leads by one of the categorical
// fields, sorted by total descending.
func (s *Service) BreakdownByCategory(ctx context.Context, eventID uuid.UUID, category string) (transport.CategoryBreakdownResponse, error) {
	_, leads, err := s.eventWithLeads(ctx, eventID)
	if err != nil {
		return transport.CategoryBreakdownResponse{}, err
	}

	var field func(repository.Lead) string
	switch category {
	case CategoryTechnical:
		field = func(l repository.Lead) string { return string(l.TechnicalInterest) }
	case CategorySegment:
		field = func(l repository.Lead) string { return string(l.SegmentInterest) }
	case CategoryOrigin:
		field = func(l repository.Lead) string { return string(l.Origin) }
	default:
		return transport.CategoryBreakdownResponse{}, invalidCategoryError(category)
	}

	samples := make([]domain.CategorySample, 0, len(leads))
	for _, l := range leads {
		samples = append(samples, domain.CategorySample{
			Category:               field(l),
			IntendsToStudyNextYear: l.IntendsToStudyNextYear,
		})
	}

	metrics := domain.GroupByCategory(samples)
	items := make([]transport.CategoryMetricResponse, 0, len(metrics))
	for _, m := range metrics {
		items = append(items, transport.CategoryMetricResponse{
			Category:       m.Category,
			Total:          m.Total,
			IntentNextYear: m.IntentNextYear,
		})
	}
	return transport.CategoryBreakdownResponse{Category: category, Items: items}, nil
}

// ExportCSV writes all leads of an event into a CSV file, stores it and
// returns a short-lived download link.
func (s *Service) ExportCSV(ctx context.Context, slug string) (transport.ExportResponse, error) {
	event, err := s.events.FindBySlug(ctx, slug)
	if errors.Is(err, eventsrepo.ErrNotFound) {
		return transport.ExportResponse{}, apperr.ResourceNotFound("Event", slug)
	}
	if err != nil {
		return transport.ExportResponse{}, err
	}

	leads, err := s.store.FindManyByEventID(ctx, event.ID)
	if err != nil {
		return transport.ExportResponse{}, err
	}

	data, err := leadsToCSV(leads)
	if err != nil {
		return transport.ExportResponse{}, err
	}

	key, err := s.exports.Upload(ctx, event.Slug, data)
	if err != nil {
		return transport.ExportResponse{}, err
	}

	url, err := s.exports.DownloadURL(ctx, key)
	if err != nil {
		return transport.ExportResponse{}, err
	}

	return transport.ExportResponse{Key: key, DownloadURL: url, TotalLeads: len(leads)}, nil
}

// SetNow overrides the clock, for tests.
func (s *Service) SetNow(now func() time.Time) {
	s.now = now
}

func (s *Service) eventWithLeads(ctx context.Context, eventID uuid.UUID) (eventsrepo.Event, []repository.Lead, error) {
	event, err := s.events.FindByID(ctx, eventID)
	if errors.Is(err, eventsrepo.ErrNotFound) {
		return eventsrepo.Event{}, nil, apperr.ResourceNotFound("Event", eventID.String())
	}
	if err != nil {
		return eventsrepo.Event{}, nil, err
	}

	leads, err := s.store.FindManyByEventID(ctx, eventID)
	if err != nil {
		return eventsrepo.Event{}, nil, err
	}
	return event, leads, nil
}

func technicalInterestOrDefault(value string) domain.TechnicalInterest {
	if value == "" {
		return domain.TechnicalNone
	}
	return domain.TechnicalInterest(value)
}

func segmentInterestOrDefault(value string) domain.SegmentInterest {
	if value == "" {
		return domain.SegmentNone
	}
	return domain.SegmentInterest(value)
}

func originOrDefault(value string) domain.Origin {
	if value == "" {
		return domain.OriginManual
	}
	return domain.Origin(value)
}

func creationTimes(leads []repository.Lead) []time.Time {
	times := make([]time.Time, 0, len(leads))
	for _, l := range leads {
		times = append(times, l.CreatedAt)
	}
	return times
}

func toBucketResponses(buckets []domain.HourlyBucket) []transport.HourlyBucketResponse {
	items := make([]transport.HourlyBucketResponse, 0, len(buckets))
	for _, b := range buckets {
		items = append(items, transport.HourlyBucketResponse{Hour: b.Hour, Total: b.Total})
	}
	return items
}

func toResponse(l repository.Lead) transport.LeadResponse {
	return transport.LeadResponse{
		ID:                     l.ID,
		EventID:                l.EventID,
		Name:                   l.Name,
		Phone:                  l.Phone,
		Email:                  l.Email,
		IsStudent:              l.IsStudent,
		IntendsToStudyNextYear: l.IntendsToStudyNextYear,
		TechnicalInterest:      string(l.TechnicalInterest),
		SegmentInterest:        string(l.SegmentInterest),
		Origin:                 string(l.Origin),
		CreatedAt:              l.CreatedAt,
	}
}

func leadsToCSV(leads []repository.Lead) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"id", "name", "phone", "email", "is_student", "intends_to_study_next_year", "technical_interest", "segment_interest", "origin", "created_at"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, l := range leads {
		record := []string{
			l.ID.String(),
			l.Name,
			l.Phone,
			l.Email,
			strconv.FormatBool(l.IsStudent),
			strconv.FormatBool(l.IntendsToStudyNextYear),
			string(l.TechnicalInterest),
			string(l.SegmentInterest),
			string(l.Origin),
			l.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}
