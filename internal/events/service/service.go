// Package service implements the event lifecycle use cases: creation with
// schedule validation, status transitions and banner management.
package service

import (
	"context"
	"errors"
	"path"
	"strings"
	"time"

	"leadcapture_backend/internal/events/domain"
	"leadcapture_backend/internal/events/repository"
	"leadcapture_backend/internal/events/transport"
	"leadcapture_backend/platform/apperr"
	"leadcapture_backend/platform/slugify"

	"github.com/google/uuid"
)

// EventStore is the persistence contract consumed by the service.
type EventStore interface {
	Create(ctx context.Context, params repository.CreateEventParams) (repository.Event, error)
	FindByID(ctx context.Context, id uuid.UUID) (repository.Event, error)
	FindBySlug(ctx context.Context, slug string) (repository.Event, error)
	List(ctx context.Context) ([]repository.Event, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.Status) (repository.Event, error)
	UpdateBanner(ctx context.Context, id uuid.UUID, bannerKey string) (repository.Event, error)
}

// BannerStorage is the object-storage contract for event banners.
type BannerStorage interface {
	Upload(ctx context.Context, filename, contentType string, data []byte) (string, error)
	PublicURL(ctx context.Context, key string) (string, error)
}

type Service struct {
	store       EventStore
	storage     BannerStorage
	minDuration time.Duration
	now         func() time.Time
}

func New(store EventStore, storage BannerStorage, minDuration time.Duration) *Service {
	return &Service{
		store:       store,
		storage:     storage,
		minDuration: minDuration,
		now:         time.Now,
	}
}

// Create validates the candidate event and persists it with status draft.
// Checks run in a fixed order and the first violation wins: slug uniqueness,
// start not in the past (start == now is allowed), end strictly after start,
// minimum duration.
func (s *Service) Create(ctx context.Context, req transport.CreateEventRequest) (transport.EventResponse, error) {
	slug := slugify.Make(req.Title)
	if slug == "" {
		return transport.EventResponse{}, invalidTitleError(req.Title)
	}

	_, err := s.store.FindBySlug(ctx, slug)
	if err == nil {
		return transport.EventResponse{}, eventAlreadyExistsError(slug)
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return transport.EventResponse{}, err
	}

	now := s.now()
	if req.StartAt.Before(now) {
		return transport.EventResponse{}, startDateInPastError(req.StartAt)
	}

	if !req.EndsAt.After(req.StartAt) {
		return transport.EventResponse{}, endBeforeStartError(req.StartAt, req.EndsAt)
	}

	if duration := req.EndsAt.Sub(req.StartAt); duration < s.minDuration {
		return transport.EventResponse{}, durationTooShortError(s.minDuration, duration)
	}

	event, err := s.store.Create(ctx, repository.CreateEventParams{
		Title:   req.Title,
		Slug:    slug,
		Status:  domain.StatusDraft,
		StartAt: req.StartAt.UTC(),
		EndsAt:  req.EndsAt.UTC(),
	})
	if errors.Is(err, repository.ErrDuplicateSlug) {
		// Lost the race against a concurrent creation with the same slug.
		return transport.EventResponse{}, eventAlreadyExistsError(slug)
	}
	if err != nil {
		return transport.EventResponse{}, err
	}

	return s.toResponse(ctx, event), nil
}

// UpdateStatus applies a lifecycle transition validated against the
// static allow-table.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, newStatus domain.Status) (transport.EventResponse, error) {
	event, err := s.findByID(ctx, id)
	if err != nil {
		return transport.EventResponse{}, err
	}

	next, err := domain.Transition(event.Status, newStatus)
	if err != nil {
		return transport.EventResponse{}, err
	}

	updated, err := s.store.UpdateStatus(ctx, id, next)
	if errors.Is(err, repository.ErrNotFound) {
		return transport.EventResponse{}, apperr.ResourceNotFound("Event", id.String())
	}
	if err != nil {
		return transport.EventResponse{}, err
	}

	return s.toResponse(ctx, updated), nil
}

// UpdateBanner stores a new banner image for an event that has not started.
func (s *Service) UpdateBanner(ctx context.Context, id uuid.UUID, filename, contentType string, data []byte) (transport.EventResponse, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return transport.EventResponse{}, invalidFileTypeError(contentType)
	}

	event, err := s.findByID(ctx, id)
	if err != nil {
		return transport.EventResponse{}, err
	}

	if event.Status == domain.StatusFinished || event.Status == domain.StatusCanceled {
		return transport.EventResponse{}, eventAlreadyEndedError(event.EndsAt)
	}

	if !event.StartAt.After(s.now()) {
		return transport.EventResponse{}, eventAlreadyStartedError(event.StartAt)
	}

	key, err := s.storage.Upload(ctx, event.Slug+path.Ext(filename), contentType, data)
	if err != nil {
		return transport.EventResponse{}, err
	}

	updated, err := s.store.UpdateBanner(ctx, id, key)
	if errors.Is(err, repository.ErrNotFound) {
		return transport.EventResponse{}, apperr.ResourceNotFound("Event", id.String())
	}
	if err != nil {
		return transport.EventResponse{}, err
	}

	return s.toResponse(ctx, updated), nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (transport.EventResponse, error) {
	event, err := s.findByID(ctx, id)
	if err != nil {
		return transport.EventResponse{}, err
	}
	return s.toResponse(ctx, event), nil
}

func (s *Service) GetBySlug(ctx context.Context, slug string) (transport.EventResponse, error) {
	event, err := s.store.FindBySlug(ctx, slug)
	if errors.Is(err, repository.ErrNotFound) {
		return transport.EventResponse{}, apperr.ResourceNotFound("Event", slug)
	}
	if err != nil {
		return transport.EventResponse{}, err
	}
	return s.toResponse(ctx, event), nil
}

func (s *Service) List(ctx context.Context) (transport.EventListResponse, error) {
	events, err := s.store.List(ctx)
	if err != nil {
		return transport.EventListResponse{}, err
	}

	items := make([]transport.EventResponse, 0, len(events))
	for _, e := range events {
		items = append(items, s.toResponse(ctx, e))
	}
	return transport.EventListResponse{Items: items, Total: len(items)}, nil
}

// SetNow overrides the clock, for tests.
func (s *Service) SetNow(now func() time.Time) {
	s.now = now
}

func (s *Service) findByID(ctx context.Context, id uuid.UUID) (repository.Event, error) {
	event, err := s.store.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return repository.Event{}, apperr.ResourceNotFound("Event", id.String())
	}
	return event, err
}

func (s *Service) toResponse(ctx context.Context, e repository.Event) transport.EventResponse {
	resp := transport.EventResponse{
		ID:        e.ID,
		Title:     e.Title,
		Slug:      e.Slug,
		Status:    string(e.Status),
		StartAt:   e.StartAt,
		EndsAt:    e.EndsAt,
		CreatedAt: e.CreatedAt,
	}

	if e.BannerKey != nil && s.storage != nil {
		if url, err := s.storage.PublicURL(ctx, *e.BannerKey); err == nil {
			resp.BannerURL = &url
		}
	}

	return resp
}
