// Package repository provides pgx-backed persistence for events.
package repository

import (
	"context"
	"errors"
	"time"

	"leadcapture_backend/internal/events/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound      = errors.New("event not found")
	ErrDuplicateSlug = errors.New("event slug already exists")
)

// uniqueViolation is the Postgres error code for unique constraint violations.
const uniqueViolation = "23505"

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

type Event struct {
	ID        uuid.UUID
	Title     string
	Slug      string
	Status    domain.Status
	BannerKey *string
	StartAt   time.Time
	EndsAt    time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CreateEventParams struct {
	Title   string
	Slug    string
	Status  domain.Status
	StartAt time.Time
	EndsAt  time.Time
}

const eventColumns = `id, title, slug, status, banner_key, start_at, ends_at, created_at, updated_at`

func scanEvent(row pgx.Row) (Event, error) {
	var e Event
	err := row.Scan(&e.ID, &e.Title, &e.Slug, &e.Status, &e.BannerKey, &e.StartAt, &e.EndsAt, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Event{}, ErrNotFound
	}
	if err != nil {
		return Event{}, err
	}
	return e, nil
}

// Create inserts a new event. The unique index on slug closes the
// check-then-create race: a concurrent duplicate surfaces as ErrDuplicateSlug.
func (r *Repository) Create(ctx context.Context, params CreateEventParams) (Event, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO events (title, slug, status, start_at, ends_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+eventColumns,
		params.Title, params.Slug, params.Status, params.StartAt, params.EndsAt,
	)

	event, err := scanEvent(row)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return Event{}, ErrDuplicateSlug
	}
	return event, err
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (Event, error) {
	return scanEvent(r.pool.QueryRow(ctx, `
		SELECT `+eventColumns+` FROM events WHERE id = $1
	`, id))
}

func (r *Repository) FindBySlug(ctx context.Context, slug string) (Event, error) {
	return scanEvent(r.pool.QueryRow(ctx, `
		SELECT `+eventColumns+` FROM events WHERE slug = $1
	`, slug))
}

func (r *Repository) List(ctx context.Context) ([]Event, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+eventColumns+` FROM events ORDER BY start_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]Event, 0)
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.Title, &e.Slug, &e.Status, &e.BannerKey, &e.StartAt, &e.EndsAt, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, rows.Err()
}

func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.Status) (Event, error) {
	return scanEvent(r.pool.QueryRow(ctx, `
		UPDATE events SET status = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+eventColumns,
		id, status,
	))
}

func (r *Repository) UpdateBanner(ctx context.Context, id uuid.UUID, bannerKey string) (Event, error) {
	return scanEvent(r.pool.QueryRow(ctx, `
		UPDATE events SET banner_key = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+eventColumns,
		id, bannerKey,
	))
}
