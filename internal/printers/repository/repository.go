// Package repository provides pgx-backed persistence for printers.
package repository

import (
	"context"
	"errors"
	"time"

	"leadcapture_backend/internal/printers/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound      = errors.New("printer not found")
	ErrDuplicateSlug = errors.New("printer slug already exists")
)

const uniqueViolation = "23505"

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

type Printer struct {
	ID          uuid.UUID
	EventID     uuid.UUID
	Name        string
	Slug        string
	Path        string
	Description *string
	Type        domain.Type
	Status      domain.Status
	CreatedAt   time.Time
}

type CreatePrinterParams struct {
	EventID     uuid.UUID
	Name        string
	Slug        string
	Path        string
	Description *string
	Type        domain.Type
	Status      domain.Status
}

const printerColumns = `id, event_id, name, slug, path, description, type, status, created_at`

func scanPrinter(row pgx.Row) (Printer, error) {
	var p Printer
	err := row.Scan(&p.ID, &p.EventID, &p.Name, &p.Slug, &p.Path, &p.Description, &p.Type, &p.Status, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Printer{}, ErrNotFound
	}
	if err != nil {
		return Printer{}, err
	}
	return p, nil
}

// Create inserts a new printer. The unique index on slug closes the
// check-then-create race: a concurrent duplicate surfaces as ErrDuplicateSlug.
func (r *Repository) Create(ctx context.Context, params CreatePrinterParams) (Printer, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO printers (event_id, name, slug, path, description, type, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+printerColumns,
		params.EventID, params.Name, params.Slug, params.Path, params.Description, params.Type, params.Status,
	)

	printer, err := scanPrinter(row)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return Printer{}, ErrDuplicateSlug
	}
	return printer, err
}

func (r *Repository) FindBySlug(ctx context.Context, slug string) (Printer, error) {
	return scanPrinter(r.pool.QueryRow(ctx, `
		SELECT `+printerColumns+` FROM printers WHERE slug = $1
	`, slug))
}

func (r *Repository) FindByIDAndEventID(ctx context.Context, id, eventID uuid.UUID) (Printer, error) {
	return scanPrinter(r.pool.QueryRow(ctx, `
		SELECT `+printerColumns+` FROM printers WHERE id = $1 AND event_id = $2
	`, id, eventID))
}

func (r *Repository) FindManyByEventID(ctx context.Context, eventID uuid.UUID) ([]Printer, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+printerColumns+` FROM printers WHERE event_id = $1 ORDER BY created_at ASC
	`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]Printer, 0)
	for rows.Next() {
		var p Printer
		if err := rows.Scan(&p.ID, &p.EventID, &p.Name, &p.Slug, &p.Path, &p.Description, &p.Type, &p.Status, &p.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

// FindFirstConnectedByEventID returns the oldest connected printer of an
// event, used by the print-job dispatcher.
func (r *Repository) FindFirstConnectedByEventID(ctx context.Context, eventID uuid.UUID) (Printer, error) {
	return scanPrinter(r.pool.QueryRow(ctx, `
		SELECT `+printerColumns+` FROM printers
		WHERE event_id = $1 AND status IN ('connected', 'printing')
		ORDER BY created_at ASC
		LIMIT 1
	`, eventID))
}

func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.Status) (Printer, error) {
	return scanPrinter(r.pool.QueryRow(ctx, `
		UPDATE printers SET status = $2 WHERE id = $1
		RETURNING `+printerColumns,
		id, status,
	))
}
