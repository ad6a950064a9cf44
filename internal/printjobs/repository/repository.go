// Package repository provides pgx-backed persistence for ticket print jobs.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("print job not found")

// Status is the lifecycle state of a print job.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusProcessing Status = "PROCESSING"
	StatusCompleted  Status = "COMPLETED"
	StatusFailed     Status = "FAILED"
)

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

type PrintJob struct {
	ID          uuid.UUID
	EventID     uuid.UUID
	LeadID      uuid.UUID
	PrinterID   uuid.UUID
	Status      Status
	Attempts    int
	MaxAttempts int
	Error       *string
	CreatedAt   time.Time
	ProcessedAt *time.Time
	CompletedAt *time.Time
}

type CreatePrintJobParams struct {
	EventID     uuid.UUID
	LeadID      uuid.UUID
	PrinterID   uuid.UUID
	MaxAttempts int
}

const jobColumns = `id, event_id, lead_id, printer_id, status, attempts, max_attempts, error, created_at, processed_at, completed_at`

func scanJob(row pgx.Row) (PrintJob, error) {
	var j PrintJob
	err := row.Scan(
		&j.ID, &j.EventID, &j.LeadID, &j.PrinterID,
		&j.Status, &j.Attempts, &j.MaxAttempts, &j.Error,
		&j.CreatedAt, &j.ProcessedAt, &j.CompletedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return PrintJob{}, ErrNotFound
	}
	if err != nil {
		return PrintJob{}, err
	}
	return j, nil
}

func (r *Repository) Create(ctx context.Context, params CreatePrintJobParams) (PrintJob, error) {
	return scanJob(r.pool.QueryRow(ctx, `
		INSERT INTO print_jobs (event_id, lead_id, printer_id, status, max_attempts)
		VALUES ($1, $2, $3, 'PENDING', $4)
		RETURNING `+jobColumns,
		params.EventID, params.LeadID, params.PrinterID, params.MaxAttempts,
	))
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (PrintJob, error) {
	return scanJob(r.pool.QueryRow(ctx, `
		SELECT `+jobColumns+` FROM print_jobs WHERE id = $1
	`, id))
}

func (r *Repository) FindPendingByPrinterID(ctx context.Context, printerID uuid.UUID) ([]PrintJob, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+jobColumns+` FROM print_jobs
		WHERE printer_id = $1 AND status IN ('PENDING', 'PROCESSING')
		ORDER BY created_at ASC
	`, printerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]PrintJob, 0)
	for rows.Next() {
		var j PrintJob
		if err := rows.Scan(
			&j.ID, &j.EventID, &j.LeadID, &j.PrinterID,
			&j.Status, &j.Attempts, &j.MaxAttempts, &j.Error,
			&j.CreatedAt, &j.ProcessedAt, &j.CompletedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, j)
	}
	return items, rows.Err()
}

func (r *Repository) MarkProcessing(ctx context.Context, id uuid.UUID) error {
	return r.exec(ctx, `
		UPDATE print_jobs
		SET status = 'PROCESSING', attempts = attempts + 1, processed_at = now()
		WHERE id = $1
	`, id)
}

func (r *Repository) MarkCompleted(ctx context.Context, id uuid.UUID) error {
	return r.exec(ctx, `
		UPDATE print_jobs
		SET status = 'COMPLETED', completed_at = now(), error = NULL
		WHERE id = $1
	`, id)
}

func (r *Repository) MarkFailed(ctx context.Context, id uuid.UUID, jobErr string) error {
	return r.exec(ctx, `
		UPDATE print_jobs
		SET status = 'FAILED', error = $2
		WHERE id = $1
	`, id, jobErr)
}

func (r *Repository) exec(ctx context.Context, sql string, args ...any) error {
	tag, err := r.pool.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
