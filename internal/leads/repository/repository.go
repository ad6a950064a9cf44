// Package repository provides pgx-backed persistence for leads.
package repository

import (
	"context"
	"errors"
	"time"

	"leadcapture_backend/internal/leads/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound      = errors.New("lead not found")
	ErrDuplicateLead = errors.New("lead already registered for event")
)

// uniqueViolation is the Postgres error code for unique constraint violations.
const uniqueViolation = "23505"

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

type Lead struct {
	ID                     uuid.UUID
	EventID                uuid.UUID
	Name                   string
	Phone                  string
	Email                  string
	IsStudent              bool
	IntendsToStudyNextYear bool
	TechnicalInterest      domain.TechnicalInterest
	SegmentInterest        domain.SegmentInterest
	Origin                 domain.Origin
	CreatedAt              time.Time
}

type CreateLeadParams struct {
	EventID                uuid.UUID
	Name                   string
	Phone                  string
	Email                  string
	IsStudent              bool
	IntendsToStudyNextYear bool
	TechnicalInterest      domain.TechnicalInterest
	SegmentInterest        domain.SegmentInterest
	Origin                 domain.Origin
}

const leadColumns = `id, event_id, name, phone, email, is_student, intends_to_study_next_year, technical_interest, segment_interest, origin, created_at`

func scanLead(row pgx.Row) (Lead, error) {
	var l Lead
	err := row.Scan(
		&l.ID, &l.EventID, &l.Name, &l.Phone, &l.Email,
		&l.IsStudent, &l.IntendsToStudyNextYear,
		&l.TechnicalInterest, &l.SegmentInterest, &l.Origin,
		&l.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Lead{}, ErrNotFound
	}
	if err != nil {
		return Lead{}, err
	}
	return l, nil
}

// Create inserts a new lead. The unique index on (email, event_id) closes
// the check-then-create race: a concurrent duplicate surfaces as
// ErrDuplicateLead.
func (r *Repository) Create(ctx context.Context, params CreateLeadParams) (Lead, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO leads (event_id, name, phone, email, is_student, intends_to_study_next_year, technical_interest, segment_interest, origin)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+leadColumns,
		params.EventID, params.Name, params.Phone, params.Email,
		params.IsStudent, params.IntendsToStudyNextYear,
		params.TechnicalInterest, params.SegmentInterest, params.Origin,
	)

	lead, err := scanLead(row)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return Lead{}, ErrDuplicateLead
	}
	return lead, err
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (Lead, error) {
	return scanLead(r.pool.QueryRow(ctx, `
		SELECT `+leadColumns+` FROM leads WHERE id = $1
	`, id))
}

func (r *Repository) FindByEmailAndEventID(ctx context.Context, email string, eventID uuid.UUID) (Lead, error) {
	return scanLead(r.pool.QueryRow(ctx, `
		SELECT `+leadColumns+` FROM leads WHERE email = $1 AND event_id = $2
	`, email, eventID))
}

func (r *Repository) FindManyByEventID(ctx context.Context, eventID uuid.UUID) ([]Lead, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+leadColumns+` FROM leads WHERE event_id = $1 ORDER BY created_at ASC
	`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]Lead, 0)
	for rows.Next() {
		var l Lead
		if err := rows.Scan(
			&l.ID, &l.EventID, &l.Name, &l.Phone, &l.Email,
			&l.IsStudent, &l.IntendsToStudyNextYear,
			&l.TechnicalInterest, &l.SegmentInterest, &l.Origin,
			&l.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, l)
	}
	return items, rows.Err()
}
