package repository

import (
	"context"
	"time"

	"couple-backend/internal/apperrors"
	"couple-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EventRepository handles database operations for calendar events
type EventRepository struct {
	db *pgxpool.Pool
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{db: db}
}

const eventColumns = `id, couple_id, title, description, start_at, end_at, created_by, created_at`

// Create creates a new event
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	query := `
		INSERT INTO events (id, couple_id, title, description, start_at, end_at, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.Exec(ctx, query,
		event.ID, event.CoupleID, event.Title, event.Description,
		event.StartAt, event.EndAt, event.CreatedBy, event.CreatedAt,
	)
	if err != nil {
		return apperrors.WrapInternal(err)
	}
	return nil
}

// ListByCouple retrieves all events for a couple ordered by start time.
func (r *EventRepository) ListByCouple(ctx context.Context, coupleID string) ([]*models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE couple_id = $1 ORDER BY start_at`
	rows, err := r.db.Query(ctx, query, coupleID)
	if err != nil {
		return nil, apperrors.WrapInternal(err)
	}
	defer rows.Close()

	events := []*models.Event{}
	for rows.Next() {
		var e models.Event
		err := rows.Scan(&e.ID, &e.CoupleID, &e.Title, &e.Description, &e.StartAt, &e.EndAt, &e.CreatedBy, &e.CreatedAt)
		if err != nil {
			return nil, apperrors.WrapInternal(err)
		}
		events = append(events, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.WrapInternal(err)
	}
	return events, nil
}

// Update edits an event scoped to a couple; a foreign event reads as missing.
func (r *EventRepository) Update(ctx context.Context, id, coupleID string, title, description *string, startAt, endAt *time.Time) (*models.Event, error) {
	query := `
		UPDATE events
		SET title       = COALESCE($3, title),
		    description = COALESCE($4, description),
		    start_at    = COALESCE($5, start_at),
		    end_at      = COALESCE($6, end_at)
		WHERE id = $1 AND couple_id = $2
		RETURNING ` + eventColumns
	var e models.Event
	err := r.db.QueryRow(ctx, query, id, coupleID, title, description, startAt, endAt).Scan(
		&e.ID, &e.CoupleID, &e.Title, &e.Description, &e.StartAt, &e.EndAt, &e.CreatedBy, &e.CreatedAt,
	)
	if err != nil {
		return nil, notFoundOrInternal(err, "event not found")
	}
	return &e, nil
}

// Delete removes an event scoped to a couple.
func (r *EventRepository) Delete(ctx context.Context, id, coupleID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM events WHERE id = $1 AND couple_id = $2`, id, coupleID)
	if err != nil {
		return apperrors.WrapInternal(err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFound("event not found")
	}
	return nil
}
