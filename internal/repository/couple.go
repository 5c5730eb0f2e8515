package repository

import (
	"context"
	"errors"
	"time"

	"couple-backend/internal/apperrors"
	"couple-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CoupleRepository handles database operations for couples
type CoupleRepository struct {
	db *pgxpool.Pool
}

// NewCoupleRepository creates a new couple repository
func NewCoupleRepository(db *pgxpool.Pool) *CoupleRepository {
	return &CoupleRepository{db: db}
}

const coupleColumns = `id, user1_id, user2_id, start_date, title, cover_image_url, created_at`

func scanCouple(row pgx.Row) (*models.Couple, error) {
	var c models.Couple
	err := row.Scan(
		&c.ID, &c.User1ID, &c.User2ID, &c.StartDate,
		&c.Title, &c.CoverImageURL, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("couple not found")
		}
		return nil, apperrors.WrapInternal(err)
	}
	return &c, nil
}

// CreateWithMembers inserts the couple and claims both accounts in a single
// transaction. Each claim is conditional on couple_id still being unset, so a
// concurrent connect using either account loses the race and the whole
// transaction rolls back with a conflict.
func (r *CoupleRepository) CreateWithMembers(ctx context.Context, couple *models.Couple) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return apperrors.WrapInternal(err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO couples (id, user1_id, user2_id, start_date, title, cover_image_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = tx.Exec(ctx, query,
		couple.ID, couple.User1ID, couple.User2ID, couple.StartDate,
		couple.Title, couple.CoverImageURL, couple.CreatedAt,
	)
	if err != nil {
		return apperrors.WrapInternal(err)
	}

	for _, accountID := range []string{couple.User1ID, couple.User2ID} {
		tag, err := tx.Exec(ctx,
			`UPDATE accounts SET couple_id = $1 WHERE id = $2 AND couple_id IS NULL`,
			couple.ID, accountID,
		)
		if err != nil {
			return apperrors.WrapInternal(err)
		}
		if tag.RowsAffected() != 1 {
			return apperrors.NewConflict("already paired")
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return apperrors.WrapInternal(err)
	}
	return nil
}

// GetByID retrieves a couple by ID
func (r *CoupleRepository) GetByID(ctx context.Context, id string) (*models.Couple, error) {
	query := `SELECT ` + coupleColumns + ` FROM couples WHERE id = $1`
	return scanCouple(r.db.QueryRow(ctx, query, id))
}

// UpdateCoupleParams carries the editable couple fields. Nil means keep the
// stored value. Membership is not editable.
type UpdateCoupleParams struct {
	Title         *string
	StartDate     *time.Time
	CoverImageURL *string
}

// Update edits the couple's display fields and returns the updated row.
func (r *CoupleRepository) Update(ctx context.Context, id string, params UpdateCoupleParams) (*models.Couple, error) {
	query := `
		UPDATE couples
		SET title           = COALESCE($2, title),
		    start_date      = COALESCE($3, start_date),
		    cover_image_url = COALESCE($4, cover_image_url)
		WHERE id = $1
		RETURNING ` + coupleColumns
	return scanCouple(r.db.QueryRow(ctx, query, id, params.Title, params.StartDate, params.CoverImageURL))
}
