package repository

import (
	"context"

	"couple-backend/internal/apperrors"
	"couple-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PhotoRepository handles database operations for photos
type PhotoRepository struct {
	db *pgxpool.Pool
}

// NewPhotoRepository creates a new photo repository
func NewPhotoRepository(db *pgxpool.Pool) *PhotoRepository {
	return &PhotoRepository{db: db}
}

// Create creates a new photo
func (r *PhotoRepository) Create(ctx context.Context, photo *models.Photo) error {
	query := `
		INSERT INTO photos (id, couple_id, uploader_id, s3_url, taken_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.Exec(ctx, query,
		photo.ID, photo.CoupleID, photo.UploaderID, photo.S3URL, photo.TakenAt, photo.CreatedAt,
	)
	if err != nil {
		return apperrors.WrapInternal(err)
	}
	return nil
}

// ListByCouple retrieves photos for a couple with pagination, newest first.
func (r *PhotoRepository) ListByCouple(ctx context.Context, coupleID string, limit, offset int) ([]*models.Photo, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM photos WHERE couple_id = $1`, coupleID).Scan(&total); err != nil {
		return nil, 0, apperrors.WrapInternal(err)
	}

	query := `
		SELECT id, couple_id, uploader_id, s3_url, taken_at, created_at
		FROM photos
		WHERE couple_id = $1
		ORDER BY taken_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, coupleID, limit, offset)
	if err != nil {
		return nil, 0, apperrors.WrapInternal(err)
	}
	defer rows.Close()

	photos := []*models.Photo{}
	for rows.Next() {
		var p models.Photo
		err := rows.Scan(&p.ID, &p.CoupleID, &p.UploaderID, &p.S3URL, &p.TakenAt, &p.CreatedAt)
		if err != nil {
			return nil, 0, apperrors.WrapInternal(err)
		}
		photos = append(photos, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.WrapInternal(err)
	}
	return photos, total, nil
}

// Delete removes a photo scoped to a couple.
func (r *PhotoRepository) Delete(ctx context.Context, id, coupleID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM photos WHERE id = $1 AND couple_id = $2`, id, coupleID)
	if err != nil {
		return apperrors.WrapInternal(err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFound("photo not found")
	}
	return nil
}
