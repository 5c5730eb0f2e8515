package repository

import (
	"context"
	"time"

	"couple-backend/internal/apperrors"
	"couple-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// MessageRepository handles database operations for chat and mood messages
type MessageRepository struct {
	db *pgxpool.Pool
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(db *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create creates a new message
func (r *MessageRepository) Create(ctx context.Context, msg *models.Message) error {
	query := `
		INSERT INTO messages (id, couple_id, sender_id, body, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.Exec(ctx, query, msg.ID, msg.CoupleID, msg.SenderID, msg.Body, msg.CreatedAt)
	if err != nil {
		return apperrors.WrapInternal(err)
	}
	return nil
}

// ListByCouple retrieves messages for a couple with pagination, newest first.
func (r *MessageRepository) ListByCouple(ctx context.Context, coupleID string, limit, offset int) ([]*models.Message, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM messages WHERE couple_id = $1`, coupleID).Scan(&total); err != nil {
		return nil, 0, apperrors.WrapInternal(err)
	}

	query := `
		SELECT id, couple_id, sender_id, body, read_at, created_at
		FROM messages
		WHERE couple_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, coupleID, limit, offset)
	if err != nil {
		return nil, 0, apperrors.WrapInternal(err)
	}
	defer rows.Close()

	messages := []*models.Message{}
	for rows.Next() {
		var m models.Message
		err := rows.Scan(&m.ID, &m.CoupleID, &m.SenderID, &m.Body, &m.ReadAt, &m.CreatedAt)
		if err != nil {
			return nil, 0, apperrors.WrapInternal(err)
		}
		messages = append(messages, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.WrapInternal(err)
	}
	return messages, total, nil
}

// MarkRead marks every unread message not sent by readerID as read. Already
// read messages are untouched, so the call is idempotent.
func (r *MessageRepository) MarkRead(ctx context.Context, coupleID, readerID string, at time.Time) (int64, error) {
	query := `
		UPDATE messages
		SET read_at = $3
		WHERE couple_id = $1 AND sender_id <> $2 AND read_at IS NULL
	`
	tag, err := r.db.Exec(ctx, query, coupleID, readerID, at)
	if err != nil {
		return 0, apperrors.WrapInternal(err)
	}
	return tag.RowsAffected(), nil
}

// CreateMood creates a new mood message
func (r *MessageRepository) CreateMood(ctx context.Context, mood *models.MoodMessage) error {
	query := `
		INSERT INTO mood_messages (id, couple_id, sender_id, mood, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.Exec(ctx, query, mood.ID, mood.CoupleID, mood.SenderID, mood.Mood, mood.Note, mood.CreatedAt)
	if err != nil {
		return apperrors.WrapInternal(err)
	}
	return nil
}

// ListMoodsByCouple retrieves the most recent mood messages for a couple.
func (r *MessageRepository) ListMoodsByCouple(ctx context.Context, coupleID string, limit int) ([]*models.MoodMessage, error) {
	query := `
		SELECT id, couple_id, sender_id, mood, note, created_at
		FROM mood_messages
		WHERE couple_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, coupleID, limit)
	if err != nil {
		return nil, apperrors.WrapInternal(err)
	}
	defer rows.Close()

	moods := []*models.MoodMessage{}
	for rows.Next() {
		var m models.MoodMessage
		err := rows.Scan(&m.ID, &m.CoupleID, &m.SenderID, &m.Mood, &m.Note, &m.CreatedAt)
		if err != nil {
			return nil, apperrors.WrapInternal(err)
		}
		moods = append(moods, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.WrapInternal(err)
	}
	return moods, nil
}
