package repository

import (
	"context"

	"couple-backend/internal/apperrors"
	"couple-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// QuestionRepository handles database operations for daily-question answers
type QuestionRepository struct {
	db *pgxpool.Pool
}

// NewQuestionRepository creates a new question repository
func NewQuestionRepository(db *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// Upsert saves an account's answer; answering the same question again
// replaces the previous answer.
func (r *QuestionRepository) Upsert(ctx context.Context, answer *models.QuestionAnswer) error {
	query := `
		INSERT INTO question_answers (id, couple_id, account_id, question_id, answer, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (couple_id, question_id, account_id)
		DO UPDATE SET answer = EXCLUDED.answer
	`
	_, err := r.db.Exec(ctx, query,
		answer.ID, answer.CoupleID, answer.AccountID, answer.QuestionID, answer.Answer, answer.CreatedAt,
	)
	if err != nil {
		return apperrors.WrapInternal(err)
	}
	return nil
}

// ListForQuestion retrieves a couple's answers to one question.
func (r *QuestionRepository) ListForQuestion(ctx context.Context, coupleID string, questionID int) ([]*models.QuestionAnswer, error) {
	query := `
		SELECT id, couple_id, account_id, question_id, answer, created_at
		FROM question_answers
		WHERE couple_id = $1 AND question_id = $2
		ORDER BY created_at
	`
	rows, err := r.db.Query(ctx, query, coupleID, questionID)
	if err != nil {
		return nil, apperrors.WrapInternal(err)
	}
	defer rows.Close()

	answers := []*models.QuestionAnswer{}
	for rows.Next() {
		var a models.QuestionAnswer
		err := rows.Scan(&a.ID, &a.CoupleID, &a.AccountID, &a.QuestionID, &a.Answer, &a.CreatedAt)
		if err != nil {
			return nil, apperrors.WrapInternal(err)
		}
		answers = append(answers, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.WrapInternal(err)
	}
	return answers, nil
}
