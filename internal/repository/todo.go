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

// notFoundOrInternal maps a missing row to the given not-found message.
func notFoundOrInternal(err error, msg string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound(msg)
	}
	return apperrors.WrapInternal(err)
}

// TodoRepository handles database operations for todos
type TodoRepository struct {
	db *pgxpool.Pool
}

// NewTodoRepository creates a new todo repository
func NewTodoRepository(db *pgxpool.Pool) *TodoRepository {
	return &TodoRepository{db: db}
}

const todoColumns = `id, couple_id, title, done, due_date, created_by, created_at`

// Create creates a new todo
func (r *TodoRepository) Create(ctx context.Context, todo *models.Todo) error {
	query := `
		INSERT INTO todos (id, couple_id, title, done, due_date, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(ctx, query,
		todo.ID, todo.CoupleID, todo.Title, todo.Done,
		todo.DueDate, todo.CreatedBy, todo.CreatedAt,
	)
	if err != nil {
		return apperrors.WrapInternal(err)
	}
	return nil
}

// ListByCouple retrieves all todos for a couple, newest first.
func (r *TodoRepository) ListByCouple(ctx context.Context, coupleID string) ([]*models.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos WHERE couple_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, coupleID)
	if err != nil {
		return nil, apperrors.WrapInternal(err)
	}
	defer rows.Close()

	todos := []*models.Todo{}
	for rows.Next() {
		var t models.Todo
		err := rows.Scan(&t.ID, &t.CoupleID, &t.Title, &t.Done, &t.DueDate, &t.CreatedBy, &t.CreatedAt)
		if err != nil {
			return nil, apperrors.WrapInternal(err)
		}
		todos = append(todos, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.WrapInternal(err)
	}
	return todos, nil
}

// Update edits a todo. The couple filter makes a foreign couple's todo
// indistinguishable from a missing one.
func (r *TodoRepository) Update(ctx context.Context, id, coupleID string, title *string, done *bool, dueDate *time.Time) (*models.Todo, error) {
	query := `
		UPDATE todos
		SET title    = COALESCE($3, title),
		    done     = COALESCE($4, done),
		    due_date = COALESCE($5, due_date)
		WHERE id = $1 AND couple_id = $2
		RETURNING ` + todoColumns
	var t models.Todo
	err := r.db.QueryRow(ctx, query, id, coupleID, title, done, dueDate).Scan(
		&t.ID, &t.CoupleID, &t.Title, &t.Done, &t.DueDate, &t.CreatedBy, &t.CreatedAt,
	)
	if err != nil {
		return nil, notFoundOrInternal(err, "todo not found")
	}
	return &t, nil
}

// Delete removes a todo scoped to a couple.
func (r *TodoRepository) Delete(ctx context.Context, id, coupleID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM todos WHERE id = $1 AND couple_id = $2`, id, coupleID)
	if err != nil {
		return apperrors.WrapInternal(err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFound("todo not found")
	}
	return nil
}
