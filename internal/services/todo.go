package services

import (
	"context"
	"strings"
	"time"

	"couple-backend/internal/apperrors"
	"couple-backend/internal/models"

	"github.com/google/uuid"
)

// TodoService handles couple-scoped todo items.
type TodoService struct {
	todos    TodoStore
	accounts AccountStore
}

// NewTodoService creates a new todo service
func NewTodoService(todos TodoStore, accounts AccountStore) *TodoService {
	return &TodoService{
		todos:    todos,
		accounts: accounts,
	}
}

// List returns all todos of the requester's couple.
func (s *TodoService) List(ctx context.Context, accountID string) ([]*models.Todo, error) {
	coupleID, err := requireCouple(ctx, s.accounts, accountID)
	if err != nil {
		return nil, err
	}
	return s.todos.ListByCouple(ctx, coupleID)
}

// Create adds a todo to the requester's couple.
func (s *TodoService) Create(ctx context.Context, accountID, title string, dueDate *time.Time) (*models.Todo, error) {
	coupleID, err := requireCouple(ctx, s.accounts, accountID)
	if err != nil {
		return nil, err
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperrors.NewValidation("title is required")
	}

	todo := &models.Todo{
		ID:        uuid.New().String(),
		CoupleID:  coupleID,
		Title:     title,
		DueDate:   dueDate,
		CreatedBy: accountID,
		CreatedAt: time.Now(),
	}
	if err := s.todos.Create(ctx, todo); err != nil {
		return nil, err
	}
	return todo, nil
}

// Update edits a todo; a todo of another couple reads as not found.
func (s *TodoService) Update(ctx context.Context, accountID, todoID string, title *string, done *bool, dueDate *time.Time) (*models.Todo, error) {
	coupleID, err := requireCouple(ctx, s.accounts, accountID)
	if err != nil {
		return nil, err
	}
	if title != nil && strings.TrimSpace(*title) == "" {
		return nil, apperrors.NewValidation("title cannot be empty")
	}
	return s.todos.Update(ctx, todoID, coupleID, title, done, dueDate)
}

// Delete removes a todo; a todo of another couple reads as not found.
func (s *TodoService) Delete(ctx context.Context, accountID, todoID string) error {
	coupleID, err := requireCouple(ctx, s.accounts, accountID)
	if err != nil {
		return err
	}
	return s.todos.Delete(ctx, todoID, coupleID)
}
