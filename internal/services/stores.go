package services

import (
	"context"
	"time"

	"couple-backend/internal/models"
	"couple-backend/internal/repository"

	"couple-backend/internal/apperrors"
)

// Store interfaces consumed by the services. The pgx repositories satisfy
// them in production; tests use the in-memory implementations.

type AccountStore interface {
	Create(ctx context.Context, account *models.Account) error
	GetByID(ctx context.Context, id string) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	GetByInviteCode(ctx context.Context, code string) (*models.Account, error)
	InviteCodeExists(ctx context.Context, code string) (bool, error)
}

type CoupleStore interface {
	CreateWithMembers(ctx context.Context, couple *models.Couple) error
	GetByID(ctx context.Context, id string) (*models.Couple, error)
	Update(ctx context.Context, id string, params repository.UpdateCoupleParams) (*models.Couple, error)
}

type TodoStore interface {
	Create(ctx context.Context, todo *models.Todo) error
	ListByCouple(ctx context.Context, coupleID string) ([]*models.Todo, error)
	Update(ctx context.Context, id, coupleID string, title *string, done *bool, dueDate *time.Time) (*models.Todo, error)
	Delete(ctx context.Context, id, coupleID string) error
}

type EventStore interface {
	Create(ctx context.Context, event *models.Event) error
	ListByCouple(ctx context.Context, coupleID string) ([]*models.Event, error)
	Update(ctx context.Context, id, coupleID string, title, description *string, startAt, endAt *time.Time) (*models.Event, error)
	Delete(ctx context.Context, id, coupleID string) error
}

type MessageStore interface {
	Create(ctx context.Context, msg *models.Message) error
	ListByCouple(ctx context.Context, coupleID string, limit, offset int) ([]*models.Message, int, error)
	MarkRead(ctx context.Context, coupleID, readerID string, at time.Time) (int64, error)
	CreateMood(ctx context.Context, mood *models.MoodMessage) error
	ListMoodsByCouple(ctx context.Context, coupleID string, limit int) ([]*models.MoodMessage, error)
}

type PhotoStore interface {
	Create(ctx context.Context, photo *models.Photo) error
	ListByCouple(ctx context.Context, coupleID string, limit, offset int) ([]*models.Photo, int, error)
	Delete(ctx context.Context, id, coupleID string) error
}

type QuestionStore interface {
	Upsert(ctx context.Context, answer *models.QuestionAnswer) error
	ListForQuestion(ctx context.Context, coupleID string, questionID int) ([]*models.QuestionAnswer, error)
}

// requireCouple loads the account and returns its couple id, failing with
// forbidden when the account is not paired. Every scoped-resource operation
// goes through this gate.
func requireCouple(ctx context.Context, accounts AccountStore, accountID string) (string, error) {
	account, err := accounts.GetByID(ctx, accountID)
	if err != nil {
		return "", err
	}
	if account.CoupleID == nil {
		return "", apperrors.NewForbidden("not paired")
	}
	return *account.CoupleID, nil
}
