package services

import (
	"context"
	"strings"
	"time"

	"couple-backend/internal/apperrors"
	"couple-backend/internal/models"

	"github.com/google/uuid"
)

// EventService handles couple-scoped calendar events.
type EventService struct {
	events   EventStore
	accounts AccountStore
}

// NewEventService creates a new event service
func NewEventService(events EventStore, accounts AccountStore) *EventService {
	return &EventService{
		events:   events,
		accounts: accounts,
	}
}

// List returns all events of the requester's couple.
func (s *EventService) List(ctx context.Context, accountID string) ([]*models.Event, error) {
	coupleID, err := requireCouple(ctx, s.accounts, accountID)
	if err != nil {
		return nil, err
	}
	return s.events.ListByCouple(ctx, coupleID)
}

// Create adds an event to the requester's couple.
func (s *EventService) Create(ctx context.Context, accountID, title string, description *string, startAt time.Time, endAt *time.Time) (*models.Event, error) {
	coupleID, err := requireCouple(ctx, s.accounts, accountID)
	if err != nil {
		return nil, err
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperrors.NewValidation("title is required")
	}
	if startAt.IsZero() {
		return nil, apperrors.NewValidation("start_at is required")
	}
	if endAt != nil && endAt.Before(startAt) {
		return nil, apperrors.NewValidation("end_at must not be before start_at")
	}

	event := &models.Event{
		ID:          uuid.New().String(),
		CoupleID:    coupleID,
		Title:       title,
		Description: description,
		StartAt:     startAt,
		EndAt:       endAt,
		CreatedBy:   accountID,
		CreatedAt:   time.Now(),
	}
	if err := s.events.Create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// Update edits an event; an event of another couple reads as not found.
func (s *EventService) Update(ctx context.Context, accountID, eventID string, title, description *string, startAt, endAt *time.Time) (*models.Event, error) {
	coupleID, err := requireCouple(ctx, s.accounts, accountID)
	if err != nil {
		return nil, err
	}
	if title != nil && strings.TrimSpace(*title) == "" {
		return nil, apperrors.NewValidation("title cannot be empty")
	}
	return s.events.Update(ctx, eventID, coupleID, title, description, startAt, endAt)
}

// Delete removes an event; an event of another couple reads as not found.
func (s *EventService) Delete(ctx context.Context, accountID, eventID string) error {
	coupleID, err := requireCouple(ctx, s.accounts, accountID)
	if err != nil {
		return err
	}
	return s.events.Delete(ctx, eventID, coupleID)
}
