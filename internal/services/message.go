package services

import (
	"context"
	"strings"
	"time"

	"couple-backend/internal/apperrors"
	"couple-backend/internal/models"

	"github.com/google/uuid"
)

const defaultMessageLimit = 50

// moods a mood message may carry.
var validMoods = map[string]bool{
	"happy":    true,
	"loved":    true,
	"excited":  true,
	"grateful": true,
	"tired":    true,
	"anxious":  true,
	"sad":      true,
	"angry":    true,
}

// MessageService handles couple-scoped chat and mood messages.
type MessageService struct {
	messages MessageStore
	accounts AccountStore
	couples  CoupleStore
	hub      *WSHub
}

// NewMessageService creates a new message service
func NewMessageService(messages MessageStore, accounts AccountStore, couples CoupleStore, hub *WSHub) *MessageService {
	return &MessageService{
		messages: messages,
		accounts: accounts,
		couples:  couples,
		hub:      hub,
	}
}

// List returns the couple's messages, newest first. Listing marks every
// unread message sent by the partner as read before returning, so the
// returned page reflects the new read state.
func (s *MessageService) List(ctx context.Context, accountID string, limit, offset int) ([]*models.Message, int, error) {
	coupleID, err := requireCouple(ctx, s.accounts, accountID)
	if err != nil {
		return nil, 0, err
	}

	if limit <= 0 {
		limit = defaultMessageLimit
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	if _, err := s.messages.MarkRead(ctx, coupleID, accountID, time.Now()); err != nil {
		return nil, 0, err
	}
	return s.messages.ListByCouple(ctx, coupleID, limit, offset)
}

// Send stores a message and pushes it to the partner if online.
func (s *MessageService) Send(ctx context.Context, accountID, body string) (*models.Message, error) {
	coupleID, err := requireCouple(ctx, s.accounts, accountID)
	if err != nil {
		return nil, err
	}

	body = strings.TrimSpace(body)
	if body == "" {
		return nil, apperrors.NewValidation("body is required")
	}

	msg := &models.Message{
		ID:        uuid.New().String(),
		CoupleID:  coupleID,
		SenderID:  accountID,
		Body:      body,
		CreatedAt: time.Now(),
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, err
	}

	s.notifyPartner(ctx, coupleID, accountID, "new_message", msg)
	return msg, nil
}

// SendMood stores a mood message and pushes it to the partner if online.
func (s *MessageService) SendMood(ctx context.Context, accountID, mood string, note *string) (*models.MoodMessage, error) {
	coupleID, err := requireCouple(ctx, s.accounts, accountID)
	if err != nil {
		return nil, err
	}

	mood = strings.ToLower(strings.TrimSpace(mood))
	if !validMoods[mood] {
		return nil, apperrors.NewValidation("unknown mood")
	}

	m := &models.MoodMessage{
		ID:        uuid.New().String(),
		CoupleID:  coupleID,
		SenderID:  accountID,
		Mood:      mood,
		Note:      note,
		CreatedAt: time.Now(),
	}
	if err := s.messages.CreateMood(ctx, m); err != nil {
		return nil, err
	}

	s.notifyPartner(ctx, coupleID, accountID, "new_mood", m)
	return m, nil
}

// ListMoods returns the couple's recent mood messages.
func (s *MessageService) ListMoods(ctx context.Context, accountID string) ([]*models.MoodMessage, error) {
	coupleID, err := requireCouple(ctx, s.accounts, accountID)
	if err != nil {
		return nil, err
	}
	return s.messages.ListMoodsByCouple(ctx, coupleID, defaultMessageLimit)
}

// notifyPartner is best effort; delivery failures never fail the write.
func (s *MessageService) notifyPartner(ctx context.Context, coupleID, senderID, event string, payload interface{}) {
	if s.hub == nil {
		return
	}
	couple, err := s.couples.GetByID(ctx, coupleID)
	if err != nil {
		return
	}
	partnerID := couple.PartnerID(senderID)
	if partnerID == "" || !s.hub.IsOnline(partnerID) {
		return
	}
	_ = s.hub.SendToUser(partnerID, WSMessage{Type: event, Data: payload})
}
