package services

import (
	"context"
	"strings"
	"time"

	"couple-backend/internal/apperrors"
	"couple-backend/internal/models"
	"couple-backend/internal/repository"

	"github.com/google/uuid"
)

// CoupleService handles invite-code pairing and couple settings.
type CoupleService struct {
	couples  CoupleStore
	accounts AccountStore
}

// NewCoupleService creates a new couple service
func NewCoupleService(couples CoupleStore, accounts AccountStore) *CoupleService {
	return &CoupleService{
		couples:  couples,
		accounts: accounts,
	}
}

// Connect pairs the requester with the holder of inviteCode. Pairing is
// terminal: the conditional writes inside CreateWithMembers guarantee that
// of two racing connects for the same account only one succeeds.
func (s *CoupleService) Connect(ctx context.Context, requesterID, inviteCode string, startDate *time.Time) (*models.Couple, *models.PublicAccount, error) {
	requester, err := s.accounts.GetByID(ctx, requesterID)
	if err != nil {
		return nil, nil, err
	}
	if requester.CoupleID != nil {
		return nil, nil, apperrors.NewConflict("already paired")
	}

	code := strings.ToUpper(strings.TrimSpace(inviteCode))
	if code == "" {
		return nil, nil, apperrors.NewValidation("invite code is required")
	}

	partner, err := s.accounts.GetByInviteCode(ctx, code)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, nil, apperrors.NewValidation("invalid invite code")
		}
		return nil, nil, err
	}

	if partner.ID == requester.ID {
		return nil, nil, apperrors.NewValidation("cannot pair with yourself")
	}
	if partner.CoupleID != nil {
		return nil, nil, apperrors.NewConflict("partner is already paired")
	}

	start := time.Now()
	if startDate != nil {
		start = *startDate
	}

	couple := &models.Couple{
		ID:        uuid.New().String(),
		User1ID:   requester.ID,
		User2ID:   partner.ID,
		StartDate: start,
		CreatedAt: time.Now(),
	}
	if err := s.couples.CreateWithMembers(ctx, couple); err != nil {
		return nil, nil, err
	}

	return couple, partner.Public(), nil
}

// Update edits the couple's display fields for the requester's couple.
func (s *CoupleService) Update(ctx context.Context, requesterID string, params repository.UpdateCoupleParams) (*models.Couple, error) {
	account, err := s.accounts.GetByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	if account.CoupleID == nil {
		return nil, apperrors.NewNotFound("couple not found")
	}
	return s.couples.Update(ctx, *account.CoupleID, params)
}

// GetForAccount returns the requester's couple.
func (s *CoupleService) GetForAccount(ctx context.Context, accountID string) (*models.Couple, error) {
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.CoupleID == nil {
		return nil, apperrors.NewNotFound("couple not found")
	}
	return s.couples.GetByID(ctx, *account.CoupleID)
}
