package memory

import (
	"context"
	"strings"

	"couple-backend/internal/apperrors"
	"couple-backend/internal/models"
	"couple-backend/internal/repository"
)

// AccountStore is the in-memory account store.
type AccountStore struct {
	s *Store
}

func copyAccount(a *models.Account) *models.Account {
	c := *a
	return &c
}

// Create persists a new account. Emails are stored lowercase.
func (r *AccountStore) Create(ctx context.Context, account *models.Account) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	email := strings.ToLower(account.Email)
	for _, a := range r.s.accounts {
		if a.Email == email {
			return apperrors.NewConflict("email already registered")
		}
		if a.InviteCode == account.InviteCode {
			return apperrors.NewConflict("invite code collision")
		}
	}

	stored := copyAccount(account)
	stored.Email = email
	r.s.accounts[stored.ID] = stored
	return nil
}

// GetByID retrieves an account by ID.
func (r *AccountStore) GetByID(ctx context.Context, id string) (*models.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.accounts[id]
	if !ok {
		return nil, apperrors.NewNotFound("account not found")
	}
	return copyAccount(a), nil
}

// GetByEmail retrieves an account by email, case-insensitively.
func (r *AccountStore) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	email = strings.ToLower(email)
	for _, a := range r.s.accounts {
		if a.Email == email {
			return copyAccount(a), nil
		}
	}
	return nil, apperrors.NewNotFound("account not found")
}

// GetByInviteCode retrieves an account by its invite code.
func (r *AccountStore) GetByInviteCode(ctx context.Context, code string) (*models.Account, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, a := range r.s.accounts {
		if a.InviteCode == code {
			return copyAccount(a), nil
		}
	}
	return nil, apperrors.NewNotFound("account not found")
}

// InviteCodeExists checks if an invite code is already taken.
func (r *AccountStore) InviteCodeExists(ctx context.Context, code string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, a := range r.s.accounts {
		if a.InviteCode == code {
			return true, nil
		}
	}
	return false, nil
}

// CoupleStore is the in-memory couple store.
type CoupleStore struct {
	s *Store
}

// CreateWithMembers inserts the couple and claims both accounts atomically
// under the store lock, mirroring the pgx repository's transactional
// conditional update.
func (r *CoupleStore) CreateWithMembers(ctx context.Context, couple *models.Couple) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, accountID := range []string{couple.User1ID, couple.User2ID} {
		a, ok := r.s.accounts[accountID]
		if !ok || a.CoupleID != nil {
			return apperrors.NewConflict("already paired")
		}
	}

	c := *couple
	r.s.couples[c.ID] = &c
	for _, accountID := range []string{couple.User1ID, couple.User2ID} {
		id := c.ID
		r.s.accounts[accountID].CoupleID = &id
	}
	return nil
}

// GetByID retrieves a couple by ID.
func (r *CoupleStore) GetByID(ctx context.Context, id string) (*models.Couple, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.couples[id]
	if !ok {
		return nil, apperrors.NewNotFound("couple not found")
	}
	cp := *c
	return &cp, nil
}

// Update edits the couple's display fields.
func (r *CoupleStore) Update(ctx context.Context, id string, params repository.UpdateCoupleParams) (*models.Couple, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.couples[id]
	if !ok {
		return nil, apperrors.NewNotFound("couple not found")
	}
	if params.Title != nil {
		c.Title = params.Title
	}
	if params.StartDate != nil {
		c.StartDate = *params.StartDate
	}
	if params.CoverImageURL != nil {
		c.CoverImageURL = params.CoverImageURL
	}
	cp := *c
	return &cp, nil
}
