package repository

import (
	"context"
	"errors"
	"strings"

	"couple-backend/internal/apperrors"
	"couple-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

// AccountRepository handles database operations for accounts
type AccountRepository struct {
	db *pgxpool.Pool
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{db: db}
}

const accountColumns = `id, email, password_hash, nickname, invite_code, couple_id, birth_date, profile_image_url, created_at`

func scanAccount(row pgx.Row) (*models.Account, error) {
	var a models.Account
	err := row.Scan(
		&a.ID, &a.Email, &a.PasswordHash, &a.Nickname, &a.InviteCode,
		&a.CoupleID, &a.BirthDate, &a.ProfileImageURL, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("account not found")
		}
		return nil, apperrors.WrapInternal(err)
	}
	return &a, nil
}

// Create persists a new account. Emails are stored lowercase so uniqueness is
// case-insensitive.
func (r *AccountRepository) Create(ctx context.Context, account *models.Account) error {
	query := `
		INSERT INTO accounts (id, email, password_hash, nickname, invite_code, created_at)
		VALUES ($1, lower($2), $3, $4, $5, $6)
	`
	_, err := r.db.Exec(ctx, query,
		account.ID, account.Email, account.PasswordHash,
		account.Nickname, account.InviteCode, account.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			if strings.Contains(pgErr.ConstraintName, "invite_code") {
				return apperrors.NewConflict("invite code collision")
			}
			return apperrors.NewConflict("email already registered")
		}
		return apperrors.WrapInternal(err)
	}
	return nil
}

// GetByID retrieves an account by ID
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	return scanAccount(r.db.QueryRow(ctx, query, id))
}

// GetByEmail retrieves an account by email, case-insensitively.
func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE email = lower($1)`
	return scanAccount(r.db.QueryRow(ctx, query, email))
}

// GetByInviteCode retrieves an account by its invite code.
func (r *AccountRepository) GetByInviteCode(ctx context.Context, code string) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE invite_code = $1`
	return scanAccount(r.db.QueryRow(ctx, query, code))
}

// InviteCodeExists checks if an invite code is already taken
func (r *AccountRepository) InviteCodeExists(ctx context.Context, code string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM accounts WHERE invite_code = $1)`
	var exists bool
	if err := r.db.QueryRow(ctx, query, code).Scan(&exists); err != nil {
		return false, apperrors.WrapInternal(err)
	}
	return exists, nil
}
