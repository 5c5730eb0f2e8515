package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"couple-backend/internal/apperrors"
	"couple-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	codeLength     = 6
	codeChars      = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	tokenExpDays   = 30
	minPasswordLen = 6
	bcryptCost     = 12
)

// AccountService handles registration, login and session tokens.
type AccountService struct {
	accounts  AccountStore
	couples   CoupleStore
	jwtSecret string
}

// NewAccountService creates a new account service
func NewAccountService(accounts AccountStore, couples CoupleStore, jwtSecret string) *AccountService {
	return &AccountService{
		accounts:  accounts,
		couples:   couples,
		jwtSecret: jwtSecret,
	}
}

// GenerateInviteCode generates an invite code no existing account holds.
func (s *AccountService) GenerateInviteCode(ctx context.Context) (string, error) {
	maxAttempts := 10
	for i := 0; i < maxAttempts; i++ {
		code := generateCode()
		exists, err := s.accounts.InviteCodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", apperrors.WrapInternal(fmt.Errorf("failed to generate unique invite code after %d attempts", maxAttempts))
}

// generateCode generates a random 6-character uppercase code
func generateCode() string {
	code := make([]byte, codeLength)
	for i := range code {
		n, _ := rand.Int(rand.Reader, big.NewInt(int64(len(codeChars))))
		code[i] = codeChars[n.Int64()]
	}
	return string(code)
}

// IssueToken signs a session token carrying the account id and email.
func (s *AccountService) IssueToken(accountID, email string) (string, error) {
	claims := jwt.MapClaims{
		"sub":   accountID,
		"email": email,
		"exp":   time.Now().AddDate(0, 0, tokenExpDays).Unix(),
		"iat":   time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", apperrors.WrapInternal(err)
	}
	return tokenString, nil
}

// VerifyToken checks signature and expiry and returns the token's account id
// and email. Every failure collapses to the same unauthorized error.
func (s *AccountService) VerifyToken(tokenString string) (accountID, email string, err error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return "", "", apperrors.NewAuth("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", apperrors.NewAuth("invalid token")
	}
	accountID, ok = claims["sub"].(string)
	if !ok || accountID == "" {
		return "", "", apperrors.NewAuth("invalid token")
	}
	email, _ = claims["email"].(string)
	return accountID, email, nil
}

// Register creates an account and returns it with a fresh session token.
func (s *AccountService) Register(ctx context.Context, email, password, nickname string) (*models.Account, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	nickname = strings.TrimSpace(nickname)

	if email == "" || password == "" || nickname == "" {
		return nil, "", apperrors.NewValidation("email, password and nickname are required")
	}
	if len(password) < minPasswordLen {
		return nil, "", apperrors.NewValidation("password must be at least 6 characters")
	}

	if _, err := s.accounts.GetByEmail(ctx, email); err == nil {
		return nil, "", apperrors.NewConflict("email already registered")
	} else if !apperrors.IsNotFound(err) {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, "", apperrors.WrapInternal(err)
	}

	code, err := s.GenerateInviteCode(ctx)
	if err != nil {
		return nil, "", err
	}

	account := &models.Account{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Nickname:     nickname,
		InviteCode:   code,
		CreatedAt:    time.Now(),
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, "", err
	}

	token, err := s.IssueToken(account.ID, account.Email)
	if err != nil {
		return nil, "", err
	}
	return account, token, nil
}

// Login verifies credentials and returns the account with a fresh token.
// A missing account and a wrong password are indistinguishable to the caller.
func (s *AccountService) Login(ctx context.Context, email, password string) (*models.Account, string, error) {
	if email == "" || password == "" {
		return nil, "", apperrors.NewAuth("invalid credentials")
	}

	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, "", apperrors.NewAuth("invalid credentials")
		}
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return nil, "", apperrors.NewAuth("invalid credentials")
	}

	token, err := s.IssueToken(account.ID, account.Email)
	if err != nil {
		return nil, "", err
	}
	return account, token, nil
}

// GetMe returns the account plus, when paired, the couple and the partner's
// public view.
func (s *AccountService) GetMe(ctx context.Context, accountID string) (*models.Account, *models.Couple, *models.PublicAccount, error) {
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, nil, nil, err
	}
	if account.CoupleID == nil {
		return account, nil, nil, nil
	}

	couple, err := s.couples.GetByID(ctx, *account.CoupleID)
	if err != nil {
		return nil, nil, nil, err
	}
	partner, err := s.accounts.GetByID(ctx, couple.PartnerID(account.ID))
	if err != nil {
		return nil, nil, nil, err
	}
	return account, couple, partner.Public(), nil
}
