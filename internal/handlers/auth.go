package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"couple-backend/internal/middleware"
	"couple-backend/internal/models"
	"couple-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// AuthHandler handles registration, login and the /auth/me view.
type AuthHandler struct {
	accountService *services.AccountService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(accountService *services.AccountService) *AuthHandler {
	return &AuthHandler{
		accountService: accountService,
	}
}

// RegisterRequest represents the request body for registration
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Nickname string `json:"nickname"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse carries a session token with the account it belongs to.
type AuthResponse struct {
	Token   string          `json:"token"`
	Account *models.Account `json:"account"`
}

// MeResponse is the authenticated account with its pairing context.
type MeResponse struct {
	Account *models.Account       `json:"account"`
	Couple  *models.Couple        `json:"couple,omitempty"`
	Partner *models.PublicAccount `json:"partner,omitempty"`
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondValidation(w, r, "invalid request body")
		return
	}

	account, token, err := h.accountService.Register(r.Context(), req.Email, req.Password, req.Nickname)
	if err != nil {
		respondError(w, r, err)
		return
	}

	log.Info().
		Str("account_id", account.ID).
		Str("invite_code", account.InviteCode).
		Msg("Account registered")

	setTokenCookie(w, token)
	respondJSON(w, http.StatusCreated, AuthResponse{Token: token, Account: account})
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondValidation(w, r, "invalid request body")
		return
	}

	account, token, err := h.accountService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, r, err)
		return
	}

	log.Info().Str("account_id", account.ID).Msg("Account logged in")

	setTokenCookie(w, token)
	respondJSON(w, http.StatusOK, AuthResponse{Token: token, Account: account})
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	accountID := middleware.GetAccountID(r.Context())

	account, couple, partner, err := h.accountService.GetMe(r.Context(), accountID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, MeResponse{
		Account: account,
		Couple:  couple,
		Partner: partner,
	})
}

func setTokenCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().AddDate(0, 0, 30),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
