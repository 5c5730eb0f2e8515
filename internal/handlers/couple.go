package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"couple-backend/internal/middleware"
	"couple-backend/internal/models"
	"couple-backend/internal/repository"
	"couple-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// CoupleHandler handles pairing and couple settings.
type CoupleHandler struct {
	coupleService *services.CoupleService
	wsHub         *services.WSHub
}

// NewCoupleHandler creates a new couple handler
func NewCoupleHandler(coupleService *services.CoupleService, wsHub *services.WSHub) *CoupleHandler {
	return &CoupleHandler{
		coupleService: coupleService,
		wsHub:         wsHub,
	}
}

// ConnectRequest represents the request body for pairing
type ConnectRequest struct {
	InviteCode string     `json:"inviteCode"`
	StartDate  *time.Time `json:"startDate,omitempty"`
}

// ConnectResponse carries the new couple and the partner's public view.
type ConnectResponse struct {
	Couple  *models.Couple        `json:"couple"`
	Partner *models.PublicAccount `json:"partner"`
}

// UpdateCoupleRequest represents the request body for editing the couple
type UpdateCoupleRequest struct {
	Title         *string    `json:"title,omitempty"`
	StartDate     *time.Time `json:"startDate,omitempty"`
	CoverImageURL *string    `json:"coverImageUrl,omitempty"`
}

// Connect handles POST /couple/connect
func (h *CoupleHandler) Connect(w http.ResponseWriter, r *http.Request) {
	accountID := middleware.GetAccountID(r.Context())

	var req ConnectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondValidation(w, r, "invalid request body")
		return
	}

	couple, partner, err := h.coupleService.Connect(r.Context(), accountID, req.InviteCode, req.StartDate)
	if err != nil {
		respondError(w, r, err)
		return
	}

	log.Info().
		Str("account_id", accountID).
		Str("partner_id", partner.ID).
		Str("couple_id", couple.ID).
		Msg("Couple connected")

	h.wsHub.NotifyCoupleConnected(partner.ID, couple)

	respondJSON(w, http.StatusCreated, ConnectResponse{Couple: couple, Partner: partner})
}

// Update handles PUT /couple
func (h *CoupleHandler) Update(w http.ResponseWriter, r *http.Request) {
	accountID := middleware.GetAccountID(r.Context())

	var req UpdateCoupleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondValidation(w, r, "invalid request body")
		return
	}

	couple, err := h.coupleService.Update(r.Context(), accountID, repository.UpdateCoupleParams{
		Title:         req.Title,
		StartDate:     req.StartDate,
		CoverImageURL: req.CoverImageURL,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"couple": couple})
}
