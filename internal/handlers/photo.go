package handlers

import (
	"encoding/json"
	"net/http"

	"couple-backend/internal/middleware"
	"couple-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// PhotoHandler handles photo-related HTTP requests
type PhotoHandler struct {
	photoService *services.PhotoService
}

// NewPhotoHandler creates a new photo handler
func NewPhotoHandler(photoService *services.PhotoService) *PhotoHandler {
	return &PhotoHandler{
		photoService: photoService,
	}
}

// UploadPhotoRequest represents the request body for preparing an upload
type UploadPhotoRequest struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
}

// List handles GET /photos
func (h *PhotoHandler) List(w http.ResponseWriter, r *http.Request) {
	accountID := middleware.GetAccountID(r.Context())
	limit, offset := pagination(r)

	photos, total, err := h.photoService.List(r.Context(), accountID, limit, offset)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"photos": photos,
		"total":  total,
	})
}

// Upload handles POST /photos/upload
func (h *PhotoHandler) Upload(w http.ResponseWriter, r *http.Request) {
	accountID := middleware.GetAccountID(r.Context())

	var req UploadPhotoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondValidation(w, r, "invalid request body")
		return
	}

	response, err := h.photoService.PrepareUpload(r.Context(), accountID, req.Filename, req.ContentType)
	if err != nil {
		respondError(w, r, err)
		return
	}

	log.Info().
		Str("account_id", accountID).
		Str("photo_id", response.PhotoID).
		Str("filename", req.Filename).
		Msg("Pre-signed URL generated")

	respondJSON(w, http.StatusCreated, response)
}

// Delete handles DELETE /photos/{photo_id}
func (h *PhotoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	accountID := middleware.GetAccountID(r.Context())
	photoID := chi.URLParam(r, "photo_id")

	if err := h.photoService.Delete(r.Context(), accountID, photoID); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
