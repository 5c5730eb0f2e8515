package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"couple-backend/internal/middleware"
	"couple-backend/internal/services"
)

// MessageHandler handles chat and mood message HTTP requests
type MessageHandler struct {
	messageService *services.MessageService
}

// NewMessageHandler creates a new message handler
func NewMessageHandler(messageService *services.MessageService) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
	}
}

// SendMessageRequest represents the request body for sending a message
type SendMessageRequest struct {
	Body string `json:"body"`
}

// SendMoodRequest represents the request body for sending a mood message
type SendMoodRequest struct {
	Mood string  `json:"mood"`
	Note *string `json:"note,omitempty"`
}

// List handles GET /messages. Listing marks the partner's unread messages as
// read.
func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	accountID := middleware.GetAccountID(r.Context())
	limit, offset := pagination(r)

	messages, total, err := h.messageService.List(r.Context(), accountID, limit, offset)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"messages": messages,
		"total":    total,
	})
}

// Send handles POST /messages
func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	accountID := middleware.GetAccountID(r.Context())

	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondValidation(w, r, "invalid request body")
		return
	}

	msg, err := h.messageService.Send(r.Context(), accountID, req.Body)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, msg)
}

// ListMoods handles GET /moods
func (h *MessageHandler) ListMoods(w http.ResponseWriter, r *http.Request) {
	accountID := middleware.GetAccountID(r.Context())

	moods, err := h.messageService.ListMoods(r.Context(), accountID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"moods": moods})
}

// SendMood handles POST /moods
func (h *MessageHandler) SendMood(w http.ResponseWriter, r *http.Request) {
	accountID := middleware.GetAccountID(r.Context())

	var req SendMoodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondValidation(w, r, "invalid request body")
		return
	}

	mood, err := h.messageService.SendMood(r.Context(), accountID, req.Mood, req.Note)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, mood)
}

// pagination parses limit/offset query parameters.
func pagination(r *http.Request) (limit, offset int) {
	if s := r.URL.Query().Get("limit"); s != "" {
		if v, err := strconv.Atoi(s); err == nil {
			limit = v
		}
	}
	if s := r.URL.Query().Get("offset"); s != "" {
		if v, err := strconv.Atoi(s); err == nil {
			offset = v
		}
	}
	return limit, offset
}
