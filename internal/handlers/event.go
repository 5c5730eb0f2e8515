package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"couple-backend/internal/middleware"
	"couple-backend/internal/services"

	"github.com/go-chi/chi/v5"
)

// EventHandler handles calendar-event HTTP requests
type EventHandler struct {
	eventService *services.EventService
}

// NewEventHandler creates a new event handler
func NewEventHandler(eventService *services.EventService) *EventHandler {
	return &EventHandler{
		eventService: eventService,
	}
}

// CreateEventRequest represents the request body for creating an event
type CreateEventRequest struct {
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	StartAt     time.Time  `json:"startAt"`
	EndAt       *time.Time `json:"endAt,omitempty"`
}

// UpdateEventRequest represents the request body for editing an event
type UpdateEventRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	StartAt     *time.Time `json:"startAt,omitempty"`
	EndAt       *time.Time `json:"endAt,omitempty"`
}

// List handles GET /events
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	accountID := middleware.GetAccountID(r.Context())

	events, err := h.eventService.List(r.Context(), accountID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"events": events})
}

// Create handles POST /events
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	accountID := middleware.GetAccountID(r.Context())

	var req CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondValidation(w, r, "invalid request body")
		return
	}

	event, err := h.eventService.Create(r.Context(), accountID, req.Title, req.Description, req.StartAt, req.EndAt)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, event)
}

// Update handles PUT /events/{event_id}
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	accountID := middleware.GetAccountID(r.Context())
	eventID := chi.URLParam(r, "event_id")

	var req UpdateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondValidation(w, r, "invalid request body")
		return
	}

	event, err := h.eventService.Update(r.Context(), accountID, eventID, req.Title, req.Description, req.StartAt, req.EndAt)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, event)
}

// Delete handles DELETE /events/{event_id}
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	accountID := middleware.GetAccountID(r.Context())
	eventID := chi.URLParam(r, "event_id")

	if err := h.eventService.Delete(r.Context(), accountID, eventID); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
