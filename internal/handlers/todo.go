package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"couple-backend/internal/middleware"
	"couple-backend/internal/services"

	"github.com/go-chi/chi/v5"
)

// TodoHandler handles todo-related HTTP requests
type TodoHandler struct {
	todoService *services.TodoService
}

// NewTodoHandler creates a new todo handler
func NewTodoHandler(todoService *services.TodoService) *TodoHandler {
	return &TodoHandler{
		todoService: todoService,
	}
}

// CreateTodoRequest represents the request body for creating a todo
type CreateTodoRequest struct {
	Title   string     `json:"title"`
	DueDate *time.Time `json:"dueDate,omitempty"`
}

// UpdateTodoRequest represents the request body for editing a todo
type UpdateTodoRequest struct {
	Title   *string    `json:"title,omitempty"`
	Done    *bool      `json:"done,omitempty"`
	DueDate *time.Time `json:"dueDate,omitempty"`
}

// List handles GET /todos
func (h *TodoHandler) List(w http.ResponseWriter, r *http.Request) {
	accountID := middleware.GetAccountID(r.Context())

	todos, err := h.todoService.List(r.Context(), accountID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"todos": todos})
}

// Create handles POST /todos
func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request) {
	accountID := middleware.GetAccountID(r.Context())

	var req CreateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondValidation(w, r, "invalid request body")
		return
	}

	todo, err := h.todoService.Create(r.Context(), accountID, req.Title, req.DueDate)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, todo)
}

// Update handles PUT /todos/{todo_id}
func (h *TodoHandler) Update(w http.ResponseWriter, r *http.Request) {
	accountID := middleware.GetAccountID(r.Context())
	todoID := chi.URLParam(r, "todo_id")

	var req UpdateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondValidation(w, r, "invalid request body")
		return
	}

	todo, err := h.todoService.Update(r.Context(), accountID, todoID, req.Title, req.Done, req.DueDate)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, todo)
}

// Delete handles DELETE /todos/{todo_id}
func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	accountID := middleware.GetAccountID(r.Context())
	todoID := chi.URLParam(r, "todo_id")

	if err := h.todoService.Delete(r.Context(), accountID, todoID); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
