package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"couple-backend/internal/middleware"
	"couple-backend/internal/services"

	"github.com/go-chi/chi/v5"
)

// QuestionHandler handles daily-question HTTP requests
type QuestionHandler struct {
	questionService *services.QuestionService
}

// NewQuestionHandler creates a new question handler
func NewQuestionHandler(questionService *services.QuestionService) *QuestionHandler {
	return &QuestionHandler{
		questionService: questionService,
	}
}

// AnswerRequest represents the request body for answering a question
type AnswerRequest struct {
	Answer string `json:"answer"`
}

// Today handles GET /questions/today
func (h *QuestionHandler) Today(w http.ResponseWriter, r *http.Request) {
	accountID := middleware.GetAccountID(r.Context())

	question, err := h.questionService.Today(r.Context(), accountID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, question)
}

// Answer handles POST /questions/{question_id}/answer
func (h *QuestionHandler) Answer(w http.ResponseWriter, r *http.Request) {
	accountID := middleware.GetAccountID(r.Context())

	questionID, err := strconv.Atoi(chi.URLParam(r, "question_id"))
	if err != nil {
		respondValidation(w, r, "invalid question id")
		return
	}

	var req AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondValidation(w, r, "invalid request body")
		return
	}

	answer, err := h.questionService.Answer(r.Context(), accountID, questionID, req.Answer)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, answer)
}
