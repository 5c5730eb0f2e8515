package services

import (
	"context"
	"strings"
	"time"

	"couple-backend/internal/apperrors"
	"couple-backend/internal/models"

	"github.com/google/uuid"
)

// dailyQuestions rotate by calendar day. The id of a question is its index.
var dailyQuestions = []string{
	"What made you smile today?",
	"What is your favorite memory of us?",
	"Where would you like to travel together next?",
	"What small thing does your partner do that you love?",
	"What song reminds you of your partner?",
	"What are you most grateful for this week?",
	"What would a perfect day together look like?",
	"What did you first notice about your partner?",
	"What is something new you want to try together?",
	"What meal would you cook for your partner tonight?",
	"What do you want us to be doing five years from now?",
	"What is the best gift your partner ever gave you?",
	"When did you last feel really proud of your partner?",
	"What habit of yours do you think your partner secretly likes?",
}

var questionEpoch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// QuestionOfDay returns the question id and text for the given day.
func QuestionOfDay(t time.Time) (int, string) {
	days := int(t.UTC().Sub(questionEpoch).Hours() / 24)
	id := days % len(dailyQuestions)
	if id < 0 {
		id += len(dailyQuestions)
	}
	return id, dailyQuestions[id]
}

// DailyQuestion is one day's question with the couple's answers so far.
type DailyQuestion struct {
	QuestionID int                      `json:"question_id"`
	Question   string                   `json:"question"`
	Answers    []*models.QuestionAnswer `json:"answers"`
}

// QuestionService handles daily questions and couple-scoped answers.
type QuestionService struct {
	questions QuestionStore
	accounts  AccountStore
}

// NewQuestionService creates a new question service
func NewQuestionService(questions QuestionStore, accounts AccountStore) *QuestionService {
	return &QuestionService{
		questions: questions,
		accounts:  accounts,
	}
}

// Today returns today's question with the couple's answers.
func (s *QuestionService) Today(ctx context.Context, accountID string) (*DailyQuestion, error) {
	coupleID, err := requireCouple(ctx, s.accounts, accountID)
	if err != nil {
		return nil, err
	}

	questionID, text := QuestionOfDay(time.Now())
	answers, err := s.questions.ListForQuestion(ctx, coupleID, questionID)
	if err != nil {
		return nil, err
	}
	return &DailyQuestion{
		QuestionID: questionID,
		Question:   text,
		Answers:    answers,
	}, nil
}

// Answer saves the requester's answer to a question. Answering a question
// twice replaces the earlier answer.
func (s *QuestionService) Answer(ctx context.Context, accountID string, questionID int, answer string) (*models.QuestionAnswer, error) {
	coupleID, err := requireCouple(ctx, s.accounts, accountID)
	if err != nil {
		return nil, err
	}

	if questionID < 0 || questionID >= len(dailyQuestions) {
		return nil, apperrors.NewNotFound("question not found")
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return nil, apperrors.NewValidation("answer is required")
	}

	a := &models.QuestionAnswer{
		ID:         uuid.New().String(),
		CoupleID:   coupleID,
		AccountID:  accountID,
		QuestionID: questionID,
		Answer:     answer,
		CreatedAt:  time.Now(),
	}
	if err := s.questions.Upsert(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}
