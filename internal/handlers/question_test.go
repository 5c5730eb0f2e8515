package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestionsTodayAndAnswer(t *testing.T) {
	router := newTestRouter(t)
	tokenA, tokenB := pairAccounts(t, router)

	rec := doRequest(t, router, http.MethodGet, "/questions/today", tokenA, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	today := decode(t, rec)
	assert.NotEmpty(t, today["question"])
	assert.Empty(t, today["answers"])
	questionID := int(today["question_id"].(float64))

	rec = doRequest(t, router, http.MethodPost, fmt.Sprintf("/questions/%d/answer", questionID), tokenA, map[string]string{
		"answer": "the beach trip",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doRequest(t, router, http.MethodPost, fmt.Sprintf("/questions/%d/answer", questionID), tokenB, map[string]string{
		"answer": "our first concert",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	// Both answers show up for either partner.
	rec = doRequest(t, router, http.MethodGet, "/questions/today", tokenB, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	answers := decode(t, rec)["answers"].([]interface{})
	assert.Len(t, answers, 2)
}

func TestQuestionAnswerReplacesPrevious(t *testing.T) {
	router := newTestRouter(t)
	tokenA, _ := pairAccounts(t, router)

	rec := doRequest(t, router, http.MethodGet, "/questions/today", tokenA, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	questionID := int(decode(t, rec)["question_id"].(float64))

	path := fmt.Sprintf("/questions/%d/answer", questionID)
	rec = doRequest(t, router, http.MethodPost, path, tokenA, map[string]string{"answer": "first"})
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = doRequest(t, router, http.MethodPost, path, tokenA, map[string]string{"answer": "second"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/questions/today", tokenA, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	answers := decode(t, rec)["answers"].([]interface{})
	require.Len(t, answers, 1)
	assert.Equal(t, "second", answers[0].(map[string]interface{})["answer"])
}

func TestQuestionAnswerValidation(t *testing.T) {
	router := newTestRouter(t)
	tokenA, _ := pairAccounts(t, router)

	rec := doRequest(t, router, http.MethodPost, "/questions/abc/answer", tokenA, map[string]string{
		"answer": "x",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/questions/today", tokenA, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	questionID := int(decode(t, rec)["question_id"].(float64))

	rec = doRequest(t, router, http.MethodPost, fmt.Sprintf("/questions/%d/answer", questionID), tokenA, map[string]string{
		"answer": "   ",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
