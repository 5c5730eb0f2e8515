package services

import (
	"context"
	"testing"
	"time"

	"couple-backend/internal/apperrors"
	"couple-backend/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestionOfDayIsStableWithinADay(t *testing.T) {
	morning := time.Date(2026, 8, 28, 1, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 8, 28, 23, 0, 0, 0, time.UTC)

	idA, textA := QuestionOfDay(morning)
	idB, textB := QuestionOfDay(evening)
	assert.Equal(t, idA, idB)
	assert.Equal(t, textA, textB)

	nextID, _ := QuestionOfDay(morning.AddDate(0, 0, 1))
	assert.NotEqual(t, idA, nextID)
}

func TestQuestionOfDayInRange(t *testing.T) {
	for day := 0; day < 40; day++ {
		id, text := QuestionOfDay(questionEpoch.AddDate(0, 0, day))
		assert.GreaterOrEqual(t, id, 0)
		assert.Less(t, id, len(dailyQuestions))
		assert.NotEmpty(t, text)
	}
}

func TestAnswerUpsertReplacesPreviousAnswer(t *testing.T) {
	store := memory.NewStore()
	accounts := NewAccountService(store.Accounts(), store.Couples(), testSecret)
	couples := NewCoupleService(store.Couples(), store.Accounts())
	questions := NewQuestionService(store.Questions(), store.Accounts())
	ctx := context.Background()

	alice, _, err := accounts.Register(ctx, "a@x.com", "secret1", "Alice")
	require.NoError(t, err)
	bob, _, err := accounts.Register(ctx, "b@x.com", "secret1", "Bob")
	require.NoError(t, err)
	_, _, err = couples.Connect(ctx, alice.ID, bob.InviteCode, nil)
	require.NoError(t, err)

	today, err := questions.Today(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, today.Answers)

	_, err = questions.Answer(ctx, alice.ID, today.QuestionID, "pizza")
	require.NoError(t, err)
	_, err = questions.Answer(ctx, alice.ID, today.QuestionID, "sushi")
	require.NoError(t, err)
	_, err = questions.Answer(ctx, bob.ID, today.QuestionID, "ramen")
	require.NoError(t, err)

	today, err = questions.Today(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, today.Answers, 2)

	byAccount := map[string]string{}
	for _, a := range today.Answers {
		byAccount[a.AccountID] = a.Answer
	}
	assert.Equal(t, "sushi", byAccount[alice.ID])
	assert.Equal(t, "ramen", byAccount[bob.ID])
}

func TestAnswerValidation(t *testing.T) {
	store := memory.NewStore()
	accounts := NewAccountService(store.Accounts(), store.Couples(), testSecret)
	couples := NewCoupleService(store.Couples(), store.Accounts())
	questions := NewQuestionService(store.Questions(), store.Accounts())
	ctx := context.Background()

	alice, _, err := accounts.Register(ctx, "a@x.com", "secret1", "Alice")
	require.NoError(t, err)

	// Unpaired accounts cannot answer.
	_, err = questions.Answer(ctx, alice.ID, 0, "pizza")
	assert.True(t, apperrors.IsForbidden(err))

	bob, _, err := accounts.Register(ctx, "b@x.com", "secret1", "Bob")
	require.NoError(t, err)
	_, _, err = couples.Connect(ctx, alice.ID, bob.InviteCode, nil)
	require.NoError(t, err)

	_, err = questions.Answer(ctx, alice.ID, len(dailyQuestions), "pizza")
	assert.True(t, apperrors.IsNotFound(err))

	_, err = questions.Answer(ctx, alice.ID, 0, "   ")
	assert.True(t, apperrors.IsValidation(err))
}
