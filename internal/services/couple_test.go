package services

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"couple-backend/internal/apperrors"
	"couple-backend/internal/models"
	"couple-backend/internal/repository"
	"couple-backend/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type coupleTestEnv struct {
	accounts *AccountService
	couples  *CoupleService
	store    *memory.Store
}

func newCoupleEnv(t *testing.T) *coupleTestEnv {
	store := memory.NewStore()
	accounts := NewAccountService(store.Accounts(), store.Couples(), testSecret)
	couples := NewCoupleService(store.Couples(), store.Accounts())
	return &coupleTestEnv{accounts: accounts, couples: couples, store: store}
}

func (e *coupleTestEnv) register(t *testing.T, email, nickname string) *models.Account {
	t.Helper()
	account, _, err := e.accounts.Register(context.Background(), email, "secret1", nickname)
	require.NoError(t, err)
	return account
}

func TestConnectPairsBothAccounts(t *testing.T) {
	env := newCoupleEnv(t)
	ctx := context.Background()
	alice := env.register(t, "a@x.com", "Alice")
	bob := env.register(t, "b@x.com", "Bob")

	couple, partner, err := env.couples.Connect(ctx, alice.ID, bob.InviteCode, nil)
	require.NoError(t, err)
	require.NotNil(t, couple)
	assert.Equal(t, bob.ID, partner.ID)
	assert.Equal(t, "Bob", partner.Nickname)

	aliceNow, err := env.store.Accounts().GetByID(ctx, alice.ID)
	require.NoError(t, err)
	bobNow, err := env.store.Accounts().GetByID(ctx, bob.ID)
	require.NoError(t, err)
	require.NotNil(t, aliceNow.CoupleID)
	require.NotNil(t, bobNow.CoupleID)
	assert.Equal(t, *aliceNow.CoupleID, *bobNow.CoupleID)
	assert.Equal(t, couple.ID, *aliceNow.CoupleID)
}

func TestConnectNormalizesCode(t *testing.T) {
	env := newCoupleEnv(t)
	alice := env.register(t, "a@x.com", "Alice")
	bob := env.register(t, "b@x.com", "Bob")

	_, _, err := env.couples.Connect(context.Background(), alice.ID,
		"  "+strings.ToLower(bob.InviteCode)+" ", nil)
	require.NoError(t, err)
}

func TestConnectInvalidCode(t *testing.T) {
	env := newCoupleEnv(t)
	alice := env.register(t, "a@x.com", "Alice")

	_, _, err := env.couples.Connect(context.Background(), alice.ID, "ZZZZZZ", nil)
	assert.True(t, apperrors.IsValidation(err))

	_, _, err = env.couples.Connect(context.Background(), alice.ID, "", nil)
	assert.True(t, apperrors.IsValidation(err))
}

func TestConnectOwnCodeAlwaysFailsValidation(t *testing.T) {
	env := newCoupleEnv(t)
	ctx := context.Background()
	alice := env.register(t, "a@x.com", "Alice")

	_, _, err := env.couples.Connect(ctx, alice.ID, alice.InviteCode, nil)
	assert.True(t, apperrors.IsValidation(err))
}

func TestConnectIsTerminal(t *testing.T) {
	env := newCoupleEnv(t)
	ctx := context.Background()
	alice := env.register(t, "a@x.com", "Alice")
	bob := env.register(t, "b@x.com", "Bob")
	carol := env.register(t, "c@x.com", "Carol")

	_, _, err := env.couples.Connect(ctx, alice.ID, bob.InviteCode, nil)
	require.NoError(t, err)

	// Repeating from either side conflicts.
	_, _, err = env.couples.Connect(ctx, alice.ID, bob.InviteCode, nil)
	assert.True(t, apperrors.IsConflict(err))
	_, _, err = env.couples.Connect(ctx, bob.ID, alice.InviteCode, nil)
	assert.True(t, apperrors.IsConflict(err))

	// A third account using a paired partner's code conflicts too.
	_, _, err = env.couples.Connect(ctx, carol.ID, bob.InviteCode, nil)
	assert.True(t, apperrors.IsConflict(err))
}

func TestConnectUnknownRequester(t *testing.T) {
	env := newCoupleEnv(t)
	bob := env.register(t, "b@x.com", "Bob")

	_, _, err := env.couples.Connect(context.Background(), "missing", bob.InviteCode, nil)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestConnectStartDateDefaultsToNow(t *testing.T) {
	env := newCoupleEnv(t)
	alice := env.register(t, "a@x.com", "Alice")
	bob := env.register(t, "b@x.com", "Bob")

	before := time.Now()
	couple, _, err := env.couples.Connect(context.Background(), alice.ID, bob.InviteCode, nil)
	require.NoError(t, err)
	assert.False(t, couple.StartDate.Before(before))

	env2 := newCoupleEnv(t)
	a2 := env2.register(t, "a@x.com", "Alice")
	b2 := env2.register(t, "b@x.com", "Bob")
	start := time.Date(2025, 2, 14, 0, 0, 0, 0, time.UTC)
	couple2, _, err := env2.couples.Connect(context.Background(), a2.ID, b2.InviteCode, &start)
	require.NoError(t, err)
	assert.Equal(t, start, couple2.StartDate)
}

// Two accounts racing for the same invite code: exactly one connect may
// succeed, and exactly one couple may exist afterwards.
func TestConnectConcurrentSameCode(t *testing.T) {
	env := newCoupleEnv(t)
	ctx := context.Background()
	alice := env.register(t, "a@x.com", "Alice")
	bob := env.register(t, "b@x.com", "Bob")
	carol := env.register(t, "c@x.com", "Carol")

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, requester := range []string{bob.ID, carol.ID} {
		wg.Add(1)
		go func(i int, requester string) {
			defer wg.Done()
			_, _, errs[i] = env.couples.Connect(ctx, requester, alice.InviteCode, nil)
		}(i, requester)
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
		} else {
			assert.True(t, apperrors.IsConflict(err), "loser must observe a conflict")
		}
	}
	assert.Equal(t, 1, successes)

	aliceNow, err := env.store.Accounts().GetByID(ctx, alice.ID)
	require.NoError(t, err)
	require.NotNil(t, aliceNow.CoupleID)
}

func TestUpdateCouple(t *testing.T) {
	env := newCoupleEnv(t)
	ctx := context.Background()
	alice := env.register(t, "a@x.com", "Alice")
	bob := env.register(t, "b@x.com", "Bob")

	_, _, err := env.couples.Connect(ctx, alice.ID, bob.InviteCode, nil)
	require.NoError(t, err)

	title := "Us"
	updated, err := env.couples.Update(ctx, alice.ID, repository.UpdateCoupleParams{Title: &title})
	require.NoError(t, err)
	require.NotNil(t, updated.Title)
	assert.Equal(t, "Us", *updated.Title)
	// Membership untouched.
	assert.Equal(t, alice.ID, updated.User1ID)
	assert.Equal(t, bob.ID, updated.User2ID)
}

func TestUpdateCoupleUnpaired(t *testing.T) {
	env := newCoupleEnv(t)
	alice := env.register(t, "a@x.com", "Alice")

	title := "Us"
	_, err := env.couples.Update(context.Background(), alice.ID, repository.UpdateCoupleParams{Title: &title})
	assert.True(t, apperrors.IsNotFound(err))
}
