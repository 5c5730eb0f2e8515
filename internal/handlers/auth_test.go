package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterSetsCookieAndReturnsToken(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/auth/register", "", map[string]string{
		"email":    "alice@example.com",
		"password": "secret1",
		"nickname": "Alice",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	resp := decode(t, rec)
	assert.NotEmpty(t, resp["token"])

	account := resp["account"].(map[string]interface{})
	assert.Equal(t, "alice@example.com", account["email"])
	assert.Equal(t, "Alice", account["nickname"])
	assert.Regexp(t, `^[A-Z0-9]{6}$`, account["invite_code"])
	assert.Nil(t, account["couple_id"])
	assert.Nil(t, account["password"], "password must never appear in responses")

	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "token" {
			cookie = c
		}
	}
	require.NotNil(t, cookie, "register should set the token cookie")
	assert.Equal(t, resp["token"], cookie.Value)
	assert.True(t, cookie.HttpOnly)
}

func TestRegisterDuplicateEmailConflict(t *testing.T) {
	router := newTestRouter(t)
	registerAccount(t, router, "alice@example.com", "Alice")

	rec := doRequest(t, router, http.MethodPost, "/auth/register", "", map[string]string{
		"email":    "ALICE@example.com",
		"password": "secret1",
		"nickname": "Imposter",
	})
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.NotEmpty(t, decode(t, rec)["error"])
}

func TestLoginWrongPassword(t *testing.T) {
	router := newTestRouter(t)
	registerAccount(t, router, "alice@example.com", "Alice")

	rec := doRequest(t, router, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "wrong-pass",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// Unknown accounts get the same answer as a wrong password.
	rec2 := doRequest(t, router, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "nobody@example.com",
		"password": "wrong-pass",
	})
	require.Equal(t, http.StatusUnauthorized, rec2.Code)
	assert.Equal(t, decode(t, rec)["error"], decode(t, rec2)["error"])
}

func TestLoginAndMe(t *testing.T) {
	router := newTestRouter(t)
	registerAccount(t, router, "alice@example.com", "Alice")

	rec := doRequest(t, router, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "secret1",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	token := decode(t, rec)["token"].(string)

	rec = doRequest(t, router, http.MethodGet, "/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode(t, rec)
	account := resp["account"].(map[string]interface{})
	assert.Equal(t, "alice@example.com", account["email"])
	assert.Nil(t, resp["couple"])
	assert.Nil(t, resp["partner"])
}

func TestMeAfterPairingIncludesPartner(t *testing.T) {
	router := newTestRouter(t)
	tokenA, _ := pairAccounts(t, router)

	rec := doRequest(t, router, http.MethodGet, "/auth/me", tokenA, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode(t, rec)
	require.NotNil(t, resp["couple"])
	partner := resp["partner"].(map[string]interface{})
	assert.Equal(t, "Bob", partner["nickname"])
	assert.Nil(t, partner["email"], "partner view must not expose the email")
	assert.Nil(t, partner["invite_code"], "partner view must not expose the invite code")
}

func TestCookieAuthenticatesWithoutHeader(t *testing.T) {
	router := newTestRouter(t)
	token, _, _ := registerAccount(t, router, "alice@example.com", "Alice")

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestProtectedRoutesRejectMissingAndBadTokens(t *testing.T) {
	router := newTestRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/auth/me", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
