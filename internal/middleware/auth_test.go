package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newRequest(t *testing.T) *http.Request {
	t.Helper()
	return httptest.NewRequest(http.MethodGet, "/todos", nil)
}

func TestExtractTokenBearerHeader(t *testing.T) {
	r := newRequest(t)
	r.Header.Set("Authorization", "Bearer abc.def.ghi")
	assert.Equal(t, "abc.def.ghi", ExtractToken(r))
}

func TestExtractTokenCookieFallback(t *testing.T) {
	r := newRequest(t)
	r.AddCookie(&http.Cookie{Name: TokenCookieName, Value: "cookie-token"})
	assert.Equal(t, "cookie-token", ExtractToken(r))
}

func TestExtractTokenHeaderWinsOverCookie(t *testing.T) {
	r := newRequest(t)
	r.Header.Set("Authorization", "Bearer header-token")
	r.AddCookie(&http.Cookie{Name: TokenCookieName, Value: "cookie-token"})
	assert.Equal(t, "header-token", ExtractToken(r))
}

func TestExtractTokenMalformedHeaderDoesNotFallBack(t *testing.T) {
	// A present but malformed Authorization header is a failed attempt, not an
	// invitation to try the cookie.
	r := newRequest(t)
	r.Header.Set("Authorization", "Token abc")
	r.AddCookie(&http.Cookie{Name: TokenCookieName, Value: "cookie-token"})
	assert.Equal(t, "", ExtractToken(r))
}

func TestExtractTokenMissing(t *testing.T) {
	assert.Equal(t, "", ExtractToken(newRequest(t)))
}

func TestGetAccountIDMissing(t *testing.T) {
	r := newRequest(t)
	assert.Equal(t, "", GetAccountID(r.Context()))
}
