package middleware

import (
	"context"
	"net/http"
	"strings"

	"couple-backend/internal/services"
)

type contextKey string

const accountIDKey contextKey = "account_id"

// TokenCookieName is the session cookie checked when no bearer header is set.
const TokenCookieName = "token"

// AuthMiddleware authenticates requests with a session token. The
// Authorization header takes precedence over the cookie; a missing token and
// an invalid one are indistinguishable to the client.
func AuthMiddleware(accountService *services.AccountService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractToken(r)
			if token == "" {
				respondError(w, "authentication required", http.StatusUnauthorized)
				return
			}

			accountID, _, err := accountService.VerifyToken(token)
			if err != nil {
				respondError(w, "invalid token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), accountIDKey, accountID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ExtractToken pulls the session token off a request: bearer header first,
// then the token cookie.
func ExtractToken(r *http.Request) string {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	if cookie, err := r.Cookie(TokenCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// GetAccountID extracts the authenticated account id from context.
func GetAccountID(ctx context.Context) string {
	accountID, ok := ctx.Value(accountIDKey).(string)
	if !ok {
		return ""
	}
	return accountID
}

// respondError sends an error response
func respondError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write([]byte(`{"error":"` + message + `"}`))
}
