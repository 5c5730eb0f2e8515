package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"couple-backend/internal/middleware"
	"couple-backend/internal/repository/memory"
	"couple-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

// newTestRouter assembles the full route table over the in-memory store,
// mirroring the wiring in cmd.Run.
func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()
	store := memory.NewStore()

	wsHub := services.NewWSHub()
	accountService := services.NewAccountService(store.Accounts(), store.Couples(), testSecret)
	coupleService := services.NewCoupleService(store.Couples(), store.Accounts())
	todoService := services.NewTodoService(store.Todos(), store.Accounts())
	eventService := services.NewEventService(store.Events(), store.Accounts())
	messageService := services.NewMessageService(store.Messages(), store.Accounts(), store.Couples(), wsHub)
	questionService := services.NewQuestionService(store.Questions(), store.Accounts())
	photoService, err := services.NewPhotoService(
		store.Photos(), store.Accounts(),
		"us-east-1", "test-bucket", "test-access-key", "test-secret-key", "")
	require.NoError(t, err)

	authHandler := NewAuthHandler(accountService)
	coupleHandler := NewCoupleHandler(coupleService, wsHub)
	todoHandler := NewTodoHandler(todoService)
	eventHandler := NewEventHandler(eventService)
	messageHandler := NewMessageHandler(messageService)
	photoHandler := NewPhotoHandler(photoService)
	questionHandler := NewQuestionHandler(questionService)

	r := chi.NewRouter()
	r.Post("/auth/register", authHandler.Register)
	r.Post("/auth/login", authHandler.Login)
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(accountService))
		r.Get("/auth/me", authHandler.Me)
		r.Post("/couple/connect", coupleHandler.Connect)
		r.Put("/couple", coupleHandler.Update)
		r.Get("/todos", todoHandler.List)
		r.Post("/todos", todoHandler.Create)
		r.Put("/todos/{todo_id}", todoHandler.Update)
		r.Delete("/todos/{todo_id}", todoHandler.Delete)
		r.Get("/events", eventHandler.List)
		r.Post("/events", eventHandler.Create)
		r.Put("/events/{event_id}", eventHandler.Update)
		r.Delete("/events/{event_id}", eventHandler.Delete)
		r.Get("/messages", messageHandler.List)
		r.Post("/messages", messageHandler.Send)
		r.Get("/moods", messageHandler.ListMoods)
		r.Post("/moods", messageHandler.SendMood)
		r.Get("/photos", photoHandler.List)
		r.Post("/photos/upload", photoHandler.Upload)
		r.Delete("/photos/{photo_id}", photoHandler.Delete)
		r.Get("/questions/today", questionHandler.Today)
		r.Post("/questions/{question_id}/answer", questionHandler.Answer)
	})
	return r
}

// doRequest performs a request against the router. An empty token leaves the
// request unauthenticated.
func doRequest(t *testing.T, router http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// decode unmarshals a response body into a map.
func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

// registerAccount registers an account and returns its token and invite code.
func registerAccount(t *testing.T, router http.Handler, email, nickname string) (token, inviteCode, accountID string) {
	t.Helper()
	rec := doRequest(t, router, http.MethodPost, "/auth/register", "", map[string]string{
		"email":    email,
		"password": "secret1",
		"nickname": nickname,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	resp := decode(t, rec)
	account := resp["account"].(map[string]interface{})
	return resp["token"].(string), account["invite_code"].(string), account["id"].(string)
}

// pairAccounts registers two accounts and connects them, returning both tokens.
func pairAccounts(t *testing.T, router http.Handler) (tokenA, tokenB string) {
	t.Helper()
	tokenA, _, _ = registerAccount(t, router, "a@x.com", "Alice")
	tokenB, codeB, _ := registerAccount(t, router, "b@x.com", "Bob")

	rec := doRequest(t, router, http.MethodPost, "/couple/connect", tokenA, map[string]string{
		"inviteCode": codeB,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return tokenA, tokenB
}
