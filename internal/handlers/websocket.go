package handlers

import (
	"net/http"

	"couple-backend/internal/apperrors"
	"couple-backend/internal/services"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WebSocketHandler handles WebSocket connections
type WebSocketHandler struct {
	hub            *services.WSHub
	accountService *services.AccountService
	coupleService  *services.CoupleService
}

// NewWebSocketHandler creates a new WebSocket handler
func NewWebSocketHandler(
	hub *services.WSHub,
	accountService *services.AccountService,
	coupleService *services.CoupleService,
) *WebSocketHandler {
	return &WebSocketHandler{
		hub:            hub,
		accountService: accountService,
		coupleService:  coupleService,
	}
}

// HandleWebSocket handles GET /ws. Browsers cannot set headers on WebSocket
// requests, so the token arrives as a query parameter.
func (h *WebSocketHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		respondError(w, r, apperrors.NewAuth("token required"))
		return
	}

	accountID, _, err := h.accountService.VerifyToken(token)
	if err != nil {
		respondError(w, r, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade WebSocket connection")
		return
	}
	defer conn.Close()

	h.hub.Register(accountID, conn)
	defer h.hub.Unregister(accountID)

	// Presence is only meaningful to a paired partner.
	partnerID := ""
	if couple, err := h.coupleService.GetForAccount(r.Context(), accountID); err == nil {
		partnerID = couple.PartnerID(accountID)
		h.hub.NotifyPartnerStatus(partnerID, true)
	}
	defer func() {
		if partnerID != "" {
			h.hub.NotifyPartnerStatus(partnerID, false)
		}
	}()

	// Drain the connection until the client goes away. Clients only listen;
	// unexpected payloads are ignored.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug().Err(err).Str("account_id", accountID).Msg("WebSocket read error")
			}
			return
		}
	}
}
