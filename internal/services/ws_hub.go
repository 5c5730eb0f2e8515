package services

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// WSMessage represents a WebSocket event pushed to a client.
type WSMessage struct {
	Type      string      `json:"type"`
	Timestamp int64       `json:"timestamp,omitempty"`
	Online    *bool       `json:"online,omitempty"`
	Message   string      `json:"message,omitempty"`
	Data      interface{} `json:"data,omitempty"`
}

// WSHub tracks one live connection per account. It holds only presence
// state; nothing here survives a restart.
type WSHub struct {
	mu          sync.RWMutex
	connections map[string]*websocket.Conn
}

// NewWSHub creates a new WebSocket hub
func NewWSHub() *WSHub {
	return &WSHub{
		connections: make(map[string]*websocket.Conn),
	}
}

// Register registers a new WebSocket connection for an account, replacing
// any existing one.
func (h *WSHub) Register(accountID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if existing, ok := h.connections[accountID]; ok {
		existing.Close()
	}
	h.connections[accountID] = conn

	log.Info().Str("account_id", accountID).Msg("WebSocket connection registered")
}

// Unregister removes the connection for an account.
func (h *WSHub) Unregister(accountID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conn, ok := h.connections[accountID]; ok {
		conn.Close()
		delete(h.connections, accountID)
		log.Info().Str("account_id", accountID).Msg("WebSocket connection unregistered")
	}
}

// SendToUser sends a message to a specific account.
func (h *WSHub) SendToUser(accountID string, message WSMessage) error {
	h.mu.RLock()
	conn, ok := h.connections[accountID]
	h.mu.RUnlock()

	if !ok {
		return fmt.Errorf("account %s is not connected", accountID)
	}

	if message.Timestamp == 0 {
		message.Timestamp = time.Now().UnixMilli()
	}
	data, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		h.Unregister(accountID)
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}

// IsOnline checks whether an account has a live connection.
func (h *WSHub) IsOnline(accountID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.connections[accountID]
	return ok
}

// NotifyPartnerStatus tells the partner the account went online or offline.
func (h *WSHub) NotifyPartnerStatus(partnerID string, online bool) {
	if partnerID == "" {
		return
	}
	message := WSMessage{
		Type:   "partner_status",
		Online: &online,
	}
	if err := h.SendToUser(partnerID, message); err != nil {
		log.Debug().Err(err).Str("account_id", partnerID).Msg("Partner not reachable for status update")
	}
}

// NotifyCoupleConnected tells the invite-code holder their pairing completed.
func (h *WSHub) NotifyCoupleConnected(partnerID string, data interface{}) {
	if !h.IsOnline(partnerID) {
		return
	}
	if err := h.SendToUser(partnerID, WSMessage{Type: "couple_connected", Data: data}); err != nil {
		log.Error().Err(err).Str("account_id", partnerID).Msg("Failed to notify partner about pairing")
	}
}
