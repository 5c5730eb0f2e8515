package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dialTestConn returns a connected server-side and client-side conn pair.
func dialTestConn(t *testing.T) (server, client *websocket.Conn) {
	t.Helper()

	upgrader := websocket.Upgrader{}
	serverConns := make(chan *websocket.Conn, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		serverConns <- conn
	}))
	t.Cleanup(srv.Close)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	return <-serverConns, client
}

func TestHubSendToUser(t *testing.T) {
	hub := NewWSHub()
	server, client := dialTestConn(t)

	hub.Register("u1", server)
	assert.True(t, hub.IsOnline("u1"))
	assert.False(t, hub.IsOnline("u2"))

	require.NoError(t, hub.SendToUser("u1", WSMessage{Type: "new_message", Message: "hi"}))

	client.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := client.ReadMessage()
	require.NoError(t, err)

	var msg WSMessage
	require.NoError(t, json.Unmarshal(data, &msg))
	assert.Equal(t, "new_message", msg.Type)
	assert.Equal(t, "hi", msg.Message)
	assert.NotZero(t, msg.Timestamp)

	hub.Unregister("u1")
	assert.False(t, hub.IsOnline("u1"))
}

func TestHubSendToOfflineUser(t *testing.T) {
	hub := NewWSHub()
	assert.Error(t, hub.SendToUser("nobody", WSMessage{Type: "new_message"}))

	// Presence notifications to offline partners are silently dropped.
	hub.NotifyPartnerStatus("nobody", true)
	hub.NotifyCoupleConnected("nobody", nil)
}

func TestHubRegisterReplacesConnection(t *testing.T) {
	hub := NewWSHub()
	first, firstClient := dialTestConn(t)
	second, _ := dialTestConn(t)

	hub.Register("u1", first)
	hub.Register("u1", second)
	assert.True(t, hub.IsOnline("u1"))

	// The first connection was closed by the replacement.
	firstClient.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := firstClient.ReadMessage()
	assert.Error(t, err)

	require.NoError(t, hub.SendToUser("u1", WSMessage{Type: "new_message"}))
}
