package realtime

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testOrigin = "http://localhost:5173"

func dial(t *testing.T, server *httptest.Server, origin string) (*websocket.Conn, *http.Response, error) {
	t.Helper()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	header := http.Header{}
	header.Set("Origin", origin)

	return websocket.DefaultDialer.Dial(url, header)
}

func TestHubBroadcastsRefresh(t *testing.T) {
	hub := NewHub([]string{testOrigin}, nil, nil)
	server := httptest.NewServer(http.HandlerFunc(hub.Serve))
	t.Cleanup(server.Close)

	ws, _, err := dial(t, server, testOrigin)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ws.Close() })

	require.NoError(t, ws.SetReadDeadline(time.Now().Add(2*time.Second)))

	var welcome Message
	require.NoError(t, ws.ReadJSON(&welcome))
	assert.Equal(t, "connected", welcome.Type)
	assert.Equal(t, 1, hub.Clients())

	hub.Broadcast("clients")

	var refresh Message
	require.NoError(t, ws.ReadJSON(&refresh))
	assert.Equal(t, "refresh", refresh.Type)
	assert.Equal(t, "clients", refresh.Topic)
}

func TestHubRejectsUnknownOrigin(t *testing.T) {
	hub := NewHub([]string{testOrigin}, nil, nil)
	server := httptest.NewServer(http.HandlerFunc(hub.Serve))
	t.Cleanup(server.Close)

	_, resp, err := dial(t, server, "https://evil.example")
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Zero(t, hub.Clients())
}

func TestHubForgetsClosedConnections(t *testing.T) {
	hub := NewHub([]string{testOrigin}, nil, nil)
	server := httptest.NewServer(http.HandlerFunc(hub.Serve))
	t.Cleanup(server.Close)

	ws, _, err := dial(t, server, testOrigin)
	require.NoError(t, err)

	var welcome Message
	require.NoError(t, ws.ReadJSON(&welcome))
	require.NoError(t, ws.Close())

	assert.Eventually(t, func() bool { return hub.Clients() == 0 }, 2*time.Second, 10*time.Millisecond)

	var nilHub *Hub
	nilHub.Broadcast("clients")
}
