package cartControllers

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

func dialHub(t *testing.T, hub *SessionHub, session string) *websocket.Conn {
	t.Helper()

	registered := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		hub.add(session, conn)
		close(registered)
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	<-registered
	return conn
}

func TestBroadcastDeliversToOwnSessionOnly(t *testing.T) {
	hub := NewSessionHub()
	mine := dialHub(t, hub, "sess-a")
	other := dialHub(t, hub, "sess-b")

	hub.Broadcast("sess-a", "cart.updated")

	require.NoError(t, mine.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg map[string]string
	require.NoError(t, mine.ReadJSON(&msg))
	assert.Equal(t, "cart.updated", msg["type"])

	// The other session must see nothing
	require.NoError(t, other.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	var stray map[string]string
	assert.Error(t, other.ReadJSON(&stray))
}

func TestBroadcastUnknownSessionIsNoop(t *testing.T) {
	hub := NewSessionHub()
	assert.NotPanics(t, func() {
		hub.Broadcast("sess-nobody", "cart.updated")
	})
}
