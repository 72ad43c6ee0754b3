package cartControllers

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// SessionHub fans cart-change notifications out to every open view of the
// same cart session. The message carries no cart state; consumers re-read
// the cart, which stays the single source of truth.
type SessionHub struct {
	mu    sync.Mutex
	conns map[string]map[*websocket.Conn]bool
}

func NewSessionHub() *SessionHub {
	return &SessionHub{conns: make(map[string]map[*websocket.Conn]bool)}
}

var CartHub = NewSessionHub()

func (h *SessionHub) add(session string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.conns[session] == nil {
		h.conns[session] = make(map[*websocket.Conn]bool)
	}
	h.conns[session][conn] = true
}

func (h *SessionHub) remove(session string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns[session], conn)
	if len(h.conns[session]) == 0 {
		delete(h.conns, session)
	}
}

const broadcastWriteTimeout = 5 * time.Second

// Broadcast notifies all sockets of a session. Writes happen on a snapshot
// outside the lock so one stalled socket cannot block other sessions; dead
// connections are dropped on the next read error.
func (h *SessionHub) Broadcast(session, event string) {
	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.conns[session]))
	for conn := range h.conns[session] {
		conns = append(conns, conn)
	}
	h.mu.Unlock()

	for _, conn := range conns {
		_ = conn.SetWriteDeadline(time.Now().Add(broadcastWriteTimeout))
		_ = conn.WriteJSON(gin.H{"type": event})
	}
}

// GET /api/cart/ws
func CartSocketHandler(c *gin.Context) {
	session := cartSession(c)
	if session == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cart session is required"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	CartHub.add(session, conn)
	defer CartHub.remove(session, conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
