package remote

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/muurk/notebook/internal/logging"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 64 * 1024

	// Frames queued per connection before it is considered stuck
	sendBuffer = 64
)

// conn is one upgraded WebSocket connection.
type conn struct {
	ws         *websocket.Conn
	remoteAddr string
	send       chan []byte

	mu     sync.Mutex
	closed bool
}

func newConn(ws *websocket.Conn) *conn {
	return &conn{
		ws:         ws,
		remoteAddr: ws.RemoteAddr().String(),
		send:       make(chan []byte, sendBuffer),
	}
}

// queue marshals msgs and queues them without blocking. It reports false
// when the send buffer is full or the connection is closed.
func (c *conn) queue(msgs ...Message) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	for _, m := range msgs {
		data, err := json.Marshal(m)
		if err != nil {
			logging.Error("Failed to marshal message", zap.String("type", m.Type), zap.Error(err))
			continue
		}
		select {
		case c.send <- data:
		default:
			return false
		}
	}
	return true
}

// close stops the write pump, which then closes the socket.
func (c *conn) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// writePump sends queued frames and keepalive pings until the send channel
// is closed or a write fails.
func (c *conn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.ws.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.ws.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.ws.WriteMessage(websocket.TextMessage, data); err != nil {
				logging.Info("Write failed, dropping connection",
					zap.String("remote_addr", c.remoteAddr),
					zap.Error(err),
				)
				return
			}
			logging.LogWebSocketMessage(c.remoteAddr, "sent", websocket.TextMessage, data)

		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump delivers client frames to handle until the peer goes away.
func (c *conn) readPump(handle func(*conn, []byte)) {
	c.ws.SetReadLimit(maxMessageSize)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		msgType, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logging.Info("Connection closed unexpectedly",
					zap.String("remote_addr", c.remoteAddr),
					zap.Error(err),
				)
			}
			return
		}
		logging.LogWebSocketMessage(c.remoteAddr, "received", msgType, data)
		handle(c, data)
	}
}

// Hub fans messages out to every registered connection.
type Hub struct {
	mu    sync.Mutex
	conns map[*conn]struct{}
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{conns: make(map[*conn]struct{})}
}

func (h *Hub) add(c *conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[c] = struct{}{}
}

func (h *Hub) remove(c *conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.conns[c]; ok {
		delete(h.conns, c)
		c.close()
	}
}

// Broadcast queues msgs on every connection. Connections whose buffer is
// full are dropped.
func (h *Hub) Broadcast(msgs ...Message) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.conns {
		if !c.queue(msgs...) {
			logging.Warn("Client too slow, dropping connection", zap.String("remote_addr", c.remoteAddr))
			delete(h.conns, c)
			c.close()
		}
	}
}

// Len returns the number of connections.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

// CloseAll closes every connection.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.conns {
		logging.Info("Closing active connection", zap.String("remote_addr", c.remoteAddr))
		delete(h.conns, c)
		c.close()
	}
}
