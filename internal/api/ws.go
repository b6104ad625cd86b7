package api

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/forge-ai/textforge/internal/logging"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin:     func(r *http.Request) bool { return true },
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
}

// wsReply is one frame sent back per request frame.
type wsReply struct {
	Result *string `json:"result,omitempty"`
	Error  string  `json:"error,omitempty"`
	Status int     `json:"status,omitempty"`
}

type wsClient struct {
	conn *websocket.Conn
	send chan []byte
	done chan struct{}
}

// Hub tracks connected WebSocket clients.
type Hub struct {
	mu      sync.RWMutex
	clients map[*wsClient]struct{}
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*wsClient]struct{})}
}

func (h *Hub) add(c *wsClient) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) remove(c *wsClient) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
}

// ClientCount returns the number of open connections.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// CloseAll drops every connection; used on shutdown since hijacked
// connections are not tracked by http.Server.
func (h *Hub) CloseAll() {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		_ = c.conn.Close()
	}
}

// serveWS handles one request per text frame, in order, and replies with
// one frame each.
func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	l := logging.FromContext(r.Context())

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		l.Warn().Err(err).Msg("WS upgrade failed")
		return
	}

	c := &wsClient{conn: conn, send: make(chan []byte, 16), done: make(chan struct{})}
	s.hub.add(c)
	defer s.hub.remove(c)

	l.Debug().Str("remote", r.RemoteAddr).Msg("WS connected")
	go c.writePump(s.pingPeriod)

	s.readLoop(r.Context(), c)
	close(c.send)
	<-c.done
	l.Debug().Str("remote", r.RemoteAddr).Msg("WS disconnected")
}

func (s *Server) readLoop(ctx context.Context, c *wsClient) {
	c.conn.SetReadLimit(maxBodyBytes)
	_ = c.conn.SetReadDeadline(time.Now().Add(s.pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(s.pongWait))
	})

	for {
		kind, frame, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		if kind != websocket.TextMessage {
			continue
		}

		b, _ := json.Marshal(s.answer(ctx, frame))
		// Pongs are not read while a generation runs.
		_ = c.conn.SetReadDeadline(time.Now().Add(s.pongWait))
		select {
		case c.send <- b:
		case <-c.done:
			return
		}
	}
}

func (s *Server) answer(ctx context.Context, frame []byte) wsReply {
	req, err := DecodeRequest(frame)
	if err != nil {
		return wsReply{Error: MessageFor(err), Status: StatusFor(err)}
	}
	res, err := s.gen.Generate(ctx, req)
	if err != nil {
		return wsReply{Error: MessageFor(err), Status: StatusFor(err)}
	}
	return wsReply{Result: &res.Text}
}

// writePump is the only goroutine that writes to the connection.
func (c *wsClient) writePump(pingPeriod time.Duration) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
		close(c.done)
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
