package broadcast

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/xid"
	"github.com/rs/zerolog"

	"karolbroda.com/lyricsync/internal/logging"
	"karolbroda.com/lyricsync/internal/nowplaying"
)

const (
	WriteWait  = 10 * time.Second
	PongWait   = 60 * time.Second
	pingPeriod = PongWait * 9 / 10

	wsReadBufferSize    = 1024
	wsWriteBufferSize   = 1024
	clientSendQueueSize = 32
)

// Hub keeps the latest frame and fans every new frame out to websocket clients.
type Hub struct {
	mu      sync.RWMutex
	latest  nowplaying.Frame
	payload []byte
	clients map[string]*clientConn
	log     zerolog.Logger
}

type clientConn struct {
	id      string
	conn    *websocket.Conn
	send    chan []byte
	closing chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		latest:  nowplaying.Frame{Status: nowplaying.StatusNoTrack, LineIndex: -1},
		clients: make(map[string]*clientConn),
		log:     logging.Component("broadcast"),
	}
}

// Publish records f as the latest frame and queues it for every client.
// a client whose queue is full misses this frame.
func (h *Hub) Publish(f nowplaying.Frame) {
	payload, err := json.Marshal(f)
	if err != nil {
		h.log.Error().Err(err).Msg("encode frame")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.latest = f
	h.payload = payload
	for _, c := range h.clients {
		select {
		case c.send <- payload:
		default:
			h.log.Debug().Str("client", c.id).Msg("send queue full, frame dropped")
		}
	}
}

// Latest returns the most recently published frame.
func (h *Hub) Latest() nowplaying.Frame {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.latest
}

func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) register(c *clientConn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.id] = c
	if h.payload != nil {
		c.send <- h.payload
	}
	h.log.Debug().Str("client", c.id).Str("remote", c.conn.RemoteAddr().String()).Msg("client connected")
}

func (h *Hub) unregister(c *clientConn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c.id]; !ok {
		return
	}
	delete(h.clients, c.id)
	close(c.send)
	h.log.Debug().Str("client", c.id).Msg("client disconnected")
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, c := range h.clients {
		delete(h.clients, id)
		close(c.send)
	}
}

// ServeWS upgrades the request and streams frames until the client leaves.
func (h *Hub) ServeWS(upgrader *websocket.Upgrader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			h.log.Debug().Err(err).Msg("websocket upgrade failed")
			return
		}

		c := &clientConn{
			id:      xid.New().String(),
			conn:    conn,
			send:    make(chan []byte, clientSendQueueSize),
			closing: make(chan struct{}),
		}
		h.register(c)

		go h.handleSend(c)
		go h.handleRecv(c)
	}
}

// handleRecv only watches for close and pong frames; clients send nothing else.
func (h *Hub) handleRecv(c *clientConn) {
	defer func() {
		close(c.closing)
		h.unregister(c)
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(PongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(PongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.log.Debug().Err(err).Str("client", c.id).Msg("unexpected close")
			}
			return
		}
	}
}

func (h *Hub) handleSend(c *clientConn) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(WriteWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.closing:
			return
		}
	}
}
