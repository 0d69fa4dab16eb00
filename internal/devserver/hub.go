package devserver

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rileyhilliard/hwmon/internal/errors"
	"github.com/rileyhilliard/hwmon/internal/logger"
	"github.com/rileyhilliard/hwmon/internal/telemetry"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// client is one websocket subscriber.
type client struct {
	conn *websocket.Conn
	addr string
	send chan []byte
}

// Hub fans push frames out to every connected websocket client. All client
// bookkeeping happens on the Run goroutine.
type Hub struct {
	clients    map[*client]struct{}
	register   chan *client
	unregister chan *client
	broadcast  chan []byte
	done       chan struct{}
	count      atomic.Int64
	log        logger.Logger
}

// NewHub creates a hub. Call Run before serving clients.
func NewHub(log logger.Logger) *Hub {
	if log == nil {
		log = logger.NewEnvLogger("[hub]")
	}
	return &Hub{
		clients:    make(map[*client]struct{}),
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan []byte, 64),
		done:       make(chan struct{}),
		log:        log,
	}
}

// Run processes registrations and broadcasts until ctx is cancelled, then
// closes every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				h.drop(c)
			}
			return

		case c := <-h.register:
			h.clients[c] = struct{}{}
			h.count.Store(int64(len(h.clients)))
			h.log.Debug("client connected from %s (total: %d)", c.addr, len(h.clients))

		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				h.drop(c)
				h.log.Debug("client disconnected (total: %d)", len(h.clients))
			}

		case msg := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					h.log.Warn("dropping slow client %s", c.addr)
					h.drop(c)
				}
			}
		}
	}
}

func (h *Hub) drop(c *client) {
	delete(h.clients, c)
	close(c.send)
	h.count.Store(int64(len(h.clients)))
}

// Clients returns the number of registered clients.
func (h *Hub) Clients() int {
	return int(h.count.Load())
}

// Broadcast queues a frame for every client. It never blocks; when the queue
// is full the frame is dropped.
func (h *Hub) Broadcast(msg []byte) {
	select {
	case h.broadcast <- msg:
	case <-h.done:
	default:
		h.log.Warn("broadcast queue full, dropping frame")
	}
}

// Serve upgrades the request and registers the connection. welcome, when
// non-nil, is the first frame the client receives.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, welcome []byte) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Debug("websocket upgrade failed: %v", err)
		return
	}

	c := &client{conn: conn, addr: r.RemoteAddr, send: make(chan []byte, sendBuffer)}
	if welcome != nil {
		c.send <- welcome
	}

	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	}

	go h.writePump(c)
	go h.readPump(c)
}

// readPump discards inbound messages and keeps the read deadline fresh.
func (h *Hub) readPump(c *client) {
	defer func() {
		select {
		case h.unregister <- c:
		case <-h.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.log.Debug("websocket read error: %v", err)
			}
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				h.log.Debug("websocket write error: %v", err)
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

// Frame encodes a push frame of the given type.
func Frame(typ string, data interface{}, at time.Time) ([]byte, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrServer,
			"Couldn't encode "+typ+" payload", "")
	}
	stamp := json.RawMessage(strconv.FormatInt(at.Unix(), 10))
	return json.Marshal(telemetry.Envelope{Type: typ, Data: payload, Time: stamp})
}
