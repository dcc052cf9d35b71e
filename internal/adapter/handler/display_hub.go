package handler

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/rl1809/smart-pos/internal/adapter/handler/pb"
	"github.com/rl1809/smart-pos/internal/core/domain"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	clientBuffer   = 32
)

type displayMessage struct {
	Type   string     `json:"type"`
	Cart   *pb.Cart   `json:"cart,omitempty"`
	Notice *noticeDTO `json:"notice,omitempty"`
}

// DisplayClient is one customer-facing screen.
type DisplayClient struct {
	hub  *DisplayHub
	conn *websocket.Conn
	send chan []byte
}

// DisplayHub fans cart snapshots and notices out to every connected
// customer display. A new client receives the latest cart on connect.
type DisplayHub struct {
	log        logrus.FieldLogger
	broadcast  chan []byte
	register   chan *DisplayClient
	unregister chan *DisplayClient
	done       chan struct{}

	mu       sync.Mutex
	clients  map[*DisplayClient]bool
	lastCart []byte
}

func NewDisplayHub(log logrus.FieldLogger) *DisplayHub {
	return &DisplayHub{
		log:        log.WithField("component", "display"),
		broadcast:  make(chan []byte, 64),
		register:   make(chan *DisplayClient),
		unregister: make(chan *DisplayClient),
		done:       make(chan struct{}),
		clients:    make(map[*DisplayClient]bool),
	}
}

func (h *DisplayHub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for c := range h.clients {
				delete(h.clients, c)
				close(c.send)
			}
			h.mu.Unlock()
			return

		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = true
			last := h.lastCart
			h.mu.Unlock()
			if last != nil {
				c.send <- last
			}
			h.log.Debug("display connected")

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			h.mu.Unlock()
			h.log.Debug("display disconnected")

		case msg := <-h.broadcast:
			h.mu.Lock()
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					close(c.send)
					delete(h.clients, c)
				}
			}
			h.mu.Unlock()
		}
	}
}

func (h *DisplayHub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *DisplayHub) PublishCart(view domain.CartView) {
	msg, err := json.Marshal(displayMessage{Type: "cart", Cart: toCart(view)})
	if err != nil {
		h.log.WithError(err).Error("encode cart")
		return
	}
	h.mu.Lock()
	h.lastCart = msg
	h.mu.Unlock()
	h.enqueue(msg)
}

func (h *DisplayHub) Notify(n domain.Notice) {
	dto := toNotice(n)
	msg, err := json.Marshal(displayMessage{Type: "notice", Notice: &dto})
	if err != nil {
		h.log.WithError(err).Error("encode notice")
		return
	}
	h.enqueue(msg)
}

// enqueue never blocks a command handler; a saturated hub drops the message.
func (h *DisplayHub) enqueue(msg []byte) {
	select {
	case h.broadcast <- msg:
	default:
		h.log.Warn("display broadcast full, dropped")
	}
}

// Attach registers a connection and starts its pumps.
func (h *DisplayHub) Attach(conn *websocket.Conn) {
	c := &DisplayClient{hub: h, conn: conn, send: make(chan []byte, clientBuffer)}
	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	}

	go c.writePump()
	go c.readPump()
}

func (c *DisplayClient) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *DisplayClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
