package notifications

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"

	"worklane/middleware"
	"worklane/models"
)

type Client struct {
	Conn   *websocket.Conn
	Send   chan []byte
	UserID string
}

type pushMsg struct {
	UserID string
	Data   []byte
}

// Hub fans freshly created notifications out to the WebSocket
// connections of the user they belong to. A user may hold several
// connections (tabs, devices); each gets its own copy.
type Hub struct {
	users      map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	push       chan pushMsg
	done       chan struct{}
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		users:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		push:       make(chan pushMsg),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			return

		case c := <-h.register:
			h.mu.Lock()
			if h.users[c.UserID] == nil {
				h.users[c.UserID] = make(map[*Client]bool)
			}
			h.users[c.UserID][c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			if conns := h.users[c.UserID]; conns != nil && conns[c] {
				delete(conns, c)
				close(c.Send)
				if len(conns) == 0 {
					delete(h.users, c.UserID)
				}
			}
			h.mu.Unlock()

		case m := <-h.push:
			h.mu.Lock()
			for c := range h.users[m.UserID] {
				select {
				case c.Send <- m.Data:
				default:
					close(c.Send)
					delete(h.users[m.UserID], c)
				}
			}
			h.mu.Unlock()
		}
	}
}

func (h *Hub) Stop() {
	close(h.done)
	h.mu.Lock()
	for _, conns := range h.users {
		for c := range conns {
			close(c.Send)
		}
	}
	h.users = make(map[string]map[*Client]bool)
	h.mu.Unlock()
}

// Push delivers a notification to the recipient's live connections, if
// any. Offline users just read the feed later.
func (h *Hub) Push(n models.Notification) {
	data, err := json.Marshal(n)
	if err != nil {
		log.Printf("notifications: marshal error: %v", err)
		return
	}
	select {
	case h.push <- pushMsg{UserID: n.UserID, Data: data}:
	case <-h.done:
	}
}

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// StreamHandler upgrades an authenticated request to a WebSocket and
// streams the caller's notifications until the client hangs up.
func StreamHandler(hub *Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		userID := middleware.UserID(r.Context())
		if userID == "" {
			http.Error(w, "Missing token", http.StatusUnauthorized)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("notifications: upgrade:", err)
			return
		}

		client := &Client{
			Conn:   conn,
			Send:   make(chan []byte, 16),
			UserID: userID,
		}
		hub.register <- client

		go client.writePump()
		client.readPump(hub)
	}
}

func (c *Client) writePump() {
	for data := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
	c.Conn.WriteMessage(websocket.CloseMessage, nil)
}

// readPump drains the connection so close frames are seen; clients
// never send anything meaningful on this stream.
func (c *Client) readPump(hub *Hub) {
	defer func() {
		hub.unregister <- c
		c.Conn.Close()
	}()
	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			return
		}
	}
}
