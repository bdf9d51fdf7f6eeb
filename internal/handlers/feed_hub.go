// nti-admin/internal/handlers/feed_hub.go
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/hamagold/nti-admin/models"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type feedMessage struct {
	Type    string             `json:"type"`
	Payload models.ActivityLog `json:"payload"`
}

type feedClient struct {
	hub  *FeedHub
	conn *websocket.Conn
	send chan []byte
}

// FeedHub pushes freshly recorded activity entries to connected
// dashboard clients. The feed is one-way: client messages are read
// only to detect disconnects.
type FeedHub struct {
	clients    map[*feedClient]bool
	broadcast  chan []byte
	register   chan *feedClient
	unregister chan *feedClient
	mu         sync.Mutex
}

func NewFeedHub() *FeedHub {
	return &FeedHub{
		clients: make(map[*feedClient]bool),
		// Buffered so entries recorded while Run is handling a
		// register or unregister are queued, not dropped.
		broadcast:  make(chan []byte, 64),
		register:   make(chan *feedClient),
		unregister: make(chan *feedClient),
	}
}

// Run owns the client set. Call it once in a goroutine at startup.
func (h *FeedHub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastActivity implements audit.Broadcaster.
func (h *FeedHub) BroadcastActivity(entry models.ActivityLog) {
	data, err := json.Marshal(feedMessage{Type: "activity", Payload: entry})
	if err != nil {
		slog.Error("failed to marshal activity for broadcast", "error", err)
		return
	}
	select {
	case h.broadcast <- data:
	default:
		// Queue full; the feed is best-effort, drop rather than block.
	}
}

func (c *feedClient) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Warn("unexpected websocket close", "error", err)
			}
			break
		}
	}
}

func (c *feedClient) writePump() {
	defer c.conn.Close()
	for message := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			slog.Error("failed to write to websocket", "error", err)
			return
		}
	}
}

// ActivityFeedWS upgrades the request and subscribes the client to the
// live activity stream.
func (a *API) ActivityFeedWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Error("failed to upgrade connection to websocket", "error", err)
		return
	}

	client := &feedClient{
		hub:  a.Hub,
		conn: conn,
		send: make(chan []byte, 256),
	}
	client.hub.register <- client

	go client.writePump()
	go client.readPump()
}
