package service

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/wldnd519/BE/internal/model"
)

type WSClient struct {
	Conn     *websocket.Conn
	SeniorID string
	Name     string
	Region   model.Region
	Send     chan []byte
}

func NewWSClient(conn *websocket.Conn, seniorID, name string, region model.Region) *WSClient {
	return &WSClient{Conn: conn, SeniorID: seniorID, Name: name, Region: region, Send: make(chan []byte, 64)}
}

type regionMessage struct {
	region model.Region
	data   []byte
}

// WSHub owns the set of connected clients. Membership changes and
// broadcasts are serialised through Run.
type WSHub struct {
	clients    map[*WSClient]bool
	register   chan *WSClient
	unregister chan *WSClient
	broadcast  chan regionMessage
	mu         sync.RWMutex
	done       chan struct{}
	logger     *slog.Logger
}

func NewWSHub(logger *slog.Logger) *WSHub {
	return &WSHub{
		clients:    make(map[*WSClient]bool),
		register:   make(chan *WSClient),
		unregister: make(chan *WSClient),
		broadcast:  make(chan regionMessage, 256),
		done:       make(chan struct{}),
		logger:     logger.With("component", "ws"),
	}
}

func (h *WSHub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			n := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("client connected", "senior", client.Name, "region", client.Region, "online", n)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			n := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("client disconnected", "senior", client.Name, "online", n)

		case msg := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				if msg.region != "" && client.Region != msg.region {
					continue
				}
				select {
				case client.Send <- msg.data:
				default:
					// Slow consumer; drop it rather than block the hub.
					close(client.Send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()

		case <-h.done:
			return
		}
	}
}

func (h *WSHub) Shutdown() {
	close(h.done)
}

func (h *WSHub) Register(client *WSClient) {
	select {
	case h.register <- client:
	case <-h.done:
	}
}

func (h *WSHub) Unregister(client *WSClient) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Broadcast sends event to every connected client.
func (h *WSHub) Broadcast(event *model.WSEvent) {
	h.BroadcastToRegion("", event)
}

// BroadcastToRegion sends event to clients of region only. An empty region
// means everyone.
func (h *WSHub) BroadcastToRegion(region model.Region, event *model.WSEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("marshal ws event", "type", event.Type, "error", err)
		return
	}
	select {
	case h.broadcast <- regionMessage{region: region, data: data}:
	case <-h.done:
	}
}

// SendTo queues data for one client. It reports false when the client is no
// longer registered or its buffer is full.
func (h *WSHub) SendTo(client *WSClient, data []byte) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if !h.clients[client] {
		return false
	}
	select {
	case client.Send <- data:
		return true
	default:
		return false
	}
}

func (h *WSHub) OnlineCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// OnlineByRegion counts connected clients per region.
func (h *WSHub) OnlineByRegion() map[model.Region]int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make(map[model.Region]int)
	for c := range h.clients {
		out[c.Region]++
	}
	return out
}
