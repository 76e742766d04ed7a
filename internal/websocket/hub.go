package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/Iwamergun/dentalmarket-backend/internal/app/model"
	"github.com/Iwamergun/dentalmarket-backend/pkg/logger"
)

// Event types pushed to back-office clients
const (
	EventOrderCreated       = "order_created"
	EventOrderStatusChanged = "order_status_changed"
)

// OrderEvent is the wire format of a single feed entry.
type OrderEvent struct {
	Type        string            `json:"type"`
	OrderID     uint              `json:"order_id"`
	OrderNumber string            `json:"order_number"`
	Status      model.OrderStatus `json:"status"`
	TotalAmount float64           `json:"total_amount"`
	Timestamp   time.Time         `json:"timestamp"`
}

// Client is one connected back-office session.
type Client struct {
	Hub    *Hub
	Conn   *Conn
	UserID uint
	Send   chan []byte
}

// Hub fans order events out to every connected back-office client.
// Supports multiple sessions per user.
type Hub struct {
	clients map[uint][]*Client

	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte

	mu sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uint][]*Client),
		register:   make(chan *Client, 64),
		unregister: make(chan *Client, 64),
		broadcast:  make(chan []byte, 256),
	}
}

// Run processes register/unregister/broadcast events. Call in a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.UserID] = append(h.clients[client.UserID], client)
			h.mu.Unlock()
			logger.Info("Order feed client connected", map[string]interface{}{
				"user_id":        client.UserID,
				"total_sessions": len(h.clients[client.UserID]),
			})

		case client := <-h.unregister:
			// A session can be unregistered twice: once by the buffer-full
			// drop in broadcast and again by ReadPump's deferred unregister.
			// Send is only closed when the client was still in the list.
			found := false
			h.mu.Lock()
			if clientList, ok := h.clients[client.UserID]; ok {
				newList := make([]*Client, 0, len(clientList))
				for _, c := range clientList {
					if c == client {
						found = true
					} else {
						newList = append(newList, c)
					}
				}
				if len(newList) == 0 {
					delete(h.clients, client.UserID)
				} else {
					h.clients[client.UserID] = newList
				}
			}
			h.mu.Unlock()
			if found {
				close(client.Send)
				logger.Info("Order feed client disconnected", map[string]interface{}{
					"user_id": client.UserID,
				})
			}

		case message := <-h.broadcast:
			h.mu.RLock()
			for userID, clientList := range h.clients {
				for _, client := range clientList {
					select {
					case client.Send <- message:
					default:
						// Send buffer full; drop the session rather than block the hub
						go h.Unregister(client)
						logger.Warn("Order feed client send buffer full, disconnecting", map[string]interface{}{
							"user_id": userID,
						})
					}
				}
			}
			h.mu.RUnlock()
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// OrderCreated implements service.OrderNotifier.
func (h *Hub) OrderCreated(order *model.Order) {
	h.publish(OrderEvent{
		Type:        EventOrderCreated,
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		Status:      order.Status,
		TotalAmount: order.TotalAmount,
		Timestamp:   time.Now(),
	})
}

// OrderStatusChanged implements service.OrderNotifier.
func (h *Hub) OrderStatusChanged(order *model.Order) {
	h.publish(OrderEvent{
		Type:        EventOrderStatusChanged,
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		Status:      order.Status,
		TotalAmount: order.TotalAmount,
		Timestamp:   time.Now(),
	})
}

func (h *Hub) publish(event OrderEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		logger.Error("Failed to marshal order event", err, nil)
		return
	}

	select {
	case h.broadcast <- data:
	default:
		// The feed is advisory; dropping an event must not block checkout
		logger.Warn("Order feed broadcast channel full, event dropped", map[string]interface{}{
			"order_id": event.OrderID,
			"type":     event.Type,
		})
	}
}

// ConnectedUsers returns the number of distinct users on the feed.
func (h *Hub) ConnectedUsers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
