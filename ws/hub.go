package ws

import (
	"encoding/json"
	"log"

	"github.com/gorilla/websocket"
)

// Event is what the hub pushes to connected dashboards: a shift that
// was just ingested, or a roster file that was just built.
type Event struct {
	Type string      `json:"type"` // "shift_saved" / "roster_built"
	Data interface{} `json:"data"`
}

// Client represents one WebSocket connection.
type Client struct {
	Conn *websocket.Conn
	Send chan []byte
}

// Hub keeps the set of connected clients and broadcasts events to all
// of them. It is constructed in main and passed to the controllers.
type Hub struct {
	Clients    map[*Client]bool
	Broadcast  chan []byte
	Register   chan *Client
	Unregister chan *Client
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[*Client]bool),
		Broadcast:  make(chan []byte),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.Clients[client] = true
		case client := <-h.Unregister:
			if _, ok := h.Clients[client]; ok {
				delete(h.Clients, client)
				close(client.Send)
			}
		case message := <-h.Broadcast:
			for client := range h.Clients {
				select {
				case client.Send <- message:
				default:
					close(client.Send)
					delete(h.Clients, client)
				}
			}
		}
	}
}

// Notify marshals an event and hands it to the broadcast loop. A
// marshal failure is logged and dropped; notifications never fail the
// ingestion path.
func (h *Hub) Notify(eventType string, data interface{}) {
	b, err := json.Marshal(Event{Type: eventType, Data: data})
	if err != nil {
		log.Printf("ws: failed to marshal %s event: %v", eventType, err)
		return
	}
	h.Broadcast <- b
}
