package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

type WSMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// ActivationEvent is sent to subscribers whenever a version becomes active.
type ActivationEvent struct {
	Kind    string `json:"kind" example:"assessment"`
	ID      uint   `json:"id" example:"3"`
	ScopeID uint   `json:"scope_id" example:"1"`
	Version int    `json:"version" example:"2"`
}

// AllKinds is the topic of subscribers that want every activation.
const AllKinds = "*"

type Hub struct {
	mu     sync.Mutex
	topics map[string]map[*websocket.Conn]bool
}

func NewHub() *Hub {
	return &Hub{
		topics: make(map[string]map[*websocket.Conn]bool),
	}
}

func (h *Hub) AddConnection(topic string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.topics[topic] == nil {
		h.topics[topic] = make(map[*websocket.Conn]bool)
	}
	h.topics[topic][conn] = true
	log.Printf("ws: client subscribed to %q (total: %d)", topic, len(h.topics[topic]))
}

func (h *Hub) RemoveConnection(topic string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conns, ok := h.topics[topic]; ok {
		if conns[conn] {
			delete(conns, conn)
			conn.Close()
			log.Printf("ws: client unsubscribed from %q", topic)
		}
		if len(conns) == 0 {
			delete(h.topics, topic)
		}
	}
}

// Subscribers returns how many connections listen on topic.
func (h *Hub) Subscribers(topic string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.topics[topic])
}

// Broadcast writes message to every connection on topic. Connections that
// fail the write are dropped.
func (h *Hub) Broadcast(topic string, message WSMessage) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("ws: marshal error: %v", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	conns, ok := h.topics[topic]
	if !ok {
		return
	}
	for conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("ws: write error: %v", err)
			conn.Close()
			delete(conns, conn)
		}
	}
	if len(conns) == 0 {
		delete(h.topics, topic)
	}
}

// PublishActivation notifies subscribers of the event's kind and of AllKinds.
func (h *Hub) PublishActivation(event ActivationEvent) {
	msg := WSMessage{Type: "activated", Data: event}
	h.Broadcast(event.Kind, msg)
	h.Broadcast(AllKinds, msg)
}
