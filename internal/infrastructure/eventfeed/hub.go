package eventfeed

import (
	"sync"

	"github.com/rs/zerolog"
)

// Broadcaster publishes a FeedEvent to whichever clients are
// subscribed to its topic — a single topic axis, since the debug feed
// has no per-tenant routing requirement.
type Broadcaster interface {
	Broadcast(event *FeedEvent)
}

// Hub manages client connections and topic subscriptions.
type Hub struct {
	clients map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan *FeedEvent

	byTopic map[Topic]map[*Client]bool

	log zerolog.Logger
	mu  sync.RWMutex
}

// NewHub creates a Hub. Call Run in a goroutine to start it.
func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *FeedEvent, 256),
		byTopic:    make(map[Topic]map[*Client]bool),
		log:        log,
	}
}

// Run processes registrations, unregistrations, and broadcasts until
// the caller stops feeding its channels (it never returns on its own).
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.registerClient(c)
		case c := <-h.unregister:
			h.unregisterClient(c)
		case event := <-h.broadcast:
			h.broadcastEvent(event)
		}
	}
}

func (h *Hub) registerClient(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = true
	h.log.Debug().Str("client_id", c.id).Int("total_clients", len(h.clients)).Msg("eventfeed client registered")
}

func (h *Hub) unregisterClient(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)

	c.subs.mu.RLock()
	for topic := range c.subs.topics {
		if clients, ok := h.byTopic[topic]; ok {
			delete(clients, c)
			if len(clients) == 0 {
				delete(h.byTopic, topic)
			}
		}
	}
	c.subs.mu.RUnlock()

	h.log.Debug().Str("client_id", c.id).Int("total_clients", len(h.clients)).Msg("eventfeed client unregistered")
}

// Broadcast implements Broadcaster.
func (h *Hub) Broadcast(event *FeedEvent) {
	h.broadcast <- event
}

func (h *Hub) broadcastEvent(event *FeedEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients, ok := h.byTopic[event.Topic]
	if !ok {
		return
	}
	for c := range clients {
		select {
		case c.send <- event:
		default:
			h.log.Warn().Str("client_id", c.id).Str("event_type", event.Type).Msg("eventfeed client buffer full, dropping message")
		}
	}
}

// Subscribe adds topic to c's subscription set.
func (h *Hub) Subscribe(c *Client, topic Topic) {
	h.mu.Lock()
	defer h.mu.Unlock()

	c.subs.mu.Lock()
	defer c.subs.mu.Unlock()

	c.subs.topics[topic] = true
	if h.byTopic[topic] == nil {
		h.byTopic[topic] = make(map[*Client]bool)
	}
	h.byTopic[topic][c] = true
}

// Unsubscribe removes topic from c's subscription set.
func (h *Hub) Unsubscribe(c *Client, topic Topic) {
	h.mu.Lock()
	defer h.mu.Unlock()

	c.subs.mu.Lock()
	defer c.subs.mu.Unlock()

	delete(c.subs.topics, topic)
	if clients, ok := h.byTopic[topic]; ok {
		delete(clients, c)
		if len(clients) == 0 {
			delete(h.byTopic, topic)
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
