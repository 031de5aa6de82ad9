package ws

import (
	"log"
	"sync"

	"github.com/google/uuid"
)

type roomMessage struct {
	session uuid.UUID
	payload []byte
}

// Hub fans session events out to the websocket clients watching that
// session. Clients are grouped into per-session rooms; a broadcast only
// reaches the room it addresses.
type Hub struct {
	rooms      map[uuid.UUID]map[*Client]bool
	broadcast  chan roomMessage
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
	logger     *log.Logger
}

func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{
		rooms:      make(map[uuid.UUID]map[*Client]bool),
		broadcast:  make(chan roomMessage, 1024),
		register:   make(chan *Client, 128),
		unregister: make(chan *Client, 128),
		logger:     logger,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			room, ok := h.rooms[client.session]
			if !ok {
				room = make(map[*Client]bool)
				h.rooms[client.session] = room
			}
			room[client] = true
			total := len(room)
			h.mutex.Unlock()
			h.logger.Printf("component=ws action=connect session=%s clients=%d", client.session, total)

		case client := <-h.unregister:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			if room, ok := h.rooms[client.session]; ok {
				if _, ok := room[client]; ok {
					delete(room, client)
					close(client.send)
				}
				if len(room) == 0 {
					delete(h.rooms, client.session)
				}
			}
			h.mutex.Unlock()
			h.logger.Printf("component=ws action=disconnect session=%s", client.session)

		case msg := <-h.broadcast:
			h.mutex.RLock()
			snapshot := make([]*Client, 0, len(h.rooms[msg.session]))
			for c := range h.rooms[msg.session] {
				snapshot = append(snapshot, c)
			}
			h.mutex.RUnlock()

			for _, client := range snapshot {
				select {
				case client.send <- msg.payload:
				default:
					h.unregister <- client
				}
			}
		}
	}
}

func (h *Hub) Register(client *Client) {
	if h == nil {
		return
	}
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	if h == nil {
		return
	}
	h.unregister <- client
}

// Broadcast delivers the payload to every client in the session's room.
// A full buffer drops the message rather than block the caller.
func (h *Hub) Broadcast(session uuid.UUID, payload []byte) {
	if h == nil {
		return
	}
	select {
	case h.broadcast <- roomMessage{session: session, payload: payload}:
	default:
		h.logger.Printf("component=ws action=broadcast session=%s status=dropped reason=buffer_full", session)
	}
}

func (h *Hub) ClientCount(session uuid.UUID) int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.rooms[session])
}
