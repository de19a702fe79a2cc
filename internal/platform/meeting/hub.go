// Package meeting provides telehealth meeting rooms. The server does not
// carry media; it hands out room join info and runs a WebSocket presence
// channel so participants see who is in the room.
package meeting

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Presence event types.
const (
	EventJoined = "participant.joined"
	EventLeft   = "participant.left"
	EventRoster = "room.roster"
)

// Event is a presence notification sent to everyone in a room.
type Event struct {
	Type      string        `json:"type"`
	Room      string        `json:"room"`
	UserID    string        `json:"userId,omitempty"`
	Name      string        `json:"name,omitempty"`
	Role      string        `json:"role,omitempty"`
	Roster    []Participant `json:"roster,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

// Participant identifies one person currently in a room.
type Participant struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}

// Client is a single WebSocket connection bound to one room.
type Client struct {
	UserID string
	Name   string
	Role   string
	Room   string
	Send   chan []byte
}

// Hub tracks which clients are in which rooms. All operations are
// thread-safe via sync.RWMutex.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*Client]struct{}
	log   zerolog.Logger
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		rooms: make(map[string]map[*Client]struct{}),
		log:   log,
	}
}

// Join adds the client to its room, announces it to everyone else, and
// sends the newcomer the current roster.
func (h *Hub) Join(client *Client) {
	h.mu.Lock()
	if h.rooms[client.Room] == nil {
		h.rooms[client.Room] = make(map[*Client]struct{})
	}
	h.rooms[client.Room][client] = struct{}{}
	h.mu.Unlock()

	h.broadcast(client.Room, Event{
		Type:      EventJoined,
		Room:      client.Room,
		UserID:    client.UserID,
		Name:      client.Name,
		Role:      client.Role,
		Timestamp: time.Now().UTC(),
	}, client)

	h.send(client, Event{
		Type:      EventRoster,
		Room:      client.Room,
		Roster:    h.Participants(client.Room),
		Timestamp: time.Now().UTC(),
	})

	h.log.Debug().Str("room", client.Room).Str("user_id", client.UserID).Msg("participant joined")
}

// Leave removes the client from its room, closes its Send channel and
// announces the departure. Calling Leave twice is a no-op.
func (h *Hub) Leave(client *Client) {
	h.mu.Lock()
	members, ok := h.rooms[client.Room]
	if !ok {
		h.mu.Unlock()
		return
	}
	if _, present := members[client]; !present {
		h.mu.Unlock()
		return
	}
	delete(members, client)
	if len(members) == 0 {
		delete(h.rooms, client.Room)
	}
	close(client.Send)
	h.mu.Unlock()

	h.broadcast(client.Room, Event{
		Type:      EventLeft,
		Room:      client.Room,
		UserID:    client.UserID,
		Name:      client.Name,
		Role:      client.Role,
		Timestamp: time.Now().UTC(),
	}, nil)

	h.log.Debug().Str("room", client.Room).Str("user_id", client.UserID).Msg("participant left")
}

// Participants returns who is currently in the room.
func (h *Hub) Participants(room string) []Participant {
	h.mu.RLock()
	defer h.mu.RUnlock()

	members := h.rooms[room]
	out := make([]Participant, 0, len(members))
	for c := range members {
		out = append(out, Participant{UserID: c.UserID, Name: c.Name, Role: c.Role})
	}
	return out
}

// RoomSize returns the number of participants in a room.
func (h *Hub) RoomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

func (h *Hub) broadcast(room string, event Event, skip *Client) {
	data, err := json.Marshal(event)
	if err != nil {
		h.log.Error().Err(err).Msg("marshaling presence event")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.rooms[room] {
		if client == skip {
			continue
		}
		select {
		case client.Send <- data:
		default:
			// Client buffer full; skip to avoid blocking.
		}
	}
}

func (h *Hub) send(client *Client, event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.log.Error().Err(err).Msg("marshaling presence event")
		return
	}
	select {
	case client.Send <- data:
	default:
	}
}
