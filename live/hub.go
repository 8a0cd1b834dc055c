// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package live

import (
	"encoding/json"
	"log/slog"
	"sync"
)

// Hub tracks live-feed subscribers per election and fans tally updates
// out to them. It is safe for concurrent use.
type Hub struct {
	mu    sync.Mutex
	rooms map[string]map[*Client]bool
}

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{
		rooms: make(map[string]map[*Client]bool),
	}
}

// Subscribe registers a client for an election's updates.
func (h *Hub) Subscribe(electionID string, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room := h.rooms[electionID]
	if room == nil {
		room = make(map[*Client]bool)
		h.rooms[electionID] = room
	}
	room[c] = true
}

// Unsubscribe removes a client. Safe to call for clients that were never
// subscribed or have already been removed.
func (h *Hub) Unsubscribe(electionID string, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room := h.rooms[electionID]
	if room == nil {
		return
	}
	delete(room, c)
	if len(room) == 0 {
		delete(h.rooms, electionID)
	}
}

// Broadcast sends a payload to every subscriber of an election. Slow
// clients drop messages rather than block the vote path.
func (h *Hub) Broadcast(electionID string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		slog.Error("failed to marshal live update", "error", err)
		return
	}

	h.mu.Lock()
	clients := make([]*Client, 0, len(h.rooms[electionID]))
	for c := range h.rooms[electionID] {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		c.enqueue(data)
	}
}

// Subscribers reports how many clients are watching an election.
func (h *Hub) Subscribers(electionID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms[electionID])
}
