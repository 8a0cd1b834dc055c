// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"firstpast/cliparse"
	"firstpast/live"
	"firstpast/middleware"
	"firstpast/models"
)

type LiveHandler struct {
	db       *sql.DB
	cfg      cliparse.Config
	hub      *live.Hub
	upgrader websocket.Upgrader
}

func NewLiveHandler(db *sql.DB, cfg cliparse.Config, hub *live.Hub) *LiveHandler {
	return &LiveHandler{
		db:  db,
		cfg: cfg,
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// The feed is read-only public data; any origin may watch
				return true
			},
		},
	}
}

// Watch handles GET /elections/:slug/live
// Upgrades to a websocket and streams a TallyUpdate after every vote.
func (h *LiveHandler) Watch(w http.ResponseWriter, r *http.Request) {
	shareSlug := r.PathValue("slug")
	if shareSlug == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "slug is required")
		return
	}

	electionID, status, err := electionBySlug(h.db, shareSlug)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Election not found")
		return
	}
	if err != nil {
		slog.Error("failed to query election", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("websocket upgrade failed", "error", err)
		return
	}

	client := live.NewClient(conn)
	h.hub.Subscribe(electionID, client)

	slog.Info("live feed connected", "election_id", electionID)

	// Send current standings so the subscriber does not wait for the
	// next vote to see anything.
	h.sendSnapshot(electionID, status)

	client.Run(func() {
		h.hub.Unsubscribe(electionID, client)
		slog.Info("live feed disconnected", "election_id", electionID)
	})
}

func (h *LiveHandler) sendSnapshot(electionID, status string) {
	// Snapshot reads span several statements; serialize against votes
	// while the election is open.
	if status == models.StatusOpen {
		lock := tallyLocks.forElection(electionID)
		lock.RLock()
		defer lock.RUnlock()
	}

	l := openLedger(h.db, electionID)
	winners, err := winnerEntries(h.db, electionID, l)
	if err != nil {
		slog.Error("failed to build live snapshot", "error", err)
		return
	}
	total, err := totalVotes(h.db, electionID)
	if err != nil {
		slog.Error("failed to sum tallies for live snapshot", "error", err)
		return
	}

	h.hub.Broadcast(electionID, models.TallyUpdate{
		TotalVotes: total,
		Winners:    winners,
	})
}
