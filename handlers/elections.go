// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"firstpast/auth"
	"firstpast/cliparse"
	"firstpast/middleware"
	"firstpast/models"
)

type ElectionHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewElectionHandler(db *sql.DB, cfg cliparse.Config) *ElectionHandler {
	return &ElectionHandler{db: db, cfg: cfg}
}

// CreateElection handles POST /elections
func (h *ElectionHandler) CreateElection(w http.ResponseWriter, r *http.Request) {
	var req models.CreateElectionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Validate input
	if req.Title == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title is required")
		return
	}
	if req.CreatorName == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "creator_name is required")
		return
	}

	// Generate election ID
	electionID, err := auth.GenerateID(16)
	if err != nil {
		slog.Error("failed to generate election ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create election")
		return
	}

	// Generate admin key
	adminKey := auth.GenerateAdminKey(electionID, h.cfg.AdminKeySalt)

	_, err = h.db.Exec(`
		INSERT INTO election (id, title, description, creator_name, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, electionID, req.Title, req.Description, req.CreatorName, models.StatusDraft, time.Now())

	if err != nil {
		slog.Error("failed to insert election", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create election")
		return
	}

	// Link creating device as admin (if X-Device-UUID header present)
	deviceID, err := GetOrCreateDevice(h.db, r)
	if err != nil {
		slog.Warn("failed to get/create device", "error", err)
	} else if deviceID != "" {
		if err := LinkDeviceToElection(h.db, deviceID, electionID, models.RoleAdmin, nil); err != nil {
			slog.Warn("failed to link device to election", "error", err)
		}
	}

	slog.Info("election created", "election_id", electionID, "creator", req.CreatorName)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateElectionResponse{
		ElectionID: electionID,
		AdminKey:   adminKey,
	})
}

// GetElectionAdmin handles GET /elections/:id/admin
// Returns election details for admin access using election ID and admin key
func (h *ElectionHandler) GetElectionAdmin(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("id")
	if electionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election_id is required")
		return
	}

	// Validate admin key
	adminKey := r.Header.Get("X-Admin-Key")
	if err := auth.ValidateAdminKey(electionID, adminKey, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	var election models.Election
	err := h.db.QueryRow(`
		SELECT id, title, description, creator_name, status, share_slug, closed_at, created_at
		FROM election
		WHERE id = $1
	`, electionID).Scan(
		&election.ID, &election.Title, &election.Description, &election.CreatorName,
		&election.Status, &election.ShareSlug, &election.ClosedAt, &election.CreatedAt,
	)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Election not found")
		return
	}
	if err != nil {
		slog.Error("failed to query election", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	candidates, err := listParticipants(h.db, election.ID)
	if err != nil {
		slog.Error("failed to query participants", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ElectionWithCandidates{
		Election:   election,
		Candidates: candidates,
	})
}

// PublishElection handles POST /elections/:id/publish
func (h *ElectionHandler) PublishElection(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("id")
	if electionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election_id is required")
		return
	}

	// Validate admin key
	adminKey := r.Header.Get("X-Admin-Key")
	if err := auth.ValidateAdminKey(electionID, adminKey, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	// Check election exists and is in draft status
	var status string
	err := h.db.QueryRow("SELECT status FROM election WHERE id = $1", electionID).Scan(&status)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Election not found")
		return
	}
	if err != nil {
		slog.Error("failed to query election", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if status != models.StatusDraft {
		middleware.ErrorResponse(w, http.StatusConflict, "Election is not in draft status")
		return
	}

	// Generate share slug
	shareSlug := auth.GenerateShareSlug(electionID, h.cfg.SlugSalt)

	// Update election to open status
	_, err = h.db.Exec(`
		UPDATE election
		SET status = $1, share_slug = $2
		WHERE id = $3
	`, models.StatusOpen, shareSlug, electionID)

	if err != nil {
		slog.Error("failed to publish election", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to publish election")
		return
	}

	slog.Info("election published", "election_id", electionID, "share_slug", shareSlug)

	// Build share URL (could be configurable)
	baseURL := "https://firstpast.app" // TODO: Make this configurable
	shareURL := baseURL + "/elections/" + shareSlug

	middleware.JSONResponse(w, http.StatusOK, models.PublishElectionResponse{
		ShareSlug: shareSlug,
		ShareURL:  shareURL,
	})
}

// CloseElection handles POST /elections/:id/close
// No further votes are accepted after closing; tallies are frozen as-is.
func (h *ElectionHandler) CloseElection(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("id")
	if electionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election_id is required")
		return
	}

	// Validate admin key
	adminKey := r.Header.Get("X-Admin-Key")
	if err := auth.ValidateAdminKey(electionID, adminKey, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	// Check election exists and is open
	var status string
	err := h.db.QueryRow("SELECT status FROM election WHERE id = $1", electionID).Scan(&status)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Election not found")
		return
	}
	if err != nil {
		slog.Error("failed to query election", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if status != models.StatusOpen {
		middleware.ErrorResponse(w, http.StatusConflict, "Election is not open")
		return
	}

	closedAt := time.Now()
	_, err = h.db.Exec(`
		UPDATE election
		SET status = $1, closed_at = $2
		WHERE id = $3
	`, models.StatusClosed, closedAt, electionID)

	if err != nil {
		slog.Error("failed to close election", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to close election")
		return
	}

	// Wait out any in-flight vote before reading the final standings,
	// then drop the lock entry: closed tallies are frozen.
	lock := tallyLocks.forElection(electionID)
	lock.RLock()
	winners, err := winnerEntries(h.db, electionID, openLedger(h.db, electionID))
	lock.RUnlock()
	tallyLocks.release(electionID)
	if err != nil {
		slog.Error("failed to compute winners", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to compute winners")
		return
	}

	slog.Info("election closed", "election_id", electionID, "winners", len(winners))

	middleware.JSONResponse(w, http.StatusOK, models.CloseElectionResponse{
		ClosedAt: closedAt,
		Winners:  winners,
	})
}

// listParticipants returns all registered participants for an election,
// oldest first.
func listParticipants(conn *sql.DB, electionID string) ([]models.Participant, error) {
	rows, err := conn.Query(`
		SELECT id, election_id, username, created_at
		FROM participant
		WHERE election_id = $1
		ORDER BY created_at, id
	`, electionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	participants := []models.Participant{}
	for rows.Next() {
		var p models.Participant
		if err := rows.Scan(&p.ID, &p.ElectionID, &p.Username, &p.CreatedAt); err != nil {
			return nil, err
		}
		participants = append(participants, p)
	}
	return participants, rows.Err()
}
