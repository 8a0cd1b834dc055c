// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/dustin/go-humanize"

	"firstpast/cliparse"
	"firstpast/ledger"
	"firstpast/middleware"
	"firstpast/models"
)

type ResultsHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewResultsHandler(db *sql.DB, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{db: db, cfg: cfg}
}

// GetElection handles GET /elections/:slug
// Returns election details and the candidate list.
func (h *ResultsHandler) GetElection(w http.ResponseWriter, r *http.Request) {
	shareSlug := r.PathValue("slug")
	if shareSlug == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "slug is required")
		return
	}

	var election models.Election
	err := h.db.QueryRow(`
		SELECT id, title, description, creator_name, status, share_slug, closed_at, created_at
		FROM election
		WHERE share_slug = $1
	`, shareSlug).Scan(
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

// GetTally handles GET /elections/:slug/tally/:candidateID
// Returns the candidate's current count; 0 for a candidate nobody has
// voted for. Visible while the election is open: the engine's job is the
// current standing, not a sealed result.
func (h *ResultsHandler) GetTally(w http.ResponseWriter, r *http.Request) {
	shareSlug := r.PathValue("slug")
	candidateID := r.PathValue("candidateID")
	if shareSlug == "" || candidateID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "slug and candidateID are required")
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

	// Closed tallies are frozen; only open elections have votes in
	// flight to serialize against.
	if status == models.StatusOpen {
		lock := tallyLocks.forElection(electionID)
		lock.RLock()
		defer lock.RUnlock()
	}

	votes, err := openLedger(h.db, electionID).Votes(ledger.ID(candidateID))
	if err != nil {
		slog.Error("failed to read tally", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.TallyResponse{
		CandidateID: candidateID,
		Votes:       votes,
	})
}

// GetWinners handles GET /elections/:slug/winners
// Returns every candidate tied for the highest count, in the order they
// first received a vote. Empty when no votes have been cast.
func (h *ResultsHandler) GetWinners(w http.ResponseWriter, r *http.Request) {
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

	// The winner scan is several reads; hold the read lock so a
	// concurrent vote cannot interleave between them. Closed tallies
	// are frozen and need no serialization.
	if status == models.StatusOpen {
		lock := tallyLocks.forElection(electionID)
		lock.RLock()
		defer lock.RUnlock()
	}

	winners, err := winnerEntries(h.db, electionID, openLedger(h.db, electionID))
	if err != nil {
		slog.Error("failed to compute winners", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to compute winners")
		return
	}

	total, err := totalVotes(h.db, electionID)
	if err != nil {
		slog.Error("failed to sum tallies", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.WinnersResponse{
		Winners:    winners,
		TotalVotes: total,
	})
}

// GetTurnout handles GET /elections/:slug/turnout
// Returns ballots cast against registered participants.
func (h *ResultsHandler) GetTurnout(w http.ResponseWriter, r *http.Request) {
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

	if status == models.StatusOpen {
		lock := tallyLocks.forElection(electionID)
		lock.RLock()
		defer lock.RUnlock()
	}

	total, err := totalVotes(h.db, electionID)
	if err != nil {
		slog.Error("failed to sum tallies", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	var participants int
	err = h.db.QueryRow(`
		SELECT COUNT(*) FROM participant WHERE election_id = $1
	`, electionID).Scan(&participants)
	if err != nil {
		slog.Error("failed to count participants", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.TurnoutResponse{
		BallotsCast:    total,
		Participants:   participants,
		BallotsDisplay: humanize.Comma(int64(total)) + " ballots cast",
	})
}
