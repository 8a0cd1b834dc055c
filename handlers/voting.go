// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"firstpast/auth"
	"firstpast/cliparse"
	"firstpast/db"
	"firstpast/ledger"
	"firstpast/live"
	"firstpast/middleware"
	"firstpast/models"
)

type VotingHandler struct {
	db  *sql.DB
	cfg cliparse.Config
	hub *live.Hub
}

func NewVotingHandler(db *sql.DB, cfg cliparse.Config, hub *live.Hub) *VotingHandler {
	return &VotingHandler{db: db, cfg: cfg, hub: hub}
}

// RegisterVoter handles POST /elections/:slug/register
// Issues the caller a participant ID and a voter token. Registered
// participants are also the eligible candidates for the election.
func (h *VotingHandler) RegisterVoter(w http.ResponseWriter, r *http.Request) {
	shareSlug := r.PathValue("slug")
	if shareSlug == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "slug is required")
		return
	}

	// Parse request
	var req models.RegisterVoterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Username == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "username is required")
		return
	}

	// Validate username (basic validation)
	if len(req.Username) < 2 || len(req.Username) > 50 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "username must be 2-50 characters")
		return
	}

	// Find election by share slug
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

	// Can only register for open elections
	if status != models.StatusOpen {
		middleware.ErrorResponse(w, http.StatusConflict, "Election is not open for voting")
		return
	}

	// Generate identity
	participantID, err := auth.GenerateID(16)
	if err != nil {
		slog.Error("failed to generate participant ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register")
		return
	}
	voterToken, err := auth.GenerateVoterToken()
	if err != nil {
		slog.Error("failed to generate voter token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	clientIP := middleware.GetClientIP(r)
	ipHash := auth.HashIP(clientIP, h.cfg.AdminKeySalt) // Reuse admin salt for IP hashing
	userAgent := r.UserAgent()

	// Insert participant (UNIQUE constraint will prevent duplicates)
	_, err = h.db.Exec(`
		INSERT INTO participant (id, election_id, username, voter_token, ip_hash, user_agent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, participantID, electionID, req.Username, voterToken, ipHash, userAgent, time.Now())

	if err != nil {
		// Uniqueness violation message differs per driver
		if strings.Contains(err.Error(), "UNIQUE constraint failed") ||
			strings.Contains(err.Error(), "duplicate key value violates unique constraint") {
			middleware.ErrorResponse(w, http.StatusConflict, "Username already taken")
			return
		}
		slog.Error("failed to insert participant", "error", err, "election_id", electionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	// Link device to election as voter (if X-Device-UUID header present)
	deviceID, err := GetOrCreateDevice(h.db, r)
	if err != nil {
		slog.Warn("failed to get/create device", "error", err)
		// Non-fatal: registration succeeded, just no device linking
	} else if deviceID != "" {
		if err := LinkDeviceToElection(h.db, deviceID, electionID, models.RoleVoter, &voterToken); err != nil {
			slog.Warn("failed to link device to election", "error", err)
		}
	}

	slog.Info("voter registered", "election_id", electionID, "username", req.Username)

	middleware.JSONResponse(w, http.StatusCreated, models.RegisterVoterResponse{
		ParticipantID: participantID,
		VoterToken:    voterToken,
	})
}

// CastVote handles POST /elections/:slug/votes
// The voter identity comes from the X-Voter-Token header, never from the
// request body: a ballot cannot choose who it is from.
func (h *VotingHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	shareSlug := r.PathValue("slug")
	if shareSlug == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "slug is required")
		return
	}

	// Get voter token from header
	voterToken := r.Header.Get("X-Voter-Token")
	if voterToken == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Voter-Token header required")
		return
	}
	if err := auth.ValidateVoterToken(voterToken); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid voter token")
		return
	}

	// Parse request
	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.CandidateID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "candidate_id is required")
		return
	}

	// Find election by share slug
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

	// Can only vote on open elections
	if status != models.StatusOpen {
		middleware.ErrorResponse(w, http.StatusConflict, "Election is not open for voting")
		return
	}

	// Resolve the caller's identity from their token
	var voterID string
	err = h.db.QueryRow(`
		SELECT id FROM participant WHERE election_id = $1 AND voter_token = $2
	`, electionID, voterToken).Scan(&voterID)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid voter token for this election")
		return
	}
	if err != nil {
		slog.Error("failed to resolve voter token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	// The candidate must be a registered participant
	var candidateExists bool
	err = h.db.QueryRow(`
		SELECT EXISTS(
			SELECT 1 FROM participant
			WHERE election_id = $1 AND id = $2
		)
	`, electionID, req.CandidateID).Scan(&candidateExists)

	if err != nil {
		slog.Error("failed to verify candidate", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !candidateExists {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Unknown candidate_id: "+req.CandidateID)
		return
	}

	// The ledger core is single-threaded by contract; serialize per
	// election around it.
	lock := tallyLocks.forElection(electionID)
	lock.Lock()
	defer lock.Unlock()

	// The vote's three mutations (participation flag, runner entry,
	// counter) land in one transaction: a failing vote commits nothing.
	store := db.NewLedgerStore(h.db, electionID)
	err = store.InTx(func(s ledger.Store) error {
		return ledger.NewWithStore(s).CastVote(ledger.ID(req.CandidateID), ledger.ID(voterID))
	})

	switch {
	case errors.Is(err, ledger.ErrAlreadyVoted):
		middleware.ErrorResponse(w, http.StatusConflict, "You have already voted in this election")
		return
	case errors.Is(err, ledger.ErrVoteOverflow):
		middleware.ErrorResponse(w, http.StatusConflict, "Candidate's vote counter is saturated")
		return
	case err != nil:
		slog.Error("failed to cast vote", "error", err, "election_id", electionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to cast vote")
		return
	}

	l := ledger.NewWithStore(store)
	votes, err := l.Votes(ledger.ID(req.CandidateID))
	if err != nil {
		slog.Error("failed to read tally", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to read tally")
		return
	}

	slog.Info("vote cast", "election_id", electionID, "candidate_id", req.CandidateID)

	h.broadcastTally(electionID, req.CandidateID, votes, l)

	middleware.JSONResponse(w, http.StatusCreated, models.CastVoteResponse{
		CandidateID: req.CandidateID,
		Votes:       votes,
		Message:     "Vote recorded",
	})
}

// broadcastTally pushes the post-vote standings to live subscribers.
// Failures are logged, never surfaced to the voter.
func (h *VotingHandler) broadcastTally(electionID, candidateID string, votes uint32, l *ledger.Ledger) {
	if h.hub == nil || h.hub.Subscribers(electionID) == 0 {
		return
	}

	winners, err := winnerEntries(h.db, electionID, l)
	if err != nil {
		slog.Error("failed to build live update", "error", err)
		return
	}
	total, err := totalVotes(h.db, electionID)
	if err != nil {
		slog.Error("failed to sum tallies for live update", "error", err)
		return
	}

	h.hub.Broadcast(electionID, models.TallyUpdate{
		CandidateID: candidateID,
		Votes:       votes,
		TotalVotes:  total,
		Winners:     winners,
	})
}
