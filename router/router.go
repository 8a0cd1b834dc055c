// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"firstpast/cliparse"
	"firstpast/handlers"
	"firstpast/live"
	"firstpast/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// One hub shared by the vote path and the feed
	hub := live.NewHub()

	// Initialize handlers
	electionHandler := handlers.NewElectionHandler(db, cfg)
	votingHandler := handlers.NewVotingHandler(db, cfg, hub)
	resultsHandler := handlers.NewResultsHandler(db, cfg)
	liveHandler := handlers.NewLiveHandler(db, cfg, hub)
	deviceHandler := handlers.NewDeviceHandler(db, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Election management (admin operations)
	mux.HandleFunc("POST /elections", middleware.WithLogging(electionHandler.CreateElection))
	mux.HandleFunc("GET /elections/{id}/admin", middleware.WithLogging(electionHandler.GetElectionAdmin))
	mux.HandleFunc("POST /elections/{id}/publish", middleware.WithLogging(electionHandler.PublishElection))
	mux.HandleFunc("POST /elections/{id}/close", middleware.WithLogging(electionHandler.CloseElection))

	// Voting operations (public)
	mux.HandleFunc("POST /elections/{slug}/register", middleware.WithLogging(votingHandler.RegisterVoter))
	mux.HandleFunc("POST /elections/{slug}/votes", middleware.WithLogging(votingHandler.CastVote))

	// Results retrieval (public, live)
	mux.HandleFunc("GET /elections/{slug}", middleware.WithLogging(resultsHandler.GetElection))
	mux.HandleFunc("GET /elections/{slug}/tally/{candidateID}", middleware.WithLogging(resultsHandler.GetTally))
	mux.HandleFunc("GET /elections/{slug}/winners", middleware.WithLogging(resultsHandler.GetWinners))
	mux.HandleFunc("GET /elections/{slug}/turnout", middleware.WithLogging(resultsHandler.GetTurnout))

	// Live tally feed (websocket; logging middleware would hold the
	// connection's log entry open for its whole lifetime)
	mux.HandleFunc("GET /elections/{slug}/live", liveHandler.Watch)

	// Device management
	mux.HandleFunc("POST /devices/register", middleware.WithLogging(deviceHandler.Register))
	mux.HandleFunc("GET /devices/me", middleware.WithLogging(deviceHandler.GetMe))
	mux.HandleFunc("GET /devices/my-elections", middleware.WithLogging(deviceHandler.GetMyElections))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("firstpast API v1"))
	})

	return mux
}
