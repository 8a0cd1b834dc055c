// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the firstpast API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

# Endpoints

Health:

	GET /health

Election management (admin, requires X-Admin-Key):

	POST /elections              - Create election
	GET  /elections/{id}/admin   - Get election details
	POST /elections/{id}/publish - Open for voting
	POST /elections/{id}/close   - Close voting

Voting (public, uses share slug):

	POST /elections/{slug}/register - Register a voter
	POST /elections/{slug}/votes    - Cast a vote (requires X-Voter-Token)

Results (public, live while the election is open):

	GET /elections/{slug}                      - Election info and candidates
	GET /elections/{slug}/tally/{candidateID}  - Per-candidate count
	GET /elections/{slug}/winners              - Current leaders (ties included)
	GET /elections/{slug}/turnout              - Ballots cast and participant count
	GET /elections/{slug}/live                 - Websocket tally feed

Device management:

	POST /devices/register    - Register device
	GET  /devices/me          - Get device info
	GET  /devices/my-elections - List device's elections

# Handler Initialization

The router creates handler instances with dependency injection:

	hub := live.NewHub()
	electionHandler := handlers.NewElectionHandler(db, cfg)
	votingHandler := handlers.NewVotingHandler(db, cfg, hub)
	resultsHandler := handlers.NewResultsHandler(db, cfg)
	liveHandler := handlers.NewLiveHandler(db, cfg, hub)
	deviceHandler := handlers.NewDeviceHandler(db, cfg)

All handlers receive the database connection and configuration. The
voting handler and the live feed handler share one broadcast hub so
each accepted vote reaches every open feed.
*/
package router
