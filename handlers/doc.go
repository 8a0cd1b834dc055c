// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the firstpast API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - ElectionHandler: Election lifecycle (create, publish, close)
  - VotingHandler: Voter registration and vote casting
  - ResultsHandler: Tally, winner, and turnout reads
  - LiveHandler: Websocket tally feed
  - DeviceHandler: Device registration and election history

Handlers are created via constructor functions that accept *sql.DB and
Config; VotingHandler and LiveHandler additionally share a live.Hub:

	electionHandler := handlers.NewElectionHandler(db, cfg)
	votingHandler := handlers.NewVotingHandler(db, cfg, hub)

# Election Lifecycle

Elections progress through three states: draft → open → closed

	POST /elections              → CreateElection (returns admin_key)
	POST /elections/{id}/publish → PublishElection (generates share_slug)
	POST /elections/{id}/close   → CloseElection (freezes tallies)

Admin operations require the X-Admin-Key header.

# Voting Flow

Voters interact via the share slug:

	POST /elections/{slug}/register → RegisterVoter (returns voter_token)
	POST /elections/{slug}/votes    → CastVote (one vote, ever)

Vote casting requires the X-Voter-Token header; the token is the caller
identity handed to the tally core, so the request body cannot vote as
someone else. A second vote returns 409, as does a vote for a candidate
whose counter is saturated.

# Tally Core

The one-vote-per-voter rule, overflow-checked counters, and the
tie-inclusive winner rule live in the ledger package. Handlers open a
SQL-backed ledger per election and serialize mutations with a
per-election lock; the core itself holds no locks.

# Device Tracking

Optional device tracking for native apps:

	POST /devices/register     → Register
	GET /devices/me            → GetMe
	GET /devices/my-elections  → GetMyElections

Device operations require a valid UUID in the X-Device-UUID header.
*/
package handlers
