// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"sync"

	"firstpast/db"
	"firstpast/ledger"
	"firstpast/models"
)

// electionLocks serializes tally access per election. The ledger core
// performs no locking by contract; the host owns serialization, and this
// map is how this host does it. Votes take the write lock; result reads
// take the read lock so they never observe a mid-vote state.
type electionLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.RWMutex
}

// tallyLocks is shared by every handler touching ledger state.
var tallyLocks = newElectionLocks()

func newElectionLocks() *electionLocks {
	return &electionLocks{locks: make(map[string]*sync.RWMutex)}
}

func (e *electionLocks) forElection(electionID string) *sync.RWMutex {
	e.mu.Lock()
	defer e.mu.Unlock()

	l := e.locks[electionID]
	if l == nil {
		l = &sync.RWMutex{}
		e.locks[electionID] = l
	}
	return l
}

// release drops an election's lock entry. Called once the election is
// closed and its tallies are frozen.
func (e *electionLocks) release(electionID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.locks, electionID)
}

// openLedger returns the tally ledger for an election, backed by its SQL
// rows. Callers mutating state must hold the election's lock.
func openLedger(conn *sql.DB, electionID string) *ledger.Ledger {
	return ledger.NewWithStore(db.NewLedgerStore(conn, electionID))
}

// electionBySlug resolves a share slug to an election ID and status.
// Returns sql.ErrNoRows when the slug matches nothing.
func electionBySlug(conn *sql.DB, slug string) (string, string, error) {
	var id, status string
	err := conn.QueryRow(`
		SELECT id, status FROM election WHERE share_slug = $1
	`, slug).Scan(&id, &status)
	return id, status, err
}

// totalVotes sums every candidate's counter for an election.
func totalVotes(conn *sql.DB, electionID string) (uint64, error) {
	var total sql.NullInt64
	err := conn.QueryRow(`
		SELECT SUM(votes) FROM tally WHERE election_id = $1
	`, electionID).Scan(&total)
	if err != nil {
		return 0, err
	}
	if !total.Valid {
		return 0, nil
	}
	return uint64(total.Int64), nil
}

// winnerEntries resolves the current winner set to response entries with
// usernames and counts.
func winnerEntries(conn *sql.DB, electionID string, l *ledger.Ledger) ([]models.WinnerEntry, error) {
	winners, err := l.CurrentWinners()
	if err != nil {
		return nil, err
	}

	entries := make([]models.WinnerEntry, 0, len(winners))
	for _, candidate := range winners {
		votes, err := l.Votes(candidate)
		if err != nil {
			return nil, err
		}

		var username string
		err = conn.QueryRow(`
			SELECT username FROM participant WHERE election_id = $1 AND id = $2
		`, electionID, string(candidate)).Scan(&username)
		if err != nil && err != sql.ErrNoRows {
			return nil, err
		}

		entries = append(entries, models.WinnerEntry{
			CandidateID: string(candidate),
			Username:    username,
			Votes:       votes,
		})
	}
	return entries, nil
}
