// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"

	"firstpast/ledger"
)

// querier is the slice of database/sql both *sql.DB and *sql.Tx satisfy,
// so the same store queries run standalone or inside a transaction.
type querier interface {
	Exec(query string, args ...any) (sql.Result, error)
	QueryRow(query string, args ...any) *sql.Row
	Query(query string, args ...any) (*sql.Rows, error)
}

// LedgerStore persists one election's ledger state (counters,
// participation flags, runner list) in SQL. It implements ledger.Store.
//
// Placeholders in every query are written $1..$n in strictly ascending
// order without reuse, so the same statements bind correctly under both
// lib/pq and modernc sqlite.
type LedgerStore struct {
	q          querier
	db         *sql.DB // nil when the store is bound to a transaction
	electionID string
}

// NewLedgerStore returns a store scoped to the given election.
func NewLedgerStore(db *sql.DB, electionID string) *LedgerStore {
	return &LedgerStore{q: db, db: db, electionID: electionID}
}

// InTx runs fn against a store bound to a single transaction. The
// transaction commits when fn returns nil and rolls back otherwise, so a
// multi-statement mutation like a vote either lands whole or not at all.
func (s *LedgerStore) InTx(fn func(ledger.Store) error) error {
	if s.db == nil {
		return fmt.Errorf("store is already transactional")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(&LedgerStore{q: tx, electionID: s.electionID}); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (s *LedgerStore) Votes(candidate ledger.ID) (uint32, error) {
	var votes int64
	err := s.q.QueryRow(`
		SELECT votes FROM tally WHERE election_id = $1 AND candidate_id = $2
	`, s.electionID, string(candidate)).Scan(&votes)

	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("query tally: %w", err)
	}
	return uint32(votes), nil
}

func (s *LedgerStore) SetVotes(candidate ledger.ID, count uint32) error {
	_, err := s.q.Exec(`
		INSERT INTO tally (election_id, candidate_id, votes)
		VALUES ($1, $2, $3)
		ON CONFLICT (election_id, candidate_id) DO UPDATE SET votes = EXCLUDED.votes
	`, s.electionID, string(candidate), int64(count))

	if err != nil {
		return fmt.Errorf("upsert tally: %w", err)
	}
	return nil
}

func (s *LedgerStore) HasVoted(voter ledger.ID) (bool, error) {
	var voted bool
	err := s.q.QueryRow(`
		SELECT voted FROM voter WHERE election_id = $1 AND voter_id = $2
	`, s.electionID, string(voter)).Scan(&voted)

	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query voter: %w", err)
	}
	return voted, nil
}

func (s *LedgerStore) MarkVoted(voter ledger.ID) error {
	_, err := s.q.Exec(`
		INSERT INTO voter (election_id, voter_id, voted)
		VALUES ($1, $2, $3)
		ON CONFLICT (election_id, voter_id) DO NOTHING
	`, s.electionID, string(voter), true)

	if err != nil {
		return fmt.Errorf("insert voter: %w", err)
	}
	return nil
}

func (s *LedgerStore) Runners() ([]ledger.ID, error) {
	rows, err := s.q.Query(`
		SELECT candidate_id FROM runner WHERE election_id = $1 ORDER BY position
	`, s.electionID)
	if err != nil {
		return nil, fmt.Errorf("query runners: %w", err)
	}
	defer rows.Close()

	var runners []ledger.ID
	for rows.Next() {
		var candidate string
		if err := rows.Scan(&candidate); err != nil {
			return nil, fmt.Errorf("scan runner: %w", err)
		}
		runners = append(runners, ledger.ID(candidate))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runners: %w", err)
	}
	return runners, nil
}

func (s *LedgerStore) AppendRunner(candidate ledger.ID) error {
	// The voting handler serializes writers per election, so read-then-
	// insert is safe here.
	var maxPos sql.NullInt64
	err := s.q.QueryRow(`
		SELECT MAX(position) FROM runner WHERE election_id = $1
	`, s.electionID).Scan(&maxPos)
	if err != nil {
		return fmt.Errorf("query runner position: %w", err)
	}

	next := int64(1)
	if maxPos.Valid {
		next = maxPos.Int64 + 1
	}

	_, err = s.q.Exec(`
		INSERT INTO runner (election_id, position, candidate_id)
		VALUES ($1, $2, $3)
	`, s.electionID, next, string(candidate))

	if err != nil {
		return fmt.Errorf("insert runner: %w", err)
	}
	return nil
}
