// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Open connects to the configured database. dbType is "sqlite" or
// "postgres"; url is a file path / DSN for sqlite or a connection string
// for postgres.
func Open(dbType, url string) (*sql.DB, error) {
	switch dbType {
	case "sqlite":
		conn, err := sql.Open("sqlite", url)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		// One connection keeps in-memory databases coherent and matches
		// sqlite's single-writer model.
		conn.SetMaxOpenConns(1)
		return conn, nil
	case "postgres":
		conn, err := sql.Open("postgres", url)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres database: %w", err)
		}
		return conn, nil
	default:
		return nil, fmt.Errorf("unknown database type %q", dbType)
	}
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS. The DDL is written in
// the dialect subset shared by sqlite and postgres.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Elections
CREATE TABLE IF NOT EXISTS election (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT,
    creator_name TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'draft' CHECK (status IN ('draft', 'open', 'closed')),
    share_slug TEXT UNIQUE,
    closed_at TIMESTAMP,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_election_share_slug ON election(share_slug);
CREATE INDEX IF NOT EXISTS idx_election_status ON election(status);

-- Participants (registered voters, who are also the candidate universe)
CREATE TABLE IF NOT EXISTS participant (
    id TEXT PRIMARY KEY,
    election_id TEXT NOT NULL REFERENCES election(id) ON DELETE CASCADE,
    username TEXT NOT NULL,
    voter_token TEXT NOT NULL,
    ip_hash TEXT,
    user_agent TEXT,
    created_at TIMESTAMP NOT NULL,
    UNIQUE (election_id, username),
    UNIQUE (election_id, voter_token)
);

CREATE INDEX IF NOT EXISTS idx_participant_election_id ON participant(election_id);

-- Vote counters, one row per candidate with at least one vote
CREATE TABLE IF NOT EXISTS tally (
    election_id TEXT NOT NULL REFERENCES election(id) ON DELETE CASCADE,
    candidate_id TEXT NOT NULL,
    votes BIGINT NOT NULL,
    PRIMARY KEY (election_id, candidate_id)
);

-- Participation flags
CREATE TABLE IF NOT EXISTS voter (
    election_id TEXT NOT NULL REFERENCES election(id) ON DELETE CASCADE,
    voter_id TEXT NOT NULL,
    voted BOOLEAN NOT NULL,
    PRIMARY KEY (election_id, voter_id)
);

-- Runner list, ordered by first vote received
CREATE TABLE IF NOT EXISTS runner (
    election_id TEXT NOT NULL REFERENCES election(id) ON DELETE CASCADE,
    position BIGINT NOT NULL,
    candidate_id TEXT NOT NULL,
    PRIMARY KEY (election_id, position)
);

-- Devices
CREATE TABLE IF NOT EXISTS device (
    id TEXT PRIMARY KEY,
    device_uuid TEXT NOT NULL UNIQUE,
    platform TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL,
    last_seen_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_device_uuid ON device(device_uuid);

-- Device to election links
CREATE TABLE IF NOT EXISTS device_election (
    device_id TEXT NOT NULL REFERENCES device(id) ON DELETE CASCADE,
    election_id TEXT NOT NULL REFERENCES election(id) ON DELETE CASCADE,
    voter_token TEXT,
    role TEXT NOT NULL,
    linked_at TIMESTAMP NOT NULL,
    PRIMARY KEY (device_id, election_id)
);
`
