// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database access: connection setup, schema creation, and
the SQL-backed ledger store.

# Opening a Connection

Open selects the driver from the configured database type:

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

Supported types are "sqlite" (modernc.org/sqlite, pure Go, used for
development and tests) and "postgres" (lib/pq, used in deployment).

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The DDL sticks to the dialect subset both drivers accept.

# Tables

  - election: election metadata and lifecycle state
  - participant: registered voters (and therefore eligible candidates)
  - tally: per-candidate vote counters
  - voter: per-voter participation flags
  - runner: candidates in order of first vote received
  - device: registered devices
  - device_election: links devices to elections

tally, voter, and runner are the ledger's three state structures, keyed by
election; LedgerStore exposes them through the ledger.Store interface.

# Relationships

	election 1──* participant
	election 1──* tally
	election 1──* voter
	election 1──* runner
	device *──* election (via device_election)

All foreign keys use ON DELETE CASCADE.
*/
package db
