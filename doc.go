// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the firstpast API server.

Firstpast is a live election service with first-past-the-post tallying:
each registered voter casts exactly one vote, counts update in real
time, and the current leaders (ties included) are readable at any
moment while the election runs.

# Starting the Server

The server runs on an embedded SQLite database by default:

	DATABASE_URL=firstpast.db go run main.go

Or against PostgreSQL:

	DATABASE_TYPE=postgres DATABASE_URL=postgres://... go run main.go

Or with flags:

	go run main.go -p 4316 -t postgres -d "postgres://..."

A .env file in the working directory is loaded at startup; real
environment variables take precedence.

# Configuration

Required settings:

  - DATABASE_URL (-d): Connection string or SQLite path
  - ADMIN_KEY_SALT (--admin-salt): Secret for admin key HMAC
  - SLUG_SALT (--slug-salt): Secret for share slug generation

Optional settings:

  - PORT (-p): Server port (default: 4316)
  - DATABASE_TYPE (-t): "sqlite" or "postgres" (default: sqlite)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - ledger: Vote tally core (one vote per voter, overflow-checked counts)
  - handlers: HTTP request handlers (elections, voting, results, devices, live feed)
  - live: Websocket hub for tally broadcasts
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response types
  - auth: Token generation and validation
  - db: Schema creation and the SQL-backed ledger store
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
