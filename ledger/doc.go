// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ledger implements the deterministic vote-tally core.

Each participant casts a single vote for one candidate; the ledger
accumulates per-candidate counts and reports the current leader(s) under a
tie-inclusive rule.

# Usage

	l := ledger.New()

	if err := l.CastVote("candidate-a", "voter-1"); err != nil {
		// ledger.ErrAlreadyVoted or ledger.ErrVoteOverflow
	}

	votes, _ := l.Votes("candidate-a") // 1
	winners, _ := l.CurrentWinners()   // ["candidate-a"]

# Rules

  - One vote per voter. A second attempt fails with ErrAlreadyVoted and
    changes nothing.
  - Counters are unsigned 32-bit and never wrap. An increment at MaxVotes
    fails with ErrVoteOverflow before any state mutates.
  - A candidate joins the runner list the moment their count goes from
    zero to one, and is listed exactly once.
  - CurrentWinners returns every candidate tied for the highest count, in
    the order they first received a vote. It is empty only when no votes
    have been cast.

# State and storage

Ledger state lives behind the Store interface: a count per candidate, a
participation flag per voter, and the append-only runner list. The
construction default is an in-memory store; db.LedgerStore persists the
same structures in SQL, scoped to one election.

The ledger performs no locking. Callers serialize access; in this server a
per-election mutex in the voting handler does so.
*/
package ledger
