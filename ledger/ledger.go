// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrAlreadyVoted is returned when a voter attempts a second vote.
	ErrAlreadyVoted = errors.New("voter has already cast a vote")

	// ErrVoteOverflow is returned when a candidate's counter is saturated.
	ErrVoteOverflow = errors.New("vote counter is saturated")
)

// ID is an opaque participant identity. Voters and candidates share the
// same identity space; any voter may also stand as a candidate.
type ID string

// MaxVotes is the largest count a single candidate can accumulate.
const MaxVotes = math.MaxUint32

// Ledger tallies single-choice votes: one vote per voter, unsigned
// 32-bit counters, and a tie-inclusive winner rule. It owns no locks;
// the caller is responsible for serializing access.
type Ledger struct {
	store Store
}

// New returns an empty ledger backed by an in-memory store.
func New() *Ledger {
	return NewWithStore(NewMemoryStore())
}

// NewWithStore returns a ledger over the given store. The store supplies
// the three state structures (counters, participation flags, runner list);
// the ledger supplies the transition rules.
func NewWithStore(s Store) *Ledger {
	return &Ledger{store: s}
}

// Votes returns the current count for a candidate, 0 if the candidate has
// never received a vote.
func (l *Ledger) Votes(candidate ID) (uint32, error) {
	n, err := l.store.Votes(candidate)
	if err != nil {
		return 0, fmt.Errorf("read votes for %s: %w", candidate, err)
	}
	return n, nil
}

// CastVote credits one vote from voter to candidate.
//
// It fails with ErrAlreadyVoted if the voter has participated before, and
// with ErrVoteOverflow if the candidate's counter is already at MaxVotes.
// A failing call commits nothing: the voter keeps their vote and the
// runner list is untouched.
func (l *Ledger) CastVote(candidate, voter ID) error {
	voted, err := l.store.HasVoted(voter)
	if err != nil {
		return fmt.Errorf("read participation for %s: %w", voter, err)
	}
	if voted {
		return ErrAlreadyVoted
	}

	current, err := l.store.Votes(candidate)
	if err != nil {
		return fmt.Errorf("read votes for %s: %w", candidate, err)
	}

	// Checked increment: reject before any state mutates, so a voter who
	// hits a saturated counter does not spend their vote on it.
	if current == MaxVotes {
		return ErrVoteOverflow
	}

	if err := l.store.MarkVoted(voter); err != nil {
		return fmt.Errorf("mark %s as voted: %w", voter, err)
	}

	// First vote for this candidate registers them as a runner.
	if current == 0 {
		if err := l.store.AppendRunner(candidate); err != nil {
			return fmt.Errorf("register runner %s: %w", candidate, err)
		}
	}

	if err := l.store.SetVotes(candidate, current+1); err != nil {
		return fmt.Errorf("store votes for %s: %w", candidate, err)
	}
	return nil
}

// CurrentWinners returns the candidates holding the highest count, in the
// order they first received a vote. Ties are all included. The result is
// empty only when no votes have been cast.
func (l *Ledger) CurrentWinners() ([]ID, error) {
	runners, err := l.store.Runners()
	if err != nil {
		return nil, fmt.Errorf("read runners: %w", err)
	}

	winners := []ID{}
	var highest uint32
	for _, runner := range runners {
		votes, err := l.store.Votes(runner)
		if err != nil {
			return nil, fmt.Errorf("read votes for %s: %w", runner, err)
		}
		switch {
		case votes > highest:
			highest = votes
			winners = winners[:0]
			winners = append(winners, runner)
		case votes == highest:
			// Runners always hold at least one vote, so this branch
			// never fires against the initial zero baseline.
			winners = append(winners, runner)
		}
	}
	return winners, nil
}
