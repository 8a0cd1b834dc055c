// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"errors"
	"testing"
)

func mustCast(t *testing.T, l *Ledger, candidate, voter ID) {
	t.Helper()
	if err := l.CastVote(candidate, voter); err != nil {
		t.Fatalf("CastVote(%s, %s) failed: %v", candidate, voter, err)
	}
}

func votesOf(t *testing.T, l *Ledger, candidate ID) uint32 {
	t.Helper()
	n, err := l.Votes(candidate)
	if err != nil {
		t.Fatalf("Votes(%s) failed: %v", candidate, err)
	}
	return n
}

func winnersOf(t *testing.T, l *Ledger) []ID {
	t.Helper()
	w, err := l.CurrentWinners()
	if err != nil {
		t.Fatalf("CurrentWinners failed: %v", err)
	}
	return w
}

func assertWinners(t *testing.T, got, want []ID) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("Expected winners %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Expected winners %v, got %v", want, got)
		}
	}
}

func TestEmptyLedger(t *testing.T) {
	l := New()

	if n := votesOf(t, l, "nobody"); n != 0 {
		t.Errorf("Expected 0 votes for unknown candidate, got %d", n)
	}

	winners := winnersOf(t, l)
	if len(winners) != 0 {
		t.Errorf("Expected empty winner set, got %v", winners)
	}
}

func TestSingleVote(t *testing.T) {
	l := New()
	mustCast(t, l, "x", "alice")

	if n := votesOf(t, l, "x"); n != 1 {
		t.Errorf("Expected 1 vote for x, got %d", n)
	}
	assertWinners(t, winnersOf(t, l), []ID{"x"})
}

func TestOneVotePerVoter(t *testing.T) {
	l := New()
	mustCast(t, l, "x", "alice")

	// Second vote from the same voter fails even for a different
	// candidate, and no count changes.
	err := l.CastVote("y", "alice")
	if !errors.Is(err, ErrAlreadyVoted) {
		t.Fatalf("Expected ErrAlreadyVoted, got %v", err)
	}

	if n := votesOf(t, l, "x"); n != 1 {
		t.Errorf("Expected x to keep 1 vote, got %d", n)
	}
	if n := votesOf(t, l, "y"); n != 0 {
		t.Errorf("Expected y to have 0 votes, got %d", n)
	}
}

func TestRepeatVoteSameCandidate(t *testing.T) {
	l := New()
	mustCast(t, l, "x", "alice")

	if err := l.CastVote("x", "alice"); !errors.Is(err, ErrAlreadyVoted) {
		t.Fatalf("Expected ErrAlreadyVoted, got %v", err)
	}
	if n := votesOf(t, l, "x"); n != 1 {
		t.Errorf("Expected 1 vote for x, got %d", n)
	}
}

func TestTieKeepsInsertionOrder(t *testing.T) {
	l := New()
	mustCast(t, l, "x", "alice")
	mustCast(t, l, "y", "bob")

	if n := votesOf(t, l, "x"); n != 1 {
		t.Errorf("Expected 1 vote for x, got %d", n)
	}
	if n := votesOf(t, l, "y"); n != 1 {
		t.Errorf("Expected 1 vote for y, got %d", n)
	}

	// Both tied at 1, listed in the order they first received a vote.
	assertWinners(t, winnersOf(t, l), []ID{"x", "y"})
}

func TestLeaderExcludesLowerCounts(t *testing.T) {
	l := New()
	mustCast(t, l, "x", "alice")
	mustCast(t, l, "x", "bob")
	mustCast(t, l, "y", "carol")

	assertWinners(t, winnersOf(t, l), []ID{"x"})
}

func TestWinnerScenarios(t *testing.T) {
	type vote struct {
		candidate ID
		voter     ID
	}

	tests := []struct {
		name    string
		votes   []vote
		winners []ID
	}{
		{
			name:    "no votes",
			votes:   nil,
			winners: []ID{},
		},
		{
			name:    "single candidate",
			votes:   []vote{{"x", "a"}},
			winners: []ID{"x"},
		},
		{
			name:    "three-way tie",
			votes:   []vote{{"x", "a"}, {"y", "b"}, {"z", "c"}},
			winners: []ID{"x", "y", "z"},
		},
		{
			name:    "late overtake",
			votes:   []vote{{"x", "a"}, {"y", "b"}, {"y", "c"}},
			winners: []ID{"y"},
		},
		{
			name:    "tie regained after overtake",
			votes:   []vote{{"x", "a"}, {"y", "b"}, {"y", "c"}, {"x", "d"}},
			winners: []ID{"x", "y"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New()
			for _, v := range tt.votes {
				mustCast(t, l, v.candidate, v.voter)
			}
			assertWinners(t, winnersOf(t, l), tt.winners)
		})
	}
}

func TestRunnerRegisteredOnce(t *testing.T) {
	store := NewMemoryStore()
	l := NewWithStore(store)

	mustCast(t, l, "x", "alice")
	mustCast(t, l, "x", "bob")
	mustCast(t, l, "y", "carol")

	runners, err := store.Runners()
	if err != nil {
		t.Fatalf("Runners failed: %v", err)
	}
	if len(runners) != 2 || runners[0] != "x" || runners[1] != "y" {
		t.Errorf("Expected runners [x y], got %v", runners)
	}
}

func TestMonotonicCounts(t *testing.T) {
	l := New()
	voters := []ID{"a", "b", "c", "d", "e"}

	var last uint32
	for _, v := range voters {
		mustCast(t, l, "x", v)
		n := votesOf(t, l, "x")
		if n <= last {
			t.Fatalf("Count did not increase: %d after %d", n, last)
		}
		last = n
	}
	if last != uint32(len(voters)) {
		t.Errorf("Expected %d votes, got %d", len(voters), last)
	}
}

func TestVoteOverflow(t *testing.T) {
	store := NewMemoryStore()
	l := NewWithStore(store)

	// Saturate the counter directly; casting MaxVotes real votes is not
	// practical.
	if err := store.SetVotes("x", MaxVotes); err != nil {
		t.Fatalf("SetVotes failed: %v", err)
	}
	if err := store.AppendRunner("x"); err != nil {
		t.Fatalf("AppendRunner failed: %v", err)
	}

	err := l.CastVote("x", "alice")
	if !errors.Is(err, ErrVoteOverflow) {
		t.Fatalf("Expected ErrVoteOverflow, got %v", err)
	}

	if n := votesOf(t, l, "x"); n != MaxVotes {
		t.Errorf("Expected count unchanged at MaxVotes, got %d", n)
	}
}

func TestOverflowDoesNotSpendVote(t *testing.T) {
	store := NewMemoryStore()
	l := NewWithStore(store)

	if err := store.SetVotes("x", MaxVotes); err != nil {
		t.Fatalf("SetVotes failed: %v", err)
	}
	if err := store.AppendRunner("x"); err != nil {
		t.Fatalf("AppendRunner failed: %v", err)
	}

	if err := l.CastVote("x", "alice"); !errors.Is(err, ErrVoteOverflow) {
		t.Fatalf("Expected ErrVoteOverflow, got %v", err)
	}

	// The failed attempt must not mark alice as having voted; she can
	// still vote for someone else.
	voted, err := store.HasVoted("alice")
	if err != nil {
		t.Fatalf("HasVoted failed: %v", err)
	}
	if voted {
		t.Error("Overflow attempt should not set the participation flag")
	}

	mustCast(t, l, "y", "alice")
	if n := votesOf(t, l, "y"); n != 1 {
		t.Errorf("Expected 1 vote for y, got %d", n)
	}
}

func TestVotesForUnknownCandidateIsZero(t *testing.T) {
	l := New()
	mustCast(t, l, "x", "alice")

	if n := votesOf(t, l, "never-voted-for"); n != 0 {
		t.Errorf("Expected 0 votes, got %d", n)
	}
}
