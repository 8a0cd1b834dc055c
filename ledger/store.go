// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

// Store is the persistence boundary for a ledger's three state
// structures. Implementations provide get/insert semantics for the two
// maps and append-only access to the runner list; durability is entirely
// the implementation's concern.
//
// The ledger never calls a Store concurrently with itself, so
// implementations need no internal locking on its behalf.
type Store interface {
	// Votes returns the stored count for a candidate, 0 when absent.
	Votes(candidate ID) (uint32, error)

	// SetVotes stores the count for a candidate, replacing any previous
	// value.
	SetVotes(candidate ID, count uint32) error

	// HasVoted reports whether the voter's participation flag is set.
	HasVoted(voter ID) (bool, error)

	// MarkVoted sets the voter's participation flag.
	MarkVoted(voter ID) error

	// Runners returns every candidate with at least one vote, in the
	// order they first received one.
	Runners() ([]ID, error)

	// AppendRunner adds a candidate to the end of the runner list.
	AppendRunner(candidate ID) error
}

// MemoryStore keeps all ledger state in process memory. It is the
// construction default and never returns an error.
type MemoryStore struct {
	votes   map[ID]uint32
	voted   map[ID]bool
	runners []ID
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		votes: make(map[ID]uint32),
		voted: make(map[ID]bool),
	}
}

func (m *MemoryStore) Votes(candidate ID) (uint32, error) {
	return m.votes[candidate], nil
}

func (m *MemoryStore) SetVotes(candidate ID, count uint32) error {
	m.votes[candidate] = count
	return nil
}

func (m *MemoryStore) HasVoted(voter ID) (bool, error) {
	return m.voted[voter], nil
}

func (m *MemoryStore) MarkVoted(voter ID) error {
	m.voted[voter] = true
	return nil
}

func (m *MemoryStore) Runners() ([]ID, error) {
	return m.runners, nil
}

func (m *MemoryStore) AppendRunner(candidate ID) error {
	m.runners = append(m.runners, candidate)
	return nil
}
