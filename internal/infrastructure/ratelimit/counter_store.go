// Package ratelimit implements the in-process fixed-window rate limiting that
// backs the request admission pipeline: a counter store keyed by client, a
// window policy evaluated against it, and a background sweeper that evicts
// expired counters.
package ratelimit

import (
	"sync"
	"time"
)

// Record is the counter state for one client key within the active window.
type Record struct {
	Count   int
	ResetAt time.Time
}

// Entry pairs a client key with its record, for sweeping and introspection.
type Entry struct {
	Key    string
	Record Record
}

// CounterStore holds rate-limit state keyed by client. It is safe for
// concurrent use; Update runs its callback under the store lock so a
// read-decide-write sequence is atomic per call. The store is purely
// in-memory: a process restart clears all counters.
type CounterStore struct {
	mu      sync.Mutex
	records map[string]Record
}

// NewCounterStore creates an empty counter store.
func NewCounterStore() *CounterStore {
	return &CounterStore{records: make(map[string]Record)}
}

// Get returns the record for key and whether one exists.
func (s *CounterStore) Get(key string) (Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[key]
	return rec, ok
}

// Set stores the record for key.
func (s *CounterStore) Set(key string, rec Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[key] = rec
}

// Delete removes the record for key.
func (s *CounterStore) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, key)
}

// Update atomically applies fn to the record for key. fn receives the current
// record and whether it exists, and returns the new record and whether it
// should be written back. The entire call holds the store lock, so two
// concurrent updates for the same key can never interleave their
// read-decide-write sequences.
func (s *CounterStore) Update(key string, fn func(rec Record, exists bool) (Record, bool)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[key]
	if next, write := fn(rec, ok); write {
		s.records[key] = next
	}
}

// Entries returns a snapshot of all records.
func (s *CounterStore) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := make([]Entry, 0, len(s.records))
	for key, rec := range s.records {
		entries = append(entries, Entry{Key: key, Record: rec})
	}
	return entries
}

// DeleteExpired removes every record whose window has already elapsed at now
// and returns how many were removed. The expiry check and the delete happen
// under one lock acquisition, so a record refreshed concurrently is never
// evicted.
func (s *CounterStore) DeleteExpired(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for key, rec := range s.records {
		if now.After(rec.ResetAt) {
			delete(s.records, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked keys.
func (s *CounterStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}
