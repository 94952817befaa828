// Package session keeps the per-conversation pending request state
// between the "send URL" and "pick quality" steps. Entries live in
// memory only and are request-scoped: a terminating job always removes
// its entry, so a conversation can never get stuck holding a stale URL.
package session

import (
	"sync"
	"time"
)

// Entry is the pending request for one conversation.
type Entry struct {
	URL       string
	CreatedAt time.Time

	// active is set once a job has claimed the entry, so a racing
	// second quality selection cannot start a duplicate job.
	active bool
}

type Store struct {
	mu      sync.Mutex
	entries map[int64]*Entry
}

func NewStore() *Store {
	return &Store{entries: make(map[int64]*Entry)}
}

// Put records the pending URL for a conversation, overwriting any
// stale entry from a previous message.
func (s *Store) Put(chatID int64, url string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[chatID] = &Entry{URL: url, CreatedAt: time.Now()}
}

// Begin claims the pending entry for a job. It returns false when
// there is no entry or the entry is already driving a job.
func (s *Store) Begin(chatID int64) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[chatID]
	if !ok || entry.active {
		return "", false
	}
	entry.active = true
	return entry.URL, true
}

// Remove drops the conversation's entry. Safe to call on every job
// exit path regardless of whether an entry exists.
func (s *Store) Remove(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, chatID)
}

// Pending reports whether a conversation has an unclaimed entry.
func (s *Store) Pending(chatID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[chatID]
	return ok && !entry.active
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
