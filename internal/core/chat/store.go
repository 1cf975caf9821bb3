// Package chat keeps the per-session ephemeral chat state: the
// message list shown in the assistant panel, the in-flight send guard
// and the "last generated content" pointer behind the save-as-document
// offer. Everything here is dropped on sign-out; durable history lives
// in the conversations table.
package chat

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

var ErrSendInFlight = errors.New("a send is already in flight for this session")

// Entry is one rendered chat turn
type Entry struct {
	ID       uuid.UUID `json:"id"`
	Sender   string    `json:"sender"`
	Text     string    `json:"text"`
	Analysis bool      `json:"analysis,omitempty"`
}

type sessionState struct {
	entries  []Entry
	threadID *uuid.UUID
	sending  bool

	// lastGenerated backs the create/append-document offer; cleared
	// once the content is saved.
	lastGenerated string
}

// Store holds chat state per dashboard session
type Store struct {
	mu       sync.Mutex
	sessions map[string]*sessionState
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*sessionState)}
}

func (s *Store) session(sessionID string) *sessionState {
	st, ok := s.sessions[sessionID]
	if !ok {
		st = &sessionState{}
		s.sessions[sessionID] = st
	}
	return st
}

// BeginSend marks a send in flight. A second send while one is
// outstanding is rejected, mirroring the disabled send button.
func (s *Store) BeginSend(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.session(sessionID)
	if st.sending {
		return ErrSendInFlight
	}
	st.sending = true
	return nil
}

// EndSend clears the in-flight flag
func (s *Store) EndSend(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session(sessionID).sending = false
}

// Append adds a turn to the session's message list
func (s *Store) Append(sessionID string, entry Entry) Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	st := s.session(sessionID)
	st.entries = append(st.entries, entry)
	return entry
}

// History returns the session's message list
func (s *Store) History(sessionID string) []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.session(sessionID)
	out := make([]Entry, len(st.entries))
	copy(out, st.entries)
	return out
}

// ThreadID returns the running conversation thread, if any
func (s *Store) ThreadID(sessionID string) *uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session(sessionID).threadID
}

// SetThreadID replaces the running thread id
func (s *Store) SetThreadID(sessionID string, threadID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session(sessionID).threadID = &threadID
}

// SetLastGenerated records reusable assistant content for the
// save-as-document offer.
func (s *Store) SetLastGenerated(sessionID, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session(sessionID).lastGenerated = content
}

// LastGenerated returns the pending reusable content, if any
func (s *Store) LastGenerated(sessionID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	content := s.session(sessionID).lastGenerated
	return content, content != ""
}

// ClearLastGenerated drops the pointer once the content was saved so
// the offer does not repeat for unrelated turns.
func (s *Store) ClearLastGenerated(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session(sessionID).lastGenerated = ""
}

// Clear drops all state for a session (sign-out)
func (s *Store) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}
