// Package session holds the process-wide application state the
// dashboard screens read: authenticated identity, current client,
// UI preferences and the live notification feed subscription. State
// changes go through typed subscriptions instead of ambient globals.
package session

import (
	"sync"

	"github.com/google/uuid"

	"github.com/MuhamadAgungGumelar/ai-assistant-dashboard-be/internal/models"
)

// Identity is the authenticated end-user session, distinct from the
// business client record.
type Identity struct {
	UserID       uuid.UUID `json:"user_id"`
	SessionToken string    `json:"-"`
}

// Snapshot is an immutable view of the application state
type Snapshot struct {
	Identity    *Identity      `json:"identity,omitempty"`
	Client      *models.Client `json:"client,omitempty"`
	Loading     bool           `json:"loading"`
	Theme       string         `json:"theme"`
	SidebarMode string         `json:"sidebar_mode"`
}

// Listener receives a snapshot after every state change
type Listener func(Snapshot)

// ChatClearer is implemented by the chat session store so sign-out can
// drop the ephemeral chat history.
type ChatClearer interface {
	Clear(sessionID string)
}

// State is the application-state container. Initialized before any
// route renders; Loading gates routing until the initial identity
// check resolves.
type State struct {
	mu sync.RWMutex

	identity    *Identity
	client      *models.Client
	loading     bool
	theme       string
	sidebarMode string

	listeners  map[int]Listener
	nextListen int

	feedCancel func()
	chat       ChatClearer
}

// NewState creates state in the loading phase with default preferences
func NewState(chat ChatClearer) *State {
	return &State{
		loading:     true,
		theme:       models.ThemeLight,
		sidebarMode: models.SidebarNormal,
		listeners:   make(map[int]Listener),
		chat:        chat,
	}
}

// Subscribe registers a listener and returns its cancel func
func (s *State) Subscribe(fn Listener) (cancel func()) {
	s.mu.Lock()
	id := s.nextListen
	s.nextListen++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// Snapshot returns the current state
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *State) snapshotLocked() Snapshot {
	return Snapshot{
		Identity:    s.identity,
		Client:      s.client,
		Loading:     s.loading,
		Theme:       s.theme,
		SidebarMode: s.sidebarMode,
	}
}

func (s *State) notifyLocked() {
	snap := s.snapshotLocked()
	for _, fn := range s.listeners {
		fn(snap)
	}
}

// FinishLoading clears the loading gate once the initial identity
// check resolved.
func (s *State) FinishLoading() {
	s.mu.Lock()
	s.loading = false
	s.notifyLocked()
	s.mu.Unlock()
}

// Loading reports whether routing is still gated
func (s *State) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// SignIn installs the authenticated identity and its client
func (s *State) SignIn(identity Identity, client *models.Client) {
	s.mu.Lock()
	s.identity = &identity
	s.setClientLocked(client)
	s.notifyLocked()
	s.mu.Unlock()
}

// SetClient replaces the current client. The notification feed bound
// to the previous client is unsubscribed.
func (s *State) SetClient(client *models.Client) {
	s.mu.Lock()
	s.setClientLocked(client)
	s.notifyLocked()
	s.mu.Unlock()
}

func (s *State) setClientLocked(client *models.Client) {
	if s.feedCancel != nil {
		s.feedCancel()
		s.feedCancel = nil
	}
	s.client = client
	if client != nil {
		if client.Theme != "" {
			s.theme = client.Theme
		}
		if client.SidebarMode != "" {
			s.sidebarMode = client.SidebarMode
		}
	}
}

// Client returns the current client, if any
func (s *State) Client() *models.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.client
}

// Identity returns the current identity, if any
func (s *State) Identity() *Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity
}

// AttachFeed records the cancel func of the live notification feed so
// client change and sign-out tear it down.
func (s *State) AttachFeed(cancel func()) {
	s.mu.Lock()
	if s.feedCancel != nil {
		s.feedCancel()
	}
	s.feedCancel = cancel
	s.mu.Unlock()
}

// SetTheme switches between light and dark
func (s *State) SetTheme(theme string) {
	s.mu.Lock()
	s.theme = theme
	s.notifyLocked()
	s.mu.Unlock()
}

// ToggleSidebar advances the 3-state sidebar cycle
// normal → expanded → hidden → normal.
func (s *State) ToggleSidebar() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.sidebarMode {
	case models.SidebarNormal:
		s.sidebarMode = models.SidebarExpanded
	case models.SidebarExpanded:
		s.sidebarMode = models.SidebarHidden
	default:
		s.sidebarMode = models.SidebarNormal
	}
	s.notifyLocked()
	return s.sidebarMode
}

// SignOut clears identity, client and session-scoped ephemeral state
// (chat history), and tears down the notification feed.
func (s *State) SignOut() {
	s.mu.Lock()
	sessionID := ""
	if s.identity != nil {
		sessionID = s.identity.SessionToken
	}
	s.identity = nil
	s.setClientLocked(nil)
	s.notifyLocked()
	s.mu.Unlock()

	if s.chat != nil && sessionID != "" {
		s.chat.Clear(sessionID)
	}
}
