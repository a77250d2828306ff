// Package session implements the auth state holder: per-session state
// tracking the current user, an immutable snapshot view, a subscription
// channel for state transitions, and the in-memory booking history owned by
// the session. Sessions live for the lifetime of the process; nothing here
// is persisted.
package session

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"kzone-booking-backend/internal/models"
)

// State is the auth state machine position
type State string

const (
	StateAnonymous     State = "anonymous"
	StateLoading       State = "loading"
	StateAuthenticated State = "authenticated"
	StateError         State = "error"
)

// Event types delivered to subscribers, one per transition
const (
	EventAuthState    = "auth_state"
	EventBookingAdded = "booking_added"
	EventProfile      = "profile_updated"
)

// Event is a session state-change notification
type Event struct {
	Type    string              `json:"type"`
	State   State               `json:"state,omitempty"`
	User    *models.UserProfile `json:"user,omitempty"`
	Booking *models.Booking     `json:"booking,omitempty"`
	Message string              `json:"message,omitempty"`
}

// Snapshot is an immutable view of a session
type Snapshot struct {
	State           State               `json:"state"`
	Authenticated   bool                `json:"authenticated"`
	User            *models.UserProfile `json:"user,omitempty"`
	Error           string              `json:"error,omitempty"`
	BookingHistory  []models.Booking    `json:"booking_history"`
}

// Session holds one signed-in client's auth state. All mutation goes through
// the manager; reads take a snapshot.
type Session struct {
	mu      sync.RWMutex
	id      string
	token   string
	state   State
	errMsg  string
	user    *models.UserProfile
	history []models.Booking
	subs    map[int]chan Event
	nextSub int
}

func newSession() *Session {
	return &Session{
		id:    uuid.New().String(),
		state: StateLoading,
		subs:  make(map[int]chan Event),
	}
}

// ID returns the session identifier
func (s *Session) ID() string {
	return s.id
}

// Token returns the session's provider token
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Snapshot returns an immutable copy of the session state
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		State:          s.state,
		Authenticated:  s.state == StateAuthenticated,
		Error:          s.errMsg,
		BookingHistory: append([]models.Booking(nil), s.history...),
	}
	if s.user != nil {
		u := *s.user
		snap.User = &u
	}
	return snap
}

// Subscribe registers for state-transition events. The returned cancel
// function must be called when the subscriber goes away. Slow subscribers
// drop events rather than block the session.
func (s *Session) Subscribe() (<-chan Event, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan Event, 16)
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(ch)
		}
	}
	return ch, cancel
}

// AddBooking appends a booking to the session's history
func (s *Session) AddBooking(b models.Booking) error {
	s.mu.Lock()
	if s.state != StateAuthenticated {
		s.mu.Unlock()
		return fmt.Errorf("session is not authenticated")
	}
	s.history = append(s.history, b)
	s.mu.Unlock()

	s.emit(Event{Type: EventBookingAdded, State: StateAuthenticated, Booking: &b})
	return nil
}

// History returns a copy of the session's booking history
func (s *Session) History() []models.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Booking(nil), s.history...)
}

func (s *Session) setAuthenticated(user *models.UserProfile, token string) {
	s.mu.Lock()
	s.state = StateAuthenticated
	s.errMsg = ""
	s.user = user
	s.token = token
	s.mu.Unlock()

	s.emit(Event{Type: EventAuthState, State: StateAuthenticated, User: user})
}

func (s *Session) setError(msg string) {
	s.mu.Lock()
	s.state = StateError
	s.errMsg = msg
	s.user = nil
	s.mu.Unlock()

	s.emit(Event{Type: EventAuthState, State: StateError, Message: msg})
}

// clear resets the session to its pre-sign-in value: anonymous, no user,
// empty history
func (s *Session) clear() {
	s.mu.Lock()
	s.state = StateAnonymous
	s.errMsg = ""
	s.user = nil
	s.token = ""
	s.history = nil
	s.mu.Unlock()

	s.emit(Event{Type: EventAuthState, State: StateAnonymous})
}

func (s *Session) setUser(user *models.UserProfile) {
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()

	s.emit(Event{Type: EventProfile, State: StateAuthenticated, User: user})
}

func (s *Session) emit(ev Event) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
