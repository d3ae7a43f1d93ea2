package session

import (
	"time"

	"github.com/draftdesk/draftdesk/internal/domain"
)

// Flash is a one-shot user-facing notice attached to the next rendered page.
type Flash struct {
	Message  string
	Category string
}

// Session is the per-browser state: the authenticated identity, transient
// pending-registration data, and queued flash messages. It is an explicit
// value loaded and saved by the Manager, never ambient global state.
type Session struct {
	ID        string
	UserID    int64
	Email     string
	FirstName string
	LastName  string
	Initials  string
	Remember  bool

	// Pending registration state, present only between the register
	// submission and a successful or abandoned confirmation.
	Pending *domain.PendingRegistration
	Code    string

	Flashes   []Flash
	ExpiresAt time.Time
}

// LoggedIn reports whether the session carries an authenticated user.
func (s *Session) LoggedIn() bool {
	return s.UserID != 0
}

// SetUser populates the identity fields from a user record.
func (s *Session) SetUser(u *domain.User) {
	s.UserID = u.ID
	s.Email = u.Email
	s.FirstName = u.FirstName
	s.LastName = u.LastName
	s.Initials = u.Initials()
}

// ClearPending drops the pending registration and its verification code.
func (s *Session) ClearPending() {
	s.Pending = nil
	s.Code = ""
}

// AddFlash queues a flash message for the next rendered page.
func (s *Session) AddFlash(message, category string) {
	s.Flashes = append(s.Flashes, Flash{Message: message, Category: category})
}

// PopFlashes returns the queued flashes and clears the queue.
func (s *Session) PopFlashes() []Flash {
	flashes := s.Flashes
	s.Flashes = nil
	return flashes
}

// clone returns a deep copy. The store hands out and accepts copies only, so
// a handler mutating its session never races another request on the same
// cookie; the last Save wins.
func (s *Session) clone() *Session {
	c := *s
	if s.Pending != nil {
		p := *s.Pending
		c.Pending = &p
	}
	if s.Flashes != nil {
		c.Flashes = append([]Flash(nil), s.Flashes...)
	}
	return &c
}
