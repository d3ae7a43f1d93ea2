package session

import (
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"time"
)

const cookieName = "dd_session"

const (
	// defaultTTL is the server-side lifetime of a browser-session cookie.
	defaultTTL = 24 * time.Hour
	// rememberTTL extends the session when the user ticks "remember me".
	rememberTTL = 30 * 24 * time.Hour
)

// Manager loads and saves sessions against a Store and maintains the session
// cookie. The cookie carries only the opaque session ID.
type Manager struct {
	store  Store
	secure bool
}

// NewManager creates a Manager over the given store. secure controls the
// cookie's Secure attribute.
func NewManager(store Store, secure bool) *Manager {
	return &Manager{store: store, secure: secure}
}

// Load returns the session for the request's cookie, or a fresh session when
// there is no cookie or the stored session has expired. A fresh session is
// not persisted until Save.
func (m *Manager) Load(r *http.Request) *Session {
	cookie, err := r.Cookie(cookieName)
	if err == nil {
		if s, ok := m.store.Get(cookie.Value); ok {
			return s
		}
	}
	return &Session{ID: newSessionID()}
}

// Save persists the session and refreshes the cookie. A remembered session
// gets a 30-day cookie; otherwise the cookie lasts for the browser session
// with a 24-hour server-side cap.
func (m *Manager) Save(w http.ResponseWriter, s *Session) {
	ttl := defaultTTL
	maxAge := 0 // browser-session cookie
	if s.Remember {
		ttl = rememberTTL
		maxAge = int(rememberTTL / time.Second)
	}
	s.ExpiresAt = time.Now().Add(ttl)
	m.store.Put(s)

	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    s.ID,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	})
}

// Destroy removes the session from the store and expires the cookie.
func (m *Manager) Destroy(w http.ResponseWriter, s *Session) {
	m.store.Delete(s.ID)
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// newSessionID returns 32 bytes of crypto/rand entropy, base64url-encoded.
func newSessionID() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms; if it does the
		// process cannot safely issue sessions at all.
		panic("session: read random: " + err.Error())
	}
	return base64.RawURLEncoding.EncodeToString(buf)
}
