package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/draftdesk/draftdesk/internal/domain"
	"github.com/draftdesk/draftdesk/internal/handler"
	"github.com/draftdesk/draftdesk/internal/session"
)

// authedRequest builds a request carrying the cookie of a saved, logged-in
// session.
func authedRequest(t *testing.T, m *session.Manager, target string) *http.Request {
	t.Helper()

	s := m.Load(httptest.NewRequest(http.MethodGet, "/", nil))
	s.SetUser(&domain.User{ID: 1, FirstName: "Ada", LastName: "Byron", Email: "a@b.com"})

	w := httptest.NewRecorder()
	m.Save(w, s)

	r := httptest.NewRequest(http.MethodGet, target, nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestRequireAuth(t *testing.T) {
	m := session.NewManager(session.NewMemoryStore(), false)

	called := false
	h := handler.RequireAuth(m, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		sess := handler.SessionFromContext(r.Context())
		if sess == nil || sess.UserID != 1 {
			t.Errorf("expected session in context, got %+v", sess)
		}
	}))

	// Anonymous requests are redirected to the login page.
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/reports", nil))
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/login" {
		t.Fatalf("expected redirect to /login, got %s", loc)
	}
	if called {
		t.Fatal("handler must not run for anonymous requests")
	}

	// Authenticated requests pass through with the session in context.
	w = httptest.NewRecorder()
	h.ServeHTTP(w, authedRequest(t, m, "/reports"))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !called {
		t.Fatal("handler did not run for authenticated request")
	}
}

func TestRequireAuthJSON(t *testing.T) {
	m := session.NewManager(session.NewMemoryStore(), false)

	h := handler.RequireAuthJSON(m, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	// Anonymous requests get a JSON 401, not a redirect.
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/generate_report", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected JSON error, got %s", ct)
	}
	if !strings.Contains(w.Body.String(), "Not authenticated.") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}

	w = httptest.NewRecorder()
	h.ServeHTTP(w, authedRequest(t, m, "/generate_report"))
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
}

func TestHealthz(t *testing.T) {
	w := httptest.NewRecorder()
	handler.HandleHealthz(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var got map[string]string
	if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got["status"] != "ok" || got["service"] != "draftdesk" {
		t.Fatalf("unexpected payload: %v", got)
	}
}

func TestSecurityHeaders(t *testing.T) {
	h := handler.SecurityHeaders(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	for header, want := range map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
	} {
		if got := w.Header().Get(header); got != want {
			t.Fatalf("%s: expected %q, got %q", header, want, got)
		}
	}
}
