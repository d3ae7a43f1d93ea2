package handler_test

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/draftdesk/draftdesk/internal/generation"
	"github.com/draftdesk/draftdesk/internal/handler"
	"github.com/draftdesk/draftdesk/internal/repository/sqlite"
	"github.com/draftdesk/draftdesk/internal/service"
	"github.com/draftdesk/draftdesk/internal/session"
)

const testSecret = "test-secret-key-at-least-32-chars-long"

// testCode is what the pinned code generator returns in every test server.
const testCode = "123456"

type capturedEmail struct {
	To      string
	Subject string
	Body    string
}

// capturingSender records outbound emails instead of delivering them.
type capturingSender struct {
	mu   sync.Mutex
	sent []capturedEmail
}

func (s *capturingSender) Send(_ context.Context, to, subject, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, capturedEmail{To: to, Subject: subject, Body: body})
	return nil
}

func (s *capturingSender) last(t *testing.T) capturedEmail {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.sent) == 0 {
		t.Fatal("no emails were sent")
	}
	return s.sent[len(s.sent)-1]
}

// stubCompleter returns a fixed response for every completion request.
type stubCompleter struct {
	response string
	err      error
}

func (f *stubCompleter) Complete(_ context.Context, _ []generation.Message, _ int) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func newTestServer(t *testing.T, llm generation.Completer) (*httptest.Server, *capturingSender) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	tokens := service.NewTokenService(testSecret)
	auth := service.NewAuthService(db.Users(), tokens, 4)
	auth.SetCodeGenerator(func() (string, error) { return testCode, nil })
	compose := service.NewComposeService(llm, db.Reports())
	sessions := session.NewManager(session.NewMemoryStore(), false)
	sender := &capturingSender{}
	limiter := service.NewTokenBucket(100, 100)

	mux := http.NewServeMux()
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)

	handler.RegisterRoutes(mux, auth, compose, sessions, sender, limiter, ts.URL)
	return ts, sender
}

// newTestClient returns a cookie-carrying client that does not follow
// redirects, so tests can assert on the 303 responses themselves.
func newTestClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar: %v", err)
	}
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func postForm(t *testing.T, client *http.Client, url string, form url.Values) *http.Response {
	t.Helper()
	resp, err := client.PostForm(url, form)
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	resp.Body.Close()
	return resp
}

func getBody(t *testing.T, client *http.Client, url string) (int, string) {
	t.Helper()
	resp, err := client.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, string(body)
}

func assertRedirect(t *testing.T, resp *http.Response, location string) {
	t.Helper()
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Location"); got != location {
		t.Fatalf("expected redirect to %s, got %s", location, got)
	}
}

// registerAndConfirm drives the full registration flow, leaving the client
// logged in.
func registerAndConfirm(t *testing.T, client *http.Client, baseURL, email, password string) {
	t.Helper()

	resp := postForm(t, client, baseURL+"/register", url.Values{
		"first_name": {"Ada"},
		"last_name":  {"Byron"},
		"email":      {email},
		"password":   {password},
	})
	assertRedirect(t, resp, "/confirm_email")

	resp = postForm(t, client, baseURL+"/confirm_email", url.Values{
		"confirmation_code": {testCode},
	})
	assertRedirect(t, resp, "/home")
}

func logout(t *testing.T, client *http.Client, baseURL string) {
	t.Helper()
	resp, err := client.Get(baseURL + "/logout")
	if err != nil {
		t.Fatalf("GET /logout: %v", err)
	}
	resp.Body.Close()
	assertRedirect(t, resp, "/")
}

func assertContains(t *testing.T, body, want string) {
	t.Helper()
	if !strings.Contains(body, want) {
		t.Fatalf("body missing %q:\n%s", want, body)
	}
}
