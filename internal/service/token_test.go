package service_test

import (
	"errors"
	"testing"
	"time"

	"github.com/draftdesk/draftdesk/internal/domain"
	"github.com/draftdesk/draftdesk/internal/service"
)

const testSecret = "test-secret-key-at-least-32-chars-long"

func TestTokenService_RoundTrip(t *testing.T) {
	tokens := service.NewTokenService(testSecret)

	token, err := tokens.Issue("a@b.com", "password-reset")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	email, err := tokens.Verify(token, "password-reset", time.Hour)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if email != "a@b.com" {
		t.Fatalf("expected email a@b.com, got %s", email)
	}
}

func TestTokenService_Expiry(t *testing.T) {
	tokens := service.NewTokenService(testSecret)
	issued := time.Now()
	tokens.SetClock(func() time.Time { return issued })

	token, err := tokens.Issue("a@b.com", "password-reset")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	// One second before the deadline still verifies.
	tokens.SetClock(func() time.Time { return issued.Add(time.Hour - time.Second) })
	if _, err := tokens.Verify(token, "password-reset", time.Hour); err != nil {
		t.Fatalf("Verify at max age - 1s: %v", err)
	}

	// Past the deadline fails with ErrTokenExpired.
	tokens.SetClock(func() time.Time { return issued.Add(time.Hour + time.Second) })
	_, err = tokens.Verify(token, "password-reset", time.Hour)
	if !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTokenService_ContextIsolation(t *testing.T) {
	tokens := service.NewTokenService(testSecret)

	token, err := tokens.Issue("a@b.com", "password-reset")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	for _, context := range []string{"email-confirm", "password-reset2", ""} {
		_, err := tokens.Verify(token, context, time.Hour)
		if !errors.Is(err, domain.ErrTokenInvalid) {
			t.Fatalf("context %q: expected ErrTokenInvalid, got %v", context, err)
		}
	}
}

func TestTokenService_TamperedToken(t *testing.T) {
	tokens := service.NewTokenService(testSecret)

	token, err := tokens.Issue("a@b.com", "password-reset")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	tampered := token[:len(token)-4] + "XXXX"
	_, err = tokens.Verify(tampered, "password-reset", time.Hour)
	if !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for tampered token, got %v", err)
	}
}

func TestTokenService_WrongSecret(t *testing.T) {
	tokens1 := service.NewTokenService(testSecret)
	tokens2 := service.NewTokenService("another-secret-key-also-32-chars-xx")

	token, err := tokens1.Issue("a@b.com", "password-reset")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	_, err = tokens2.Verify(token, "password-reset", time.Hour)
	if !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for wrong secret, got %v", err)
	}
}

func TestTokenService_MalformedToken(t *testing.T) {
	tokens := service.NewTokenService(testSecret)

	for _, input := range []string{"", "not-a-token", "a.b.c"} {
		_, err := tokens.Verify(input, "password-reset", time.Hour)
		if !errors.Is(err, domain.ErrTokenInvalid) {
			t.Fatalf("input %q: expected ErrTokenInvalid, got %v", input, err)
		}
	}
}
