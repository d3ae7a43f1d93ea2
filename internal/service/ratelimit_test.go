package service_test

import (
	"testing"

	"github.com/draftdesk/draftdesk/internal/service"
)

func TestTokenBucket_ExhaustsCapacity(t *testing.T) {
	// No refill during the test.
	tb := service.NewTokenBucket(0, 3)

	for i := range 3 {
		if !tb.Allow("10.0.0.1") {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
	}
	if tb.Allow("10.0.0.1") {
		t.Fatal("expected the bucket to be empty")
	}
}

func TestTokenBucket_KeysAreIndependent(t *testing.T) {
	tb := service.NewTokenBucket(0, 1)

	if !tb.Allow("10.0.0.1") {
		t.Fatal("first key should be allowed")
	}
	if tb.Allow("10.0.0.1") {
		t.Fatal("first key should be exhausted")
	}
	if !tb.Allow("10.0.0.2") {
		t.Fatal("second key has its own bucket")
	}
}
