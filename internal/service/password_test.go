package service_test

import (
	"testing"

	"github.com/draftdesk/draftdesk/internal/service"
)

func TestPassword_HashAndVerify(t *testing.T) {
	hash, err := service.HashPassword("Abcdef1!", 4)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "Abcdef1!" {
		t.Fatal("hash must not equal the plaintext")
	}

	if !service.VerifyPassword("Abcdef1!", hash) {
		t.Fatal("expected correct password to verify")
	}
	if service.VerifyPassword("Wrong999!", hash) {
		t.Fatal("expected wrong password to fail")
	}
}

func TestPassword_UniqueSalts(t *testing.T) {
	first, err := service.HashPassword("Abcdef1!", 4)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	second, err := service.HashPassword("Abcdef1!", 4)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if first == second {
		t.Fatal("expected distinct hashes for the same password")
	}
}

func TestVerifyPassword_MalformedDigest(t *testing.T) {
	for _, digest := range []string{"", "not-a-bcrypt-hash"} {
		if service.VerifyPassword("Abcdef1!", digest) {
			t.Fatalf("expected malformed digest %q to fail verification", digest)
		}
	}
}
