package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/draftdesk/draftdesk/internal/domain"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user := newTestUser(t, db, "ada@example.com")
	if user.ID == 0 {
		t.Fatal("expected Create to assign an ID")
	}
	if user.CreatedAt.IsZero() || user.UpdatedAt.IsZero() {
		t.Fatal("expected Create to set timestamps")
	}

	byID, err := db.Users().GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if byID.Email != "ada@example.com" || !byID.Verified {
		t.Fatalf("unexpected user: %+v", byID)
	}

	byEmail, err := db.Users().GetByEmail(ctx, "ada@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if byEmail.ID != user.ID {
		t.Fatalf("expected ID %d, got %d", user.ID, byEmail.ID)
	}
}

func TestUserRepository_GetMissing(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if _, err := db.Users().GetByID(ctx, 42); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("GetByID: expected ErrNotFound, got %v", err)
	}
	if _, err := db.Users().GetByEmail(ctx, "nobody@example.com"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("GetByEmail: expected ErrNotFound, got %v", err)
	}
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	newTestUser(t, db, "dup@example.com")

	err := db.Users().Create(ctx, &domain.User{
		FirstName:    "Other",
		LastName:     "User",
		Email:        "dup@example.com",
		PasswordHash: "hash",
	})
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestUserRepository_UpdatePassword(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user := newTestUser(t, db, "pw@example.com")

	if err := db.Users().UpdatePassword(ctx, "pw@example.com", "newhash"); err != nil {
		t.Fatalf("UpdatePassword: %v", err)
	}
	got, err := db.Users().GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.PasswordHash != "newhash" {
		t.Fatalf("expected newhash, got %s", got.PasswordHash)
	}

	err = db.Users().UpdatePassword(ctx, "nobody@example.com", "hash")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserRepository_UpdateProfile(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user := newTestUser(t, db, "profile@example.com")

	if err := db.Users().UpdateProfile(ctx, user.ID, "Augusta", "Lovelace", "new@example.com"); err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	got, err := db.Users().GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.FirstName != "Augusta" || got.LastName != "Lovelace" || got.Email != "new@example.com" {
		t.Fatalf("unexpected user after update: %+v", got)
	}

	err = db.Users().UpdateProfile(ctx, 99999, "A", "B", "x@example.com")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserRepository_UpdateProfile_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	newTestUser(t, db, "taken@example.com")
	user := newTestUser(t, db, "mine@example.com")

	err := db.Users().UpdateProfile(ctx, user.ID, "Ada", "Byron", "taken@example.com")
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}
