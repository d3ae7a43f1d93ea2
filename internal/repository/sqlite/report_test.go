package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/draftdesk/draftdesk/internal/domain"
)

func TestReportRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user := newTestUser(t, db, "reports@example.com")

	report := &domain.Report{UserID: user.ID, Content: "quarterly analysis"}
	if err := db.Reports().Create(ctx, report); err != nil {
		t.Fatalf("Create report: %v", err)
	}
	if report.ID == 0 {
		t.Fatal("expected Create to assign an ID")
	}

	got, err := db.Reports().GetByID(ctx, report.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.UserID != user.ID || got.Content != "quarterly analysis" {
		t.Fatalf("unexpected report: %+v", got)
	}
}

func TestReportRepository_GetMissing(t *testing.T) {
	db := newTestDB(t)

	_, err := db.Reports().GetByID(context.Background(), 42)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestReportRepository_ListByUser(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	ada := newTestUser(t, db, "ada@example.com")
	grace := newTestUser(t, db, "grace@example.com")

	for _, content := range []string{"report one", "report two"} {
		if err := db.Reports().Create(ctx, &domain.Report{UserID: ada.ID, Content: content}); err != nil {
			t.Fatalf("Create report: %v", err)
		}
	}
	if err := db.Reports().Create(ctx, &domain.Report{UserID: grace.ID, Content: "other report"}); err != nil {
		t.Fatalf("Create report: %v", err)
	}

	reports, err := db.Reports().ListByUser(ctx, ada.ID)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(reports))
	}
	for _, r := range reports {
		if r.UserID != ada.ID {
			t.Fatalf("listed a foreign report: %+v", r)
		}
	}

	empty, err := db.Reports().ListByUser(ctx, 99999)
	if err != nil {
		t.Fatalf("ListByUser for unknown user: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected no reports, got %d", len(empty))
	}
}

func TestReportRepository_Delete(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user := newTestUser(t, db, "delete@example.com")
	report := &domain.Report{UserID: user.ID, Content: "to delete"}
	if err := db.Reports().Create(ctx, report); err != nil {
		t.Fatalf("Create report: %v", err)
	}

	if err := db.Reports().Delete(ctx, report.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := db.Reports().GetByID(ctx, report.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	if err := db.Reports().Delete(ctx, report.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for second delete, got %v", err)
	}
}
