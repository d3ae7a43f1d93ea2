package domain

import (
	"context"
	"time"
)

// Report is a generated document saved to a user's account.
type Report struct {
	ID        int64
	UserID    int64
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ReportRepository defines persistence operations for reports.
type ReportRepository interface {
	Create(ctx context.Context, report *Report) error
	GetByID(ctx context.Context, id int64) (*Report, error)
	ListByUser(ctx context.Context, userID int64) ([]Report, error)
	Delete(ctx context.Context, id int64) error
}
