package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/draftdesk/draftdesk/internal/domain"
)

// ReportRepository implements domain.ReportRepository using SQLite.
type ReportRepository struct {
	db *sql.DB
}

// NewReportRepository creates a new SQLite-backed ReportRepository.
func NewReportRepository(db *DB) *ReportRepository {
	return &ReportRepository{db: db.SqlDB}
}

func (r *ReportRepository) Create(ctx context.Context, report *domain.Report) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		"INSERT INTO reports (user_id, content, created_at, updated_at) VALUES (?, ?, ?, ?)",
		report.UserID, report.Content, now, now,
	)
	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	report.ID = id
	report.CreatedAt = now
	report.UpdatedAt = now
	return nil
}

func (r *ReportRepository) GetByID(ctx context.Context, id int64) (*domain.Report, error) {
	report := &domain.Report{}
	err := r.db.QueryRowContext(ctx,
		"SELECT id, user_id, content, created_at, updated_at FROM reports WHERE id = ?", id,
	).Scan(&report.ID, &report.UserID, &report.Content, &report.CreatedAt, &report.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query report by id: %w", err)
	}
	return report, nil
}

func (r *ReportRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Report, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, user_id, content, created_at, updated_at FROM reports WHERE user_id = ? ORDER BY created_at DESC",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query reports by user: %w", err)
	}
	defer rows.Close()

	var reports []domain.Report
	for rows.Next() {
		var report domain.Report
		if err := rows.Scan(&report.ID, &report.UserID, &report.Content, &report.CreatedAt, &report.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		reports = append(reports, report)
	}
	return reports, rows.Err()
}

func (r *ReportRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM reports WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete report: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
