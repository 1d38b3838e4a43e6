package repository

import (
	"context"

	"clarion-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ReportRepository handles database operations for generated reports
type ReportRepository struct {
	db *pgxpool.Pool
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{db: db}
}

// Create creates a new report record
func (r *ReportRepository) Create(ctx context.Context, report *models.Report) error {
	query := `
		INSERT INTO reports (
			content_hash, domain, verification_mode, storage_path
		) VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.db.QueryRow(
		ctx, query,
		report.ContentHash,
		report.Domain,
		report.Mode,
		report.StoragePath,
	).Scan(&report.ID, &report.CreatedAt)

	return err
}

// GetByID retrieves a report by ID
func (r *ReportRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Report, error) {
	report := &models.Report{}
	query := `
		SELECT id, content_hash, domain, verification_mode, storage_path, created_at
		FROM reports
		WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&report.ID,
		&report.ContentHash,
		&report.Domain,
		&report.Mode,
		&report.StoragePath,
		&report.CreatedAt,
	)

	if err != nil {
		return nil, err
	}

	return report, nil
}

// ListRecent retrieves the most recently created reports
func (r *ReportRepository) ListRecent(ctx context.Context, limit int) ([]*models.Report, error) {
	query := `
		SELECT id, content_hash, domain, verification_mode, storage_path, created_at
		FROM reports
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []*models.Report
	for rows.Next() {
		report := &models.Report{}
		err := rows.Scan(
			&report.ID,
			&report.ContentHash,
			&report.Domain,
			&report.Mode,
			&report.StoragePath,
			&report.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}

	return reports, rows.Err()
}

// Delete deletes a report record
func (r *ReportRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM reports WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}
