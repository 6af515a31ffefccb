package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arjun/placement-portal/internal/app/models"
	"github.com/arjun/placement-portal/internal/pkg/apperrors"
)

// DriveRepository handles drive database operations
type DriveRepository struct {
	db *pgxpool.Pool
}

// NewDriveRepository creates a new DriveRepository
func NewDriveRepository(db *pgxpool.Pool) *DriveRepository {
	return &DriveRepository{
		db: db,
	}
}

// Create inserts a new drive and fills in its generated ID
func (r *DriveRepository) Create(ctx context.Context, drive *models.Drive) error {
	if drive.Status == "" {
		drive.Status = models.DriveStatusPending
	}

	err := r.db.QueryRow(ctx, `
		INSERT INTO drives (company_id, title, description, eligibility, deadline, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`,
		drive.CompanyID, drive.Title, drive.Description, drive.Eligibility, drive.Deadline, drive.Status).
		Scan(&drive.ID, &drive.CreatedAt)

	if err != nil {
		return fmt.Errorf("error creating drive: %w", err)
	}

	return nil
}

// GetByID retrieves a drive by ID
func (r *DriveRepository) GetByID(ctx context.Context, id int64) (*models.Drive, error) {
	drive := &models.Drive{}
	err := r.db.QueryRow(ctx, `
		SELECT id, company_id, title, description, eligibility, deadline, status, created_at
		FROM drives
		WHERE id = $1`,
		id).Scan(
		&drive.ID, &drive.CompanyID, &drive.Title, &drive.Description,
		&drive.Eligibility, &drive.Deadline, &drive.Status, &drive.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrDriveNotFound
		}
		return nil, fmt.Errorf("error retrieving drive: %w", err)
	}

	return drive, nil
}

// ListByCompany retrieves all drives posted by a company
func (r *DriveRepository) ListByCompany(ctx context.Context, companyID int64) ([]*models.Drive, error) {
	return r.list(ctx, `
		SELECT id, company_id, title, description, eligibility, deadline, status, created_at
		FROM drives
		WHERE company_id = $1
		ORDER BY created_at DESC`, companyID)
}

// ListOpen retrieves drives whose deadline has not passed
func (r *DriveRepository) ListOpen(ctx context.Context, now time.Time) ([]*models.Drive, error) {
	return r.list(ctx, `
		SELECT id, company_id, title, description, eligibility, deadline, status, created_at
		FROM drives
		WHERE deadline >= $1::date
		ORDER BY deadline`, now)
}

func (r *DriveRepository) list(ctx context.Context, query string, arg interface{}) ([]*models.Drive, error) {
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("error listing drives: %w", err)
	}
	defer rows.Close()

	var drives []*models.Drive
	for rows.Next() {
		drive := &models.Drive{}
		if err := rows.Scan(
			&drive.ID, &drive.CompanyID, &drive.Title, &drive.Description,
			&drive.Eligibility, &drive.Deadline, &drive.Status, &drive.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning drive row: %w", err)
		}
		drives = append(drives, drive)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating drive rows: %w", err)
	}

	return drives, nil
}
