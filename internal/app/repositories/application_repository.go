package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arjun/placement-portal/internal/app/models"
	"github.com/arjun/placement-portal/internal/pkg/apperrors"
	"github.com/arjun/placement-portal/internal/pkg/dberrors"
)

// applicationsStudentDriveConstraint is the unique constraint on
// applications(student_id, drive_id).
const applicationsStudentDriveConstraint = "applications_student_id_drive_id_key"

// ApplicationRepository handles application database operations
type ApplicationRepository struct {
	db *pgxpool.Pool
}

// NewApplicationRepository creates a new ApplicationRepository
func NewApplicationRepository(db *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{
		db: db,
	}
}

// Create inserts a new application and fills in its generated fields. The
// (student_id, drive_id) unique constraint is the sole arbiter for repeat
// applications; a violation comes back as apperrors.ErrDuplicateApplication.
func (r *ApplicationRepository) Create(ctx context.Context, application *models.Application) error {
	if application.Status == "" {
		application.Status = models.ApplicationStatusApplied
	}

	err := r.db.QueryRow(ctx, `
		INSERT INTO applications (student_id, drive_id, status)
		VALUES ($1, $2, $3)
		RETURNING id, applied_on`,
		application.StudentID, application.DriveID, application.Status).
		Scan(&application.ID, &application.AppliedOn)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, applicationsStudentDriveConstraint) {
			return apperrors.ErrDuplicateApplication
		}
		return fmt.Errorf("error creating application: %w", err)
	}

	return nil
}

// ListByStudent retrieves all applications made by a student
func (r *ApplicationRepository) ListByStudent(ctx context.Context, studentID int64) ([]*models.Application, error) {
	return r.list(ctx, `
		SELECT id, student_id, drive_id, applied_on, status
		FROM applications
		WHERE student_id = $1
		ORDER BY applied_on DESC`, studentID)
}

// ListByDrive retrieves all applications to a drive
func (r *ApplicationRepository) ListByDrive(ctx context.Context, driveID int64) ([]*models.Application, error) {
	return r.list(ctx, `
		SELECT id, student_id, drive_id, applied_on, status
		FROM applications
		WHERE drive_id = $1
		ORDER BY applied_on`, driveID)
}

func (r *ApplicationRepository) list(ctx context.Context, query string, arg interface{}) ([]*models.Application, error) {
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("error listing applications: %w", err)
	}
	defer rows.Close()

	var applications []*models.Application
	for rows.Next() {
		application := &models.Application{}
		if err := rows.Scan(
			&application.ID, &application.StudentID, &application.DriveID,
			&application.AppliedOn, &application.Status); err != nil {
			return nil, fmt.Errorf("error scanning application row: %w", err)
		}
		applications = append(applications, application)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating application rows: %w", err)
	}

	return applications, nil
}
