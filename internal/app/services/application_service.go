package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/arjun/placement-portal/internal/app/models"
	"github.com/arjun/placement-portal/internal/app/repositories"
	"github.com/arjun/placement-portal/internal/pkg/apperrors"
)

// ApplicationService handles student applications to drives
type ApplicationService struct {
	applicationRepo repositories.IApplicationRepository
	driveRepo       repositories.IDriveRepository
	logger          zerolog.Logger
}

// NewApplicationService creates a new ApplicationService
func NewApplicationService(
	applicationRepo repositories.IApplicationRepository,
	driveRepo repositories.IDriveRepository,
	logger zerolog.Logger,
) *ApplicationService {
	return &ApplicationService{
		applicationRepo: applicationRepo,
		driveRepo:       driveRepo,
		logger:          logger,
	}
}

// Apply records a student's application to a drive. Repeat applications are
// rejected by the store's (student_id, drive_id) unique constraint, not by an
// application-layer check.
func (s *ApplicationService) Apply(ctx context.Context, studentID, driveID int64) (*models.Application, error) {
	drive, err := s.driveRepo.GetByID(ctx, driveID)
	if err != nil {
		return nil, err
	}

	if !drive.Open(time.Now()) {
		return nil, apperrors.ErrDeadlinePassed
	}

	application := &models.Application{
		StudentID: studentID,
		DriveID:   driveID,
		Status:    models.ApplicationStatusApplied,
	}

	if err := s.applicationRepo.Create(ctx, application); err != nil {
		if errors.Is(err, apperrors.ErrDuplicateApplication) {
			return nil, apperrors.ErrDuplicateApplication
		}
		return nil, fmt.Errorf("application creation error: %w", err)
	}

	s.logger.Info().Int64("studentID", studentID).Int64("driveID", driveID).Msg("Application submitted")
	return application, nil
}

// StudentApplications lists all applications made by a student
func (s *ApplicationService) StudentApplications(ctx context.Context, studentID int64) ([]*models.Application, error) {
	return s.applicationRepo.ListByStudent(ctx, studentID)
}

// DriveApplications lists all applications to one of the company's drives.
// A drive owned by another company is off limits.
func (s *ApplicationService) DriveApplications(ctx context.Context, companyID, driveID int64) ([]*models.Application, error) {
	drive, err := s.driveRepo.GetByID(ctx, driveID)
	if err != nil {
		return nil, err
	}

	if drive.CompanyID != companyID {
		return nil, apperrors.NewForbiddenError("drive belongs to another company")
	}

	return s.applicationRepo.ListByDrive(ctx, driveID)
}
