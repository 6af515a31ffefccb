package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/arjun/placement-portal/internal/app/models"
	"github.com/arjun/placement-portal/internal/app/repositories"
	"github.com/arjun/placement-portal/internal/pkg/apperrors"
)

// deadlineLayout is the wire format for drive deadlines.
const deadlineLayout = "2006-01-02"

// DriveService handles company drive postings
type DriveService struct {
	driveRepo repositories.IDriveRepository
	userRepo  repositories.IUserRepository
	logger    zerolog.Logger
}

// NewDriveService creates a new DriveService
func NewDriveService(
	driveRepo repositories.IDriveRepository,
	userRepo repositories.IUserRepository,
	logger zerolog.Logger,
) *DriveService {
	return &DriveService{
		driveRepo: driveRepo,
		userRepo:  userRepo,
		logger:    logger,
	}
}

// CreateDrive posts a new drive owned by the given company. New drives start
// as Pending; status transitions belong to an admin review flow that is not
// implemented here.
func (s *DriveService) CreateDrive(ctx context.Context, companyID int64, title, description, eligibility, deadline string) (*models.Drive, error) {
	if strings.TrimSpace(title) == "" {
		return nil, apperrors.NewValidationError("title cannot be empty")
	}

	deadlineDate, err := time.Parse(deadlineLayout, deadline)
	if err != nil {
		return nil, apperrors.NewValidationError("deadline must be formatted YYYY-MM-DD")
	}

	company, err := s.userRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company.Role != models.RoleCompany || !company.Approved {
		return nil, apperrors.NewForbiddenError("only approved companies can post drives")
	}

	drive := &models.Drive{
		CompanyID:   companyID,
		Title:       strings.TrimSpace(title),
		Description: description,
		Eligibility: eligibility,
		Deadline:    deadlineDate,
		Status:      models.DriveStatusPending,
	}

	if err := s.driveRepo.Create(ctx, drive); err != nil {
		return nil, fmt.Errorf("drive creation error: %w", err)
	}

	s.logger.Info().Int64("driveID", drive.ID).Int64("companyID", companyID).Msg("Drive created")
	return drive, nil
}

// ListCompanyDrives lists all drives posted by a company
func (s *DriveService) ListCompanyDrives(ctx context.Context, companyID int64) ([]*models.Drive, error) {
	return s.driveRepo.ListByCompany(ctx, companyID)
}

// ListOpenDrives lists drives still accepting applications
func (s *DriveService) ListOpenDrives(ctx context.Context) ([]*models.Drive, error) {
	return s.driveRepo.ListOpen(ctx, time.Now())
}
