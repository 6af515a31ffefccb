package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/arjun/placement-portal/internal/app/models"
	"github.com/arjun/placement-portal/internal/app/repositories"
	"github.com/arjun/placement-portal/internal/pkg/apperrors"
)

// AdminService handles admin-only account management
type AdminService struct {
	userRepo repositories.IUserRepository
	logger   zerolog.Logger
}

// NewAdminService creates a new AdminService
func NewAdminService(userRepo repositories.IUserRepository, logger zerolog.Logger) *AdminService {
	return &AdminService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// ApproveCompany grants a company account permission to log in
func (s *AdminService) ApproveCompany(ctx context.Context, companyID int64) error {
	user, err := s.userRepo.GetByID(ctx, companyID)
	if err != nil {
		return err
	}

	if user.Role != models.RoleCompany {
		return apperrors.NewValidationError("only company accounts require approval")
	}

	if err := s.userRepo.SetApproved(ctx, companyID, true); err != nil {
		return fmt.Errorf("error approving company: %w", err)
	}

	s.logger.Info().Int64("companyID", companyID).Msg("Company approved")
	return nil
}

// SetBlacklisted toggles the login block on an account. Admin accounts
// cannot be blacklisted.
func (s *AdminService) SetBlacklisted(ctx context.Context, userID int64, blacklisted bool) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if user.Role == models.RoleAdmin {
		return apperrors.NewForbiddenError("admin accounts cannot be blacklisted")
	}

	if err := s.userRepo.SetBlacklisted(ctx, userID, blacklisted); err != nil {
		return fmt.Errorf("error updating blacklist flag: %w", err)
	}

	s.logger.Info().Int64("userID", userID).Bool("blacklisted", blacklisted).Msg("Blacklist flag updated")
	return nil
}

// PendingCompanies lists company accounts awaiting approval
func (s *AdminService) PendingCompanies(ctx context.Context) ([]*models.User, error) {
	return s.userRepo.ListCompanies(ctx, true)
}
