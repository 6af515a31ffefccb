// Package seed creates the default data the portal needs on first start.
package seed

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/arjun/placement-portal/internal/app/models"
	"github.com/arjun/placement-portal/internal/app/repositories"
	"github.com/arjun/placement-portal/internal/pkg/apperrors"
	"github.com/arjun/placement-portal/internal/pkg/auth"
)

// Default admin identity, created once on first start.
const (
	AdminName     = "Admin"
	AdminEmail    = "admin@portal.com"
	AdminPassword = "admin123"
)

// EnsureAdmin idempotently creates the admin account if none exists. A
// concurrent bootstrap racing past the existence check falls back on the
// email unique constraint, which keeps the invariant of exactly one admin.
func EnsureAdmin(ctx context.Context, userRepo repositories.IUserRepository, lgr zerolog.Logger) error {
	exists, err := userRepo.AdminExists(ctx)
	if err != nil {
		return err
	}
	if exists {
		lgr.Debug().Msg("Admin account already exists, skipping seed")
		return nil
	}

	hashedPassword, err := auth.HashPassword(AdminPassword)
	if err != nil {
		return err
	}

	admin := &models.User{
		Name:     AdminName,
		Email:    AdminEmail,
		Password: hashedPassword,
		Role:     models.RoleAdmin,
		Approved: true,
	}

	if err := userRepo.Create(ctx, admin); err != nil {
		if errors.Is(err, apperrors.ErrDuplicateEmail) {
			lgr.Debug().Msg("Admin account created concurrently, skipping seed")
			return nil
		}
		return err
	}

	lgr.Info().Int64("adminID", admin.ID).Msg("Default admin account created")
	return nil
}
