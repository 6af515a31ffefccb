package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/arjun/placement-portal/internal/app/models"
	"github.com/arjun/placement-portal/internal/app/models/dto"
	"github.com/arjun/placement-portal/internal/app/services"
	"github.com/arjun/placement-portal/internal/middleware"
	"github.com/arjun/placement-portal/internal/pkg/apperrors"
)

// DashboardController dispatches authenticated users to their role's view
type DashboardController struct {
	adminService       *services.AdminService
	driveService       *services.DriveService
	applicationService *services.ApplicationService
	logger             zerolog.Logger
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(
	adminService *services.AdminService,
	driveService *services.DriveService,
	applicationService *services.ApplicationService,
	logger zerolog.Logger,
) *DashboardController {
	return &DashboardController{
		adminService:       adminService,
		driveService:       driveService,
		applicationService: applicationService,
		logger:             logger,
	}
}

// Dispatch redirects to the dashboard matching the session user's role. The
// switch is exhaustive over the role enum; anything else stored in the row is
// answered as an unknown-role error, never a crash.
func (c *DashboardController) Dispatch(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		ctx.Redirect(http.StatusFound, "/login")
		return
	}

	switch user.Role {
	case models.RoleAdmin:
		ctx.Redirect(http.StatusFound, "/admin/dashboard")
	case models.RoleCompany:
		ctx.Redirect(http.StatusFound, "/company/dashboard")
	case models.RoleStudent:
		ctx.Redirect(http.StatusFound, "/student/dashboard")
	default:
		c.logger.Warn().Int64("userID", user.ID).Str("role", user.Role.String()).Msg("Session user has unknown role")
		middleware.HandleAPIError(ctx, apperrors.ErrUnknownRole)
	}
}

// requireRole re-checks the session user's role at the endpoint itself,
// independent of routing, and returns the user when it matches.
func (c *DashboardController) requireRole(ctx *gin.Context, required models.Role) (*models.User, bool) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrUnauthenticated)
		return nil, false
	}

	if user.Role != required {
		middleware.HandleAPIError(ctx, apperrors.ErrAccessDenied)
		return nil, false
	}

	return user, true
}

// AdminDashboard renders the admin view: companies awaiting approval
func (c *DashboardController) AdminDashboard(ctx *gin.Context) {
	user, ok := c.requireRole(ctx, models.RoleAdmin)
	if !ok {
		return
	}

	pending, err := c.adminService.PendingCompanies(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.AdminDashboard{
		User:             sessionUser(user),
		PendingCompanies: pending,
	}, "Admin dashboard"))
}

// CompanyDashboard renders the company view: the company's own drives
func (c *DashboardController) CompanyDashboard(ctx *gin.Context) {
	user, ok := c.requireRole(ctx, models.RoleCompany)
	if !ok {
		return
	}

	drives, err := c.driveService.ListCompanyDrives(ctx.Request.Context(), user.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.CompanyDashboard{
		User:   sessionUser(user),
		Drives: drives,
	}, "Company dashboard"))
}

// StudentDashboard renders the student view: open drives and the student's
// own applications
func (c *DashboardController) StudentDashboard(ctx *gin.Context) {
	user, ok := c.requireRole(ctx, models.RoleStudent)
	if !ok {
		return
	}

	drives, err := c.driveService.ListOpenDrives(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	applications, err := c.applicationService.StudentApplications(ctx.Request.Context(), user.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.StudentDashboard{
		User:         sessionUser(user),
		OpenDrives:   drives,
		Applications: applications,
	}, "Student dashboard"))
}

// sessionUser converts the account row into its public shape
func sessionUser(user *models.User) dto.SessionUser {
	return dto.SessionUser{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role.String(),
	}
}
