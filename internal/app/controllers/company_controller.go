package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/arjun/placement-portal/internal/app/models/dto"
	"github.com/arjun/placement-portal/internal/app/services"
	"github.com/arjun/placement-portal/internal/middleware"
)

// CompanyController handles company drive management
type CompanyController struct {
	driveService       *services.DriveService
	applicationService *services.ApplicationService
	logger             zerolog.Logger
}

// NewCompanyController creates a new CompanyController
func NewCompanyController(
	driveService *services.DriveService,
	applicationService *services.ApplicationService,
	logger zerolog.Logger,
) *CompanyController {
	return &CompanyController{
		driveService:       driveService,
		applicationService: applicationService,
		logger:             logger,
	}
}

// CreateDrive posts a new drive owned by the session company
func (c *CompanyController) CreateDrive(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	var req dto.CreateDriveRequest
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Title and deadline are required")))
		return
	}

	drive, err := c.driveService.CreateDrive(ctx.Request.Context(), user.ID,
		req.Title, req.Description, req.Eligibility, req.Deadline)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(drive, "Drive created"))
}

// ListDriveApplications lists the applications to one of the session
// company's drives
func (c *CompanyController) ListDriveApplications(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	driveID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid drive id")))
		return
	}

	applications, err := c.applicationService.DriveApplications(ctx.Request.Context(), user.ID, driveID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(applications, ""))
}

// ListDrives lists the session company's drives
func (c *CompanyController) ListDrives(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	drives, err := c.driveService.ListCompanyDrives(ctx.Request.Context(), user.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(drives, ""))
}
