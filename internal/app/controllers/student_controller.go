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

// StudentController handles student drive browsing and applications
type StudentController struct {
	driveService       *services.DriveService
	applicationService *services.ApplicationService
	logger             zerolog.Logger
}

// NewStudentController creates a new StudentController
func NewStudentController(
	driveService *services.DriveService,
	applicationService *services.ApplicationService,
	logger zerolog.Logger,
) *StudentController {
	return &StudentController{
		driveService:       driveService,
		applicationService: applicationService,
		logger:             logger,
	}
}

// ListOpenDrives lists drives still accepting applications
func (c *StudentController) ListOpenDrives(ctx *gin.Context) {
	drives, err := c.driveService.ListOpenDrives(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(drives, ""))
}

// Apply submits the session student's application to a drive
func (c *StudentController) Apply(ctx *gin.Context) {
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

	application, err := c.applicationService.Apply(ctx.Request.Context(), user.ID, driveID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(application, "Application submitted"))
}

// ListApplications lists the session student's applications
func (c *StudentController) ListApplications(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
		return
	}

	applications, err := c.applicationService.StudentApplications(ctx.Request.Context(), user.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(applications, ""))
}
