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

// AdminController handles admin account-management actions
type AdminController struct {
	adminService *services.AdminService
	logger       zerolog.Logger
}

// NewAdminController creates a new AdminController
func NewAdminController(adminService *services.AdminService, logger zerolog.Logger) *AdminController {
	return &AdminController{
		adminService: adminService,
		logger:       logger,
	}
}

// blacklistRequest toggles the blacklist flag; omitting the field blacklists.
type blacklistRequest struct {
	Blacklisted *bool `form:"blacklisted" json:"blacklisted"`
}

// ApproveCompany marks a company account as approved
func (c *AdminController) ApproveCompany(ctx *gin.Context) {
	companyID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid company id")))
		return
	}

	if err := c.adminService.ApproveCompany(ctx.Request.Context(), companyID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, "Company approved"))
}

// BlacklistUser sets or clears the login block on an account
func (c *AdminController) BlacklistUser(ctx *gin.Context) {
	userID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid user id")))
		return
	}

	var req blacklistRequest
	_ = ctx.ShouldBind(&req)
	blacklisted := true
	if req.Blacklisted != nil {
		blacklisted = *req.Blacklisted
	}

	if err := c.adminService.SetBlacklisted(ctx.Request.Context(), userID, blacklisted); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	message := "User blacklisted"
	if !blacklisted {
		message = "User removed from blacklist"
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(nil, message))
}
