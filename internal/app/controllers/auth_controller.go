// Package controllers handles HTTP request handling
package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/arjun/placement-portal/internal/app/models"
	"github.com/arjun/placement-portal/internal/app/models/dto"
	"github.com/arjun/placement-portal/internal/app/services"
	"github.com/arjun/placement-portal/internal/pkg/apperrors"
)

// CookieSettings carries the session cookie parameters from config
type CookieSettings struct {
	Name   string
	TTL    time.Duration
	Secure bool
}

// AuthController handles login, logout and registration
type AuthController struct {
	authService *services.AuthService
	cookie      CookieSettings
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService, cookie CookieSettings, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		cookie:      cookie,
		logger:      logger,
	}
}

// ShowLogin renders the login form placeholder along with any flash message
func (c *AuthController) ShowLogin(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(gin.H{
		"page":  "login",
		"flash": popFlash(ctx),
	}, ""))
}

// Login authenticates the submitted credentials, sets the session cookie and
// redirects to the role dispatcher. Every failure goes back to the login page
// with a transient message instead of an error page.
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBind(&req); err != nil {
		setFlash(ctx, "Email and password are required")
		ctx.Redirect(http.StatusFound, "/login")
		return
	}

	user, token, err := c.authService.Login(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrBlacklisted):
			setFlash(ctx, "Your account is blacklisted")
		case errors.Is(err, apperrors.ErrPendingApproval):
			setFlash(ctx, "Wait for admin approval")
		case errors.Is(err, apperrors.ErrInvalidCredentials):
			setFlash(ctx, "Invalid credentials")
		default:
			c.logger.Error().Err(err).Msg("Login failed")
			setFlash(ctx, "Something went wrong, try again")
		}
		ctx.Redirect(http.StatusFound, "/login")
		return
	}

	ctx.SetCookie(c.cookie.Name, token, int(c.cookie.TTL.Seconds()), "/", "", c.cookie.Secure, true)
	c.logger.Debug().Int64("userID", user.ID).Msg("Session cookie issued")
	ctx.Redirect(http.StatusFound, "/dashboard")
}

// Logout destroys the session and clears the cookie
func (c *AuthController) Logout(ctx *gin.Context) {
	token, err := ctx.Cookie(c.cookie.Name)
	if err == nil && token != "" {
		if err := c.authService.Logout(ctx.Request.Context(), token); err != nil {
			c.logger.Error().Err(err).Msg("Failed to destroy session")
		}
	}

	ctx.SetCookie(c.cookie.Name, "", -1, "/", "", c.cookie.Secure, true)
	setFlash(ctx, "Logged out successfully")
	ctx.Redirect(http.StatusFound, "/login")
}

// ShowRegisterStudent renders the student registration form placeholder
func (c *AuthController) ShowRegisterStudent(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(gin.H{
		"page":  "register_student",
		"flash": popFlash(ctx),
	}, ""))
}

// RegisterStudent creates a student account and redirects to login
func (c *AuthController) RegisterStudent(ctx *gin.Context) {
	c.register(ctx, "/register/student", c.authService.RegisterStudent,
		"Registration successful. Please login.")
}

// ShowRegisterCompany renders the company registration form placeholder
func (c *AuthController) ShowRegisterCompany(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(gin.H{
		"page":  "register_company",
		"flash": popFlash(ctx),
	}, ""))
}

// RegisterCompany creates a pending company account and redirects to login
func (c *AuthController) RegisterCompany(ctx *gin.Context) {
	c.register(ctx, "/register/company", c.authService.RegisterCompany,
		"Registration submitted. Wait for admin approval.")
}

func (c *AuthController) register(ctx *gin.Context, formPath string,
	create func(ctx context.Context, name, email, password string) (*models.User, error), successMessage string) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBind(&req); err != nil {
		setFlash(ctx, "Name, email and password are required")
		ctx.Redirect(http.StatusFound, formPath)
		return
	}

	if _, err := create(ctx.Request.Context(), req.Name, req.Email, req.Password); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrDuplicateEmail):
			setFlash(ctx, "Email already exists")
		case errors.Is(err, apperrors.ErrValidationFailed):
			setFlash(ctx, err.Error())
		default:
			c.logger.Error().Err(err).Msg("Registration failed")
			setFlash(ctx, "Something went wrong, try again")
		}
		ctx.Redirect(http.StatusFound, formPath)
		return
	}

	setFlash(ctx, successMessage)
	ctx.Redirect(http.StatusFound, "/login")
}
