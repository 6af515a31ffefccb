// Package services contains the business logic between controllers and repositories.
package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/arjun/placement-portal/internal/app/models"
	"github.com/arjun/placement-portal/internal/app/repositories"
	"github.com/arjun/placement-portal/internal/pkg/apperrors"
	"github.com/arjun/placement-portal/internal/pkg/auth"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// normalizeEmail canonicalizes an address the way it is stored. Lookups must
// apply the same form, or a mixed-case login would miss the stored row.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// AuthService handles authentication, sessions and registration
type AuthService struct {
	userRepo    repositories.IUserRepository
	sessionRepo repositories.ISessionRepository
	sessionTTL  time.Duration
	logger      zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo repositories.IUserRepository,
	sessionRepo repositories.ISessionRepository,
	sessionTTL time.Duration,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		sessionTTL:  sessionTTL,
		logger:      logger,
	}
}

// validateEmail validates an email address
func (s *AuthService) validateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return apperrors.NewValidationError("email cannot be empty")
	}
	if !emailRegex.MatchString(email) {
		return apperrors.NewValidationError("invalid email format")
	}
	return nil
}

// validatePassword checks that the password is usable
func (s *AuthService) validatePassword(password string) error {
	if password == "" {
		return apperrors.NewValidationError("password cannot be empty")
	}
	if len(password) < 6 {
		return apperrors.NewValidationError("password must be at least 6 characters long")
	}
	return nil
}

// Login authenticates a user and establishes a session. The blacklist check
// follows the password check, so a wrong password on a blacklisted account
// still reports invalid credentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	email = normalizeEmail(email)
	if err := s.validateEmail(email); err != nil {
		return nil, "", apperrors.ErrInvalidCredentials
	}
	if password == "" {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, "", apperrors.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("error looking up user: %w", err)
	}

	if !auth.CheckPassword(user.Password, password) {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	if user.Blacklisted {
		s.logger.Warn().Int64("userID", user.ID).Msg("Blacklisted account attempted login")
		return nil, "", apperrors.ErrBlacklisted
	}

	// Approval gates only company accounts; students and the admin are
	// approved at creation.
	if user.Role == models.RoleCompany && !user.Approved {
		return nil, "", apperrors.ErrPendingApproval
	}

	token, err := s.createSession(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info().Int64("userID", user.ID).Str("role", user.Role.String()).Msg("User logged in")
	return user, token, nil
}

// createSession writes a new session row and returns its token
func (s *AuthService) createSession(ctx context.Context, userID int64) (string, error) {
	now := time.Now()
	session := &models.Session{
		Token:     uuid.New().String(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return "", fmt.Errorf("error creating session: %w", err)
	}

	return session.Token, nil
}

// Logout destroys the session behind the given token. A stale token is not
// an error; the session is gone either way.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	err := s.sessionRepo.Delete(ctx, token)
	if err != nil && !errors.Is(err, apperrors.ErrSessionNotFound) {
		return fmt.Errorf("error destroying session: %w", err)
	}

	return nil
}

// ResolveSession maps a session token back to its user. Missing, expired or
// dangling sessions come back as ErrUnauthenticated.
func (s *AuthService) ResolveSession(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, apperrors.ErrUnauthenticated
	}

	session, err := s.sessionRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, apperrors.ErrSessionNotFound) {
			return nil, apperrors.ErrUnauthenticated
		}
		return nil, fmt.Errorf("error resolving session: %w", err)
	}

	user, err := s.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrUnauthenticated
		}
		return nil, fmt.Errorf("error loading session user: %w", err)
	}

	return user, nil
}

// RegisterStudent creates a student account. Students are usable immediately.
func (s *AuthService) RegisterStudent(ctx context.Context, name, email, password string) (*models.User, error) {
	return s.register(ctx, name, email, password, models.RoleStudent, true)
}

// RegisterCompany creates a company account that must await admin approval
// before it can log in.
func (s *AuthService) RegisterCompany(ctx context.Context, name, email, password string) (*models.User, error) {
	return s.register(ctx, name, email, password, models.RoleCompany, false)
}

func (s *AuthService) register(ctx context.Context, name, email, password string, role models.Role, approved bool) (*models.User, error) {
	email = normalizeEmail(email)
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.NewValidationError("name cannot be empty")
	}
	if err := s.validateEmail(email); err != nil {
		return nil, err
	}
	if err := s.validatePassword(password); err != nil {
		return nil, err
	}

	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Name:     strings.TrimSpace(name),
		Email:    email,
		Password: hashedPassword,
		Role:     role,
		Approved: approved,
	}

	// No pre-insert existence check; the email unique constraint decides and
	// the repository reports ErrDuplicateEmail.
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicateEmail) {
			return nil, apperrors.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("user creation error: %w", err)
	}

	s.logger.Info().Int64("userID", user.ID).Str("role", role.String()).Msg("User registered")
	return user, nil
}
