package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arjun/placement-portal/internal/app/models"
	"github.com/arjun/placement-portal/internal/pkg/apperrors"
	"github.com/arjun/placement-portal/internal/pkg/dberrors"
)

// usersEmailConstraint is the unique constraint on users.email.
const usersEmailConstraint = "users_email_key"

// UserRepository handles user database operations
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

// Create inserts a new user and fills in its generated ID. The email unique
// constraint is the sole arbiter for duplicates; a violation comes back as
// apperrors.ErrDuplicateEmail.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO users (name, email, password, role, approved, blacklisted)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`,
		user.Name, user.Email, user.Password, user.Role, user.Approved, user.Blacklisted).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, usersEmailConstraint) {
			return apperrors.ErrDuplicateEmail
		}
		return fmt.Errorf("error creating user: %w", err)
	}

	return nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, `
		SELECT id, name, email, password, role, approved, blacklisted, created_at, updated_at
		FROM users
		WHERE email = $1`, email)
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.getOne(ctx, `
		SELECT id, name, email, password, role, approved, blacklisted, created_at, updated_at
		FROM users
		WHERE id = $1`, id)
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg interface{}) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&user.ID, &user.Name, &user.Email, &user.Password, &user.Role,
		&user.Approved, &user.Blacklisted, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return user, nil
}

// AdminExists checks whether any admin account exists
func (r *UserRepository) AdminExists(ctx context.Context) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM users WHERE role = $1)`,
		models.RoleAdmin).Scan(&exists)

	if err != nil {
		return false, fmt.Errorf("error checking for admin account: %w", err)
	}

	return exists, nil
}

// SetApproved updates the approved flag for a user
func (r *UserRepository) SetApproved(ctx context.Context, userID int64, approved bool) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE users
		SET approved = $1, updated_at = NOW()
		WHERE id = $2`,
		approved, userID)

	if err != nil {
		return fmt.Errorf("error updating approval flag: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// SetBlacklisted updates the blacklisted flag for a user
func (r *UserRepository) SetBlacklisted(ctx context.Context, userID int64, blacklisted bool) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE users
		SET blacklisted = $1, updated_at = NOW()
		WHERE id = $2`,
		blacklisted, userID)

	if err != nil {
		return fmt.Errorf("error updating blacklist flag: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}

	return nil
}

// ListCompanies retrieves company accounts, optionally only those awaiting approval
func (r *UserRepository) ListCompanies(ctx context.Context, pendingOnly bool) ([]*models.User, error) {
	query := `
		SELECT id, name, email, password, role, approved, blacklisted, created_at, updated_at
		FROM users
		WHERE role = $1`
	if pendingOnly {
		query += ` AND approved = FALSE`
	}
	query += ` ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, models.RoleCompany)
	if err != nil {
		return nil, fmt.Errorf("error listing companies: %w", err)
	}
	defer rows.Close()

	var companies []*models.User
	for rows.Next() {
		user := &models.User{}
		if err := rows.Scan(
			&user.ID, &user.Name, &user.Email, &user.Password, &user.Role,
			&user.Approved, &user.Blacklisted, &user.CreatedAt, &user.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning company row: %w", err)
		}
		companies = append(companies, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating company rows: %w", err)
	}

	return companies, nil
}
