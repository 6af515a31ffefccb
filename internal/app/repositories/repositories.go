// Package repositories contains the database access layer.
package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arjun/placement-portal/internal/app/models"
)

// IUserRepository defines the interface for user database operations
type IUserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	AdminExists(ctx context.Context) (bool, error)
	SetApproved(ctx context.Context, userID int64, approved bool) error
	SetBlacklisted(ctx context.Context, userID int64, blacklisted bool) error
	ListCompanies(ctx context.Context, pendingOnly bool) ([]*models.User, error)
}

// IDriveRepository defines the interface for drive database operations
type IDriveRepository interface {
	Create(ctx context.Context, drive *models.Drive) error
	GetByID(ctx context.Context, id int64) (*models.Drive, error)
	ListByCompany(ctx context.Context, companyID int64) ([]*models.Drive, error)
	ListOpen(ctx context.Context, now time.Time) ([]*models.Drive, error)
}

// IApplicationRepository defines the interface for application database operations
type IApplicationRepository interface {
	Create(ctx context.Context, application *models.Application) error
	ListByStudent(ctx context.Context, studentID int64) ([]*models.Application, error)
	ListByDrive(ctx context.Context, driveID int64) ([]*models.Application, error)
}

// ISessionRepository defines the interface for session database operations
type ISessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	GetByToken(ctx context.Context, token string) (*models.Session, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// Repositories bundles all repository implementations
type Repositories struct {
	UserRepository        *UserRepository
	DriveRepository       *DriveRepository
	ApplicationRepository *ApplicationRepository
	SessionRepository     *SessionRepository
}

// NewRepositories creates the repository container backed by the given pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:        NewUserRepository(db),
		DriveRepository:       NewDriveRepository(db),
		ApplicationRepository: NewApplicationRepository(db),
		SessionRepository:     NewSessionRepository(db),
	}
}
