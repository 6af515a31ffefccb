package services

import (
	"context"
	"sync"
	"time"

	"github.com/arjun/placement-portal/internal/app/models"
	"github.com/arjun/placement-portal/internal/pkg/apperrors"
)

// In-memory repository fakes. They mirror the store's behavior the services
// rely on: the email unique constraint, the (student, drive) unique
// constraint, and expired sessions reading as absent.

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*models.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Exact match, like the email unique constraint.
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return apperrors.ErrDuplicateEmail
		}
	}

	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Exact match, like the real `WHERE email = $1`.
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) AdminExists(_ context.Context) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Role == models.RoleAdmin {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) SetApproved(_ context.Context, userID int64, approved bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.Approved = approved
	return nil
}

func (r *fakeUserRepo) SetBlacklisted(_ context.Context, userID int64, blacklisted bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.Blacklisted = blacklisted
	return nil
}

func (r *fakeUserRepo) ListCompanies(_ context.Context, pendingOnly bool) ([]*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var companies []*models.User
	for _, user := range r.users {
		if user.Role != models.RoleCompany {
			continue
		}
		if pendingOnly && user.Approved {
			continue
		}
		clone := *user
		companies = append(companies, &clone)
	}
	return companies, nil
}

func (r *fakeUserRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*models.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*models.Session)}
}

func (r *fakeSessionRepo) Create(_ context.Context, session *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *session
	r.sessions[session.Token] = &clone
	return nil
}

func (r *fakeSessionRepo) GetByToken(_ context.Context, token string) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[token]
	if !ok || session.Expired(time.Now()) {
		return nil, apperrors.ErrSessionNotFound
	}
	clone := *session
	return &clone, nil
}

func (r *fakeSessionRepo) Delete(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[token]; !ok {
		return apperrors.ErrSessionNotFound
	}
	delete(r.sessions, token)
	return nil
}

func (r *fakeSessionRepo) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed int64
	for token, session := range r.sessions {
		if session.Expired(now) {
			delete(r.sessions, token)
			removed++
		}
	}
	return removed, nil
}

type fakeDriveRepo struct {
	mu     sync.Mutex
	nextID int64
	drives map[int64]*models.Drive
}

func newFakeDriveRepo() *fakeDriveRepo {
	return &fakeDriveRepo{drives: make(map[int64]*models.Drive)}
}

func (r *fakeDriveRepo) Create(_ context.Context, drive *models.Drive) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	drive.ID = r.nextID
	drive.CreatedAt = time.Now()
	clone := *drive
	r.drives[drive.ID] = &clone
	return nil
}

func (r *fakeDriveRepo) GetByID(_ context.Context, id int64) (*models.Drive, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	drive, ok := r.drives[id]
	if !ok {
		return nil, apperrors.ErrDriveNotFound
	}
	clone := *drive
	return &clone, nil
}

func (r *fakeDriveRepo) ListByCompany(_ context.Context, companyID int64) ([]*models.Drive, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var drives []*models.Drive
	for _, drive := range r.drives {
		if drive.CompanyID == companyID {
			clone := *drive
			drives = append(drives, &clone)
		}
	}
	return drives, nil
}

func (r *fakeDriveRepo) ListOpen(_ context.Context, now time.Time) ([]*models.Drive, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var drives []*models.Drive
	for _, drive := range r.drives {
		if drive.Open(now) {
			clone := *drive
			drives = append(drives, &clone)
		}
	}
	return drives, nil
}

type fakeApplicationRepo struct {
	mu           sync.Mutex
	nextID       int64
	applications []*models.Application
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{}
}

func (r *fakeApplicationRepo) Create(_ context.Context, application *models.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.applications {
		if existing.StudentID == application.StudentID && existing.DriveID == application.DriveID {
			return apperrors.ErrDuplicateApplication
		}
	}

	r.nextID++
	application.ID = r.nextID
	application.AppliedOn = time.Now()
	clone := *application
	r.applications = append(r.applications, &clone)
	return nil
}

func (r *fakeApplicationRepo) ListByStudent(_ context.Context, studentID int64) ([]*models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var applications []*models.Application
	for _, application := range r.applications {
		if application.StudentID == studentID {
			clone := *application
			applications = append(applications, &clone)
		}
	}
	return applications, nil
}

func (r *fakeApplicationRepo) ListByDrive(_ context.Context, driveID int64) ([]*models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var applications []*models.Application
	for _, application := range r.applications {
		if application.DriveID == driveID {
			clone := *application
			applications = append(applications, &clone)
		}
	}
	return applications, nil
}
