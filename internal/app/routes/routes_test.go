package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjun/placement-portal/internal/app/controllers"
	"github.com/arjun/placement-portal/internal/app/models"
	"github.com/arjun/placement-portal/internal/app/services"
	"github.com/arjun/placement-portal/internal/middleware"
	"github.com/arjun/placement-portal/internal/seed"
)

const (
	testCookieName = "portal_session"
	testPassword   = "secret123"
)

type portal struct {
	router   *gin.Engine
	users    *fakeUserRepo
	sessions *fakeSessionRepo
	drives   *fakeDriveRepo
}

// newPortal wires the full router against in-memory repositories and runs the
// admin seed, so tests exercise the same stack a running server does minus
// the database.
func newPortal(t *testing.T) *portal {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := newFakeUserRepo()
	sessions := newFakeSessionRepo()
	drives := newFakeDriveRepo()
	applications := newFakeApplicationRepo()

	require.NoError(t, seed.EnsureAdmin(context.Background(), users, zerolog.Nop()))

	lgr := zerolog.Nop()
	authService := services.NewAuthService(users, sessions, time.Hour, lgr)
	adminService := services.NewAdminService(users, lgr)
	driveService := services.NewDriveService(drives, users, lgr)
	applicationService := services.NewApplicationService(applications, drives, lgr)

	cookie := controllers.CookieSettings{Name: testCookieName, TTL: time.Hour}

	router := gin.New()
	SetupRouter(
		router,
		controllers.NewAuthController(authService, cookie, lgr),
		controllers.NewDashboardController(adminService, driveService, applicationService, lgr),
		controllers.NewAdminController(adminService, lgr),
		controllers.NewCompanyController(driveService, applicationService, lgr),
		controllers.NewStudentController(driveService, applicationService, lgr),
		middleware.NewSessionMiddleware(authService, testCookieName),
	)

	return &portal{router: router, users: users, sessions: sessions, drives: drives}
}

func (p *portal) do(t *testing.T, method, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	p.router.ServeHTTP(rec, req)
	return rec
}

// login posts credentials and returns the issued session cookie.
func (p *portal) login(t *testing.T, email, password string) *http.Cookie {
	t.Helper()

	rec := p.do(t, http.MethodPost, "/login", url.Values{
		"email":    {email},
		"password": {password},
	})
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/dashboard", rec.Header().Get("Location"))

	cookie := findCookie(rec, testCookieName)
	require.NotNil(t, cookie, "login did not set a session cookie")
	return cookie
}

func (p *portal) registerStudent(t *testing.T, name, email string) {
	t.Helper()

	rec := p.do(t, http.MethodPost, "/register/student", url.Values{
		"name":     {name},
		"email":    {email},
		"password": {testPassword},
	})
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/login", rec.Header().Get("Location"))
}

func (p *portal) registerCompany(t *testing.T, name, email string) {
	t.Helper()

	rec := p.do(t, http.MethodPost, "/register/company", url.Values{
		"name":     {name},
		"email":    {email},
		"password": {testPassword},
	})
	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/login", rec.Header().Get("Location"))
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == name && cookie.Value != "" && cookie.MaxAge >= 0 {
			return cookie
		}
	}
	return nil
}

// flashMessage extracts the transient message set alongside a redirect.
func flashMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	cookie := findCookie(rec, "portal_flash")
	if cookie == nil {
		return ""
	}
	message, err := url.QueryUnescape(cookie.Value)
	require.NoError(t, err)
	return message
}

func TestLiveness(t *testing.T) {
	p := newPortal(t)

	rec := p.do(t, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Placement Portal Running", rec.Body.String())
}

func TestDashboardRequiresLogin(t *testing.T) {
	p := newPortal(t)

	rec := p.do(t, http.MethodGet, "/dashboard", nil)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	// A cookie pointing at no live session is dropped, not trusted.
	stale := &http.Cookie{Name: testCookieName, Value: "no-such-session"}
	rec = p.do(t, http.MethodGet, "/dashboard", nil, stale)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestStudentJourney(t *testing.T) {
	p := newPortal(t)

	p.registerStudent(t, "Alice", "alice@student.com")
	cookie := p.login(t, "alice@student.com", testPassword)

	rec := p.do(t, http.MethodGet, "/dashboard", nil, cookie)
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/student/dashboard", rec.Header().Get("Location"))

	rec = p.do(t, http.MethodGet, "/student/dashboard", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Student dashboard")
}

func TestCompanyApprovalFlow(t *testing.T) {
	p := newPortal(t)

	p.registerCompany(t, "Acme Corp", "hr@acme.com")

	// The pending company cannot log in yet.
	rec := p.do(t, http.MethodPost, "/login", url.Values{
		"email":    {"hr@acme.com"},
		"password": {testPassword},
	})
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
	assert.Equal(t, "Wait for admin approval", flashMessage(t, rec))

	// The seeded admin approves it.
	adminCookie := p.login(t, seed.AdminEmail, seed.AdminPassword)
	company := p.users.byEmail("hr@acme.com")
	require.NotNil(t, company)

	rec = p.do(t, http.MethodPost, "/admin/companies/"+strconv.FormatInt(company.ID, 10)+"/approve", nil, adminCookie)
	require.Equal(t, http.StatusOK, rec.Code)

	// Approved, the company logs in and posts a drive.
	companyCookie := p.login(t, "hr@acme.com", testPassword)

	deadline := time.Now().AddDate(0, 1, 0).Format("2006-01-02")
	rec = p.do(t, http.MethodPost, "/company/drives", url.Values{
		"title":       {"Backend Engineer"},
		"description": {"Build services"},
		"eligibility": {"CGPA >= 7"},
		"deadline":    {deadline},
	}, companyCookie)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = p.do(t, http.MethodGet, "/company/dashboard", nil, companyCookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Backend Engineer")

	// A student applies; the company can read its drive's applicants.
	p.registerStudent(t, "Alice", "alice@student.com")
	studentCookie := p.login(t, "alice@student.com", testPassword)

	rec = p.do(t, http.MethodPost, "/student/drives/1/apply", nil, studentCookie)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = p.do(t, http.MethodGet, "/company/drives/1/applications", nil, companyCookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "\"driveId\":1")
}

func TestAdminDashboardListsPendingCompanies(t *testing.T) {
	p := newPortal(t)

	p.registerCompany(t, "Acme Corp", "hr@acme.com")
	adminCookie := p.login(t, seed.AdminEmail, seed.AdminPassword)

	rec := p.do(t, http.MethodGet, "/dashboard", nil, adminCookie)
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/admin/dashboard", rec.Header().Get("Location"))

	rec = p.do(t, http.MethodGet, "/admin/dashboard", nil, adminCookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Acme Corp")
}

func TestRoleAccessDenied(t *testing.T) {
	p := newPortal(t)

	p.registerStudent(t, "Alice", "alice@student.com")
	cookie := p.login(t, "alice@student.com", testPassword)

	// Another role's dashboard answers with a forbidden error, not a redirect.
	rec := p.do(t, http.MethodGet, "/admin/dashboard", nil, cookie)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = p.do(t, http.MethodGet, "/company/dashboard", nil, cookie)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Action endpoints are gated by the role middleware.
	rec = p.do(t, http.MethodPost, "/company/drives", url.Values{"title": {"X"}, "deadline": {"2030-01-01"}}, cookie)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = p.do(t, http.MethodPost, "/admin/companies/1/approve", nil, cookie)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

// A role value outside the enum gets a deterministic forbidden answer from
// the dispatcher, never a panic.
func TestDispatchUnknownRole(t *testing.T) {
	p := newPortal(t)

	p.registerStudent(t, "Mallory", "mallory@portal.com")
	cookie := p.login(t, "mallory@portal.com", testPassword)

	user := p.users.byEmail("mallory@portal.com")
	require.NotNil(t, user)
	p.users.users[user.ID].Role = models.Role("hr")

	rec := p.do(t, http.MethodGet, "/dashboard", nil, cookie)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Unknown role")
}

func TestLogout(t *testing.T) {
	p := newPortal(t)

	p.registerStudent(t, "Alice", "alice@student.com")
	cookie := p.login(t, "alice@student.com", testPassword)

	rec := p.do(t, http.MethodGet, "/logout", nil, cookie)
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	// The old cookie no longer opens a session.
	rec = p.do(t, http.MethodGet, "/dashboard", nil, cookie)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestRegisterDuplicateEmailFlash(t *testing.T) {
	p := newPortal(t)

	p.registerStudent(t, "Alice", "alice@student.com")

	rec := p.do(t, http.MethodPost, "/register/student", url.Values{
		"name":     {"Alice Again"},
		"email":    {"alice@student.com"},
		"password": {testPassword},
	})
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/register/student", rec.Header().Get("Location"))
	assert.Equal(t, "Email already exists", flashMessage(t, rec))
}

func TestInvalidLoginFlash(t *testing.T) {
	p := newPortal(t)

	rec := p.do(t, http.MethodPost, "/login", url.Values{
		"email":    {"nobody@portal.com"},
		"password": {"wrong"},
	})
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
	assert.Equal(t, "Invalid credentials", flashMessage(t, rec))
}

func TestBlacklistFlow(t *testing.T) {
	p := newPortal(t)

	p.registerStudent(t, "Bob", "bob@student.com")
	student := p.users.byEmail("bob@student.com")
	require.NotNil(t, student)

	adminCookie := p.login(t, seed.AdminEmail, seed.AdminPassword)
	userPath := "/admin/users/" + strconv.FormatInt(student.ID, 10) + "/blacklist"

	rec := p.do(t, http.MethodPost, userPath, nil, adminCookie)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = p.do(t, http.MethodPost, "/login", url.Values{
		"email":    {"bob@student.com"},
		"password": {testPassword},
	})
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "Your account is blacklisted", flashMessage(t, rec))

	// Lifting the block restores access.
	rec = p.do(t, http.MethodPost, userPath, url.Values{"blacklisted": {"false"}}, adminCookie)
	require.Equal(t, http.StatusOK, rec.Code)

	p.login(t, "bob@student.com", testPassword)
}

func TestApplyOverHTTP(t *testing.T) {
	p := newPortal(t)

	company := &models.User{Name: "Acme Corp", Email: "hr@acme.com", Role: models.RoleCompany, Approved: true}
	require.NoError(t, p.users.Create(context.Background(), company))
	drive := &models.Drive{CompanyID: company.ID, Title: "Backend Engineer", Deadline: time.Now().AddDate(0, 0, 7), Status: models.DriveStatusPending}
	require.NoError(t, p.drives.Create(context.Background(), drive))

	p.registerStudent(t, "Alice", "alice@student.com")
	cookie := p.login(t, "alice@student.com", testPassword)

	drivePath := "/student/drives/" + strconv.FormatInt(drive.ID, 10) + "/apply"

	rec := p.do(t, http.MethodPost, drivePath, nil, cookie)
	assert.Equal(t, http.StatusCreated, rec.Code)

	// Applying again collides with the per-drive uniqueness rule.
	rec = p.do(t, http.MethodPost, drivePath, nil, cookie)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = p.do(t, http.MethodGet, "/student/applications", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	// A drive that never existed is a 404, not a silent success.
	rec = p.do(t, http.MethodPost, "/student/drives/999/apply", nil, cookie)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
