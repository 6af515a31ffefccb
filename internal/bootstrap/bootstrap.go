// Package bootstrap wires configuration, storage and HTTP handling together.
package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/arjun/placement-portal/internal/app/controllers"
	appMigrations "github.com/arjun/placement-portal/internal/app/migrations"
	appRepos "github.com/arjun/placement-portal/internal/app/repositories"
	appRoutes "github.com/arjun/placement-portal/internal/app/routes"
	appServices "github.com/arjun/placement-portal/internal/app/services"
	"github.com/arjun/placement-portal/internal/config"
	"github.com/arjun/placement-portal/internal/db"
	appMiddleware "github.com/arjun/placement-portal/internal/middleware"
	"github.com/arjun/placement-portal/internal/pkg/logger"
	"github.com/arjun/placement-portal/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService         *appServices.AuthService
	AdminService        *appServices.AdminService
	DriveService        *appServices.DriveService
	ApplicationService  *appServices.ApplicationService
	AuthController      *appControllers.AuthController
	DashboardController *appControllers.DashboardController
	AdminController     *appControllers.AdminController
	CompanyController   *appControllers.CompanyController
	StudentController   *appControllers.StudentController
	SessionMiddleware   *appMiddleware.SessionMiddleware
	Repos               *appRepos.Repositories
	Logger              zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logger.Configure(logger.Config{
		Level:  strings.ToLower(cfg.Logging.Level),
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds the default admin account.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		dbPool.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(ctx, migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		dbPool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	if err := seed.EnsureAdmin(ctx, appRepos.NewUserRepository(dbPool), lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to seed admin account")
		dbPool.Close()
		return nil, fmt.Errorf("admin seeding failed: %w", err)
	}

	lgr.Info().Msg("Database ready.")
	return dbPool, nil
}

// BuildDependencies initializes repositories, services and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.Repos.SessionRepository,
		cfg.SessionTTL(),
		lgr,
	)
	deps.AdminService = appServices.NewAdminService(deps.Repos.UserRepository, lgr)
	deps.DriveService = appServices.NewDriveService(deps.Repos.DriveRepository, deps.Repos.UserRepository, lgr)
	deps.ApplicationService = appServices.NewApplicationService(deps.Repos.ApplicationRepository, deps.Repos.DriveRepository, lgr)

	deps.SessionMiddleware = appMiddleware.NewSessionMiddleware(deps.AuthService, cfg.Session.CookieName)

	cookie := appControllers.CookieSettings{
		Name:   cfg.Session.CookieName,
		TTL:    cfg.SessionTTL(),
		Secure: cfg.Session.Secure,
	}

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, cookie, lgr)
	deps.DashboardController = appControllers.NewDashboardController(
		deps.AdminService, deps.DriveService, deps.ApplicationService, lgr)
	deps.AdminController = appControllers.NewAdminController(deps.AdminService, lgr)
	deps.CompanyController = appControllers.NewCompanyController(deps.DriveService, deps.ApplicationService, lgr)
	deps.StudentController = appControllers.NewStudentController(deps.DriveService, deps.ApplicationService, lgr)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.DashboardController,
		deps.AdminController,
		deps.CompanyController,
		deps.StudentController,
		deps.SessionMiddleware,
	)

	return router
}
