package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arjun/placement-portal/internal/app/controllers"
	"github.com/arjun/placement-portal/internal/app/models"
	"github.com/arjun/placement-portal/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	dashboardController *controllers.DashboardController,
	adminController *controllers.AdminController,
	companyController *controllers.CompanyController,
	studentController *controllers.StudentController,
	sessionMiddleware *middleware.SessionMiddleware,
) {
	// Liveness
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Placement Portal Running")
	})

	// --- Public auth routes ---
	router.GET("/login", authController.ShowLogin)
	router.POST("/login", authController.Login)
	router.GET("/register/student", authController.ShowRegisterStudent)
	router.POST("/register/student", authController.RegisterStudent)
	router.GET("/register/company", authController.ShowRegisterCompany)
	router.POST("/register/company", authController.RegisterCompany)

	// --- Authenticated routes ---
	authenticated := router.Group("")
	authenticated.Use(sessionMiddleware.SessionAuth())
	{
		authenticated.GET("/dashboard", dashboardController.Dispatch)
		authenticated.GET("/logout", authController.Logout)

		// Dashboards re-check the role inside the handler; routing alone is
		// not the authorization boundary.
		authenticated.GET("/admin/dashboard", dashboardController.AdminDashboard)
		authenticated.GET("/company/dashboard", dashboardController.CompanyDashboard)
		authenticated.GET("/student/dashboard", dashboardController.StudentDashboard)

		// Admin actions
		admin := authenticated.Group("/admin")
		admin.Use(sessionMiddleware.RoleRequired(models.RoleAdmin))
		{
			admin.POST("/companies/:id/approve", adminController.ApproveCompany)
			admin.POST("/users/:id/blacklist", adminController.BlacklistUser)
		}

		// Company actions
		company := authenticated.Group("/company")
		company.Use(sessionMiddleware.RoleRequired(models.RoleCompany))
		{
			company.POST("/drives", companyController.CreateDrive)
			company.GET("/drives", companyController.ListDrives)
			company.GET("/drives/:id/applications", companyController.ListDriveApplications)
		}

		// Student actions
		student := authenticated.Group("/student")
		student.Use(sessionMiddleware.RoleRequired(models.RoleStudent))
		{
			student.GET("/drives", studentController.ListOpenDrives)
			student.POST("/drives/:id/apply", studentController.Apply)
			student.GET("/applications", studentController.ListApplications)
		}
	}
}
