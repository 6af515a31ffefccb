package dto

import (
	"github.com/arjun/placement-portal/internal/app/models"
)

// CreateDriveRequest carries the drive posting form fields.
type CreateDriveRequest struct {
	Title       string `form:"title" json:"title" binding:"required"`
	Description string `form:"description" json:"description"`
	Eligibility string `form:"eligibility" json:"eligibility"`
	// Deadline is the last application date, formatted 2006-01-02.
	Deadline string `form:"deadline" json:"deadline" binding:"required"`
}

// AdminDashboard is the admin dashboard payload.
type AdminDashboard struct {
	User             SessionUser    `json:"user"`
	PendingCompanies []*models.User `json:"pendingCompanies"`
}

// CompanyDashboard is the company dashboard payload.
type CompanyDashboard struct {
	User   SessionUser     `json:"user"`
	Drives []*models.Drive `json:"drives"`
}

// StudentDashboard is the student dashboard payload.
type StudentDashboard struct {
	User         SessionUser           `json:"user"`
	OpenDrives   []*models.Drive       `json:"openDrives"`
	Applications []*models.Application `json:"applications"`
}
