package models

import (
	"time"
)

// Drive status values. Further transitions are owned by an admin review flow
// that is not part of this service yet; rows are created as Pending and stay
// there until that flow lands.
const DriveStatusPending = "Pending"

// Drive defines a company-posted recruitment drive based on the 'drives' table
type Drive struct {
	ID          int64     `json:"id" db:"id"`
	CompanyID   int64     `json:"companyId" db:"company_id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Eligibility string    `json:"eligibility" db:"eligibility"`
	Deadline    time.Time `json:"deadline" db:"deadline"`
	Status      string    `json:"status" db:"status"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// Open reports whether the drive still accepts applications on the given day.
func (d *Drive) Open(now time.Time) bool {
	deadline := time.Date(d.Deadline.Year(), d.Deadline.Month(), d.Deadline.Day(), 23, 59, 59, 0, d.Deadline.Location())
	return !now.After(deadline)
}
