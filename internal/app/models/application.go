package models

import (
	"time"
)

// Application status values. Status changes by company/admin are out of scope;
// every row is created as Applied.
const ApplicationStatusApplied = "Applied"

// Application defines a student's application to a drive based on the
// 'applications' table. (student_id, drive_id) is unique.
type Application struct {
	ID        int64     `json:"id" db:"id"`
	StudentID int64     `json:"studentId" db:"student_id"`
	DriveID   int64     `json:"driveId" db:"drive_id"`
	AppliedOn time.Time `json:"appliedOn" db:"applied_on"`
	Status    string    `json:"status" db:"status"`
}
