package attendance

import (
	"time"

	"github.com/devanshdeveloper/edu-manage-sub000/core/listing"
	"github.com/devanshdeveloper/edu-manage-sub000/core/table"
	"github.com/devanshdeveloper/edu-manage-sub000/core/user"
)

// Statuses
const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
	StatusLate    = "late"
	StatusExcused = "excused"
)

var Statuses = []string{StatusPresent, StatusAbsent, StatusLate, StatusExcused}

// Record is the attendance of one student to one class session.
type Record struct {
	ID            string    `json:"id"`
	InstitutionID string    `json:"institution_id"`
	Institution   string    `json:"institution"`
	StudentID     string    `json:"student_id"`
	Student       string    `json:"student"`
	Classroom     string    `json:"classroom"`
	Date          time.Time `json:"date"`
	Status        string    `json:"status"`
	Remarks       string    `json:"remarks,omitempty"`
}

var Resource = listing.Resource[Record]{
	Name:  "attendance",
	Title: "Attendance",
	Columns: table.Columns[Record]{
		table.String("student", "Student", func(r Record) string { return r.Student }).Search(),
		table.String("classroom", "Class", func(r Record) string { return r.Classroom }).Search().Filter(),
		table.Time("date", "Date", func(r Record) time.Time { return r.Date }),
		table.String("status", "Status", func(r Record) string { return r.Status }).Filter(),
		table.String("remarks", "Remarks", func(r Record) string { return r.Remarks }).NoSort().Hide(),
		table.String("institution", "Institution", func(r Record) string { return r.Institution }).Filter().Hide(),
		table.String(listing.StudentColumn, "Student ID", func(r Record) string { return r.StudentID }).Filter().NoSort().Hide(),
		table.String(listing.InstitutionColumn, "Institution ID", func(r Record) string { return r.InstitutionID }).Filter().NoSort().Hide(),
	},
	DefaultSort: table.Sort{Key: "date", Direction: table.Descending},
	Statuses:    Statuses,
	ID:          func(r Record) string { return r.ID },
	Status:      func(r Record) string { return r.Status },
	SetStatus: func(r Record, s string) Record {
		r.Status = s
		return r
	},
	Permissions: map[string]listing.Permission{
		user.RoleSuperAdmin: listing.ReadWrite,
		user.RoleAdmin:      listing.ReadWrite,
		user.RoleStudent:    listing.ReadOnly,
	},
	InstitutionScoped: true,
	StudentScoped:     true,
}
