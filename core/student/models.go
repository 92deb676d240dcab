package student

import (
	"time"

	"github.com/devanshdeveloper/edu-manage-sub000/core/listing"
	"github.com/devanshdeveloper/edu-manage-sub000/core/table"
	"github.com/devanshdeveloper/edu-manage-sub000/core/user"
)

// Statuses
const (
	StatusActive    = "active"
	StatusInactive  = "inactive"
	StatusGraduated = "graduated"
	StatusSuspended = "suspended"
)

var Statuses = []string{StatusActive, StatusInactive, StatusGraduated, StatusSuspended}

type Student struct {
	ID             string    `json:"id"`
	InstitutionID  string    `json:"institution_id"`
	Institution    string    `json:"institution"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Guardian       string    `json:"guardian"`
	Grade          string    `json:"grade"`
	Classroom      string    `json:"classroom"`
	AttendanceRate float64   `json:"attendance_rate"` // percent
	Status         string    `json:"status"`
	EnrolledAt     time.Time `json:"enrolled_at"`
}

var Resource = listing.Resource[Student]{
	Name:  "students",
	Title: "Students",
	Columns: table.Columns[Student]{
		table.String("name", "Name", func(s Student) string { return s.Name }).Search(),
		table.String("email", "Email", func(s Student) string { return s.Email }).Search(),
		table.String("guardian", "Guardian", func(s Student) string { return s.Guardian }).Search().Hide(),
		table.String("grade", "Grade", func(s Student) string { return s.Grade }).Filter(),
		table.String("classroom", "Class", func(s Student) string { return s.Classroom }).Filter(),
		table.String("institution", "Institution", func(s Student) string { return s.Institution }).Filter().Hide(),
		table.Float("attendance_rate", "Attendance %", func(s Student) float64 { return s.AttendanceRate }),
		table.String("status", "Status", func(s Student) string { return s.Status }).Filter(),
		table.Time("enrolled_at", "Enrolled", func(s Student) time.Time { return s.EnrolledAt }).Hide(),
		table.String(listing.InstitutionColumn, "Institution ID", func(s Student) string { return s.InstitutionID }).Filter().NoSort().Hide(),
	},
	DefaultSort: table.Sort{Key: "name"},
	Statuses:    Statuses,
	ID:          func(s Student) string { return s.ID },
	Status:      func(s Student) string { return s.Status },
	SetStatus: func(s Student, status string) Student {
		s.Status = status
		return s
	},
	Permissions: map[string]listing.Permission{
		user.RoleSuperAdmin: listing.ReadWrite,
		user.RoleAdmin:      listing.ReadWrite,
	},
	InstitutionScoped: true,
}
