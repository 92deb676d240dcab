// Package exam holds the tests scheduled for classrooms.
package exam

import (
	"time"

	"github.com/devanshdeveloper/edu-manage-sub000/core/listing"
	"github.com/devanshdeveloper/edu-manage-sub000/core/table"
	"github.com/devanshdeveloper/edu-manage-sub000/core/user"
)

// Statuses
const (
	StatusScheduled = "scheduled"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

var Statuses = []string{StatusScheduled, StatusCompleted, StatusCancelled}

type Exam struct {
	ID            string    `json:"id"`
	InstitutionID string    `json:"institution_id"`
	Institution   string    `json:"institution"`
	Title         string    `json:"title"`
	Subject       string    `json:"subject"`
	Classroom     string    `json:"classroom"`
	Date          time.Time `json:"date"`
	Duration      int       `json:"duration"` // minutes
	MaxScore      int       `json:"max_score"`
	Status        string    `json:"status"`
}

var Resource = listing.Resource[Exam]{
	Name:  "tests",
	Title: "Tests",
	Columns: table.Columns[Exam]{
		table.String("title", "Title", func(e Exam) string { return e.Title }).Search(),
		table.String("subject", "Subject", func(e Exam) string { return e.Subject }).Search().Filter(),
		table.String("classroom", "Class", func(e Exam) string { return e.Classroom }).Search(),
		table.Time("date", "Date", func(e Exam) time.Time { return e.Date }),
		table.Int("duration", "Duration (min)", func(e Exam) int { return e.Duration }),
		table.Int("max_score", "Max score", func(e Exam) int { return e.MaxScore }).Hide(),
		table.String("status", "Status", func(e Exam) string { return e.Status }).Filter(),
		table.String("institution", "Institution", func(e Exam) string { return e.Institution }).Filter().Hide(),
		table.String(listing.InstitutionColumn, "Institution ID", func(e Exam) string { return e.InstitutionID }).Filter().NoSort().Hide(),
	},
	DefaultSort: table.Sort{Key: "date"},
	Statuses:    Statuses,
	ID:          func(e Exam) string { return e.ID },
	Status:      func(e Exam) string { return e.Status },
	SetStatus: func(e Exam, s string) Exam {
		e.Status = s
		return e
	},
	Permissions: map[string]listing.Permission{
		user.RoleSuperAdmin: listing.ReadWrite,
		user.RoleAdmin:      listing.ReadWrite,
		user.RoleStudent:    listing.ReadOnly,
	},
	InstitutionScoped: true,
}
