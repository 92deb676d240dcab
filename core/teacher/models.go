package teacher

import (
	"time"

	"github.com/devanshdeveloper/edu-manage-sub000/core/listing"
	"github.com/devanshdeveloper/edu-manage-sub000/core/table"
	"github.com/devanshdeveloper/edu-manage-sub000/core/user"
)

// Statuses
const (
	StatusActive   = "active"
	StatusOnLeave  = "on_leave"
	StatusInactive = "inactive"
)

var Statuses = []string{StatusActive, StatusOnLeave, StatusInactive}

type Teacher struct {
	ID            string    `json:"id"`
	InstitutionID string    `json:"institution_id"`
	Institution   string    `json:"institution"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Subject       string    `json:"subject"`
	Department    string    `json:"department"`
	Status        string    `json:"status"`
	JoinedAt      time.Time `json:"joined_at"`
}

var Resource = listing.Resource[Teacher]{
	Name:  "teachers",
	Title: "Teachers",
	Columns: table.Columns[Teacher]{
		table.String("name", "Name", func(t Teacher) string { return t.Name }).Search(),
		table.String("email", "Email", func(t Teacher) string { return t.Email }).Search(),
		table.String("phone", "Phone", func(t Teacher) string { return t.Phone }).Hide(),
		table.String("subject", "Subject", func(t Teacher) string { return t.Subject }).Search(),
		table.String("department", "Department", func(t Teacher) string { return t.Department }).Filter(),
		table.String("institution", "Institution", func(t Teacher) string { return t.Institution }).Filter().Hide(),
		table.String("status", "Status", func(t Teacher) string { return t.Status }).Filter(),
		table.Time("joined_at", "Joined", func(t Teacher) time.Time { return t.JoinedAt }),
		table.String(listing.InstitutionColumn, "Institution ID", func(t Teacher) string { return t.InstitutionID }).Filter().NoSort().Hide(),
	},
	DefaultSort: table.Sort{Key: "name"},
	Statuses:    Statuses,
	ID:          func(t Teacher) string { return t.ID },
	Status:      func(t Teacher) string { return t.Status },
	SetStatus: func(t Teacher, s string) Teacher {
		t.Status = s
		return t
	},
	Permissions: map[string]listing.Permission{
		user.RoleSuperAdmin: listing.ReadWrite,
		user.RoleAdmin:      listing.ReadWrite,
	},
	InstitutionScoped: true,
}
