package material

import (
	"time"

	"github.com/devanshdeveloper/edu-manage-sub000/core/listing"
	"github.com/devanshdeveloper/edu-manage-sub000/core/table"
	"github.com/devanshdeveloper/edu-manage-sub000/core/user"
)

// Statuses
const (
	StatusPublished = "published"
	StatusDraft     = "draft"
	StatusArchived  = "archived"
)

var Statuses = []string{StatusPublished, StatusDraft, StatusArchived}

// Material is a study resource shared with students.
type Material struct {
	ID            string    `json:"id"`
	InstitutionID string    `json:"institution_id"`
	Institution   string    `json:"institution"`
	Title         string    `json:"title"`
	Subject       string    `json:"subject"`
	Type          string    `json:"type"` // document, video, slides, link
	UploadedBy    string    `json:"uploaded_by"`
	Downloads     int       `json:"downloads"`
	Status        string    `json:"status"`
	UploadedAt    time.Time `json:"uploaded_at"`
}

var Resource = listing.Resource[Material]{
	Name:  "materials",
	Title: "Study Materials",
	Columns: table.Columns[Material]{
		table.String("title", "Title", func(m Material) string { return m.Title }).Search(),
		table.String("subject", "Subject", func(m Material) string { return m.Subject }).Search().Filter(),
		table.String("type", "Type", func(m Material) string { return m.Type }).Filter(),
		table.String("uploaded_by", "Uploaded by", func(m Material) string { return m.UploadedBy }).Search(),
		table.Int("downloads", "Downloads", func(m Material) int { return m.Downloads }).Hide(),
		table.Time("uploaded_at", "Uploaded", func(m Material) time.Time { return m.UploadedAt }),
		table.String("status", "Status", func(m Material) string { return m.Status }).Filter(),
		table.String("institution", "Institution", func(m Material) string { return m.Institution }).Filter().Hide(),
		table.String(listing.InstitutionColumn, "Institution ID", func(m Material) string { return m.InstitutionID }).Filter().NoSort().Hide(),
	},
	DefaultSort: table.Sort{Key: "uploaded_at", Direction: table.Descending},
	Statuses:    Statuses,
	ID:          func(m Material) string { return m.ID },
	Status:      func(m Material) string { return m.Status },
	SetStatus: func(m Material, s string) Material {
		m.Status = s
		return m
	},
	Permissions: map[string]listing.Permission{
		user.RoleSuperAdmin: listing.ReadWrite,
		user.RoleAdmin:      listing.ReadWrite,
		user.RoleStudent:    listing.ReadOnly,
	},
	InstitutionScoped: true,
}
