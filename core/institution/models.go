package institution

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/devanshdeveloper/edu-manage-sub000/core"
	"github.com/devanshdeveloper/edu-manage-sub000/core/listing"
	"github.com/devanshdeveloper/edu-manage-sub000/core/table"
	"github.com/devanshdeveloper/edu-manage-sub000/core/user"
)

// Statuses
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusPending  = "pending"
)

// Plans
const (
	PlanBasic      = "basic"
	PlanStandard   = "standard"
	PlanPremium    = "premium"
	PlanEnterprise = "enterprise"
)

var (
	Statuses = []string{StatusActive, StatusInactive, StatusPending}
	Plans    = []string{PlanBasic, PlanStandard, PlanPremium, PlanEnterprise}
)

type Institution struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Location  string    `json:"location"`
	Plan      string    `json:"plan"`
	Status    string    `json:"status"`
	Students  int       `json:"students"`
	Teachers  int       `json:"teachers"`
	CreatedAt time.Time `json:"created_at"`
}

var Resource = listing.Resource[Institution]{
	Name:  "institutions",
	Title: "Institutions",
	Columns: table.Columns[Institution]{
		table.String("name", "Name", func(i Institution) string { return i.Name }).Search(),
		table.String("email", "Email", func(i Institution) string { return i.Email }).Search(),
		table.String("phone", "Phone", func(i Institution) string { return i.Phone }).Hide(),
		table.String("location", "Location", func(i Institution) string { return i.Location }).Search(),
		table.String("plan", "Plan", func(i Institution) string { return i.Plan }).Filter(),
		table.String("status", "Status", func(i Institution) string { return i.Status }).Filter(),
		table.Int("students", "Students", func(i Institution) int { return i.Students }),
		table.Int("teachers", "Teachers", func(i Institution) int { return i.Teachers }).Hide(),
		table.Time("created_at", "Created", func(i Institution) time.Time { return i.CreatedAt }),
		table.String("id", "ID", func(i Institution) string { return i.ID }).NoSort().Hide(),
	},
	DefaultSort: table.Sort{Key: "name"},
	Statuses:    Statuses,
	ID:          func(i Institution) string { return i.ID },
	Status:      func(i Institution) string { return i.Status },
	SetStatus: func(i Institution, s string) Institution {
		i.Status = s
		return i
	},
	Permissions: map[string]listing.Permission{
		user.RoleSuperAdmin: listing.ReadWrite,
	},
}

// NewInstitution contains what is needed to onboard an institution.
type NewInstitution struct {
	Name     string `json:"name" validate:"required,notblank,max=120"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"omitempty,e164"`
	Location string `json:"location" validate:"required,notblank"`
	Plan     string `json:"plan" validate:"required,plan"`
}

func (ni *NewInstitution) Validate(validate *validator.Validate) error {
	ni.Name = core.CleanString(ni.Name)
	ni.Email = core.CleanString(ni.Email, true /* lower */)
	ni.Phone = core.CleanString(ni.Phone)
	ni.Location = core.CleanString(ni.Location)
	ni.Plan = core.CleanString(ni.Plan, true /* lower */)
	return validate.Struct(ni)
}

// Institution returns the pending institution to create.
func (ni NewInstitution) Institution(now time.Time) Institution {
	return Institution{
		ID:        uuid.NewString(),
		Name:      ni.Name,
		Email:     ni.Email,
		Phone:     ni.Phone,
		Location:  ni.Location,
		Plan:      ni.Plan,
		Status:    StatusPending,
		CreatedAt: now.UTC(),
	}
}
