package fee

import (
	"time"

	"github.com/devanshdeveloper/edu-manage-sub000/core/listing"
	"github.com/devanshdeveloper/edu-manage-sub000/core/table"
	"github.com/devanshdeveloper/edu-manage-sub000/core/user"
)

// Statuses
const (
	StatusPaid    = "paid"
	StatusPending = "pending"
	StatusOverdue = "overdue"
	StatusPartial = "partial"
)

var Statuses = []string{StatusPaid, StatusPending, StatusOverdue, StatusPartial}

type Fee struct {
	ID            string    `json:"id"`
	InstitutionID string    `json:"institution_id"`
	Institution   string    `json:"institution"`
	StudentID     string    `json:"student_id"`
	Student       string    `json:"student"`
	Type          string    `json:"type"` // tuition, transport, library, exam...
	Amount        float64   `json:"amount"`
	Paid          float64   `json:"paid"`
	DueDate       time.Time `json:"due_date"`
	Status        string    `json:"status"`
}

func (f Fee) Balance() float64 { return f.Amount - f.Paid }

var Resource = listing.Resource[Fee]{
	Name:  "fees",
	Title: "Fees",
	Columns: table.Columns[Fee]{
		table.String("student", "Student", func(f Fee) string { return f.Student }).Search(),
		table.String("type", "Type", func(f Fee) string { return f.Type }).Search().Filter(),
		table.Float("amount", "Amount", func(f Fee) float64 { return f.Amount }),
		table.Float("paid", "Paid", func(f Fee) float64 { return f.Paid }),
		table.Float("balance", "Balance", Fee.Balance),
		table.Time("due_date", "Due", func(f Fee) time.Time { return f.DueDate }),
		table.String("status", "Status", func(f Fee) string { return f.Status }).Filter(),
		table.String("institution", "Institution", func(f Fee) string { return f.Institution }).Filter().Hide(),
		table.String(listing.StudentColumn, "Student ID", func(f Fee) string { return f.StudentID }).Filter().NoSort().Hide(),
		table.String(listing.InstitutionColumn, "Institution ID", func(f Fee) string { return f.InstitutionID }).Filter().NoSort().Hide(),
	},
	DefaultSort: table.Sort{Key: "due_date"},
	Statuses:    Statuses,
	ID:          func(f Fee) string { return f.ID },
	Status:      func(f Fee) string { return f.Status },
	SetStatus: func(f Fee, s string) Fee {
		f.Status = s
		if s == StatusPaid {
			f.Paid = f.Amount
		}
		return f
	},
	Permissions: map[string]listing.Permission{
		user.RoleSuperAdmin: listing.ReadWrite,
		user.RoleAdmin:      listing.ReadWrite,
		user.RoleStudent:    listing.ReadOnly,
	},
	InstitutionScoped: true,
	StudentScoped:     true,
}
