package subscription

import (
	"time"

	"github.com/google/uuid"

	"github.com/devanshdeveloper/edu-manage-sub000/core/institution"
	"github.com/devanshdeveloper/edu-manage-sub000/core/listing"
	"github.com/devanshdeveloper/edu-manage-sub000/core/table"
	"github.com/devanshdeveloper/edu-manage-sub000/core/user"
)

// Statuses
const (
	StatusActive    = "active"
	StatusTrial     = "trial"
	StatusExpired   = "expired"
	StatusCancelled = "cancelled"
)

// Billing cycles
const (
	Monthly = "monthly"
	Yearly  = "yearly"
)

// TrialPeriod is the length of the subscription created at onboarding.
const TrialPeriod = 30 * 24 * time.Hour

var Statuses = []string{StatusActive, StatusTrial, StatusExpired, StatusCancelled}

// monthly price per plan
var prices = map[string]float64{
	institution.PlanBasic:      49,
	institution.PlanStandard:   99,
	institution.PlanPremium:    199,
	institution.PlanEnterprise: 499,
}

type Subscription struct {
	ID            string    `json:"id"`
	InstitutionID string    `json:"institution_id"`
	Institution   string    `json:"institution"`
	Plan          string    `json:"plan"`
	BillingCycle  string    `json:"billing_cycle"`
	Amount        float64   `json:"amount"`
	Status        string    `json:"status"`
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
}

var Resource = listing.Resource[Subscription]{
	Name:  "subscriptions",
	Title: "Subscriptions",
	Columns: table.Columns[Subscription]{
		table.String("institution", "Institution", func(s Subscription) string { return s.Institution }).Search(),
		table.String("plan", "Plan", func(s Subscription) string { return s.Plan }).Search().Filter(),
		table.String("billing_cycle", "Billing", func(s Subscription) string { return s.BillingCycle }).Filter(),
		table.Float("amount", "Amount", func(s Subscription) float64 { return s.Amount }),
		table.String("status", "Status", func(s Subscription) string { return s.Status }).Filter(),
		table.Time("start_date", "Start", func(s Subscription) time.Time { return s.StartDate }),
		table.Time("end_date", "End", func(s Subscription) time.Time { return s.EndDate }),
		table.String(listing.InstitutionColumn, "Institution ID", func(s Subscription) string { return s.InstitutionID }).Filter().NoSort().Hide(),
	},
	DefaultSort: table.Sort{Key: "end_date"},
	Statuses:    Statuses,
	ID:          func(s Subscription) string { return s.ID },
	Status:      func(s Subscription) string { return s.Status },
	SetStatus: func(s Subscription, status string) Subscription {
		s.Status = status
		return s
	},
	Permissions: map[string]listing.Permission{
		user.RoleSuperAdmin: listing.ReadWrite,
	},
}

// NewTrial returns the trial subscription of a freshly onboarded institution.
func NewTrial(inst institution.Institution, now time.Time) Subscription {
	start := now.UTC().Truncate(24 * time.Hour)
	return Subscription{
		ID:            uuid.NewString(),
		InstitutionID: inst.ID,
		Institution:   inst.Name,
		Plan:          inst.Plan,
		BillingCycle:  Monthly,
		Amount:        Price(inst.Plan, Monthly),
		Status:        StatusTrial,
		StartDate:     start,
		EndDate:       start.Add(TrialPeriod),
	}
}

// Price returns the amount billed per cycle for plan. Yearly billing gets two months free.
func Price(plan, cycle string) float64 {
	monthly := prices[plan]
	if cycle == Yearly {
		return monthly * 10
	}
	return monthly
}
