package user

import (
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/devanshdeveloper/edu-manage-sub000/core"
)

// Roles
const (
	RoleSuperAdmin = "super_admin" // platform owner: institutions & subscriptions
	RoleAdmin      = "admin"       // institution admin
	RoleStudent    = "student"
)

var (
	AllRoles = []string{RoleSuperAdmin, RoleAdmin, RoleStudent}

	Roles = []Role{
		{Name: "Super Admin", Value: RoleSuperAdmin},
		{Name: "Admin", Value: RoleAdmin},
		{Name: "Student", Value: RoleStudent},
	}
)

type Role struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type User struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Role          string    `json:"role"`
	InstitutionID string    `json:"institution_id,omitempty"`
	StudentID     string    `json:"student_id,omitempty"`
	IsActive      bool      `json:"is_active"`
	PasswordHash  []byte    `json:"-"`
	CreatedAt     time.Time `json:"created_at"` // UTC
	UpdatedAt     time.Time `json:"updated_at"` // UTC
	LastLogin     time.Time `json:"last_login"` // UTC
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

// Session returns the identity carried by u's access tokens.
func (u User) Session() Session {
	return Session{
		UserID:        u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Role:          u.Role,
		InstitutionID: u.InstitutionID,
		StudentID:     u.StudentID,
	}
}

// Session is the authenticated identity of a request. It is decoded from the bearer token
// and never looked up again during the request.
type Session struct {
	UserID        string `json:"user_id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Role          string `json:"role"`
	InstitutionID string `json:"institution_id,omitempty"`
	StudentID     string `json:"student_id,omitempty"`
}

func (s Session) IsSuperAdmin() bool { return s.Role == RoleSuperAdmin }
func (s Session) IsAdmin() bool      { return s.Role == RoleAdmin }
func (s Session) IsStudent() bool    { return s.Role == RoleStudent }

// UpdateUser defines what a user may change on their own profile.
type UpdateUser struct {
	Name string `json:"name" validate:"required,notblank,max=100"`
}

func (uu *UpdateUser) Validate(validate *validator.Validate) error {
	uu.Name = core.CleanString(uu.Name)
	return validate.Struct(uu)
}

type ResetUserPassword struct {
	Token           string `json:"token,omitempty" validate:"required"`
	UID             string `json:"uid,omitempty" validate:"required"`
	Password        string `json:"password,omitempty" validate:"required"`
	PasswordConfirm string `json:"password_confirm,omitempty" validate:"required,eqfield=Password"`
}

func (rp ResetUserPassword) Validate(validate *validator.Validate) error { return validate.Struct(rp) }
