// Package listing binds a resource collection to its backing store and to a table.Engine.
// A Page is what a list screen reads: the current collection, whether it is loading and the
// last error, plus the derived views of any query state.
package listing

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/devanshdeveloper/edu-manage-sub000/core"
	"github.com/devanshdeveloper/edu-manage-sub000/core/table"
	"github.com/devanshdeveloper/edu-manage-sub000/core/user"
)

var (
	ErrNotFound      = core.ErrNotFound
	ErrInvalidStatus = errors.New("invalid status")
	ErrForbidden     = errors.New("permission denied")
)

// Permission is what a role may do on a resource.
type Permission int

const (
	NoAccess Permission = iota
	ReadOnly
	ReadWrite
)

// Scope column ids shared by the institution-owned resources.
const (
	InstitutionColumn = "institution_id"
	StudentColumn     = "student_id"
)

// Resource describes a collection served as a table.
type Resource[T any] struct {
	Name        string // url segment, eg: "students"
	Title       string
	Columns     table.Columns[T]
	DefaultSort table.Sort
	Statuses    []string

	ID        func(T) string
	Status    func(T) string
	SetStatus func(T, string) T

	// Permissions per user role; a missing role has NoAccess.
	Permissions map[string]Permission
	// InstitutionScoped resources are restricted to the session's institution for non super admins.
	InstitutionScoped bool
	// StudentScoped resources are restricted to the session's own records for students.
	StudentScoped bool
}

func (r Resource[T]) ValidStatus(status string) bool {
	for _, s := range r.Statuses {
		if s == status {
			return true
		}
	}
	return false
}

// Access returns what sess may do on r and the filters enforced on every query it makes.
func (r Resource[T]) Access(sess user.Session) (Permission, table.Filters) {
	perm := r.Permissions[sess.Role]
	if perm == NoAccess {
		return NoAccess, nil
	}

	enforced := make(table.Filters)
	if r.InstitutionScoped && !sess.IsSuperAdmin() {
		if sess.InstitutionID == "" {
			return NoAccess, nil
		}
		enforced[InstitutionColumn] = []string{sess.InstitutionID}
	}
	if r.StudentScoped && sess.IsStudent() {
		if sess.StudentID == "" {
			return NoAccess, nil
		}
		enforced[StudentColumn] = []string{sess.StudentID}
	}
	return perm, enforced
}

// Check verifies that the descriptors of r are consistent.
func (r Resource[T]) Check() error {
	if r.Name == "" || r.ID == nil {
		return errors.New("resource needs a name and an ID accessor")
	}
	if len(r.Columns) == 0 {
		return errors.Errorf("%s: no columns", r.Name)
	}
	seen := make(map[string]struct{}, len(r.Columns))
	for _, c := range r.Columns {
		if _, ok := seen[c.ID]; ok {
			return errors.Errorf("%s: duplicate column %q", r.Name, c.ID)
		}
		seen[c.ID] = struct{}{}
		if c.Value == nil || c.Text == nil {
			return errors.Errorf("%s: column %q has no accessor", r.Name, c.ID)
		}
	}
	if !r.DefaultSort.IsZero() {
		if col, ok := r.Columns.Lookup(r.DefaultSort.Key); !ok || !col.Sortable() {
			return errors.Errorf("%s: default sort %q is not a sortable column", r.Name, r.DefaultSort.Key)
		}
	}
	needs := map[string]bool{InstitutionColumn: r.InstitutionScoped, StudentColumn: r.StudentScoped, "status": r.Status != nil}
	for id, needed := range needs {
		if col, ok := r.Columns.Lookup(id); needed && (!ok || !col.Filterable) {
			return errors.Errorf("%s: %q must be a filterable column", r.Name, id)
		}
	}
	if (r.Status == nil) != (r.SetStatus == nil) || (r.Status != nil && len(r.Statuses) == 0) {
		return errors.Errorf("%s: incomplete status descriptors", r.Name)
	}
	return nil
}

// StatusError reports a status outside of the resource vocabulary.
type StatusError struct {
	Status  string
	Allowed []string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %q; must be one of %v", ErrInvalidStatus, e.Status, e.Allowed)
}

func (e *StatusError) Cause() error { return ErrInvalidStatus }
