package classroom

import (
	"sort"

	"github.com/devanshdeveloper/edu-manage-sub000/core/listing"
	"github.com/devanshdeveloper/edu-manage-sub000/core/table"
	"github.com/devanshdeveloper/edu-manage-sub000/core/teacher"
	"github.com/devanshdeveloper/edu-manage-sub000/core/user"
)

// Statuses
const (
	StatusActive   = "active"
	StatusArchived = "archived"
)

var Statuses = []string{StatusActive, StatusArchived}

type Classroom struct {
	ID            string `json:"id"`
	InstitutionID string `json:"institution_id"`
	Institution   string `json:"institution"`
	Name          string `json:"name"`
	Grade         string `json:"grade"`
	Room          string `json:"room"`
	TeacherID     string `json:"teacher_id,omitempty"`
	Teacher       string `json:"teacher,omitempty"`
	Capacity      int    `json:"capacity"`
	Students      int    `json:"students"`
	Status        string `json:"status"`
}

var Resource = listing.Resource[Classroom]{
	Name:  "classrooms",
	Title: "Classrooms",
	Columns: table.Columns[Classroom]{
		table.String("name", "Name", func(c Classroom) string { return c.Name }).Search(),
		table.String("grade", "Grade", func(c Classroom) string { return c.Grade }).Filter(),
		table.String("room", "Room", func(c Classroom) string { return c.Room }).Search(),
		table.String("teacher", "Teacher", func(c Classroom) string { return c.Teacher }).Search(),
		table.Int("capacity", "Capacity", func(c Classroom) int { return c.Capacity }),
		table.Int("students", "Students", func(c Classroom) int { return c.Students }),
		table.String("institution", "Institution", func(c Classroom) string { return c.Institution }).Filter().Hide(),
		table.String("status", "Status", func(c Classroom) string { return c.Status }).Filter(),
		table.String("teacher_id", "Teacher ID", func(c Classroom) string { return c.TeacherID }).Filter().NoSort().Hide(),
		table.String(listing.InstitutionColumn, "Institution ID", func(c Classroom) string { return c.InstitutionID }).Filter().NoSort().Hide(),
	},
	DefaultSort: table.Sort{Key: "name"},
	Statuses:    Statuses,
	ID:          func(c Classroom) string { return c.ID },
	Status:      func(c Classroom) string { return c.Status },
	SetStatus: func(c Classroom, s string) Classroom {
		c.Status = s
		return c
	},
	Permissions: map[string]listing.Permission{
		user.RoleSuperAdmin: listing.ReadWrite,
		user.RoleAdmin:      listing.ReadWrite,
	},
	InstitutionScoped: true,
}

// AssignTeacher returns c taught by t. A zero Teacher unassigns c.
func AssignTeacher(c Classroom, t teacher.Teacher) Classroom {
	c.TeacherID = t.ID
	c.Teacher = t.Name
	return c
}

// Lane is one column of the assignment board: a teacher and the classrooms they teach.
type Lane struct {
	TeacherID  string      `json:"teacher_id"`
	Teacher    string      `json:"teacher"`
	Classrooms []Classroom `json:"classrooms"`
}

// Board groups classrooms by teacher. Every teacher gets a lane, in the given order;
// unassigned classrooms come first in a lane with an empty TeacherID.
func Board(teachers []teacher.Teacher, classrooms []Classroom) []Lane {
	lanes := make([]Lane, 0, len(teachers)+1)
	lanes = append(lanes, Lane{Teacher: "Unassigned", Classrooms: []Classroom{}})
	idx := map[string]int{"": 0}
	for _, t := range teachers {
		idx[t.ID] = len(lanes)
		lanes = append(lanes, Lane{TeacherID: t.ID, Teacher: t.Name, Classrooms: []Classroom{}})
	}
	for _, c := range classrooms {
		i, ok := idx[c.TeacherID]
		if !ok {
			i = 0 // teacher out of scope or gone
		}
		lanes[i].Classrooms = append(lanes[i].Classrooms, c)
	}
	for _, l := range lanes {
		sort.SliceStable(l.Classrooms, func(a, b int) bool { return l.Classrooms[a].Name < l.Classrooms[b].Name })
	}
	return lanes
}
