// Package inmemdb provides the in-memory stores of the app, seeded from the embedded fixtures.
// Nothing is persisted: every Open starts from the fixtures again.
package inmemdb

import (
	"context"
	"encoding/json"
	"io/fs"
	"path"

	"github.com/pkg/errors"

	"github.com/devanshdeveloper/edu-manage-sub000/core"
	"github.com/devanshdeveloper/edu-manage-sub000/core/attendance"
	"github.com/devanshdeveloper/edu-manage-sub000/core/classroom"
	"github.com/devanshdeveloper/edu-manage-sub000/core/exam"
	"github.com/devanshdeveloper/edu-manage-sub000/core/fee"
	"github.com/devanshdeveloper/edu-manage-sub000/core/institution"
	"github.com/devanshdeveloper/edu-manage-sub000/core/material"
	"github.com/devanshdeveloper/edu-manage-sub000/core/school"
	"github.com/devanshdeveloper/edu-manage-sub000/core/student"
	"github.com/devanshdeveloper/edu-manage-sub000/core/subscription"
	"github.com/devanshdeveloper/edu-manage-sub000/core/teacher"
	"github.com/devanshdeveloper/edu-manage-sub000/core/user"
	appfs "github.com/devanshdeveloper/edu-manage-sub000/fs"
)

const fixturesDir = "fixtures"

type DB struct {
	Users         *Table[user.User]
	Institutions  *Table[institution.Institution]
	Subscriptions *Table[subscription.Subscription]
	Teachers      *Table[teacher.Teacher]
	Students      *Table[student.Student]
	Classrooms    *Table[classroom.Classroom]
	Attendance    *Table[attendance.Record]
	Fees          *Table[fee.Fee]
	Materials     *Table[material.Material]
	Exams         *Table[exam.Exam]
}

// Open returns a DB seeded from the embedded fixtures. Store calls are delayed by conf.Store.Latency.
func Open(conf *core.Config) (*DB, error) {
	latency := conf.Store.Latency
	db := &DB{
		Users:         NewTable("users", func(u user.User) string { return u.ID }, latency),
		Institutions:  NewTable(institution.Resource.Name, institution.Resource.ID, latency),
		Subscriptions: NewTable(subscription.Resource.Name, subscription.Resource.ID, latency),
		Teachers:      NewTable(teacher.Resource.Name, teacher.Resource.ID, latency),
		Students:      NewTable(student.Resource.Name, student.Resource.ID, latency),
		Classrooms:    NewTable(classroom.Resource.Name, classroom.Resource.ID, latency),
		Attendance:    NewTable(attendance.Resource.Name, attendance.Resource.ID, latency),
		Fees:          NewTable(fee.Resource.Name, fee.Resource.ID, latency),
		Materials:     NewTable(material.Resource.Name, material.Resource.ID, latency),
		Exams:         NewTable(exam.Resource.Name, exam.Resource.ID, latency),
	}
	if err := db.seed(appfs.FS); err != nil {
		return nil, errors.Wrap(err, "seeding database")
	}
	return db, nil
}

// Stores returns the resource tables as the stores of the school pages.
func (db *DB) Stores() school.Stores {
	return school.Stores{
		Institutions:  db.Institutions,
		Subscriptions: db.Subscriptions,
		Teachers:      db.Teachers,
		Students:      db.Students,
		Classrooms:    db.Classrooms,
		Attendance:    db.Attendance,
		Fees:          db.Fees,
		Materials:     db.Materials,
		Exams:         db.Exams,
	}
}

// userFixture carries the clear password of a fixture user; it is hashed at seeding.
type userFixture struct {
	user.User
	Password     string `json:"password"`
	PasswordHash string `json:"password_hash"`
}

func (db *DB) seed(fsys fs.FS) error {
	var users []userFixture
	if err := loadFixture(fsys, "users", &users); err != nil {
		return err
	}
	usrs := make([]user.User, len(users))
	for i, uf := range users {
		usr := uf.User
		switch {
		case uf.PasswordHash != "":
			usr.PasswordHash = []byte(uf.PasswordHash)
		case uf.Password != "":
			if err := usr.SetPassword(uf.Password); err != nil {
				return errors.Wrapf(err, "hashing password of %s", usr.Email)
			}
		}
		usrs[i] = usr
	}

	return firstErr(
		insertRows(db.Users, usrs),
		seedTable(fsys, db.Institutions),
		seedTable(fsys, db.Subscriptions),
		seedTable(fsys, db.Teachers),
		seedTable(fsys, db.Students),
		seedTable(fsys, db.Classrooms),
		seedTable(fsys, db.Attendance),
		seedTable(fsys, db.Fees),
		seedTable(fsys, db.Materials),
		seedTable(fsys, db.Exams),
	)
}

func seedTable[T any](fsys fs.FS, t *Table[T]) error {
	var rows []T
	if err := loadFixture(fsys, t.Name(), &rows); err != nil {
		return err
	}
	return insertRows(t, rows)
}

func insertRows[T any](t *Table[T], rows []T) error {
	// seeding is not subject to the store latency
	latency := t.latency
	t.latency = 0
	defer func() { t.latency = latency }()
	return errors.Wrapf(t.Insert(context.Background(), rows...), "seeding %s", t.Name())
}

func loadFixture(fsys fs.FS, name string, v interface{}) error {
	data, err := fs.ReadFile(fsys, path.Join(fixturesDir, name+".json"))
	if err != nil {
		return errors.Wrapf(err, "reading %s fixtures", name)
	}
	return errors.Wrapf(json.Unmarshal(data, v), "decoding %s fixtures", name)
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

