// Package school ties the resource pages of the app together. It serves what spans several
// resources: onboarding an institution, the classroom assignment board and the dashboard.
package school

import (
	"context"

	"github.com/devanshdeveloper/edu-manage-sub000/core/attendance"
	"github.com/devanshdeveloper/edu-manage-sub000/core/classroom"
	"github.com/devanshdeveloper/edu-manage-sub000/core/exam"
	"github.com/devanshdeveloper/edu-manage-sub000/core/fee"
	"github.com/devanshdeveloper/edu-manage-sub000/core/institution"
	"github.com/devanshdeveloper/edu-manage-sub000/core/listing"
	"github.com/devanshdeveloper/edu-manage-sub000/core/material"
	"github.com/devanshdeveloper/edu-manage-sub000/core/student"
	"github.com/devanshdeveloper/edu-manage-sub000/core/subscription"
	"github.com/devanshdeveloper/edu-manage-sub000/core/table"
	"github.com/devanshdeveloper/edu-manage-sub000/core/teacher"
)

// Stores are the backends of every resource.
type Stores struct {
	Institutions  listing.Store[institution.Institution]
	Subscriptions listing.Store[subscription.Subscription]
	Teachers      listing.Store[teacher.Teacher]
	Students      listing.Store[student.Student]
	Classrooms    listing.Store[classroom.Classroom]
	Attendance    listing.Store[attendance.Record]
	Fees          listing.Store[fee.Fee]
	Materials     listing.Store[material.Material]
	Exams         listing.Store[exam.Exam]
}

// Pages holds one listing.Page per resource.
type Pages struct {
	Institutions  *listing.Page[institution.Institution]
	Subscriptions *listing.Page[subscription.Subscription]
	Teachers      *listing.Page[teacher.Teacher]
	Students      *listing.Page[student.Student]
	Classrooms    *listing.Page[classroom.Classroom]
	Attendance    *listing.Page[attendance.Record]
	Fees          *listing.Page[fee.Fee]
	Materials     *listing.Page[material.Material]
	Exams         *listing.Page[exam.Exam]
}

func NewPages(s Stores, d table.Defaults) (*Pages, error) {
	var (
		p   Pages
		err error
	)
	if p.Institutions, err = listing.NewPage(institution.Resource, s.Institutions, d); err != nil {
		return nil, err
	}
	if p.Subscriptions, err = listing.NewPage(subscription.Resource, s.Subscriptions, d); err != nil {
		return nil, err
	}
	if p.Teachers, err = listing.NewPage(teacher.Resource, s.Teachers, d); err != nil {
		return nil, err
	}
	if p.Students, err = listing.NewPage(student.Resource, s.Students, d); err != nil {
		return nil, err
	}
	if p.Classrooms, err = listing.NewPage(classroom.Resource, s.Classrooms, d); err != nil {
		return nil, err
	}
	if p.Attendance, err = listing.NewPage(attendance.Resource, s.Attendance, d); err != nil {
		return nil, err
	}
	if p.Fees, err = listing.NewPage(fee.Resource, s.Fees, d); err != nil {
		return nil, err
	}
	if p.Materials, err = listing.NewPage(material.Resource, s.Materials, d); err != nil {
		return nil, err
	}
	if p.Exams, err = listing.NewPage(exam.Resource, s.Exams, d); err != nil {
		return nil, err
	}
	return &p, nil
}

// Reload fetches every collection again. It stops at the first failure.
func (p *Pages) Reload(ctx context.Context) error {
	for _, reload := range []func(context.Context) error{
		p.Institutions.Reload,
		p.Subscriptions.Reload,
		p.Teachers.Reload,
		p.Students.Reload,
		p.Classrooms.Reload,
		p.Attendance.Reload,
		p.Fees.Reload,
		p.Materials.Reload,
		p.Exams.Reload,
	} {
		if err := reload(ctx); err != nil {
			return err
		}
	}
	return nil
}
