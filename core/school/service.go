package school

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/devanshdeveloper/edu-manage-sub000/core"
	"github.com/devanshdeveloper/edu-manage-sub000/core/classroom"
	"github.com/devanshdeveloper/edu-manage-sub000/core/institution"
	"github.com/devanshdeveloper/edu-manage-sub000/core/listing"
	"github.com/devanshdeveloper/edu-manage-sub000/core/subscription"
	"github.com/devanshdeveloper/edu-manage-sub000/core/teacher"
	"github.com/devanshdeveloper/edu-manage-sub000/core/user"
)

var (
	msgOtherInstitution = "the teacher belongs to another institution"
	msgTeacherInactive  = "the teacher is inactive"
)

type Service struct {
	pages    *Pages
	validate *validator.Validate
	now      func() time.Time
}

func NewService(pages *Pages, validate *validator.Validate) *Service {
	return &Service{pages: pages, validate: validate, now: time.Now}
}

func (svc *Service) Pages() *Pages { return svc.pages }

// Onboard creates a pending institution and its trial subscription.
func (svc *Service) Onboard(ctx context.Context, sess user.Session, data institution.NewInstitution) (institution.Institution, subscription.Subscription, error) {
	if perm, _ := svc.pages.Institutions.Resource().Access(sess); perm != listing.ReadWrite {
		return institution.Institution{}, subscription.Subscription{}, listing.ErrForbidden
	}
	if err := data.Validate(svc.validate); err != nil {
		return institution.Institution{}, subscription.Subscription{}, err
	}

	now := svc.now()
	inst := data.Institution(now)
	if err := svc.pages.Institutions.Create(ctx, inst); err != nil {
		return institution.Institution{}, subscription.Subscription{}, errors.Wrap(err, "creating institution")
	}
	sub := subscription.NewTrial(inst, now)
	if err := svc.pages.Subscriptions.Create(ctx, sub); err != nil {
		// an institution without subscription cannot be managed
		if dErr := svc.pages.Institutions.Delete(context.Background(), inst.ID); dErr != nil {
			return institution.Institution{}, subscription.Subscription{}, core.NewShutdownError(
				"onboarding rollback failed: " + dErr.Error(),
			)
		}
		return institution.Institution{}, subscription.Subscription{}, errors.Wrap(err, "creating trial subscription")
	}
	return inst, sub, nil
}

// AssignTeacher makes teacherID teach classroomID. An empty teacherID unassigns the classroom.
func (svc *Service) AssignTeacher(ctx context.Context, sess user.Session, classroomID, teacherID string) (classroom.Classroom, error) {
	classrooms, teachers := svc.pages.Classrooms, svc.pages.Teachers

	perm, enforced := classrooms.Resource().Access(sess)
	if perm != listing.ReadWrite {
		return classroom.Classroom{}, listing.ErrForbidden
	}
	c, err := classrooms.GetWithin(ctx, classroomID, enforced)
	if err != nil {
		return classroom.Classroom{}, err
	}

	var t teacher.Teacher
	if teacherID != "" {
		_, tEnforced := teachers.Resource().Access(sess)
		t, err = teachers.GetWithin(ctx, teacherID, tEnforced)
		if err != nil {
			if errors.Cause(err) == listing.ErrNotFound {
				return classroom.Classroom{}, core.NewValidationError(nil, core.FieldError{Field: "teacher_id", Error: "teacher not found"})
			}
			return classroom.Classroom{}, err
		}
		switch {
		case t.InstitutionID != c.InstitutionID:
			return classroom.Classroom{}, core.NewValidationError(nil, core.FieldError{Field: "teacher_id", Error: msgOtherInstitution})
		case t.Status == teacher.StatusInactive:
			return classroom.Classroom{}, core.NewValidationError(nil, core.FieldError{Field: "teacher_id", Error: msgTeacherInactive})
		}
	}

	return classrooms.Update(ctx, c.ID, func(c classroom.Classroom) (classroom.Classroom, error) {
		return classroom.AssignTeacher(c, t), nil
	})
}

// Board returns the classrooms visible to sess grouped by teacher.
func (svc *Service) Board(ctx context.Context, sess user.Session) ([]classroom.Lane, error) {
	cst, perm := svc.pages.Classrooms.StateFor(sess)
	if perm == listing.NoAccess {
		return nil, listing.ErrForbidden
	}
	tst, _ := svc.pages.Teachers.StateFor(sess)

	classrooms, err := svc.pages.Classrooms.Matched(ctx, cst)
	if err != nil {
		return nil, err
	}
	teachers, err := svc.pages.Teachers.Matched(ctx, tst)
	if err != nil {
		return nil, err
	}
	return classroom.Board(teachers, classrooms), nil
}
