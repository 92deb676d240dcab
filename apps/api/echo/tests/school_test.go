package tests

import (
	"net/http"
	"testing"

	echoapi "github.com/devanshdeveloper/edu-manage-sub000/apps/api/echo"
	"github.com/devanshdeveloper/edu-manage-sub000/core/classroom"
	"github.com/devanshdeveloper/edu-manage-sub000/core/institution"
	"github.com/devanshdeveloper/edu-manage-sub000/core/school"
	"github.com/devanshdeveloper/edu-manage-sub000/core/subscription"
)

func Test_schoolApi_onboard(t *testing.T) {
	app := newTestApp(t)

	ownerToken := app.getToken(t, ownerID)
	data := institution.NewInstitution{
		Name:     "Riverside School",
		Email:    "office@riverside.edu",
		Phone:    "+254700000001",
		Location: "Kisumu",
		Plan:     "Premium",
	}
	noName := data
	noName.Name = "  "
	badPlan := data
	badPlan.Plan = "gold"

	tests := []httpTest{
		{name: "auth required", wantCode: http.StatusUnauthorized, wantData: marshalObj(t, errMissingToken)},
		{name: "super admin only", token: app.getToken(t, gvAdminID), body: marshalObj(t, data), wantCode: http.StatusForbidden, wantData: marshalObj(t, errForbidden)},
		{
			name: "required fields", token: ownerToken, body: marshalObj(t, noName), wantCode: http.StatusBadRequest,
			wantData: marshalObj(t, map[string]string{"name": "this field is required"}),
		},
		{
			name: "unknown plan", token: ownerToken, body: marshalObj(t, badPlan), wantCode: http.StatusBadRequest,
			wantData: marshalObj(t, map[string]string{"plan": "plan must be one of basic, standard, premium, enterprise"}),
		},
		{name: "onboard", token: ownerToken, body: marshalObj(t, data), wantCode: http.StatusCreated},
	}
	for _, tt := range tests {
		tt.method = http.MethodPost
		tt.path = "/v1/institutions"

		t.Run(tt.name, func(t *testing.T) {
			rec := app.serve(tt)
			checkCodeAndData(t, tt, rec)

			if tt.wantCode == http.StatusCreated {
				var resp echoapi.OnboardResponse
				unmarshalObj(t, rec.Body.Bytes(), &resp)
				if resp.Institution.Status != institution.StatusPending || resp.Institution.Plan != institution.PlanPremium {
					t.Errorf("failed! institution = %+v", resp.Institution)
				}
				if resp.Subscription.InstitutionID != resp.Institution.ID || resp.Subscription.Status != subscription.StatusTrial {
					t.Errorf("failed! subscription = %+v", resp.Subscription)
				}

				got := app.serve(httpTest{path: "/v1/institutions/" + resp.Institution.ID, token: ownerToken})
				if got.Code != http.StatusOK {
					t.Errorf("failed! GET institution code = %v; want 200", got.Code)
				}
			}
		})
	}
}

func Test_schoolApi_board(t *testing.T) {
	app := newTestApp(t)

	tests := []httpTest{
		{name: "students cannot", token: app.getToken(t, amaniID), wantCode: http.StatusForbidden, wantData: marshalObj(t, errForbidden)},
		{name: "admin", token: app.getToken(t, gvAdminID), wantCode: http.StatusOK},
	}
	for _, tt := range tests {
		tt.path = "/v1/classrooms/board"

		t.Run(tt.name, func(t *testing.T) {
			rec := app.serve(tt)
			checkCodeAndData(t, tt, rec)

			if tt.wantCode == http.StatusOK {
				var lanes []classroom.Lane
				unmarshalObj(t, rec.Body.Bytes(), &lanes)
				if len(lanes) != 5 {
					t.Fatalf("failed! len(lanes) = %d; want 5", len(lanes))
				}
				if lanes[0].TeacherID != "" || len(lanes[0].Classrooms) != 1 {
					t.Errorf("failed! unassigned lane = %+v", lanes[0])
				}
				if lanes[1].TeacherID != ada || len(lanes[1].Classrooms) != 2 {
					t.Errorf("failed! lane 1 = %+v", lanes[1])
				}
			}
		})
	}
}

func Test_schoolApi_assignTeacher(t *testing.T) {
	app := newTestApp(t)

	adminToken := app.getToken(t, gvAdminID)
	tests := []httpTest{
		{
			name: "inactive teacher", token: adminToken, body: marshalObj(t, echoapi.AssignTeacherRequest{TeacherID: peter}),
			wantCode: http.StatusBadRequest, wantData: marshalObj(t, map[string]string{"teacher_id": "the teacher is inactive"}),
		},
		{
			name: "unknown teacher", token: adminToken, body: marshalObj(t, echoapi.AssignTeacherRequest{TeacherID: "lol"}),
			wantCode: http.StatusBadRequest, wantData: marshalObj(t, map[string]string{"teacher_id": "teacher not found"}),
		},
		{
			name: "other institution", token: app.getToken(t, srAdminID), body: marshalObj(t, echoapi.AssignTeacherRequest{TeacherID: ada}),
			wantCode: http.StatusNotFound, wantData: marshalObj(t, errNotFound),
		},
		{name: "unassign", token: adminToken, body: marshalObj(t, echoapi.AssignTeacherRequest{}), wantCode: http.StatusOK},
	}
	for _, tt := range tests {
		tt.method = http.MethodPut
		tt.path = "/v1/classrooms/" + grade7A + "/teacher"

		t.Run(tt.name, func(t *testing.T) {
			rec := app.serve(tt)
			checkCodeAndData(t, tt, rec)

			if tt.wantCode == http.StatusOK {
				var c classroom.Classroom
				unmarshalObj(t, rec.Body.Bytes(), &c)
				if c.TeacherID != "" || c.Teacher != "" {
					t.Errorf("failed! classroom = %+v", c)
				}
			}
		})
	}
}

func Test_schoolApi_dashboard(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		httpTest
		want []string
	}{
		{
			httpTest: httpTest{name: "super admin", token: app.getToken(t, ownerID), wantCode: http.StatusOK},
			want:     []string{"institutions", "subscriptions", "teachers", "students", "classrooms", "attendance", "fees", "materials", "tests"},
		},
		{
			httpTest: httpTest{name: "student", token: app.getToken(t, amaniID), wantCode: http.StatusOK},
			want:     []string{"attendance", "fees", "materials", "tests"},
		},
	}
	for _, tt := range tests {
		tt.path = "/v1/dashboard"

		t.Run(tt.name, func(t *testing.T) {
			rec := app.serve(tt.httpTest)
			checkCodeAndData(t, tt.httpTest, rec)

			var sums []school.Summary
			unmarshalObj(t, rec.Body.Bytes(), &sums)
			got := make([]string, len(sums))
			for i, s := range sums {
				got[i] = s.Resource
			}
			if len(got) != len(tt.want) {
				t.Fatalf("failed! resources = %v; want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("failed! resources = %v; want %v", got, tt.want)
					break
				}
			}
		})
	}
}
