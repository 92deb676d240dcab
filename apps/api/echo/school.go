package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/devanshdeveloper/edu-manage-sub000/core"
	"github.com/devanshdeveloper/edu-manage-sub000/core/institution"
	"github.com/devanshdeveloper/edu-manage-sub000/core/school"
	"github.com/devanshdeveloper/edu-manage-sub000/core/subscription"
)

type schoolApi struct {
	svc *school.Service
}

// registerSchoolAPI adds the endpoints spanning several resources to the resource groups.
func registerSchoolAPI(g *echo.Group, authed echo.MiddlewareFunc, institutions, classrooms *echo.Group, svc *school.Service) {
	api := schoolApi{svc: svc}

	institutions.POST("", api.onboard)
	classrooms.GET("/board", api.board)
	classrooms.PUT("/:id/teacher", api.assignTeacher)

	g.GET("/dashboard", api.dashboard, authed)
}

func (api *schoolApi) onboard(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}
	var data institution.NewInstitution
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewInstitution")
	}

	inst, sub, err := api.svc.Onboard(ctx.Request().Context(), sess, data)
	if err != nil {
		return errors.Wrap(err, "onboarding institution")
	}
	return ctx.JSON(http.StatusCreated, OnboardResponse{Institution: inst, Subscription: sub})
}

func (api *schoolApi) board(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}
	lanes, err := api.svc.Board(ctx.Request().Context(), sess)
	if err != nil {
		return errors.Wrap(err, "building board")
	}
	return ctx.JSON(http.StatusOK, lanes)
}

func (api *schoolApi) assignTeacher(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}
	var data AssignTeacherRequest
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to AssignTeacherRequest")
	}
	data.TeacherID = core.CleanString(data.TeacherID)

	c, err := api.svc.AssignTeacher(ctx.Request().Context(), sess, ctx.Param("id"), data.TeacherID)
	if err != nil {
		return errors.Wrap(err, "assigning teacher")
	}
	return ctx.JSON(http.StatusOK, c)
}

func (api *schoolApi) dashboard(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}
	summaries, err := api.svc.Dashboard(ctx.Request().Context(), sess)
	if err != nil {
		return errors.Wrap(err, "summarizing")
	}
	return ctx.JSON(http.StatusOK, summaries)
}

type (
	OnboardResponse struct {
		Institution  institution.Institution   `json:"institution"`
		Subscription subscription.Subscription `json:"subscription"`
	}

	AssignTeacherRequest struct {
		TeacherID string `json:"teacher_id"`
	}
)
