package echoapi

import (
	"context"
	"fmt"
	"net/http"
	"net/mail"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/devanshdeveloper/edu-manage-sub000/core"
	"github.com/devanshdeveloper/edu-manage-sub000/core/listing"
	"github.com/devanshdeveloper/edu-manage-sub000/core/table"
	exportsvc "github.com/devanshdeveloper/edu-manage-sub000/services/export"
)

const contextEnforcedKey = "enforced"

type resourceDeps struct {
	mailSvc core.EmailService
}

type resourceApi[T any] struct {
	page    *listing.Page[T]
	mailSvc core.EmailService
	now     func() time.Time
}

// registerResourceAPI serves page under /<resource name> and returns its group.
func registerResourceAPI[T any](g *echo.Group, authed echo.MiddlewareFunc, page *listing.Page[T], deps resourceDeps) *echo.Group {
	api := resourceApi[T]{
		page:    page,
		mailSvc: deps.mailSvc,
		now:     time.Now,
	}
	read, write := api.access(listing.ReadOnly), api.access(listing.ReadWrite)

	rg := g.Group("/"+page.Resource().Name, authed)
	rg.GET("", api.query, read)
	rg.DELETE("", api.destroyMultiple, write)
	rg.GET("/columns", api.queryColumns, read)
	rg.GET("/export", api.export, read)
	rg.POST("/export/email", api.emailExport, read)
	rg.POST("/reload", api.reload, read)

	// detail endpoints
	rg.GET("/:id", api.retrieve, read)
	rg.DELETE("/:id", api.destroy, write)
	if page.Resource().SetStatus != nil {
		rg.PATCH("/:id/status", api.updateStatus, write)
	}
	return rg
}

// access rejects sessions without the needed permission and stores the filters enforced on the others.
func (api *resourceApi[T]) access(need listing.Permission) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			sess, err := getContextSession(ctx)
			if err != nil {
				return err
			}
			perm, enforced := api.page.Resource().Access(sess)
			if perm < need {
				return errHttpForbidden
			}
			ctx.Set(contextEnforcedKey, enforced)
			return next(ctx)
		}
	}
}

func getContextEnforced(ctx echo.Context) table.Filters {
	if f, ok := ctx.Get(contextEnforcedKey).(table.Filters); ok {
		return f
	}
	return table.Filters{}
}

// loadError turns a failed store call into the page error shown to the client.
func (api *resourceApi[T]) loadError(err error, action string) error {
	if _, ok := appCause(err).(*listing.StatusError); ok {
		return err
	}
	switch errors.Cause(err) {
	case listing.ErrNotFound, context.Canceled, context.DeadlineExceeded:
		return errors.Wrap(err, action)
	}
	if msg := api.page.Err(); msg != "" {
		return &echo.HTTPError{Code: http.StatusServiceUnavailable, Message: msg, Internal: err}
	}
	return errors.Wrap(err, action)
}

// Handlers

func (api *resourceApi[T]) query(ctx echo.Context) error {
	st, err := bindState(ctx, api.page, getContextEnforced(ctx))
	if err != nil {
		return err
	}
	v, err := api.page.View(ctx.Request().Context(), st)
	if err != nil {
		return api.loadError(err, "deriving view")
	}
	return ctx.JSON(http.StatusOK, newListResponse(v, st, api.page.Status()))
}

func (api *resourceApi[T]) queryColumns(ctx echo.Context) error {
	cols := api.page.Resource().Columns
	visible := api.page.Engine().Defaults().Columns
	isVisible := make(map[string]bool, len(visible))
	for _, id := range visible {
		isVisible[id] = true
	}

	infos := make([]ColumnInfo, len(cols))
	for i, c := range cols {
		infos[i] = ColumnInfo{
			ID:         c.ID,
			Header:     c.Header,
			Sortable:   c.Sortable(),
			Searchable: c.Searchable,
			Filterable: c.Filterable,
			Visible:    isVisible[c.ID],
		}
	}
	return ctx.JSON(http.StatusOK, infos)
}

// workbook renders every record matched by the request, sorted, on the visible columns.
func (api *resourceApi[T]) workbook(ctx echo.Context) ([]byte, int, error) {
	st, err := bindState(ctx, api.page, getContextEnforced(ctx))
	if err != nil {
		return nil, 0, err
	}
	reqCtx := ctx.Request().Context()
	records, err := api.page.Matched(reqCtx, st)
	if err != nil {
		return nil, 0, api.loadError(err, "matching records")
	}
	v, err := api.page.View(reqCtx, st)
	if err != nil {
		return nil, 0, api.loadError(err, "deriving view")
	}
	data, err := exportsvc.Workbook(api.page.Resource().Title, records, v.Columns)
	if err != nil {
		return nil, 0, errors.Wrap(err, "exporting")
	}
	return data, len(records), nil
}

func (api *resourceApi[T]) export(ctx echo.Context) error {
	data, _, err := api.workbook(ctx)
	if err != nil {
		return err
	}
	filename := exportsvc.Filename(api.page.Resource().Name, api.now())
	ctx.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return ctx.Blob(http.StatusOK, exportsvc.ContentType, data)
}

func (api *resourceApi[T]) emailExport(ctx echo.Context) error {
	sess, err := getContextSession(ctx)
	if err != nil {
		return err
	}
	data, rows, err := api.workbook(ctx)
	if err != nil {
		return err
	}

	res := api.page.Resource()
	api.mailSvc.SendMessages(&core.EmailMessage{
		To:           []mail.Address{{Name: sess.Name, Address: sess.Email}},
		Subject:      res.Title + " Export",
		TemplateName: "export",
		TemplateData: map[string]interface{}{"Name": sess.Name, "Title": res.Title, "Rows": rows},
		Attachments: []core.Attachment{{
			Filename:    exportsvc.Filename(res.Name, api.now()),
			ContentType: exportsvc.ContentType,
			Content:     data,
		}},
	})
	return ctx.JSON(http.StatusAccepted, SuccessResponse{Success: "The export will arrive in your inbox shortly."})
}

func (api *resourceApi[T]) reload(ctx echo.Context) error {
	if err := api.page.Reload(ctx.Request().Context()); err != nil {
		return api.loadError(err, "reloading")
	}
	return ctx.JSON(http.StatusOK, api.page.Status())
}

func (api *resourceApi[T]) retrieve(ctx echo.Context) error {
	rec, err := api.page.GetWithin(ctx.Request().Context(), ctx.Param("id"), getContextEnforced(ctx))
	if err != nil {
		return api.loadError(err, "retrieving record")
	}
	return ctx.JSON(http.StatusOK, rec)
}

func (api *resourceApi[T]) destroy(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	rec, err := api.page.GetWithin(reqCtx, ctx.Param("id"), getContextEnforced(ctx))
	if err != nil {
		return api.loadError(err, "retrieving record")
	}
	if err = api.page.Delete(reqCtx, api.page.Resource().ID(rec)); err != nil {
		return api.loadError(err, "deleting record")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *resourceApi[T]) destroyMultiple(ctx echo.Context) error {
	st, err := bindState(ctx, api.page, getContextEnforced(ctx))
	if err != nil {
		return err
	}
	if st.Selection.IsEmpty() {
		return ctx.JSON(http.StatusOK, DeleteResponse{})
	}
	n, err := api.page.DeleteSelected(ctx.Request().Context(), st)
	if err != nil {
		return api.loadError(err, "deleting records")
	}
	return ctx.JSON(http.StatusOK, DeleteResponse{Deleted: n})
}

func (api *resourceApi[T]) updateStatus(ctx echo.Context) error {
	var data StatusRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to StatusRequest")
	}
	data.Status = core.CleanString(data.Status, true /* lower */)

	reqCtx := ctx.Request().Context()
	rec, err := api.page.GetWithin(reqCtx, ctx.Param("id"), getContextEnforced(ctx))
	if err != nil {
		return api.loadError(err, "retrieving record")
	}
	rec, err = api.page.UpdateStatus(reqCtx, api.page.Resource().ID(rec), data.Status)
	if err != nil {
		return api.loadError(err, "updating status")
	}
	return ctx.JSON(http.StatusOK, rec)
}

type (
	ListResponse struct {
		Rows         []table.Row    `json:"rows"`
		Columns      []string       `json:"columns"`
		TotalMatched int            `json:"total_matched"`
		PageCount    int            `json:"page_count"`
		PageIndex    int            `json:"page_index"`
		PageSize     int            `json:"page_size"`
		PageSizes    []int          `json:"page_sizes"`
		Query        string         `json:"query"` // canonical form of the request query
		Status       listing.Status `json:"status"`
	}

	ColumnInfo struct {
		ID         string `json:"id"`
		Header     string `json:"header"`
		Sortable   bool   `json:"sortable"`
		Searchable bool   `json:"searchable"`
		Filterable bool   `json:"filterable"`
		Visible    bool   `json:"visible"` // by default
	}

	StatusRequest struct {
		Status string `json:"status"`
	}

	DeleteResponse struct {
		Deleted int `json:"deleted"`
	}
)

func newListResponse[T any](v table.View[T], st *table.State, status listing.Status) ListResponse {
	st.PageIndex = v.PageIndex
	return ListResponse{
		Rows:         v.Project(),
		Columns:      v.ColumnIDs(),
		TotalMatched: v.TotalMatched,
		PageCount:    v.PageCount,
		PageIndex:    v.PageIndex,
		PageSize:     v.PageSize,
		PageSizes:    st.PageSizes(),
		Query:        queryString(st),
		Status:       status,
	}
}
