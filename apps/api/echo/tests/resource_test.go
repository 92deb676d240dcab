package tests

import (
	"net/http"
	"net/url"
	"reflect"
	"strings"
	"testing"

	echoapi "github.com/devanshdeveloper/edu-manage-sub000/apps/api/echo"
	"github.com/devanshdeveloper/edu-manage-sub000/core/fee"
	emailsvc "github.com/devanshdeveloper/edu-manage-sub000/services/email"
	exportsvc "github.com/devanshdeveloper/edu-manage-sub000/services/export"
)

func Test_resourceApi_query(t *testing.T) {
	app := newTestApp(t)

	ownerToken := app.getToken(t, ownerID)
	adminToken := app.getToken(t, gvAdminID)
	studentToken := app.getToken(t, amaniID)

	path := func(params ...string) string {
		v := make(url.Values)
		for i := 0; i+1 < len(params); i += 2 {
			v.Add(params[i], params[i+1])
		}
		return "/v1/fees?" + v.Encode()
	}

	tests := []struct {
		httpTest
		wantTotal     int
		wantPageCount int
		wantRows      int
		wantQuery     string
	}{
		{httpTest: httpTest{name: "auth required", path: "/v1/fees", wantCode: http.StatusUnauthorized, wantData: marshalObj(t, errMissingToken)}},
		{
			httpTest:  httpTest{name: "super admin sees all", path: "/v1/fees", token: ownerToken, wantCode: http.StatusOK},
			wantTotal: 27, wantPageCount: 3, wantRows: 10,
		},
		{
			httpTest:  httpTest{name: "admin sees own institution", path: "/v1/fees", token: adminToken, wantCode: http.StatusOK},
			wantTotal: 15, wantPageCount: 2, wantRows: 10,
		},
		{
			httpTest: httpTest{
				name: "admin cannot widen the scope", path: path("institution_id", sunrise), token: adminToken,
				wantCode: http.StatusOK,
			},
			wantTotal: 15, wantPageCount: 2, wantRows: 10, wantQuery: "institution_id=" + greenValley,
		},
		{
			httpTest:  httpTest{name: "student sees own fees", path: "/v1/fees", token: studentToken, wantCode: http.StatusOK},
			wantTotal: 3, wantPageCount: 1, wantRows: 3, wantQuery: "student_id=",
		},
		{
			httpTest:  httpTest{name: "search", path: path("search", "AMANI"), token: adminToken, wantCode: http.StatusOK},
			wantTotal: 3, wantPageCount: 1, wantRows: 3, wantQuery: "search=AMANI",
		},
		{
			httpTest:  httpTest{name: "filter", path: path("status", "overdue", "page_size", "5"), token: adminToken, wantCode: http.StatusOK},
			wantTotal: 5, wantPageCount: 1, wantRows: 5, wantQuery: "status=overdue",
		},
		{
			httpTest:  httpTest{name: "filter: comma separated", path: path("status", "overdue,paid"), token: adminToken, wantCode: http.StatusOK},
			wantTotal: 9, wantPageCount: 1, wantRows: 9,
		},
		{
			httpTest: httpTest{
				name: "page index past the end goes back to the first page", path: path("page_index", "9", "page_size", "5"), token: adminToken,
				wantCode: http.StatusOK,
			},
			wantTotal: 15, wantPageCount: 3, wantRows: 5, wantQuery: "page_index=0",
		},
		{
			httpTest:  httpTest{name: "columns", path: path("columns", "amount,status", "page_size", "5"), token: adminToken, wantCode: http.StatusOK},
			wantTotal: 15, wantPageCount: 3, wantRows: 5, wantQuery: "columns=amount&columns=status",
		},
		{
			httpTest:  httpTest{name: "ordering", path: path("ordering", "-amount"), token: ownerToken, wantCode: http.StatusOK},
			wantTotal: 27, wantPageCount: 3, wantRows: 10, wantQuery: "ordering=-amount",
		},
		{
			httpTest: httpTest{
				name: "invalid page size", path: path("page_size", "7"), token: adminToken, wantCode: http.StatusBadRequest,
				wantData: marshalObj(t, map[string]string{"page_size": "invalid page size 7; must be one of 5, 10, 15"}),
			},
		},
		{
			httpTest: httpTest{
				name: "page size not a number", path: path("page_size", "lol"), token: adminToken, wantCode: http.StatusBadRequest,
				wantData: marshalObj(t, map[string]string{"page_size": "must be a number"}),
			},
		},
		{
			httpTest: httpTest{
				name: "negative page index", path: path("page_index", "-1"), token: adminToken, wantCode: http.StatusBadRequest,
				wantData: marshalObj(t, map[string]string{"page_index": "must be a positive number"}),
			},
		},
		{
			httpTest: httpTest{
				name: "unknown ordering", path: path("ordering", "-amout"), token: adminToken, wantCode: http.StatusBadRequest,
				wantData: marshalObj(t, map[string]string{"ordering": `unknown column "amout"; did you mean "amount"?`}),
			},
		},
		{
			httpTest: httpTest{
				name: "many orderings", path: path("ordering", "amount,-paid"), token: adminToken, wantCode: http.StatusBadRequest,
				wantData: marshalObj(t, map[string]string{"ordering": "only one ordering field is supported"}),
			},
		},
		{
			httpTest: httpTest{
				name: "unknown column", path: path("columns", "studnt"), token: adminToken, wantCode: http.StatusBadRequest,
				wantData: marshalObj(t, map[string]string{"columns": `unknown column "studnt"; did you mean "student"?`}),
			},
		},
		{
			httpTest: httpTest{
				name: "not filterable", path: path("amount", "100"), token: adminToken, wantCode: http.StatusBadRequest,
				wantData: marshalObj(t, map[string]string{"amount": `column is not filterable "amount"`}),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := app.serve(tt.httpTest)
			checkCodeAndData(t, tt.httpTest, rec)
			if tt.wantCode != http.StatusOK {
				return
			}

			var resp echoapi.ListResponse
			unmarshalObj(t, rec.Body.Bytes(), &resp)
			if resp.TotalMatched != tt.wantTotal {
				t.Errorf("failed! total = %d; want %d", resp.TotalMatched, tt.wantTotal)
			}
			if resp.PageCount != tt.wantPageCount {
				t.Errorf("failed! page count = %d; want %d", resp.PageCount, tt.wantPageCount)
			}
			if len(resp.Rows) != tt.wantRows {
				t.Errorf("failed! rows = %d; want %d", len(resp.Rows), tt.wantRows)
			}
			if !strings.Contains(resp.Query, tt.wantQuery) {
				t.Errorf("failed! query = %q; want it to contain %q", resp.Query, tt.wantQuery)
			}
			if resp.Status.Loading || resp.Status.Error != "" {
				t.Errorf("failed! status = %+v", resp.Status)
			}
			for _, row := range resp.Rows {
				if len(row) != len(resp.Columns) {
					t.Errorf("failed! row %v; want columns %v", row, resp.Columns)
				}
				for _, col := range resp.Columns {
					if _, ok := row[col]; !ok {
						t.Errorf("failed! row %v misses column %q", row, col)
					}
				}
			}
		})
	}
}

func Test_resourceApi_queryRoundTrip(t *testing.T) {
	app := newTestApp(t)
	adminToken := app.getToken(t, gvAdminID)

	paths := []string{
		"/v1/fees?columns=amount,status&page_size=5",
		"/v1/fees?search=a&status=overdue,paid&ordering=-amount&page_size=5&page_index=1&columns=student,amount",
		"/v1/fees?institution_id=" + sunrise + "&id=" + amaniPaidFee + "&id=" + amaniOverdueFee,
		"/v1/fees?all=true&page_size=15",
	}
	for _, p := range paths {
		t.Run(p, func(t *testing.T) {
			first := app.list(t, p, adminToken)
			second := app.list(t, "/v1/fees?"+first.Query, adminToken)

			if second.Query != first.Query {
				t.Errorf("failed! query = %q; want %q", second.Query, first.Query)
			}
			if !reflect.DeepEqual(second.Columns, first.Columns) {
				t.Errorf("failed! columns = %v; want %v", second.Columns, first.Columns)
			}
			if !reflect.DeepEqual(second.Rows, first.Rows) {
				t.Errorf("failed! rows = %v; want %v", second.Rows, first.Rows)
			}
			if second.TotalMatched != first.TotalMatched || second.PageIndex != first.PageIndex {
				t.Errorf("failed! total, page = %d, %d; want %d, %d", second.TotalMatched, second.PageIndex, first.TotalMatched, first.PageIndex)
			}
		})
	}
}

// list GETs a list endpoint and decodes its response.
func (app *testApp) list(t *testing.T, path, token string) echoapi.ListResponse {
	t.Helper()
	rec := app.serve(httpTest{path: path, token: token})
	if rec.Code != http.StatusOK {
		t.Fatalf("GET %s: code = %d; body = %s", path, rec.Code, rec.Body.String())
	}
	var resp echoapi.ListResponse
	unmarshalObj(t, rec.Body.Bytes(), &resp)
	return resp
}

func Test_resourceApi_permissions(t *testing.T) {
	app := newTestApp(t)

	studentToken := app.getToken(t, amaniID)
	adminToken := app.getToken(t, gvAdminID)

	tests := []httpTest{
		{name: "student: no teachers", path: "/v1/teachers", token: studentToken, wantCode: http.StatusForbidden, wantData: marshalObj(t, errForbidden)},
		{name: "student: no students", path: "/v1/students", token: studentToken, wantCode: http.StatusForbidden, wantData: marshalObj(t, errForbidden)},
		{name: "admin: no institutions", path: "/v1/institutions", token: adminToken, wantCode: http.StatusForbidden, wantData: marshalObj(t, errForbidden)},
		{
			name: "student: read only", method: http.MethodPatch, path: "/v1/fees/" + amaniOverdueFee + "/status", token: studentToken,
			body: marshalObj(t, echoapi.StatusRequest{Status: fee.StatusPaid}), wantCode: http.StatusForbidden, wantData: marshalObj(t, errForbidden),
		},
		{name: "admin: teachers", path: "/v1/teachers", token: adminToken, wantCode: http.StatusOK},
		{name: "student: own fee", path: "/v1/fees/" + amaniPaidFee, token: studentToken, wantCode: http.StatusOK},
		{name: "admin: other institution", path: "/v1/fees/" + sunrisePartial, token: adminToken, wantCode: http.StatusNotFound, wantData: marshalObj(t, errNotFound)},
		{name: "owner: any institution", path: "/v1/fees/" + sunrisePartial, token: app.getToken(t, ownerID), wantCode: http.StatusOK},
		{name: "unknown id", path: "/v1/fees/lol", token: adminToken, wantCode: http.StatusNotFound, wantData: marshalObj(t, errNotFound)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkCodeAndData(t, tt, app.serve(tt))
		})
	}
}

func Test_resourceApi_columns(t *testing.T) {
	app := newTestApp(t)

	rec := app.serve(httpTest{path: "/v1/fees/columns", token: app.getToken(t, gvAdminID)})
	if rec.Code != http.StatusOK {
		t.Fatalf("failed! code = %v; want 200", rec.Code)
	}
	var infos []echoapi.ColumnInfo
	unmarshalObj(t, rec.Body.Bytes(), &infos)
	if len(infos) != len(fee.Resource.Columns) {
		t.Fatalf("failed! len(columns) = %d; want %d", len(infos), len(fee.Resource.Columns))
	}
	want := echoapi.ColumnInfo{ID: "student", Header: "Student", Sortable: true, Searchable: true, Visible: true}
	if infos[0] != want {
		t.Errorf("failed! columns[0] = %+v; want %+v", infos[0], want)
	}
	for _, info := range infos {
		if info.ID == "institution_id" && (info.Visible || info.Sortable) {
			t.Errorf("failed! institution_id = %+v", info)
		}
	}
}

func Test_resourceApi_updateStatus(t *testing.T) {
	app := newTestApp(t)

	adminToken := app.getToken(t, gvAdminID)
	tests := []httpTest{
		{
			name: "invalid status", body: marshalObj(t, echoapi.StatusRequest{Status: "lol"}), wantCode: http.StatusBadRequest,
			wantData: marshalObj(t, map[string]string{"status": `invalid status "lol"; must be one of [paid pending overdue partial]`}),
		},
		{
			name: "other institution", path: "/v1/fees/" + sunrisePartial + "/status",
			body: marshalObj(t, echoapi.StatusRequest{Status: fee.StatusPaid}), wantCode: http.StatusNotFound, wantData: marshalObj(t, errNotFound),
		},
		{name: "paid", body: marshalObj(t, echoapi.StatusRequest{Status: " PAID "}), wantCode: http.StatusOK},
	}
	for _, tt := range tests {
		tt.method = http.MethodPatch
		tt.token = adminToken
		if tt.path == "" {
			tt.path = "/v1/fees/" + amaniOverdueFee + "/status"
		}

		t.Run(tt.name, func(t *testing.T) {
			rec := app.serve(tt)
			checkCodeAndData(t, tt, rec)

			if tt.wantCode == http.StatusOK {
				var got fee.Fee
				unmarshalObj(t, rec.Body.Bytes(), &got)
				if got.Status != fee.StatusPaid || got.Balance() != 0 {
					t.Errorf("failed! fee = %+v", got)
				}

				// the list reflects the change
				list := app.serve(httpTest{path: "/v1/fees?status=overdue", token: adminToken})
				var resp echoapi.ListResponse
				unmarshalObj(t, list.Body.Bytes(), &resp)
				if resp.TotalMatched != 4 {
					t.Errorf("failed! overdue = %d; want 4", resp.TotalMatched)
				}
			}
		})
	}
}

func Test_resourceApi_destroy(t *testing.T) {
	app := newTestApp(t)

	adminToken := app.getToken(t, gvAdminID)
	tests := []httpTest{
		{
			name: "nothing selected", method: http.MethodDelete, path: "/v1/fees",
			wantCode: http.StatusOK, wantData: marshalObj(t, echoapi.DeleteResponse{}),
		},
		{
			name: "only visible ids", method: http.MethodDelete, path: "/v1/fees?id=" + amaniPaidFee + "&id=" + sunrisePartial,
			wantCode: http.StatusOK, wantData: marshalObj(t, echoapi.DeleteResponse{Deleted: 1}),
		},
		{
			name: "all matched", method: http.MethodDelete, path: "/v1/fees?all=true&status=overdue",
			wantCode: http.StatusOK, wantData: marshalObj(t, echoapi.DeleteResponse{Deleted: 5}),
		},
		{
			name: "one: other institution", method: http.MethodDelete, path: "/v1/fees/" + sunrisePartial,
			wantCode: http.StatusNotFound, wantData: marshalObj(t, errNotFound),
		},
		{
			name: "one: already deleted", method: http.MethodDelete, path: "/v1/fees/" + amaniPaidFee,
			wantCode: http.StatusNotFound, wantData: marshalObj(t, errNotFound),
		},
	}
	for _, tt := range tests {
		tt.token = adminToken

		t.Run(tt.name, func(t *testing.T) {
			checkCodeAndData(t, tt, app.serve(tt))
		})
	}

	if n := app.db.Fees.Len(); n != 27-6 {
		t.Errorf("failed! stored fees = %d; want %d", n, 27-6)
	}
}

func Test_resourceApi_export(t *testing.T) {
	app := newTestApp(t)

	rec := app.serve(httpTest{path: "/v1/fees/export?status=overdue", token: app.getToken(t, gvAdminID)})
	if rec.Code != http.StatusOK {
		t.Fatalf("failed! code = %v; body %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != exportsvc.ContentType {
		t.Errorf("failed! Content-Type = %q; want %q", ct, exportsvc.ContentType)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.HasPrefix(cd, `attachment; filename="fees-`) {
		t.Errorf("failed! Content-Disposition = %q", cd)
	}
	if !strings.HasPrefix(rec.Body.String(), "PK") { // zip archive
		t.Errorf("failed! body is not an xlsx workbook")
	}
}

func Test_resourceApi_emailExport(t *testing.T) {
	app := newTestApp(t)

	tt := httpTest{
		method: http.MethodPost, path: "/v1/fees/export/email", token: app.getToken(t, amaniID), wantCode: http.StatusAccepted,
		wantData: marshalObj(t, echoapi.SuccessResponse{Success: "The export will arrive in your inbox shortly."}),
	}
	checkCodeAndData(t, tt, app.serve(tt))

	msg, ok := emailsvc.LastSentMessage()
	if !ok {
		t.Fatal("failed! no email sent")
	}
	if msg.To[0].Address != "amani.njoroge@student.greenvalley.edu" {
		t.Errorf("failed! To = %v", msg.To)
	}
	if len(msg.Attachments) != 1 || msg.Attachments[0].ContentType != exportsvc.ContentType {
		t.Fatalf("failed! attachments = %v", msg.Attachments)
	}
	if !strings.Contains(msg.TextContent, "(3 rows)") {
		t.Errorf("failed! text content %q does not mention the row count", msg.TextContent)
	}
}
