package tests

import (
	"log"
	"os"
	"testing"

	echoapi "github.com/devanshdeveloper/edu-manage-sub000/apps/api/echo"
	"github.com/devanshdeveloper/edu-manage-sub000/core"
	"github.com/devanshdeveloper/edu-manage-sub000/core/institution"
	"github.com/devanshdeveloper/edu-manage-sub000/core/school"
	"github.com/devanshdeveloper/edu-manage-sub000/core/table"
	"github.com/devanshdeveloper/edu-manage-sub000/core/user"
	emailsvc "github.com/devanshdeveloper/edu-manage-sub000/services/email"
	logsvc "github.com/devanshdeveloper/edu-manage-sub000/services/logger"
	inmemdb "github.com/devanshdeveloper/edu-manage-sub000/storage/database/inmem"
)

// fixture ids
const (
	ownerID   = "119d8b89-ed7c-51f9-b859-19e2d3cc59b4"
	gvAdminID = "a3117ab9-2daa-5bb2-8162-f6faf09e3e99"
	srAdminID = "15ced10c-5a85-51d6-8fcb-d3cde0c3898e"
	amaniID   = "38cdff21-52a0-50e0-8b11-40f1fd55583b"
	dianaID   = "72cdf170-0e26-57fe-a032-342bdd6c3f76"

	greenValley = "1055d967-72b7-50a9-9959-d1be67705d86"
	sunrise     = "3daeca67-b1a2-5f35-9e18-ff7d47052f1d"

	amaniPaidFee    = "e85bb15c-3884-5f68-99a4-362842c9a06e"
	amaniOverdueFee = "d20c90a0-f4dd-52b9-84f7-5b8af0a66966"
	sunrisePartial  = "53cdd119-cfc4-5fba-8e0e-e816bffe40ae"

	ada     = "56bb5dc5-793e-56c1-af1d-a47197a731c8"
	peter   = "4cea9479-9e64-5634-83f1-02752426370e"
	grade7A = "72287d1c-4262-5820-8307-4f539f36cf24"
)

var (
	conf   *core.Config
	logger core.Logger

	errMissingToken = httpErr{Error: "missing or malformed jwt"}
	errForbidden    = httpErr{Error: "permission denied"}
	errNotFound     = httpErr{Error: "not found"}
)

func TestMain(m *testing.M) {
	conf = core.NewTestConfig()
	logger = logsvc.NewRollbarLogger(log.New(os.Stderr, "TEST : ", log.LstdFlags), conf)
	os.Exit(m.Run())
}

// testApp is a Server on freshly seeded stores.
type testApp struct {
	srv  *echoapi.Server
	db   *inmemdb.DB
	auth *echoapi.Auth
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	db, err := inmemdb.Open(conf)
	if err != nil {
		t.Fatalf("inmemdb.Open(): %v", err)
	}
	pages, err := school.NewPages(db.Stores(), table.Defaults{
		PageSizes: conf.Table.PageSizes,
		PageSize:  conf.Table.DefaultPageSize,
	})
	if err != nil {
		t.Fatalf("school.NewPages(): %v", err)
	}

	translator := core.NewTranslator()
	validate := core.NewValidator(translator)
	user.InitValidators(validate, translator)
	institution.InitValidators(validate, translator)

	mailSvc := emailsvc.NewConsoleServiceMock(conf, logger)
	srv := echoapi.NewServer(echoapi.Deps{
		Conf:       conf,
		Logger:     logger,
		Validate:   validate,
		Translator: translator,
		MailSvc:    mailSvc,
		UserSvc:    user.NewServiceMock(db.Users, mailSvc, conf),
		SchoolSvc:  school.NewService(pages, validate),
	})
	t.Cleanup(func() { _ = srv.Close() })

	emailsvc.ClearSentMessages()
	return &testApp{srv: srv, db: db, auth: echoapi.NewAuth(conf)}
}
