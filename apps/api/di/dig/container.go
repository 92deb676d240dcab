package dig_container

import (
	"fmt"
	"log"
	"os"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/dig"

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

type StoreLoggerParam struct {
	dig.In
	Logger core.Logger `name:"storeLogger"`
}

func newLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	return logsvc.NewRollbarLogger(stdLogger, conf)
}

func newStoreLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "STORE : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	return logsvc.NewRollbarLogger(stdLogger, conf)
}

func newDB(conf *core.Config, loggerParam StoreLoggerParam) *inmemdb.DB {
	db, err := inmemdb.Open(conf)
	if err != nil {
		loggerParam.Logger.Fatal(fmt.Sprintf("seeding stores: %v", err), err)
	}
	loggerParam.Logger.Info(fmt.Sprintf(
		"stores seeded: %d institutions, %d students, %d users; latency %v",
		db.Institutions.Len(), db.Students.Len(), db.Users.Len(), conf.Store.Latency,
	))
	return db
}

func newUserRepository(db *inmemdb.DB) user.Repository {
	return db.Users
}

func newPages(conf *core.Config, db *inmemdb.DB) (*school.Pages, error) {
	return school.NewPages(db.Stores(), table.Defaults{
		PageSizes: conf.Table.PageSizes,
		PageSize:  conf.Table.DefaultPageSize,
	})
}

func newEmailService(conf *core.Config, logger core.Logger) core.EmailService {
	if conf.Debug || conf.SendgridAPIKey == "" {
		return emailsvc.NewConsoleService(conf, logger)
	}
	return emailsvc.NewSendgridService(conf, logger)
}

func newValidator(translator ut.Translator) *validator.Validate {
	validate := core.NewValidator(translator)
	user.InitValidators(validate, translator)
	institution.InitValidators(validate, translator)
	return validate
}

// New returns a new dependency injection dig.Container
func New() *dig.Container {
	c := dig.New()

	must(c.Provide(core.NewConfig))
	must(c.Provide(newLogger))
	must(c.Provide(newStoreLogger, dig.Name("storeLogger")))
	must(c.Provide(newDB))
	must(c.Provide(newUserRepository))
	must(c.Provide(newPages))
	must(c.Provide(newEmailService))
	must(c.Provide(core.NewTranslator))
	must(c.Provide(newValidator))
	must(c.Provide(user.NewService))
	must(c.Provide(school.NewService))
	must(c.Provide(echoapi.NewServer))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
