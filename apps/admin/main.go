package main

import (
	"log"
	"os"

	"github.com/devanshdeveloper/edu-manage-sub000/core"
	"github.com/devanshdeveloper/edu-manage-sub000/core/school"
	"github.com/devanshdeveloper/edu-manage-sub000/core/table"
	inmemdb "github.com/devanshdeveloper/edu-manage-sub000/storage/database/inmem"
)

var logger *log.Logger

func main() {
	logger = log.New(os.Stderr, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()
	conf.Store.Latency = 0

	// set up stores
	db, err := inmemdb.Open(conf)
	errAndDie(err)
	pages, err := school.NewPages(db.Stores(), table.Defaults{
		PageSizes: conf.Table.PageSizes,
		PageSize:  conf.Table.DefaultPageSize,
	})
	errAndDie(err)

	// start CLI
	cli := commandLine{
		pages: pages,
		out:   os.Stdout,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
