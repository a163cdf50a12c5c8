package main

import (
	"log"
	"os"

	"github.com/trezcool/prepclass/apps/api/echo"
	"github.com/trezcool/prepclass/core"
	"github.com/trezcool/prepclass/core/material"
	"github.com/trezcool/prepclass/core/user"
	"github.com/trezcool/prepclass/services/email"
	"github.com/trezcool/prepclass/services/llm"
	"github.com/trezcool/prepclass/services/logger"
	"github.com/trezcool/prepclass/storage/database"
	"github.com/trezcool/prepclass/storage/database/sqlite"
)

func main() {
	// set up logging
	var logger core.Logger
	if core.Conf.Debug {
		zl, err := logsvc.NewZapLogger(core.Conf)
		errAndDie(err)
		logger = zl
	} else {
		logger = logsvc.NewRollbarLogger(log.New(os.Stdout, "", log.LstdFlags), core.Conf)
	}

	// set up DB
	db, err := database.Open(core.Conf)
	errAndDie(err)
	defer func() { _ = db.Close() }()
	errAndDie(database.Migrate(db))

	// set up services
	var mailSvc core.EmailService
	if core.Conf.Debug {
		mailSvc = emailsvc.NewConsoleService()
	} else {
		mailSvc = emailsvc.NewSendgridService(logger)
	}
	usrSvc := user.NewService(sqliterepos.NewUserRepository(db))
	matSvc := material.NewService(
		sqliterepos.NewMaterialRepository(db),
		llmsvc.NewOpenAIGenerator(),
	)

	// start API server
	app := echoapi.NewServer(
		&echoapi.Options{
			Addr:        core.Conf.Addr(),
			UserSvc:     usrSvc,
			MaterialSvc: matSvc,
			EmailSvc:    mailSvc,
			Logger:      logger,
		},
	)
	app.Start()
}

func errAndDie(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
