package main

import (
	"log"
	"os"

	"github.com/mereles/agenda/core"
	"github.com/mereles/agenda/core/exam"
	emailsvc "github.com/mereles/agenda/services/email"
	logsvc "github.com/mereles/agenda/services/logger"
	"github.com/mereles/agenda/storage/database"
	sqlxrepos "github.com/mereles/agenda/storage/database/sqlx"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()
	appLogger := logsvc.NewStdLogger(logger)

	// set up DB
	errAndDie(database.CreateIfNotExist(conf))
	db, err := database.Open(conf)
	errAndDie(err)
	defer db.Close()
	errAndDie(db.Ping())

	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, appLogger)
	}

	subRepo := sqlxrepos.NewSubjectRepository(db)
	examSvc := exam.NewService(sqlxrepos.NewExamRepository(db), subRepo, mailSvc, appLogger)

	// start CLI
	cli := commandLine{
		db:      db,
		conf:    conf,
		examSvc: examSvc,
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
