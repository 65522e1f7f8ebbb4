package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"

	"github.com/jmoiron/sqlx"

	echoapi "github.com/mereles/agenda/apps/api/echo"
	"github.com/mereles/agenda/core"
	"github.com/mereles/agenda/core/exam"
	"github.com/mereles/agenda/core/grade"
	"github.com/mereles/agenda/core/subject"
	"github.com/mereles/agenda/core/task"
	"github.com/mereles/agenda/core/timetable"
	emailsvc "github.com/mereles/agenda/services/email"
	logsvc "github.com/mereles/agenda/services/logger"
	"github.com/mereles/agenda/storage/database"
	inmemdb "github.com/mereles/agenda/storage/database/inmem"
	sqlxrepos "github.com/mereles/agenda/storage/database/sqlx"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	std := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	var logger core.Logger
	if conf.Debug {
		logger = logsvc.NewStdLogger(std)
	} else {
		logger = logsvc.NewRollbarLogger(std, conf)
	}
	logger.Enable(!conf.TestMode)

	var repos repositories
	switch conf.Database.Engine {
	case "inmem":
		db, err := inmemdb.Open()
		if err != nil {
			logger.Fatal(fmt.Sprintf("setting up in-memory store: %v", err), err)
		}
		repos = newInmemRepositories(db)
	default:
		db, err := setUpDB(conf)
		if err != nil {
			logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
		}
		defer func() {
			if err = db.Close(); err != nil {
				logger.Error("closing database", err)
			}
		}()
		repos = newSQLRepositories(db)
	}

	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}

	subjectSvc := subject.NewService(repos.subject, logger)
	timetableSvc := timetable.NewService(repos.timetable, repos.subject, logger)
	gradeSvc := grade.NewService(repos.grade, repos.subject, logger)
	taskSvc := task.NewService(repos.task, repos.subject, logger)
	examSvc := exam.NewService(repos.exam, repos.subject, mailSvc, logger)

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.

	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)

	if conf.Debug {
		go func() {
			if err := http.ListenAndServe("localhost:6060", http.DefaultServeMux); err != nil {
				logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
			}
		}()
	}

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(echoapi.ServerDeps{
		Conf:         conf,
		Logger:       logger,
		SubjectSvc:   subjectSvc,
		TimetableSvc: timetableSvc,
		GradeSvc:     gradeSvc,
		TaskSvc:      taskSvc,
		ExamSvc:      examSvc,
	})

	go server.Start()

	// =========================================================================
	// Shutdown

	select {
	case err := <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

type repositories struct {
	subject   subject.Repository
	timetable timetable.Repository
	grade     grade.Repository
	task      task.Repository
	exam      exam.Repository
}

func newSQLRepositories(db *sqlx.DB) repositories {
	return repositories{
		subject:   sqlxrepos.NewSubjectRepository(db),
		timetable: sqlxrepos.NewEntryRepository(db),
		grade:     sqlxrepos.NewGradeRepository(db),
		task:      sqlxrepos.NewTaskRepository(db),
		exam:      sqlxrepos.NewExamRepository(db),
	}
}

func newInmemRepositories(db *inmemdb.DB) repositories {
	return repositories{
		subject:   inmemdb.NewSubjectRepository(db),
		timetable: inmemdb.NewEntryRepository(db),
		grade:     inmemdb.NewGradeRepository(db),
		task:      inmemdb.NewTaskRepository(db),
		exam:      inmemdb.NewExamRepository(db),
	}
}

func setUpDB(conf *core.Config) (*sqlx.DB, error) {
	if err := database.CreateIfNotExist(conf); err != nil {
		return nil, err
	}

	db, err := database.Open(conf)
	if err != nil {
		return nil, err
	}

	if err = database.Migrate(db.DB); err != nil {
		return nil, err
	}
	return db, nil
}
