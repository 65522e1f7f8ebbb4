package main

import (
	"errors"
	"flag"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/mereles/agenda/core"
	"github.com/mereles/agenda/core/exam"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	db      *sqlx.DB
	conf    *core.Config
	examSvc *exam.Service
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate [COMMAND] - run database migrations (up by default; see goose commands)")
	fmt.Println("  remindexams -owner OWNER -email EMAIL [-level LEVEL] [-days DAYS] - email an owner their upcoming exams")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	remindCmd := flag.NewFlagSet("remindexams", flag.ExitOnError)
	remindOwner := remindCmd.String("owner", "", "The owner's ID.")
	remindEmail := remindCmd.String("email", "", "The address the reminder is sent to.")
	remindLevel := remindCmd.String("level", "", "The academic level bucket. Defaults to the configured level.")
	remindDays := remindCmd.Int("days", 0, "The look-ahead window in days. Defaults to the configured window.")

	switch args[1] {
	case "migrate":
		return cli.migrate(args[2:])
	case "remindexams":
		if err := remindCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *remindOwner == "" || *remindEmail == "" {
			remindCmd.Usage()
			return errHelp
		}
		return cli.remindExams(*remindOwner, *remindEmail, *remindLevel, *remindDays)
	default:
		cli.printUsage()
		return errHelp
	}
}
