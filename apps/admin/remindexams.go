package main

import (
	"net/mail"

	"github.com/mereles/agenda/core"
)

// remindExams emails the owner a digest of their exams due within the
// look-ahead window.
func (cli *commandLine) remindExams(ownerID, email, level string, days int) error {
	if level == "" {
		level = cli.conf.DefaultAcademicLevel
	}
	if days <= 0 {
		days = cli.conf.ExamReminderDays
	}
	ownerID = core.CleanString(ownerID)

	sent := cli.examSvc.SendReminder(ownerID, level, mail.Address{Address: email}, days)
	logger.Printf("%d reminder(s) sent to %s", sent, email)
	return nil
}
