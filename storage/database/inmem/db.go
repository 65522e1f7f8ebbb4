// Package inmemdb provides map-backed repositories for dev mode and tests.
package inmemdb

import (
	"sync"

	"github.com/mereles/agenda/core/exam"
	"github.com/mereles/agenda/core/grade"
	"github.com/mereles/agenda/core/subject"
	"github.com/mereles/agenda/core/task"
	"github.com/mereles/agenda/core/timetable"
)

type (
	DB struct {
		subject *subjectTable
		entry   *entryTable
		grade   *gradeTable
		task    *taskTable
		exam    *examTable
	}

	subjectTable struct {
		sync.RWMutex
		table map[string]*subject.Subject
		order []string
	}

	entryTable struct {
		sync.RWMutex
		table map[string]*timetable.Entry
		order []string
	}

	gradeTable struct {
		sync.RWMutex
		table map[string]*grade.Grade
		order []string
	}

	taskTable struct {
		sync.RWMutex
		table map[string]*task.Task
		order []string
	}

	examTable struct {
		sync.RWMutex
		table map[string]*exam.Exam
		order []string
	}
)

func Open() (*DB, error) {
	db := &DB{
		subject: &subjectTable{table: make(map[string]*subject.Subject)},
		entry:   &entryTable{table: make(map[string]*timetable.Entry)},
		grade:   &gradeTable{table: make(map[string]*grade.Grade)},
		task:    &taskTable{table: make(map[string]*task.Task)},
		exam:    &examTable{table: make(map[string]*exam.Exam)},
	}
	return db, nil
}

// remove drops id from an insertion-order slice.
func remove(order []string, id string) []string {
	for i, v := range order {
		if v == id {
			return append(order[:i], order[i+1:]...)
		}
	}
	return order
}
