package task

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"

	"github.com/mereles/agenda/core"
	"github.com/mereles/agenda/core/subject"
)

var (
	// errors
	ErrNotFound = errors.New("task not found")
)

type (
	Repository interface {
		CreateTask(t Task) (Task, error)
		QueryAllTasks(ownerID, level string) ([]Task, error)
		GetTaskByID(id, ownerID string) (Task, error)
		UpdateTask(t Task) (Task, error)
		DeleteTasksByID(ownerID string, ids ...string) error
	}

	Service struct {
		repo     Repository
		subjects subject.Repository
		log      core.Logger
	}
)

func NewService(repo Repository, subjects subject.Repository, log core.Logger) *Service {
	return &Service{repo: repo, subjects: subjects, log: log}
}

func (svc *Service) Create(ownerID, level string, nt NewTask) (Task, error) {
	now := time.Now().UTC()
	t := Task{
		ID:            uuid.New().String(),
		OwnerID:       ownerID,
		AcademicLevel: level,
		SubjectID:     null.NewString(nt.SubjectID, nt.SubjectID != ""),
		Title:         nt.Title,
		Description:   null.NewString(nt.Description, nt.Description != ""),
		Status:        nt.Status,
		Priority:      nt.Priority,
		DueDate:       null.NewString(nt.DueDate, nt.DueDate != ""),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	return svc.repo.CreateTask(t)
}

func (svc *Service) QueryAll(ownerID, level string) []Task {
	tasks, err := svc.repo.QueryAllTasks(ownerID, level)
	if err != nil {
		svc.log.Error("querying tasks", err)
		return []Task{}
	}
	return tasks
}

func (svc *Service) GetByID(id, ownerID string) (Task, error) {
	return svc.repo.GetTaskByID(id, ownerID)
}

func (svc *Service) Update(orig Task, ut UpdateTask) (Task, error) {
	t := orig
	t.SubjectID = null.NewString(ut.SubjectID, ut.SubjectID != "")
	t.Title = ut.Title
	t.Description = null.NewString(ut.Description, ut.Description != "")
	t.Status = ut.Status
	t.Priority = ut.Priority
	t.DueDate = null.NewString(ut.DueDate, ut.DueDate != "")
	t.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateTask(t)
}

func (svc *Service) Delete(ownerID string, ids ...string) error {
	return svc.repo.DeleteTasksByID(ownerID, ids...)
}

// Progress summarises task completion per subject for dashboard widgets.
func (svc *Service) Progress(ownerID, level string) []SubjectProgress {
	tasks := svc.QueryAll(ownerID, level)

	subs, err := svc.subjects.QueryAllSubjects(ownerID, level)
	if err != nil {
		svc.log.Error("querying subjects for task progress", err)
		subs = nil
	}
	return ProgressBySubject(tasks, subs)
}
