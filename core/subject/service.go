package subject

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"

	"github.com/mereles/agenda/core"
)

var (
	// errors
	ErrNotFound = errors.New("subject not found")
)

type (
	Repository interface {
		CreateSubject(sub Subject) (Subject, error)
		QueryAllSubjects(ownerID, level string) ([]Subject, error)
		GetSubjectByID(id, ownerID string) (Subject, error)
		UpdateSubject(sub Subject) (Subject, error)
		DeleteSubjectsByID(ownerID string, ids ...string) error
	}

	Service struct {
		repo Repository
		log  core.Logger
	}
)

func NewService(repo Repository, log core.Logger) *Service {
	return &Service{repo: repo, log: log}
}

func (svc *Service) Create(ownerID, level string, ns NewSubject) (Subject, error) {
	color := ns.Color
	if color == "" {
		color = DefaultColor
	}
	sub := Subject{
		ID:            uuid.New().String(),
		OwnerID:       ownerID,
		AcademicLevel: level,
		Name:          ns.Name,
		Color:         color,
		TeacherName:   null.NewString(ns.TeacherName, ns.TeacherName != ""),
		Room:          null.NewString(ns.Room, ns.Room != ""),
		CreatedAt:     time.Now().UTC(),
	}
	return svc.repo.CreateSubject(sub)
}

// QueryAll returns the owner's subjects in the given level bucket.
// A failing store degrades to an empty collection; resolution and analytics
// then see "no subjects" rather than an error.
func (svc *Service) QueryAll(ownerID, level string) []Subject {
	subs, err := svc.repo.QueryAllSubjects(ownerID, level)
	if err != nil {
		svc.log.Error("querying subjects", err)
		return []Subject{}
	}
	return subs
}

func (svc *Service) GetByID(id, ownerID string) (Subject, error) {
	return svc.repo.GetSubjectByID(id, ownerID)
}

func (svc *Service) Update(orig Subject, us UpdateSubject) (Subject, error) {
	sub := orig
	sub.Name = us.Name
	sub.Color = us.Color
	sub.TeacherName = null.NewString(us.TeacherName, us.TeacherName != "")
	sub.Room = null.NewString(us.Room, us.Room != "")
	return svc.repo.UpdateSubject(sub)
}

// Delete removes subjects without cascading; grades, timetable entries,
// tasks and exams keep their dangling subject references and read paths
// treat the lookup as absent.
func (svc *Service) Delete(ownerID string, ids ...string) error {
	return svc.repo.DeleteSubjectsByID(ownerID, ids...)
}
