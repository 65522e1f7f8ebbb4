package grade

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/mereles/agenda/core"
	"github.com/mereles/agenda/core/subject"
)

var (
	// errors
	ErrNotFound = errors.New("grade not found")
)

type (
	Repository interface {
		CreateGrade(g Grade) (Grade, error)
		QueryAllGrades(ownerID, level string) ([]Grade, error)
		GetGradeByID(id, ownerID string) (Grade, error)
		UpdateGrade(g Grade) (Grade, error)
		DeleteGradesByID(ownerID string, ids ...string) error
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

func (svc *Service) Create(ownerID, level string, ng NewGrade) (Grade, error) {
	g := Grade{
		ID:            uuid.New().String(),
		OwnerID:       ownerID,
		AcademicLevel: level,
		SubjectID:     ng.SubjectID,
		Title:         ng.Title,
		Score:         ng.Score,
		MaxScore:      MaxScore,
		Weight:        ng.Weight,
		GradedAt:      ng.GradedAt,
		CreatedAt:     time.Now().UTC(),
	}
	return svc.repo.CreateGrade(g)
}

// QueryAll returns the owner's grades in the given level bucket, degrading to
// an empty collection when the store is unavailable; averages then read 0.
func (svc *Service) QueryAll(ownerID, level string) []Grade {
	grades, err := svc.repo.QueryAllGrades(ownerID, level)
	if err != nil {
		svc.log.Error("querying grades", err)
		return []Grade{}
	}
	return grades
}

func (svc *Service) GetByID(id, ownerID string) (Grade, error) {
	return svc.repo.GetGradeByID(id, ownerID)
}

func (svc *Service) Update(orig Grade, ug UpdateGrade) (Grade, error) {
	g := orig
	g.SubjectID = ug.SubjectID
	g.Title = ug.Title
	g.Score = *ug.Score
	g.Weight = *ug.Weight
	g.GradedAt = ug.GradedAt
	return svc.repo.UpdateGrade(g)
}

func (svc *Service) Delete(ownerID string, ids ...string) error {
	return svc.repo.DeleteGradesByID(ownerID, ids...)
}

// Averages computes the per-subject groupings and the overall weighted
// average over a snapshot of the owner's grades and subjects.
func (svc *Service) Averages(ownerID, level string) ([]SubjectAverage, float64) {
	grades := svc.QueryAll(ownerID, level)

	subs, err := svc.subjects.QueryAllSubjects(ownerID, level)
	if err != nil {
		svc.log.Error("querying subjects for averages", err)
		subs = nil
	}
	return AveragesBySubject(grades, subs), OverallAverage(grades)
}
