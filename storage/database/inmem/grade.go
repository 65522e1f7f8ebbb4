package inmemdb

import (
	"github.com/mereles/agenda/core/grade"
)

type gradeRepository struct {
	db *gradeTable
}

var _ grade.Repository = (*gradeRepository)(nil) // interface compliance check

func NewGradeRepository(db *DB) grade.Repository {
	return &gradeRepository{db: db.grade}
}

func (repo *gradeRepository) query(ownerID, level string) []grade.Grade {
	grades := make([]grade.Grade, 0, len(repo.db.order))
	for _, id := range repo.db.order {
		g := repo.db.table[id]
		if g.OwnerID == ownerID && g.AcademicLevel == level {
			grades = append(grades, *g)
		}
	}
	return grades
}

func (repo *gradeRepository) CreateGrade(g grade.Grade) (grade.Grade, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.table[g.ID] = &g
	repo.db.order = append(repo.db.order, g.ID)
	return g, nil
}

func (repo *gradeRepository) QueryAllGrades(ownerID, level string) ([]grade.Grade, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.query(ownerID, level), nil
}

func (repo *gradeRepository) GetGradeByID(id, ownerID string) (grade.Grade, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if g, ok := repo.db.table[id]; ok && g.OwnerID == ownerID {
		return *g, nil
	}
	return grade.Grade{}, grade.ErrNotFound
}

func (repo *gradeRepository) UpdateGrade(g grade.Grade) (grade.Grade, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	orig, ok := repo.db.table[g.ID]
	if !ok || orig.OwnerID != g.OwnerID {
		return grade.Grade{}, grade.ErrNotFound
	}
	repo.db.table[g.ID] = &g
	return g, nil
}

func (repo *gradeRepository) DeleteGradesByID(ownerID string, ids ...string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, id := range ids {
		if g, ok := repo.db.table[id]; ok && g.OwnerID == ownerID {
			delete(repo.db.table, id)
			repo.db.order = remove(repo.db.order, id)
		}
	}
	return nil
}
