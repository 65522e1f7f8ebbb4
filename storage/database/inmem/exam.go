package inmemdb

import (
	"github.com/mereles/agenda/core/exam"
)

type examRepository struct {
	db *examTable
}

var _ exam.Repository = (*examRepository)(nil) // interface compliance check

func NewExamRepository(db *DB) exam.Repository {
	return &examRepository{db: db.exam}
}

func (repo *examRepository) query(ownerID, level string) []exam.Exam {
	exams := make([]exam.Exam, 0, len(repo.db.order))
	for _, id := range repo.db.order {
		e := repo.db.table[id]
		if e.OwnerID == ownerID && e.AcademicLevel == level {
			exams = append(exams, *e)
		}
	}
	return exams
}

func (repo *examRepository) CreateExam(e exam.Exam) (exam.Exam, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.table[e.ID] = &e
	repo.db.order = append(repo.db.order, e.ID)
	return e, nil
}

func (repo *examRepository) QueryAllExams(ownerID, level string) ([]exam.Exam, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.query(ownerID, level), nil
}

func (repo *examRepository) GetExamByID(id, ownerID string) (exam.Exam, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if e, ok := repo.db.table[id]; ok && e.OwnerID == ownerID {
		return *e, nil
	}
	return exam.Exam{}, exam.ErrNotFound
}

func (repo *examRepository) UpdateExam(e exam.Exam) (exam.Exam, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	orig, ok := repo.db.table[e.ID]
	if !ok || orig.OwnerID != e.OwnerID {
		return exam.Exam{}, exam.ErrNotFound
	}
	repo.db.table[e.ID] = &e
	return e, nil
}

func (repo *examRepository) DeleteExamsByID(ownerID string, ids ...string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, id := range ids {
		if e, ok := repo.db.table[id]; ok && e.OwnerID == ownerID {
			delete(repo.db.table, id)
			repo.db.order = remove(repo.db.order, id)
		}
	}
	return nil
}
