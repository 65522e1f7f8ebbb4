package inmemdb

import (
	"github.com/mereles/agenda/core/subject"
)

type subjectRepository struct {
	db *subjectTable
}

var _ subject.Repository = (*subjectRepository)(nil) // interface compliance check

func NewSubjectRepository(db *DB) subject.Repository {
	return &subjectRepository{db: db.subject}
}

func (repo *subjectRepository) query(ownerID, level string) []subject.Subject {
	subs := make([]subject.Subject, 0, len(repo.db.order))
	for _, id := range repo.db.order {
		s := repo.db.table[id]
		if s.OwnerID == ownerID && s.AcademicLevel == level {
			subs = append(subs, *s)
		}
	}
	return subs
}

func (repo *subjectRepository) CreateSubject(sub subject.Subject) (subject.Subject, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.table[sub.ID] = &sub
	repo.db.order = append(repo.db.order, sub.ID)
	return sub, nil
}

func (repo *subjectRepository) QueryAllSubjects(ownerID, level string) ([]subject.Subject, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.query(ownerID, level), nil
}

func (repo *subjectRepository) GetSubjectByID(id, ownerID string) (subject.Subject, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if sub, ok := repo.db.table[id]; ok && sub.OwnerID == ownerID {
		return *sub, nil
	}
	return subject.Subject{}, subject.ErrNotFound
}

func (repo *subjectRepository) UpdateSubject(sub subject.Subject) (subject.Subject, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	orig, ok := repo.db.table[sub.ID]
	if !ok || orig.OwnerID != sub.OwnerID {
		return subject.Subject{}, subject.ErrNotFound
	}
	repo.db.table[sub.ID] = &sub
	return sub, nil
}

func (repo *subjectRepository) DeleteSubjectsByID(ownerID string, ids ...string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, id := range ids {
		if sub, ok := repo.db.table[id]; ok && sub.OwnerID == ownerID {
			delete(repo.db.table, id)
			repo.db.order = remove(repo.db.order, id)
		}
	}
	return nil
}
