package inmemdb

import (
	"github.com/mereles/agenda/core/timetable"
)

type entryRepository struct {
	db *entryTable
}

var _ timetable.Repository = (*entryRepository)(nil) // interface compliance check

func NewEntryRepository(db *DB) timetable.Repository {
	return &entryRepository{db: db.entry}
}

func (repo *entryRepository) query(ownerID, level string) []timetable.Entry {
	entries := make([]timetable.Entry, 0, len(repo.db.order))
	for _, id := range repo.db.order {
		e := repo.db.table[id]
		if e.OwnerID == ownerID && e.AcademicLevel == level {
			entries = append(entries, *e)
		}
	}
	return entries
}

func (repo *entryRepository) CreateEntry(e timetable.Entry) (timetable.Entry, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.table[e.ID] = &e
	repo.db.order = append(repo.db.order, e.ID)
	return e, nil
}

func (repo *entryRepository) QueryAllEntries(ownerID, level string) ([]timetable.Entry, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.query(ownerID, level), nil
}

func (repo *entryRepository) GetEntryByID(id, ownerID string) (timetable.Entry, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if e, ok := repo.db.table[id]; ok && e.OwnerID == ownerID {
		return *e, nil
	}
	return timetable.Entry{}, timetable.ErrNotFound
}

func (repo *entryRepository) UpdateEntry(e timetable.Entry) (timetable.Entry, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	orig, ok := repo.db.table[e.ID]
	if !ok || orig.OwnerID != e.OwnerID {
		return timetable.Entry{}, timetable.ErrNotFound
	}
	repo.db.table[e.ID] = &e
	return e, nil
}

func (repo *entryRepository) DeleteEntriesByID(ownerID string, ids ...string) error {
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
