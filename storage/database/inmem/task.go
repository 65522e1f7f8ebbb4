package inmemdb

import (
	"github.com/mereles/agenda/core/task"
)

type taskRepository struct {
	db *taskTable
}

var _ task.Repository = (*taskRepository)(nil) // interface compliance check

func NewTaskRepository(db *DB) task.Repository {
	return &taskRepository{db: db.task}
}

func (repo *taskRepository) query(ownerID, level string) []task.Task {
	tasks := make([]task.Task, 0, len(repo.db.order))
	for _, id := range repo.db.order {
		t := repo.db.table[id]
		if t.OwnerID == ownerID && t.AcademicLevel == level {
			tasks = append(tasks, *t)
		}
	}
	return tasks
}

func (repo *taskRepository) CreateTask(t task.Task) (task.Task, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.table[t.ID] = &t
	repo.db.order = append(repo.db.order, t.ID)
	return t, nil
}

func (repo *taskRepository) QueryAllTasks(ownerID, level string) ([]task.Task, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.query(ownerID, level), nil
}

func (repo *taskRepository) GetTaskByID(id, ownerID string) (task.Task, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if t, ok := repo.db.table[id]; ok && t.OwnerID == ownerID {
		return *t, nil
	}
	return task.Task{}, task.ErrNotFound
}

func (repo *taskRepository) UpdateTask(t task.Task) (task.Task, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	orig, ok := repo.db.table[t.ID]
	if !ok || orig.OwnerID != t.OwnerID {
		return task.Task{}, task.ErrNotFound
	}
	repo.db.table[t.ID] = &t
	return t, nil
}

func (repo *taskRepository) DeleteTasksByID(ownerID string, ids ...string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, id := range ids {
		if t, ok := repo.db.table[id]; ok && t.OwnerID == ownerID {
			delete(repo.db.table, id)
			repo.db.order = remove(repo.db.order, id)
		}
	}
	return nil
}
