package sqlxrepos

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/mereles/agenda/core/task"
)

type taskRow struct {
	ID            string      `db:"id"`
	OwnerID       string      `db:"owner_id"`
	AcademicLevel string      `db:"academic_level"`
	SubjectID     null.String `db:"subject_id"`
	Title         string      `db:"title"`
	Description   null.String `db:"description"`
	Status        string      `db:"status"`
	Priority      string      `db:"priority"`
	DueDate       null.String `db:"due_date"`
	CreatedAt     time.Time   `db:"created_at"`
	UpdatedAt     time.Time   `db:"updated_at"`
}

func (r taskRow) unrow() task.Task {
	return task.Task{
		ID:            r.ID,
		OwnerID:       r.OwnerID,
		AcademicLevel: r.AcademicLevel,
		SubjectID:     r.SubjectID,
		Title:         r.Title,
		Description:   r.Description,
		Status:        r.Status,
		Priority:      r.Priority,
		DueDate:       r.DueDate,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func rowFromTask(t task.Task) taskRow {
	return taskRow{
		ID:            t.ID,
		OwnerID:       t.OwnerID,
		AcademicLevel: t.AcademicLevel,
		SubjectID:     t.SubjectID,
		Title:         t.Title,
		Description:   t.Description,
		Status:        t.Status,
		Priority:      t.Priority,
		DueDate:       t.DueDate,
		CreatedAt:     t.CreatedAt.UTC(),
		UpdatedAt:     t.UpdatedAt.UTC(),
	}
}

type taskRepository struct {
	db *sqlx.DB
}

var _ task.Repository = (*taskRepository)(nil) // interface compliance check

func NewTaskRepository(db *sqlx.DB) *taskRepository {
	return &taskRepository{db: db}
}

func (repo taskRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return task.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo taskRepository) CreateTask(t task.Task) (task.Task, error) {
	_, err := repo.db.NamedExec(`
		INSERT INTO task (id, owner_id, academic_level, subject_id, title, description, status, priority, due_date, created_at, updated_at)
		VALUES (:id, :owner_id, :academic_level, :subject_id, :title, :description, :status, :priority, :due_date, :created_at, :updated_at)`,
		rowFromTask(t),
	)
	if err != nil {
		return task.Task{}, errors.Wrap(err, "inserting task")
	}
	return t, nil
}

func (repo taskRepository) QueryAllTasks(ownerID, level string) ([]task.Task, error) {
	var rows []taskRow
	err := repo.db.Select(&rows, `
		SELECT * FROM task
		WHERE owner_id = $1 AND academic_level = $2
		ORDER BY created_at`,
		ownerID, level,
	)
	if err != nil {
		return nil, errors.Wrap(err, "querying tasks")
	}
	tasks := make([]task.Task, 0, len(rows))
	for _, r := range rows {
		tasks = append(tasks, r.unrow())
	}
	return tasks, nil
}

func (repo taskRepository) GetTaskByID(id, ownerID string) (task.Task, error) {
	var r taskRow
	err := repo.db.Get(&r, `SELECT * FROM task WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return task.Task{}, repo.trapNoRowsErr(err, "getting task")
	}
	return r.unrow(), nil
}

func (repo taskRepository) UpdateTask(t task.Task) (task.Task, error) {
	res, err := repo.db.NamedExec(`
		UPDATE task
		SET subject_id = :subject_id, title = :title, description = :description,
			status = :status, priority = :priority, due_date = :due_date, updated_at = :updated_at
		WHERE id = :id AND owner_id = :owner_id`,
		rowFromTask(t),
	)
	if err != nil {
		return task.Task{}, errors.Wrap(err, "updating task")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return task.Task{}, task.ErrNotFound
	}
	return t, nil
}

func (repo taskRepository) DeleteTasksByID(ownerID string, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := sqlx.In(`DELETE FROM task WHERE owner_id = ? AND id IN (?)`, ownerID, ids)
	if err != nil {
		return errors.Wrap(err, "building task delete")
	}
	if _, err = repo.db.Exec(repo.db.Rebind(query), args...); err != nil {
		return errors.Wrap(err, "deleting tasks")
	}
	return nil
}
