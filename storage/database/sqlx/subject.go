package sqlxrepos

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/mereles/agenda/core/subject"
)

type subjectRow struct {
	ID            string      `db:"id"`
	OwnerID       string      `db:"owner_id"`
	AcademicLevel string      `db:"academic_level"`
	Name          string      `db:"name"`
	Color         string      `db:"color"`
	TeacherName   null.String `db:"teacher_name"`
	Room          null.String `db:"room"`
	CreatedAt     time.Time   `db:"created_at"`
}

func (r subjectRow) unrow() subject.Subject {
	return subject.Subject{
		ID:            r.ID,
		OwnerID:       r.OwnerID,
		AcademicLevel: r.AcademicLevel,
		Name:          r.Name,
		Color:         r.Color,
		TeacherName:   r.TeacherName,
		Room:          r.Room,
		CreatedAt:     r.CreatedAt,
	}
}

func rowFromSubject(sub subject.Subject) subjectRow {
	return subjectRow{
		ID:            sub.ID,
		OwnerID:       sub.OwnerID,
		AcademicLevel: sub.AcademicLevel,
		Name:          sub.Name,
		Color:         sub.Color,
		TeacherName:   sub.TeacherName,
		Room:          sub.Room,
		CreatedAt:     sub.CreatedAt.UTC(),
	}
}

type subjectRepository struct {
	db *sqlx.DB
}

var _ subject.Repository = (*subjectRepository)(nil) // interface compliance check

func NewSubjectRepository(db *sqlx.DB) *subjectRepository {
	return &subjectRepository{db: db}
}

// trapNoRowsErr maps psql "no rows" err to subject.ErrNotFound
func (repo subjectRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return subject.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo subjectRepository) CreateSubject(sub subject.Subject) (subject.Subject, error) {
	_, err := repo.db.NamedExec(`
		INSERT INTO subject (id, owner_id, academic_level, name, color, teacher_name, room, created_at)
		VALUES (:id, :owner_id, :academic_level, :name, :color, :teacher_name, :room, :created_at)`,
		rowFromSubject(sub),
	)
	if err != nil {
		return subject.Subject{}, errors.Wrap(err, "inserting subject")
	}
	return sub, nil
}

func (repo subjectRepository) QueryAllSubjects(ownerID, level string) ([]subject.Subject, error) {
	var rows []subjectRow
	err := repo.db.Select(&rows, `
		SELECT * FROM subject
		WHERE owner_id = $1 AND academic_level = $2
		ORDER BY created_at, name`,
		ownerID, level,
	)
	if err != nil {
		return nil, errors.Wrap(err, "querying subjects")
	}
	subs := make([]subject.Subject, 0, len(rows))
	for _, r := range rows {
		subs = append(subs, r.unrow())
	}
	return subs, nil
}

func (repo subjectRepository) GetSubjectByID(id, ownerID string) (subject.Subject, error) {
	var r subjectRow
	err := repo.db.Get(&r, `SELECT * FROM subject WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return subject.Subject{}, repo.trapNoRowsErr(err, "getting subject")
	}
	return r.unrow(), nil
}

func (repo subjectRepository) UpdateSubject(sub subject.Subject) (subject.Subject, error) {
	res, err := repo.db.NamedExec(`
		UPDATE subject
		SET name = :name, color = :color, teacher_name = :teacher_name, room = :room
		WHERE id = :id AND owner_id = :owner_id`,
		rowFromSubject(sub),
	)
	if err != nil {
		return subject.Subject{}, errors.Wrap(err, "updating subject")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return subject.Subject{}, subject.ErrNotFound
	}
	return sub, nil
}

func (repo subjectRepository) DeleteSubjectsByID(ownerID string, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := sqlx.In(`DELETE FROM subject WHERE owner_id = ? AND id IN (?)`, ownerID, ids)
	if err != nil {
		return errors.Wrap(err, "building subject delete")
	}
	if _, err = repo.db.Exec(repo.db.Rebind(query), args...); err != nil {
		return errors.Wrap(err, "deleting subjects")
	}
	return nil
}
