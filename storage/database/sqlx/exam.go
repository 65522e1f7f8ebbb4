package sqlxrepos

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/mereles/agenda/core/exam"
)

type examRow struct {
	ID            string      `db:"id"`
	OwnerID       string      `db:"owner_id"`
	AcademicLevel string      `db:"academic_level"`
	SubjectID     string      `db:"subject_id"`
	Title         string      `db:"title"`
	ExamDate      string      `db:"exam_date"`
	Location      null.String `db:"location"`
	Notes         null.String `db:"notes"`
	CreatedAt     time.Time   `db:"created_at"`
}

func (r examRow) unrow() exam.Exam {
	return exam.Exam{
		ID:            r.ID,
		OwnerID:       r.OwnerID,
		AcademicLevel: r.AcademicLevel,
		SubjectID:     r.SubjectID,
		Title:         r.Title,
		ExamDate:      r.ExamDate,
		Location:      r.Location,
		Notes:         r.Notes,
		CreatedAt:     r.CreatedAt,
	}
}

func rowFromExam(e exam.Exam) examRow {
	return examRow{
		ID:            e.ID,
		OwnerID:       e.OwnerID,
		AcademicLevel: e.AcademicLevel,
		SubjectID:     e.SubjectID,
		Title:         e.Title,
		ExamDate:      e.ExamDate,
		Location:      e.Location,
		Notes:         e.Notes,
		CreatedAt:     e.CreatedAt.UTC(),
	}
}

type examRepository struct {
	db *sqlx.DB
}

var _ exam.Repository = (*examRepository)(nil) // interface compliance check

func NewExamRepository(db *sqlx.DB) *examRepository {
	return &examRepository{db: db}
}

func (repo examRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return exam.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo examRepository) CreateExam(e exam.Exam) (exam.Exam, error) {
	_, err := repo.db.NamedExec(`
		INSERT INTO exam (id, owner_id, academic_level, subject_id, title, exam_date, location, notes, created_at)
		VALUES (:id, :owner_id, :academic_level, :subject_id, :title, :exam_date, :location, :notes, :created_at)`,
		rowFromExam(e),
	)
	if err != nil {
		return exam.Exam{}, errors.Wrap(err, "inserting exam")
	}
	return e, nil
}

func (repo examRepository) QueryAllExams(ownerID, level string) ([]exam.Exam, error) {
	var rows []examRow
	err := repo.db.Select(&rows, `
		SELECT * FROM exam
		WHERE owner_id = $1 AND academic_level = $2
		ORDER BY exam_date`,
		ownerID, level,
	)
	if err != nil {
		return nil, errors.Wrap(err, "querying exams")
	}
	exams := make([]exam.Exam, 0, len(rows))
	for _, r := range rows {
		exams = append(exams, r.unrow())
	}
	return exams, nil
}

func (repo examRepository) GetExamByID(id, ownerID string) (exam.Exam, error) {
	var r examRow
	err := repo.db.Get(&r, `SELECT * FROM exam WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return exam.Exam{}, repo.trapNoRowsErr(err, "getting exam")
	}
	return r.unrow(), nil
}

func (repo examRepository) UpdateExam(e exam.Exam) (exam.Exam, error) {
	res, err := repo.db.NamedExec(`
		UPDATE exam
		SET subject_id = :subject_id, title = :title, exam_date = :exam_date, location = :location, notes = :notes
		WHERE id = :id AND owner_id = :owner_id`,
		rowFromExam(e),
	)
	if err != nil {
		return exam.Exam{}, errors.Wrap(err, "updating exam")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return exam.Exam{}, exam.ErrNotFound
	}
	return e, nil
}

func (repo examRepository) DeleteExamsByID(ownerID string, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := sqlx.In(`DELETE FROM exam WHERE owner_id = ? AND id IN (?)`, ownerID, ids)
	if err != nil {
		return errors.Wrap(err, "building exam delete")
	}
	if _, err = repo.db.Exec(repo.db.Rebind(query), args...); err != nil {
		return errors.Wrap(err, "deleting exams")
	}
	return nil
}
