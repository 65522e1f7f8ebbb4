package sqlxrepos

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/mereles/agenda/core/grade"
)

type gradeRow struct {
	ID            string    `db:"id"`
	OwnerID       string    `db:"owner_id"`
	AcademicLevel string    `db:"academic_level"`
	SubjectID     string    `db:"subject_id"`
	Title         string    `db:"title"`
	Score         float64   `db:"score"`
	MaxScore      float64   `db:"max_score"`
	Weight        float64   `db:"weight"`
	GradedAt      string    `db:"graded_at"`
	CreatedAt     time.Time `db:"created_at"`
}

func (r gradeRow) unrow() grade.Grade {
	return grade.Grade{
		ID:            r.ID,
		OwnerID:       r.OwnerID,
		AcademicLevel: r.AcademicLevel,
		SubjectID:     r.SubjectID,
		Title:         r.Title,
		Score:         r.Score,
		MaxScore:      r.MaxScore,
		Weight:        r.Weight,
		GradedAt:      r.GradedAt,
		CreatedAt:     r.CreatedAt,
	}
}

func rowFromGrade(g grade.Grade) gradeRow {
	return gradeRow{
		ID:            g.ID,
		OwnerID:       g.OwnerID,
		AcademicLevel: g.AcademicLevel,
		SubjectID:     g.SubjectID,
		Title:         g.Title,
		Score:         g.Score,
		MaxScore:      g.MaxScore,
		Weight:        g.Weight,
		GradedAt:      g.GradedAt,
		CreatedAt:     g.CreatedAt.UTC(),
	}
}

type gradeRepository struct {
	db *sqlx.DB
}

var _ grade.Repository = (*gradeRepository)(nil) // interface compliance check

func NewGradeRepository(db *sqlx.DB) *gradeRepository {
	return &gradeRepository{db: db}
}

func (repo gradeRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return grade.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo gradeRepository) CreateGrade(g grade.Grade) (grade.Grade, error) {
	_, err := repo.db.NamedExec(`
		INSERT INTO grade (id, owner_id, academic_level, subject_id, title, score, max_score, weight, graded_at, created_at)
		VALUES (:id, :owner_id, :academic_level, :subject_id, :title, :score, :max_score, :weight, :graded_at, :created_at)`,
		rowFromGrade(g),
	)
	if err != nil {
		return grade.Grade{}, errors.Wrap(err, "inserting grade")
	}
	return g, nil
}

func (repo gradeRepository) QueryAllGrades(ownerID, level string) ([]grade.Grade, error) {
	var rows []gradeRow
	err := repo.db.Select(&rows, `
		SELECT * FROM grade
		WHERE owner_id = $1 AND academic_level = $2
		ORDER BY created_at`,
		ownerID, level,
	)
	if err != nil {
		return nil, errors.Wrap(err, "querying grades")
	}
	grades := make([]grade.Grade, 0, len(rows))
	for _, r := range rows {
		grades = append(grades, r.unrow())
	}
	return grades, nil
}

func (repo gradeRepository) GetGradeByID(id, ownerID string) (grade.Grade, error) {
	var r gradeRow
	err := repo.db.Get(&r, `SELECT * FROM grade WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return grade.Grade{}, repo.trapNoRowsErr(err, "getting grade")
	}
	return r.unrow(), nil
}

func (repo gradeRepository) UpdateGrade(g grade.Grade) (grade.Grade, error) {
	res, err := repo.db.NamedExec(`
		UPDATE grade
		SET subject_id = :subject_id, title = :title, score = :score, weight = :weight, graded_at = :graded_at
		WHERE id = :id AND owner_id = :owner_id`,
		rowFromGrade(g),
	)
	if err != nil {
		return grade.Grade{}, errors.Wrap(err, "updating grade")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return grade.Grade{}, grade.ErrNotFound
	}
	return g, nil
}

func (repo gradeRepository) DeleteGradesByID(ownerID string, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := sqlx.In(`DELETE FROM grade WHERE owner_id = ? AND id IN (?)`, ownerID, ids)
	if err != nil {
		return errors.Wrap(err, "building grade delete")
	}
	if _, err = repo.db.Exec(repo.db.Rebind(query), args...); err != nil {
		return errors.Wrap(err, "deleting grades")
	}
	return nil
}
