package sqlxrepos

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/mereles/agenda/core/timetable"
)

type entryRow struct {
	ID            string      `db:"id"`
	OwnerID       string      `db:"owner_id"`
	AcademicLevel string      `db:"academic_level"`
	SubjectID     null.String `db:"subject_id"`
	CustomName    null.String `db:"custom_name"`
	Weekday       int         `db:"day_of_week"`
	Date          null.String `db:"date"`
	StartTime     string      `db:"start_time"`
	EndTime       string      `db:"end_time"`
	Room          null.String `db:"room"`
	CreatedAt     time.Time   `db:"created_at"`
}

func (r entryRow) unrow() timetable.Entry {
	return timetable.Entry{
		ID:            r.ID,
		OwnerID:       r.OwnerID,
		AcademicLevel: r.AcademicLevel,
		SubjectID:     r.SubjectID,
		CustomName:    r.CustomName,
		Weekday:       r.Weekday,
		Date:          r.Date,
		StartTime:     r.StartTime,
		EndTime:       r.EndTime,
		Room:          r.Room,
		CreatedAt:     r.CreatedAt,
	}
}

func rowFromEntry(e timetable.Entry) entryRow {
	return entryRow{
		ID:            e.ID,
		OwnerID:       e.OwnerID,
		AcademicLevel: e.AcademicLevel,
		SubjectID:     e.SubjectID,
		CustomName:    e.CustomName,
		Weekday:       e.Weekday,
		Date:          e.Date,
		StartTime:     e.StartTime,
		EndTime:       e.EndTime,
		Room:          e.Room,
		CreatedAt:     e.CreatedAt.UTC(),
	}
}

type entryRepository struct {
	db *sqlx.DB
}

var _ timetable.Repository = (*entryRepository)(nil) // interface compliance check

func NewEntryRepository(db *sqlx.DB) *entryRepository {
	return &entryRepository{db: db}
}

func (repo entryRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return timetable.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo entryRepository) CreateEntry(e timetable.Entry) (timetable.Entry, error) {
	_, err := repo.db.NamedExec(`
		INSERT INTO timetable_entry
			(id, owner_id, academic_level, subject_id, custom_name, day_of_week, date, start_time, end_time, room, created_at)
		VALUES
			(:id, :owner_id, :academic_level, :subject_id, :custom_name, :day_of_week, :date, :start_time, :end_time, :room, :created_at)`,
		rowFromEntry(e),
	)
	if err != nil {
		return timetable.Entry{}, errors.Wrap(err, "inserting timetable entry")
	}
	return e, nil
}

func (repo entryRepository) QueryAllEntries(ownerID, level string) ([]timetable.Entry, error) {
	var rows []entryRow
	err := repo.db.Select(&rows, `
		SELECT * FROM timetable_entry
		WHERE owner_id = $1 AND academic_level = $2
		ORDER BY created_at`,
		ownerID, level,
	)
	if err != nil {
		return nil, errors.Wrap(err, "querying timetable entries")
	}
	entries := make([]timetable.Entry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, r.unrow())
	}
	return entries, nil
}

func (repo entryRepository) GetEntryByID(id, ownerID string) (timetable.Entry, error) {
	var r entryRow
	err := repo.db.Get(&r, `SELECT * FROM timetable_entry WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return timetable.Entry{}, repo.trapNoRowsErr(err, "getting timetable entry")
	}
	return r.unrow(), nil
}

func (repo entryRepository) UpdateEntry(e timetable.Entry) (timetable.Entry, error) {
	res, err := repo.db.NamedExec(`
		UPDATE timetable_entry
		SET subject_id = :subject_id, custom_name = :custom_name, day_of_week = :day_of_week,
			date = :date, start_time = :start_time, end_time = :end_time, room = :room
		WHERE id = :id AND owner_id = :owner_id`,
		rowFromEntry(e),
	)
	if err != nil {
		return timetable.Entry{}, errors.Wrap(err, "updating timetable entry")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return timetable.Entry{}, timetable.ErrNotFound
	}
	return e, nil
}

func (repo entryRepository) DeleteEntriesByID(ownerID string, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := sqlx.In(`DELETE FROM timetable_entry WHERE owner_id = ? AND id IN (?)`, ownerID, ids)
	if err != nil {
		return errors.Wrap(err, "building timetable entry delete")
	}
	if _, err = repo.db.Exec(repo.db.Rebind(query), args...); err != nil {
		return errors.Wrap(err, "deleting timetable entries")
	}
	return nil
}
