package timetable

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"

	"github.com/mereles/agenda/core"
	"github.com/mereles/agenda/core/subject"
)

var (
	// errors
	ErrNotFound = errors.New("timetable entry not found")
)

type (
	Repository interface {
		CreateEntry(e Entry) (Entry, error)
		QueryAllEntries(ownerID, level string) ([]Entry, error)
		GetEntryByID(id, ownerID string) (Entry, error)
		UpdateEntry(e Entry) (Entry, error)
		DeleteEntriesByID(ownerID string, ids ...string) error
	}

	Service struct {
		repo     Repository
		subjects subject.Repository
		log      core.Logger
	}
)

func NewService(repo Repository, subjects subject.Repository, log core.Logger) *Service {
	return &Service{repo: repo, subjects: subjects, log: log}
}

func (svc *Service) Create(ownerID, level string, ne NewEntry) (Entry, error) {
	e := Entry{
		ID:            uuid.New().String(),
		OwnerID:       ownerID,
		AcademicLevel: level,
		SubjectID:     null.NewString(ne.SubjectID, ne.SubjectID != ""),
		Weekday:       ne.Weekday,
		Date:          null.NewString(ne.Date, ne.Single),
		StartTime:     ne.StartTime,
		EndTime:       ne.EndTime,
		Room:          null.NewString(ne.Room, ne.Room != ""),
		CreatedAt:     time.Now().UTC(),
	}
	// the custom name only identifies the slot when no subject does
	if ne.SubjectID == "" {
		e.CustomName = null.StringFrom(ne.CustomName)
	}
	applyDateWeekday(&e)
	return svc.repo.CreateEntry(e)
}

// QueryAll returns the owner's entries in the given level bucket, degrading
// to an empty collection when the store is unavailable.
func (svc *Service) QueryAll(ownerID, level string) []Entry {
	entries, err := svc.repo.QueryAllEntries(ownerID, level)
	if err != nil {
		svc.log.Error("querying timetable entries", err)
		return []Entry{}
	}
	return entries
}

func (svc *Service) GetByID(id, ownerID string) (Entry, error) {
	return svc.repo.GetEntryByID(id, ownerID)
}

func (svc *Service) Update(orig Entry, ue UpdateEntry) (Entry, error) {
	e := orig
	e.SubjectID = null.NewString(ue.SubjectID, ue.SubjectID != "")
	e.CustomName = null.String{}
	if ue.SubjectID == "" {
		e.CustomName = null.StringFrom(ue.CustomName)
	}
	e.Weekday = ue.Weekday
	e.Date = null.NewString(ue.Date, ue.Single)
	e.StartTime = ue.StartTime
	e.EndTime = ue.EndTime
	e.Room = null.NewString(ue.Room, ue.Room != "")
	applyDateWeekday(&e)
	return svc.repo.UpdateEntry(e)
}

func (svc *Service) Delete(ownerID string, ids ...string) error {
	return svc.repo.DeleteEntriesByID(ownerID, ids...)
}

// ResolveWeek resolves the Monday-aligned week containing weekStart over a
// snapshot of the owner's entries and subjects. Store failures degrade to an
// empty grid.
func (svc *Service) ResolveWeek(ownerID, level string, weekStart time.Time) Week {
	entries := svc.QueryAll(ownerID, level)

	subs, err := svc.subjects.QueryAllSubjects(ownerID, level)
	if err != nil {
		svc.log.Error("querying subjects for resolution", err)
		subs = nil
	}
	return ResolveWeek(weekStart, entries, subject.Lookup(subs))
}

// Day lists the entries occurring on one concrete date, sorted by start time.
func (svc *Service) Day(ownerID, level string, date time.Time) []Entry {
	return EntriesForDate(date, svc.QueryAll(ownerID, level))
}

// applyDateWeekday keeps Weekday consistent with the date's weekday on dated
// entries, as a display fallback.
func applyDateWeekday(e *Entry) {
	if e.Kind() != DatedOverride {
		return
	}
	if d, err := time.Parse(core.DateLayout, e.Date.String); err == nil {
		e.Weekday = WeekdayIndex(d)
	}
}
