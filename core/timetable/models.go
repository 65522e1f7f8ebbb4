package timetable

import (
	"errors"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/mereles/agenda/core"
)

var (
	errOccupantMissing = errors.New("a subject or a custom name is required")
	errTimeOrder       = errors.New("start time must be before end time")
	errDateRequired    = errors.New("a date is required for a single-occurrence entry")
)

// RecurrenceKind tells whether an entry repeats weekly or is pinned to one date.
type RecurrenceKind int

const (
	Weekly RecurrenceKind = iota
	DatedOverride
)

// Entry is a timetable slot: either a recurring weekly class or a single
// dated occurrence that overrides the recurring one for its week.
type Entry struct {
	ID            string      `json:"id"`
	OwnerID       string      `json:"-"`
	AcademicLevel string      `json:"academic_level"`
	SubjectID     null.String `json:"subject_id"`
	CustomName    null.String `json:"custom_name"`
	Weekday       int         `json:"day_of_week"` // 0=Monday
	Date          null.String `json:"date"`        // YYYY-MM-DD; presence makes the entry a dated override
	StartTime     string      `json:"start_time"`  // HH:MM
	EndTime       string      `json:"end_time"`    // HH:MM
	Room          null.String `json:"room"`
	CreatedAt     time.Time   `json:"created_at"` // UTC
}

func (e Entry) Kind() RecurrenceKind {
	if e.Date.Valid && e.Date.String != "" {
		return DatedOverride
	}
	return Weekly
}

// NewEntry contains information needed to create a new Entry.
type NewEntry struct {
	SubjectID  string `json:"subject_id"`
	CustomName string `json:"custom_name"`
	Weekday    int    `json:"day_of_week" validate:"min=0,max=4"`
	Single     bool   `json:"single"` // true = one dated occurrence, false = weekly
	Date       string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	StartTime  string `json:"start_time" validate:"required,hhmm"`
	EndTime    string `json:"end_time" validate:"required,hhmm"`
	Room       string `json:"room"`
}

func (ne *NewEntry) Validate() error {
	ne.SubjectID = core.CleanString(ne.SubjectID)
	ne.CustomName = core.CleanString(ne.CustomName)
	ne.Date = core.CleanString(ne.Date)
	ne.Room = core.CleanString(ne.Room)
	if t, ok := NormalizeClock(ne.StartTime); ok {
		ne.StartTime = t
	}
	if t, ok := NormalizeClock(ne.EndTime); ok {
		ne.EndTime = t
	}
	if !ne.Single {
		ne.Date = ""
	}

	if err := core.Validate.Struct(ne); err != nil {
		return err
	}
	return validateEntry(ne.SubjectID, ne.CustomName, ne.Single, ne.Date, ne.StartTime, ne.EndTime)
}

// UpdateEntry defines what information may be provided to modify an existing
// Entry. The occupant, kind and times are always restated in full; the
// original values only back the omitted times.
type UpdateEntry struct {
	SubjectID  string `json:"subject_id"`
	CustomName string `json:"custom_name"`
	Weekday    int    `json:"day_of_week" validate:"min=0,max=4"`
	Single     bool   `json:"single"`
	Date       string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	StartTime  string `json:"start_time" validate:"omitempty,hhmm"`
	EndTime    string `json:"end_time" validate:"omitempty,hhmm"`
	Room       string `json:"room"`
}

func (ue *UpdateEntry) Validate(orig Entry) error {
	ue.SubjectID = core.CleanString(ue.SubjectID)
	ue.CustomName = core.CleanString(ue.CustomName)
	ue.Date = core.CleanString(ue.Date)
	ue.Room = core.CleanString(ue.Room)

	if t, ok := NormalizeClock(ue.StartTime); ok {
		ue.StartTime = t
	} else {
		ue.StartTime = orig.StartTime
	}
	if t, ok := NormalizeClock(ue.EndTime); ok {
		ue.EndTime = t
	} else {
		ue.EndTime = orig.EndTime
	}
	if !ue.Single {
		ue.Date = ""
	}

	if err := core.Validate.Struct(ue); err != nil {
		return err
	}
	return validateEntry(ue.SubjectID, ue.CustomName, ue.Single, ue.Date, ue.StartTime, ue.EndTime)
}

// validateEntry holds the invariants shared by creation and edition:
// exactly one occupant source, a date on single occurrences and same-day
// time ordering. Malformed entries never reach the resolver.
func validateEntry(subjectID, customName string, single bool, date, start, end string) error {
	if subjectID == "" && customName == "" {
		return core.NewValidationError(
			errOccupantMissing,
			core.FieldError{Field: "subject_id", Error: errOccupantMissing.Error()},
			core.FieldError{Field: "custom_name", Error: errOccupantMissing.Error()},
		)
	}
	if single && date == "" {
		return core.NewValidationError(
			errDateRequired,
			core.FieldError{Field: "date", Error: errDateRequired.Error()},
		)
	}
	if start >= end {
		return core.NewValidationError(
			errTimeOrder,
			core.FieldError{Field: "start_time", Error: errTimeOrder.Error()},
		)
	}
	return nil
}
