package exam

import (
	"sort"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/mereles/agenda/core"
)

type Exam struct {
	ID            string      `json:"id"`
	OwnerID       string      `json:"-"`
	AcademicLevel string      `json:"academic_level"`
	SubjectID     string      `json:"subject_id"`
	Title         string      `json:"title"`
	ExamDate      string      `json:"exam_date"` // YYYY-MM-DD
	Location      null.String `json:"location"`
	Notes         null.String `json:"notes"`
	CreatedAt     time.Time   `json:"created_at"` // UTC
}

// Upcoming filters exams on/after the given date, soonest first.
func Upcoming(exams []Exam, from string) []Exam {
	upcoming := make([]Exam, 0, len(exams))
	for _, e := range exams {
		if e.ExamDate >= from {
			upcoming = append(upcoming, e)
		}
	}
	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].ExamDate < upcoming[j].ExamDate
	})
	return upcoming
}

// NewExam contains information needed to create a new Exam.
type NewExam struct {
	SubjectID string `json:"subject_id" validate:"required"`
	Title     string `json:"title" validate:"required"`
	ExamDate  string `json:"exam_date" validate:"required,datetime=2006-01-02"`
	Location  string `json:"location"`
	Notes     string `json:"notes"`
}

func (ne *NewExam) Validate() error {
	ne.SubjectID = core.CleanString(ne.SubjectID)
	ne.Title = core.CleanString(ne.Title)
	ne.ExamDate = core.CleanString(ne.ExamDate)
	ne.Location = core.CleanString(ne.Location)
	ne.Notes = core.CleanString(ne.Notes)
	return core.Validate.Struct(ne)
}

// UpdateExam defines what information may be provided to modify an existing
// Exam. Empty fields fall back to the original values.
type UpdateExam struct {
	SubjectID string `json:"subject_id"`
	Title     string `json:"title"`
	ExamDate  string `json:"exam_date" validate:"omitempty,datetime=2006-01-02"`
	Location  string `json:"location"`
	Notes     string `json:"notes"`
}

func (ue *UpdateExam) Validate(orig Exam) error {
	if sub := core.CleanString(ue.SubjectID); sub != "" {
		ue.SubjectID = sub
	} else {
		ue.SubjectID = orig.SubjectID
	}

	if title := core.CleanString(ue.Title); title != "" {
		ue.Title = title
	} else {
		ue.Title = orig.Title
	}

	ue.ExamDate = core.CleanString(ue.ExamDate)
	if ue.ExamDate == "" {
		ue.ExamDate = orig.ExamDate
	}

	if loc := core.CleanString(ue.Location); loc != "" {
		ue.Location = loc
	} else {
		ue.Location = orig.Location.String
	}

	if notes := core.CleanString(ue.Notes); notes != "" {
		ue.Notes = notes
	} else {
		ue.Notes = orig.Notes.String
	}

	return core.Validate.Struct(ue)
}
