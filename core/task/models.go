package task

import (
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/mereles/agenda/core"
	"github.com/mereles/agenda/core/subject"
)

// Statuses
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusDone       = "done"
)

// Priorities
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

type Task struct {
	ID            string      `json:"id"`
	OwnerID       string      `json:"-"`
	AcademicLevel string      `json:"academic_level"`
	SubjectID     null.String `json:"subject_id"`
	Title         string      `json:"title"`
	Description   null.String `json:"description"`
	Status        string      `json:"status"`
	Priority      string      `json:"priority"`
	DueDate       null.String `json:"due_date"` // YYYY-MM-DD
	CreatedAt     time.Time   `json:"created_at"` // UTC
	UpdatedAt     time.Time   `json:"updated_at"` // UTC
}

// SubjectProgress is a subject's task completion summary; subjects without
// tasks are included with zero counts.
type SubjectProgress struct {
	Subject subject.Subject `json:"subject"`
	Total   int             `json:"total"`
	Done    int             `json:"done"`
	Pct     int             `json:"pct"`
}

// PendingCount counts tasks not yet done.
func PendingCount(tasks []Task) int {
	var n int
	for _, t := range tasks {
		if t.Status != StatusDone {
			n++
		}
	}
	return n
}

// ProgressBySubject computes per-subject completion percentages.
func ProgressBySubject(tasks []Task, subjects []subject.Subject) []SubjectProgress {
	result := make([]SubjectProgress, 0, len(subjects))
	for _, sub := range subjects {
		var total, done int
		for _, t := range tasks {
			if t.SubjectID.String != sub.ID {
				continue
			}
			total++
			if t.Status == StatusDone {
				done++
			}
		}
		var pct int
		if total > 0 {
			pct = int(float64(done)/float64(total)*100 + 0.5)
		}
		result = append(result, SubjectProgress{Subject: sub, Total: total, Done: done, Pct: pct})
	}
	return result
}

// NewTask contains information needed to create a new Task.
type NewTask struct {
	SubjectID   string `json:"subject_id"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Status      string `json:"status" validate:"omitempty,oneof=pending in_progress done"`
	Priority    string `json:"priority" validate:"omitempty,oneof=low medium high"`
	DueDate     string `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
}

func (nt *NewTask) Validate() error {
	nt.SubjectID = core.CleanString(nt.SubjectID)
	nt.Title = core.CleanString(nt.Title)
	nt.Description = core.CleanString(nt.Description)
	nt.DueDate = core.CleanString(nt.DueDate)

	if err := core.Validate.Struct(nt); err != nil {
		return err
	}
	if nt.Status == "" {
		nt.Status = StatusPending
	}
	if nt.Priority == "" {
		nt.Priority = PriorityMedium
	}
	return nil
}

// UpdateTask defines what information may be provided to modify an existing
// Task. Empty fields fall back to the original values.
type UpdateTask struct {
	SubjectID   string `json:"subject_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status" validate:"omitempty,oneof=pending in_progress done"`
	Priority    string `json:"priority" validate:"omitempty,oneof=low medium high"`
	DueDate     string `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
}

func (ut *UpdateTask) Validate(orig Task) error {
	if sub := core.CleanString(ut.SubjectID); sub != "" {
		ut.SubjectID = sub
	} else {
		ut.SubjectID = orig.SubjectID.String
	}

	if title := core.CleanString(ut.Title); title != "" {
		ut.Title = title
	} else {
		ut.Title = orig.Title
	}

	if desc := core.CleanString(ut.Description); desc != "" {
		ut.Description = desc
	} else {
		ut.Description = orig.Description.String
	}

	if ut.Status == "" {
		ut.Status = orig.Status
	}
	if ut.Priority == "" {
		ut.Priority = orig.Priority
	}

	ut.DueDate = core.CleanString(ut.DueDate)
	if ut.DueDate == "" {
		ut.DueDate = orig.DueDate.String
	}

	return core.Validate.Struct(ut)
}
