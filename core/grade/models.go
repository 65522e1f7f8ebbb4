package grade

import (
	"time"

	"github.com/mereles/agenda/core"
)

// MaxScore is the scoring ceiling; grades live on a 0-10 scale.
const MaxScore = 10.0

type Grade struct {
	ID            string    `json:"id"`
	OwnerID       string    `json:"-"`
	AcademicLevel string    `json:"academic_level"`
	SubjectID     string    `json:"subject_id"`
	Title         string    `json:"title"`
	Score         float64   `json:"score"`
	MaxScore      float64   `json:"max_score"`
	Weight        float64   `json:"weight"`
	GradedAt      string    `json:"graded_at"` // YYYY-MM-DD
	CreatedAt     time.Time `json:"created_at"` // UTC
}

// NewGrade contains information needed to create a new Grade.
type NewGrade struct {
	SubjectID string  `json:"subject_id" validate:"required"`
	Title     string  `json:"title" validate:"required"`
	Score     float64 `json:"score" validate:"min=0,max=10"`
	Weight    float64 `json:"weight" validate:"omitempty,gt=0"`
	GradedAt  string  `json:"graded_at" validate:"omitempty,datetime=2006-01-02"`
}

func (ng *NewGrade) Validate() error {
	ng.SubjectID = core.CleanString(ng.SubjectID)
	ng.Title = core.CleanString(ng.Title)
	ng.GradedAt = core.CleanString(ng.GradedAt)

	if err := core.Validate.Struct(ng); err != nil {
		return err
	}
	if ng.Weight == 0 {
		ng.Weight = 1.0
	}
	if ng.GradedAt == "" {
		ng.GradedAt = core.TodayStr()
	}
	return nil
}

// UpdateGrade defines what information may be provided to modify an existing
// Grade. Omitted fields fall back to the original values.
type UpdateGrade struct {
	SubjectID string   `json:"subject_id"`
	Title     string   `json:"title"`
	Score     *float64 `json:"score" validate:"omitempty,min=0,max=10"`
	Weight    *float64 `json:"weight" validate:"omitempty,gt=0"`
	GradedAt  string   `json:"graded_at" validate:"omitempty,datetime=2006-01-02"`
}

func (ug *UpdateGrade) Validate(orig Grade) error {
	if sub := core.CleanString(ug.SubjectID); sub != "" {
		ug.SubjectID = sub
	} else {
		ug.SubjectID = orig.SubjectID
	}

	if title := core.CleanString(ug.Title); title != "" {
		ug.Title = title
	} else {
		ug.Title = orig.Title
	}

	ug.GradedAt = core.CleanString(ug.GradedAt)
	if ug.GradedAt == "" {
		ug.GradedAt = orig.GradedAt
	}

	if ug.Score == nil {
		score := orig.Score
		ug.Score = &score
	}
	if ug.Weight == nil {
		weight := orig.Weight
		ug.Weight = &weight
	}

	return core.Validate.Struct(ug)
}
