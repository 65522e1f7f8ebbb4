package grade

import (
	"errors"
	"math"
	"sort"

	"github.com/mereles/agenda/core"
	"github.com/mereles/agenda/core/subject"
)

// SubjectAverage groups one subject's grades with their weighted average.
type SubjectAverage struct {
	Subject subject.Subject `json:"subject"`
	Grades  []Grade         `json:"grades"`
	Average float64         `json:"average"`
}

// round2 rounds half-up to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// effectiveWeight falls back to 1.0 for an absent or non-numeric weight.
// Out-of-range values are kept as-is; the average reflects its input.
func effectiveWeight(g Grade) float64 {
	if g.Weight == 0 || math.IsNaN(g.Weight) {
		return 1.0
	}
	return g.Weight
}

// WeightedAverage computes round2(Σ(score×weight) / Σweight) over the given
// grades. An empty set or an all-zero weight sum yields 0 rather than a
// division fault. Scores are not clamped.
func WeightedAverage(grades []Grade) float64 {
	if len(grades) == 0 {
		return 0
	}
	var totalWeight float64
	for _, g := range grades {
		totalWeight += effectiveWeight(g)
	}
	if totalWeight == 0 {
		return 0
	}
	var weightedSum float64
	for _, g := range grades {
		weightedSum += g.Score * effectiveWeight(g)
	}
	return round2(weightedSum / totalWeight)
}

// AveragesBySubject groups grades per subject, newest first, and averages
// each group. Subjects without grades are omitted; input subject order is
// preserved. Grades referencing unknown subjects are left out entirely.
func AveragesBySubject(grades []Grade, subjects []subject.Subject) []SubjectAverage {
	result := make([]SubjectAverage, 0, len(subjects))
	for _, sub := range subjects {
		var subGrades []Grade
		for _, g := range grades {
			if g.SubjectID == sub.ID {
				subGrades = append(subGrades, g)
			}
		}
		if len(subGrades) == 0 {
			continue
		}
		sort.SliceStable(subGrades, func(i, j int) bool {
			return subGrades[i].GradedAt > subGrades[j].GradedAt
		})
		result = append(result, SubjectAverage{
			Subject: sub,
			Grades:  subGrades,
			Average: WeightedAverage(subGrades),
		})
	}
	return result
}

// OverallAverage averages the full unfiltered grade collection; a subject
// with more grades proportionally contributes more weight.
func OverallAverage(grades []Grade) float64 {
	return WeightedAverage(grades)
}

// Outcome classifies a required final score for display. The classification
// is interpretive only; the computed value is never altered.
type Outcome string

const (
	OutcomeAttainable  Outcome = "attainable"
	OutcomeUnreachable Outcome = "unreachable"
	OutcomeSecured     Outcome = "secured"
)

var errTargetInput = errors.New("invalid target computation input")

// TargetInput carries the arguments of the required-final-score solver.
type TargetInput struct {
	CurrentAverage     float64 `json:"current_average" validate:"min=0,max=10"`
	FinalWeightPercent float64 `json:"final_weight_percent" validate:"gt=0,lte=100"`
	TargetAverage      float64 `json:"target_average" validate:"min=0,max=10"`
}

func (ti *TargetInput) Validate() error {
	return core.Validate.Struct(ti)
}

// RequiredFinalScore solves for the score needed on a final assessment worth
// finalWeightPercent of the total so that the weighted result reaches target.
// The raw value is returned unclamped; see ClassifyRequired.
func RequiredFinalScore(current, finalWeightPercent, target float64) float64 {
	w := finalWeightPercent / 100
	return (target - current*(1-w)) / w
}

func ClassifyRequired(required float64) Outcome {
	switch {
	case required > MaxScore:
		return OutcomeUnreachable
	case required <= 0:
		return OutcomeSecured
	default:
		return OutcomeAttainable
	}
}
