package subject

import (
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/mereles/agenda/core"
)

// DefaultColor is used when a subject has no color token of its own.
const DefaultColor = "#6366f1"

type Subject struct {
	ID            string      `json:"id"`
	OwnerID       string      `json:"-"`
	AcademicLevel string      `json:"academic_level"`
	Name          string      `json:"name"`
	Color         string      `json:"color"`
	TeacherName   null.String `json:"teacher_name"`
	Room          null.String `json:"room"`
	CreatedAt     time.Time   `json:"created_at"` // UTC
}

// Lookup indexes subjects by ID for occupant resolution and grade grouping.
func Lookup(subjects []Subject) map[string]Subject {
	m := make(map[string]Subject, len(subjects))
	for _, s := range subjects {
		m[s.ID] = s
	}
	return m
}

// NewSubject contains information needed to create a new Subject.
type NewSubject struct {
	Name        string `json:"name" validate:"required"`
	Color       string `json:"color" validate:"omitempty,hexcolor"`
	TeacherName string `json:"teacher_name"`
	Room        string `json:"room"`
}

func (ns *NewSubject) Validate() error {
	ns.Name = core.CleanString(ns.Name)
	ns.Color = core.CleanString(ns.Color, true /* lower */)
	ns.TeacherName = core.CleanString(ns.TeacherName)
	ns.Room = core.CleanString(ns.Room)
	return core.Validate.Struct(ns)
}

// UpdateSubject defines what information may be provided to modify an existing Subject.
// Empty fields fall back to the original values.
type UpdateSubject struct {
	Name        string `json:"name"`
	Color       string `json:"color" validate:"omitempty,hexcolor"`
	TeacherName string `json:"teacher_name"`
	Room        string `json:"room"`
}

func (us *UpdateSubject) Validate(orig Subject) error {
	if name := core.CleanString(us.Name); name != "" {
		us.Name = name
	} else {
		us.Name = orig.Name
	}

	if color := core.CleanString(us.Color, true /* lower */); color != "" {
		us.Color = color
	} else {
		us.Color = orig.Color
	}

	if teacher := core.CleanString(us.TeacherName); teacher != "" {
		us.TeacherName = teacher
	} else {
		us.TeacherName = orig.TeacherName.String
	}

	if room := core.CleanString(us.Room); room != "" {
		us.Room = room
	} else {
		us.Room = orig.Room.String
	}

	return core.Validate.Struct(us)
}
