package subject

import (
	"testing"

	"github.com/volatiletech/null/v8"
)

func TestNewSubjectValidate(t *testing.T) {
	tests := []struct {
		name    string
		in      NewSubject
		wantErr bool
	}{
		{name: "valid", in: NewSubject{Name: "Mathematics", Color: "#FF0000"}},
		{name: "color is optional", in: NewSubject{Name: "Mathematics"}},
		{name: "name is required", in: NewSubject{Color: "#ff0000"}, wantErr: true},
		{name: "whitespace name is empty", in: NewSubject{Name: "   "}, wantErr: true},
		{name: "bad color token", in: NewSubject{Name: "Mathematics", Color: "red"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.in.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewSubjectValidate_normalization(t *testing.T) {
	ns := NewSubject{Name: "  Mathematics ", Color: "#FF0000", TeacherName: " Ada Lovelace "}
	if err := ns.Validate(); err != nil {
		t.Fatalf("Validate() unexpected error = %v", err)
	}
	if ns.Name != "Mathematics" {
		t.Errorf("Name = %q, want trimmed", ns.Name)
	}
	if ns.Color != "#ff0000" {
		t.Errorf("Color = %q, want lowercased", ns.Color)
	}
	if ns.TeacherName != "Ada Lovelace" {
		t.Errorf("TeacherName = %q, want cleaned", ns.TeacherName)
	}
}

func TestUpdateSubjectValidate(t *testing.T) {
	orig := Subject{
		ID:      "s1",
		Name:    "Mathematics",
		Color:   "#ff0000",
		Room:    null.StringFrom("B-12"),
	}

	us := UpdateSubject{TeacherName: "Ada Lovelace"}
	if err := us.Validate(orig); err != nil {
		t.Fatalf("Validate() unexpected error = %v", err)
	}
	if us.Name != "Mathematics" || us.Color != "#ff0000" || us.Room != "B-12" {
		t.Errorf("fallbacks not applied: %+v", us)
	}
	if us.TeacherName != "Ada Lovelace" {
		t.Errorf("TeacherName = %q, want Ada Lovelace", us.TeacherName)
	}
}

func TestLookup(t *testing.T) {
	subs := []Subject{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}}
	m := Lookup(subs)
	if len(m) != 2 || m["a"].Name != "A" || m["b"].Name != "B" {
		t.Errorf("Lookup() = %v", m)
	}
}
