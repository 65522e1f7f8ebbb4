package inmemdb

import (
	"testing"

	"github.com/mereles/agenda/core/subject"
)

func newSubject(id, owner, level, name string) subject.Subject {
	return subject.Subject{ID: id, OwnerID: owner, AcademicLevel: level, Name: name}
}

func TestSubjectRepository(t *testing.T) {
	db, _ := Open()
	repo := NewSubjectRepository(db)

	for _, sub := range []subject.Subject{
		newSubject("a", "o1", "1º ESO", "Mathematics"),
		newSubject("b", "o1", "1º ESO", "History"),
		newSubject("c", "o1", "2º ESO", "Biology"),
		newSubject("d", "o2", "1º ESO", "Chemistry"),
	} {
		if _, err := repo.CreateSubject(sub); err != nil {
			t.Fatalf("CreateSubject() failed: %v", err)
		}
	}

	t.Run("query scopes by owner and level in insertion order", func(t *testing.T) {
		subs, err := repo.QueryAllSubjects("o1", "1º ESO")
		if err != nil {
			t.Fatalf("QueryAllSubjects() failed: %v", err)
		}
		if len(subs) != 2 || subs[0].ID != "a" || subs[1].ID != "b" {
			t.Errorf("subs = %+v, want a then b", subs)
		}
	})

	t.Run("get checks ownership", func(t *testing.T) {
		if _, err := repo.GetSubjectByID("a", "o1"); err != nil {
			t.Errorf("GetSubjectByID() failed: %v", err)
		}
		if _, err := repo.GetSubjectByID("a", "o2"); err != subject.ErrNotFound {
			t.Errorf("error = %v, want ErrNotFound for foreign owner", err)
		}
		if _, err := repo.GetSubjectByID("nope", "o1"); err != subject.ErrNotFound {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})

	t.Run("update checks ownership", func(t *testing.T) {
		sub := newSubject("a", "o1", "1º ESO", "Mathematics II")
		if _, err := repo.UpdateSubject(sub); err != nil {
			t.Fatalf("UpdateSubject() failed: %v", err)
		}
		got, _ := repo.GetSubjectByID("a", "o1")
		if got.Name != "Mathematics II" {
			t.Errorf("Name = %q, want Mathematics II", got.Name)
		}

		foreign := newSubject("d", "o1", "1º ESO", "Hijacked")
		if _, err := repo.UpdateSubject(foreign); err != subject.ErrNotFound {
			t.Errorf("error = %v, want ErrNotFound for foreign owner", err)
		}
	})

	t.Run("multi-delete skips foreign and unknown ids", func(t *testing.T) {
		if err := repo.DeleteSubjectsByID("o1", "a", "d", "nope"); err != nil {
			t.Fatalf("DeleteSubjectsByID() failed: %v", err)
		}
		if _, err := repo.GetSubjectByID("a", "o1"); err != subject.ErrNotFound {
			t.Errorf("subject a should be gone, got err %v", err)
		}
		if _, err := repo.GetSubjectByID("d", "o2"); err != nil {
			t.Errorf("foreign subject d should survive, got err %v", err)
		}
	})
}
