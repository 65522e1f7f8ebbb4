package timetable

import (
	"testing"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/mereles/agenda/core/subject"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func weeklyEntry(id, subjectID string, day int, start, end string) Entry {
	return Entry{
		ID:        id,
		SubjectID: null.NewString(subjectID, subjectID != ""),
		Weekday:   day,
		StartTime: start,
		EndTime:   end,
	}
}

func datedEntry(id, subjectID, dt string, day int, start, end string) Entry {
	e := weeklyEntry(id, subjectID, day, start, end)
	e.Date = null.StringFrom(dt)
	return e
}

func TestNormalizeClock(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		want   string
		wantOk bool
	}{
		{name: "already normalized", in: "08:30", want: "08:30", wantOk: true},
		{name: "single digit hour", in: "8:30", want: "08:30", wantOk: true},
		{name: "trailing seconds", in: "08:30:15", want: "08:30", wantOk: true},
		{name: "midnight", in: "0:00", want: "00:00", wantOk: true},
		{name: "no colon", in: "0830"},
		{name: "empty", in: ""},
		{name: "hour out of range", in: "24:00"},
		{name: "minute out of range", in: "10:60"},
		{name: "garbage", in: "ab:cd"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeClock(tt.in)
			if ok != tt.wantOk {
				t.Fatalf("NormalizeClock(%q) ok = %v, want %v", tt.in, ok, tt.wantOk)
			}
			if got != tt.want {
				t.Errorf("NormalizeClock(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestMonday(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{name: "monday maps to itself", in: date(2025, time.September, 1), want: date(2025, time.September, 1)},
		{name: "wednesday", in: date(2025, time.September, 3), want: date(2025, time.September, 1)},
		{name: "saturday", in: date(2025, time.September, 6), want: date(2025, time.September, 1)},
		{name: "sunday maps to previous monday", in: date(2025, time.September, 7), want: date(2025, time.September, 1)},
		{name: "time of day is dropped", in: time.Date(2025, time.September, 3, 17, 45, 12, 0, time.UTC), want: date(2025, time.September, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Monday(tt.in); !got.Equal(tt.want) {
				t.Errorf("Monday() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWeekdayIndex(t *testing.T) {
	tests := []struct {
		in   time.Time
		want int
	}{
		{in: date(2025, time.September, 1), want: 0}, // Monday
		{in: date(2025, time.September, 5), want: 4}, // Friday
		{in: date(2025, time.September, 7), want: 6}, // Sunday
	}
	for _, tt := range tests {
		if got := WeekdayIndex(tt.in); got != tt.want {
			t.Errorf("WeekdayIndex(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestSlotAxis(t *testing.T) {
	t.Run("no entries keeps the base hourly axis", func(t *testing.T) {
		axis := SlotAxis(nil)
		if len(axis) != 17 {
			t.Fatalf("len(axis) = %d, want 17", len(axis))
		}
		if axis[0] != "07:00" || axis[len(axis)-1] != "23:00" {
			t.Errorf("axis bounds = %q..%q, want 07:00..23:00", axis[0], axis[len(axis)-1])
		}
	})

	t.Run("off-hour start widens the axis in order", func(t *testing.T) {
		entries := []Entry{
			weeklyEntry("e1", "s1", 0, "10:30", "11:30"),
			weeklyEntry("e2", "s1", 1, "08:00", "09:00"), // dup of base slot
		}
		axis := SlotAxis(entries)
		if len(axis) != 18 {
			t.Fatalf("len(axis) = %d, want 18", len(axis))
		}
		var pos int
		for i, slot := range axis {
			if slot == "10:30" {
				pos = i
			}
		}
		if axis[pos-1] != "10:00" || axis[pos+1] != "11:00" {
			t.Errorf("10:30 sorted between %q and %q, want 10:00 and 11:00", axis[pos-1], axis[pos+1])
		}
	})

	t.Run("unparseable and empty times do not widen the axis", func(t *testing.T) {
		entries := []Entry{
			weeklyEntry("e1", "s1", 0, "garbage", "11:30"),
			weeklyEntry("e2", "s1", 1, "", "09:00"),
		}
		if axis := SlotAxis(entries); len(axis) != 17 {
			t.Errorf("len(axis) = %d, want 17", len(axis))
		}
	})
}

func TestResolveWeek(t *testing.T) {
	subjects := map[string]subject.Subject{
		"math": {ID: "math", Name: "Mathematics", Color: "#ff0000", Room: null.StringFrom("B-12")},
		"hist": {ID: "hist", Name: "History", Color: "#00ff00"},
	}
	monday := date(2025, time.September, 1)

	t.Run("recurring entry fills its weekday cell", func(t *testing.T) {
		week := ResolveWeek(monday, []Entry{weeklyEntry("e1", "math", 2, "09:00", "10:00")}, subjects)

		if week.Start != "2025-09-01" {
			t.Errorf("week.Start = %q, want 2025-09-01", week.Start)
		}
		if week.Dates != [5]string{"2025-09-01", "2025-09-02", "2025-09-03", "2025-09-04", "2025-09-05"} {
			t.Errorf("week.Dates = %v", week.Dates)
		}

		cell := week.Cell(2, "09:00")
		if cell == nil {
			t.Fatal("expected occupant at (wednesday, 09:00)")
		}
		if cell.Label != "Mathematics" || cell.Color != "#ff0000" {
			t.Errorf("cell = %q/%q, want Mathematics/#ff0000", cell.Label, cell.Color)
		}
		if cell.Room != "B-12" {
			t.Errorf("cell.Room = %q, want subject room fallback B-12", cell.Room)
		}
		for day := 0; day < 5; day++ {
			if day != 2 && week.Cell(day, "09:00") != nil {
				t.Errorf("unexpected occupant on day %d", day)
			}
		}
	})

	t.Run("dated override beats recurring on the same cell", func(t *testing.T) {
		entries := []Entry{
			weeklyEntry("weekly", "math", 0, "09:00", "10:00"),
			datedEntry("dated", "hist", "2025-09-01", 0, "09:00", "10:00"),
		}
		week := ResolveWeek(monday, entries, subjects)

		cell := week.Cell(0, "09:00")
		if cell == nil {
			t.Fatal("expected occupant at (monday, 09:00)")
		}
		if cell.Entry.ID != "dated" {
			t.Errorf("occupant = %q, want dated", cell.Entry.ID)
		}
	})

	t.Run("dated entry from another week is ignored", func(t *testing.T) {
		entries := []Entry{
			weeklyEntry("weekly", "math", 0, "09:00", "10:00"),
			datedEntry("dated", "hist", "2025-09-08", 0, "09:00", "10:00"),
		}
		week := ResolveWeek(monday, entries, subjects)

		if cell := week.Cell(0, "09:00"); cell == nil || cell.Entry.ID != "weekly" {
			t.Fatalf("occupant = %+v, want weekly", cell)
		}
		// its start time still contributes to the axis
		found := false
		for _, slot := range week.Slots {
			if slot == "09:00" {
				found = true
			}
		}
		if !found {
			t.Error("expected 09:00 on the axis")
		}
	})

	t.Run("same-kind collision resolves to first in input order", func(t *testing.T) {
		entries := []Entry{
			weeklyEntry("first", "math", 0, "09:00", "10:00"),
			weeklyEntry("second", "hist", 0, "09:00", "10:00"),
		}
		week := ResolveWeek(monday, entries, subjects)

		if cell := week.Cell(0, "09:00"); cell == nil || cell.Entry.ID != "first" {
			t.Fatalf("occupant = %+v, want first", cell)
		}
	})

	t.Run("any date inside the week resolves the same grid", func(t *testing.T) {
		entries := []Entry{weeklyEntry("e1", "math", 0, "09:00", "10:00")}
		fromWednesday := ResolveWeek(date(2025, time.September, 3), entries, subjects)
		if fromWednesday.Start != "2025-09-01" {
			t.Errorf("week.Start = %q, want 2025-09-01", fromWednesday.Start)
		}
		// Sunday belongs to the week started the previous Monday
		fromSunday := ResolveWeek(date(2025, time.September, 7), entries, subjects)
		if fromSunday.Start != "2025-09-01" {
			t.Errorf("week.Start = %q, want 2025-09-01", fromSunday.Start)
		}
	})

	t.Run("orphaned subject falls back to custom name then placeholder", func(t *testing.T) {
		orphan := weeklyEntry("orphan", "gone", 0, "09:00", "10:00")
		named := weeklyEntry("named", "gone", 1, "09:00", "10:00")
		named.CustomName = null.StringFrom("Tutoría")

		week := ResolveWeek(monday, []Entry{orphan, named}, subjects)

		cell := week.Cell(0, "09:00")
		if cell == nil || cell.Label != PlaceholderLabel || cell.Color != subject.DefaultColor {
			t.Errorf("orphan cell = %+v, want placeholder label and default color", cell)
		}
		if cell := week.Cell(1, "09:00"); cell == nil || cell.Label != "Tutoría" {
			t.Errorf("named cell = %+v, want custom name label", cell)
		}
	})

	t.Run("unparseable start collapses onto the midnight slot", func(t *testing.T) {
		week := ResolveWeek(monday, []Entry{weeklyEntry("e1", "math", 0, "garbage", "10:00")}, subjects)

		if week.Slots[0] != "07:00" {
			t.Fatalf("axis should not grow, got first slot %q", week.Slots[0])
		}
		if cell := week.Cell(0, "00:00"); cell != nil {
			t.Error("midnight slot is off-axis and must stay unreachable")
		}
	})

	t.Run("empty input yields a fully free grid", func(t *testing.T) {
		week := ResolveWeek(monday, nil, subjects)
		if len(week.Rows) != 17 {
			t.Fatalf("len(week.Rows) = %d, want 17", len(week.Rows))
		}
		for _, row := range week.Rows {
			for day, cell := range row.Cells {
				if cell != nil {
					t.Errorf("unexpected occupant at (%d, %s)", day, row.Slot)
				}
			}
		}
	})
}

func TestEntriesForDate(t *testing.T) {
	entries := []Entry{
		weeklyEntry("late", "math", 0, "15:00", "16:00"),
		weeklyEntry("early", "hist", 0, "08:00", "09:00"),
		datedEntry("pinned", "math", "2025-09-01", 0, "10:00", "11:00"),
		datedEntry("other-day", "math", "2025-09-02", 1, "10:00", "11:00"),
		weeklyEntry("tuesday", "math", 1, "08:00", "09:00"),
	}

	got := EntriesForDate(date(2025, time.September, 1), entries)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	for i, id := range []string{"early", "pinned", "late"} {
		if got[i].ID != id {
			t.Errorf("got[%d].ID = %q, want %q", i, got[i].ID, id)
		}
	}
}
