package timetable

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/mereles/agenda/core"

	"github.com/mereles/agenda/core/subject"
)

const (
	// base slot axis bounds, one slot per hour, both inclusive
	firstBaseHour = 7
	lastBaseHour  = 23

	// PlaceholderLabel is shown for an occupant with neither a resolvable
	// subject nor a custom name (e.g. an orphaned subject reference).
	PlaceholderLabel = "Evento"

	// fallback start time for entries with an unparseable clock value
	zeroClock = "00:00"
)

type (
	// Cell is the resolved occupant of one (weekday, slot) position.
	Cell struct {
		Entry Entry  `json:"entry"`
		Label string `json:"label"`
		Color string `json:"color"`
		Room  string `json:"room,omitempty"`
	}

	// Row is one time slot across the five weekdays. A nil cell is free.
	Row struct {
		Slot  string   `json:"slot"`
		Cells [5]*Cell `json:"cells"`
	}

	// Week is a fully resolved Monday..Friday grid.
	Week struct {
		Start string   `json:"week_start"`
		Dates [5]string `json:"dates"`
		Slots []string `json:"slots"`
		Rows  []Row    `json:"rows"`
	}
)

// Cell returns the occupant of the given (weekday, slot) position, or nil.
func (w Week) Cell(day int, slot string) *Cell {
	if day < 0 || day >= 5 {
		return nil
	}
	for _, row := range w.Rows {
		if row.Slot == slot {
			return row.Cells[day]
		}
	}
	return nil
}

// NormalizeClock reports the zero-padded HH:MM form of a wall-clock string,
// tolerating a single-digit hour and a trailing seconds part.
func NormalizeClock(s string) (string, bool) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 {
		return "", false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return "", false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return "", false
	}
	return fmt.Sprintf("%02d:%02d", h, m), true
}

// startSlot is the slot an entry competes for; unparseable times collapse
// onto the midnight slot rather than failing resolution.
func startSlot(e Entry) string {
	if t, ok := NormalizeClock(e.StartTime); ok {
		return t
	}
	return zeroClock
}

// BaseSlots returns the fixed on-the-hour axis, 07:00 through 23:00.
func BaseSlots() []string {
	slots := make([]string, 0, lastBaseHour-firstBaseHour+1)
	for h := firstBaseHour; h <= lastBaseHour; h++ {
		slots = append(slots, fmt.Sprintf("%02d:00", h))
	}
	return slots
}

// SlotAxis derives the time axis for a grid: the base hourly slots plus the
// exact start time of every entry, regardless of which week it belongs to.
// Zero-padded HH:MM sorts lexicographically in chronological order.
func SlotAxis(entries []Entry) []string {
	seen := make(map[string]struct{})
	axis := make([]string, 0, len(entries)+lastBaseHour-firstBaseHour+1)
	for _, slot := range BaseSlots() {
		seen[slot] = struct{}{}
		axis = append(axis, slot)
	}
	for _, e := range entries {
		if e.StartTime == "" {
			continue
		}
		t, ok := NormalizeClock(e.StartTime)
		if !ok {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		axis = append(axis, t)
	}
	sort.Strings(axis)
	return axis
}

// Monday returns the Monday on/before t at midnight; Sundays map to the
// previous Monday.
func Monday(t time.Time) time.Time {
	t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	wd := int(t.Weekday()) // Sunday=0
	diff := wd - 1
	if wd == 0 {
		diff = 6
	}
	return t.AddDate(0, 0, -diff)
}

// WeekdayIndex maps a date to the Monday=0..Sunday=6 index used by entries.
func WeekdayIndex(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 6
	}
	return wd - 1
}

// ResolveWeek computes the occupant of every cell of the Monday-aligned week
// starting at weekStart. Dated overrides beat recurring entries on the same
// cell; same-kind collisions resolve to the first entry in input order. The
// subjects map backs occupant labels and colors and may be missing entries'
// subject ids.
func ResolveWeek(weekStart time.Time, entries []Entry, subjects map[string]subject.Subject) Week {
	weekStart = Monday(weekStart)

	week := Week{
		Start: weekStart.Format(core.DateLayout),
		Slots: SlotAxis(entries),
	}
	for day := 0; day < 5; day++ {
		week.Dates[day] = weekStart.AddDate(0, 0, day).Format(core.DateLayout)
	}

	week.Rows = make([]Row, 0, len(week.Slots))
	for _, slot := range week.Slots {
		row := Row{Slot: slot}
		for day := 0; day < 5; day++ {
			if e, ok := occupant(slot, day, week.Dates[day], entries); ok {
				cell := newCell(e, subjects)
				row.Cells[day] = &cell
			}
		}
		week.Rows = append(week.Rows, row)
	}
	return week
}

// occupant picks the single entry occupying a cell, if any.
func occupant(slot string, day int, date string, entries []Entry) (Entry, bool) {
	var dated, recurring *Entry
	for i := range entries {
		e := &entries[i]
		if startSlot(*e) != slot {
			continue
		}
		switch e.Kind() {
		case DatedOverride:
			if e.Date.String == date && dated == nil {
				dated = e
			}
		case Weekly:
			if e.Weekday == day && recurring == nil {
				recurring = e
			}
		}
	}
	if dated != nil {
		return *dated, true
	}
	if recurring != nil {
		return *recurring, true
	}
	return Entry{}, false
}

// newCell derives the display label and color, tolerating orphaned subject
// references.
func newCell(e Entry, subjects map[string]subject.Subject) Cell {
	cell := Cell{
		Entry: e,
		Label: PlaceholderLabel,
		Color: subject.DefaultColor,
		Room:  e.Room.String,
	}
	if e.SubjectID.Valid {
		if sub, ok := subjects[e.SubjectID.String]; ok {
			cell.Label = sub.Name
			if sub.Color != "" {
				cell.Color = sub.Color
			}
			if cell.Room == "" {
				cell.Room = sub.Room.String
			}
			return cell
		}
	}
	if e.CustomName.String != "" {
		cell.Label = e.CustomName.String
	}
	return cell
}

// EntriesForDate lists the entries occurring on one concrete date: dated
// entries pinned to it plus recurring ones on its weekday, sorted by start
// time. Used for day views.
func EntriesForDate(date time.Time, entries []Entry) []Entry {
	dateStr := date.Format(core.DateLayout)
	day := WeekdayIndex(date)

	matches := make([]Entry, 0)
	for _, e := range entries {
		switch e.Kind() {
		case DatedOverride:
			if e.Date.String == dateStr {
				matches = append(matches, e)
			}
		case Weekly:
			if e.Weekday == day {
				matches = append(matches, e)
			}
		}
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return startSlot(matches[i]) < startSlot(matches[j])
	})
	return matches
}
