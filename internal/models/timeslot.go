package models

import "strings"

// TimeSlot is one of the nine fixed daily teaching blocks of the
// institutional timetable.
type TimeSlot struct {
	ID    int    `json:"id"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// timeSlots is the authoritative slot catalog, ordered by id, no overlaps.
var timeSlots = []TimeSlot{
	{ID: 1, Start: "08:30", End: "09:50"},
	{ID: 2, Start: "10:00", End: "11:20"},
	{ID: 3, Start: "11:30", End: "12:50"},
	{ID: 4, Start: "13:00", End: "14:20"},
	{ID: 5, Start: "14:30", End: "15:50"},
	{ID: 6, Start: "16:00", End: "17:20"},
	{ID: 7, Start: "17:25", End: "18:45"},
	{ID: 8, Start: "18:50", End: "20:10"},
	{ID: 9, Start: "20:15", End: "21:35"},
}

// TimeSlots returns a copy of the slot catalog.
func TimeSlots() []TimeSlot {
	out := make([]TimeSlot, len(timeSlots))
	copy(out, timeSlots)
	return out
}

// SlotByID returns the catalog slot with the given id.
func SlotByID(id int) (TimeSlot, bool) {
	for _, slot := range timeSlots {
		if slot.ID == id {
			return slot, true
		}
	}
	return TimeSlot{}, false
}

// SlotByStart matches a clock time against a catalog slot start. Times are
// normalized by stripping the colon before comparing, so "8:30" never
// matches but "08:30" does.
func SlotByStart(start string) (TimeSlot, bool) {
	normalized := NormalizeClock(start)
	for _, slot := range timeSlots {
		if NormalizeClock(slot.Start) == normalized {
			return slot, true
		}
	}
	return TimeSlot{}, false
}

// NormalizeClock strips the colon from an HH:MM clock string.
func NormalizeClock(clock string) string {
	return strings.ReplaceAll(strings.TrimSpace(clock), ":", "")
}
