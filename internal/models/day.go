package models

import "sort"

// Day codes as emitted by the solver and by the preference UI.
const (
	DayMonday    = "LU"
	DayTuesday   = "MA"
	DayWednesday = "MI"
	DayThursday  = "JU"
	DayFriday    = "VI"
)

// dayNames maps the five weekday codes to their display names. Codes outside
// this map (SA, DO) are still recognized as day tokens but pass through
// unmapped.
var dayNames = map[string]string{
	DayMonday:    "Lunes",
	DayTuesday:   "Martes",
	DayWednesday: "Miércoles",
	DayThursday:  "Jueves",
	DayFriday:    "Viernes",
}

var dayCodes = map[string]string{
	"Lunes":     DayMonday,
	"Martes":    DayTuesday,
	"Miércoles": DayWednesday,
	"Jueves":    DayThursday,
	"Viernes":   DayFriday,
}

// dayTokens is the closed set of codes accepted while scanning schedule
// strings. Saturday and Sunday are valid tokens even though the weekly grid
// only shows Monday through Friday.
var dayTokens = map[string]struct{}{
	DayMonday:    {},
	DayTuesday:   {},
	DayWednesday: {},
	DayThursday:  {},
	DayFriday:    {},
	"SA":         {},
	"DO":         {},
}

// WeekdayCodes returns the five weekday codes in grid order.
func WeekdayCodes() []string {
	return []string{DayMonday, DayTuesday, DayWednesday, DayThursday, DayFriday}
}

// WeekdayNames returns the five weekday display names in grid order.
func WeekdayNames() []string {
	return []string{"Lunes", "Martes", "Miércoles", "Jueves", "Viernes"}
}

// DayName resolves a day code to its display name. Unmapped codes are
// returned unchanged.
func DayName(code string) string {
	if name, ok := dayNames[code]; ok {
		return name
	}
	return code
}

// DayCode resolves a weekday display name back to its code.
func DayCode(name string) (string, bool) {
	code, ok := dayCodes[name]
	return code, ok
}

// IsDayToken reports whether a schedule-string token is a recognized day
// code. Membership is checked against the closed set, not just token length.
func IsDayToken(token string) bool {
	if len(token) != 2 {
		return false
	}
	_, ok := dayTokens[token]
	return ok
}

// SortDayCodes sorts day codes lexically in place and returns the slice.
func SortDayCodes(codes []string) []string {
	sort.Strings(codes)
	return codes
}
