package models

import "fmt"

// OptimizationFlag is one user-selectable schedule optimization toggle.
type OptimizationFlag string

const (
	OptMinimizeGaps     OptimizationFlag = "minimize-gaps"
	OptMorningClasses   OptimizationFlag = "morning-classes"
	OptAfternoonClasses OptimizationFlag = "afternoon-classes"
	OptCompactDays      OptimizationFlag = "compact-days"
	OptSpreadDays       OptimizationFlag = "spread-days"
	OptNoFridays        OptimizationFlag = "no-fridays"
)

var knownFlags = map[OptimizationFlag]struct{}{
	OptMinimizeGaps:     {},
	OptMorningClasses:   {},
	OptAfternoonClasses: {},
	OptCompactDays:      {},
	OptSpreadDays:       {},
	OptNoFridays:        {},
}

// Valid reports whether the flag belongs to the fixed enumeration.
func (f OptimizationFlag) Valid() bool {
	_, ok := knownFlags[f]
	return ok
}

// BlockedTimeSlot marks one grid cell the student cannot attend. The id is
// derived from day code and slot id and doubles as the dedupe key.
type BlockedTimeSlot struct {
	ID         string `json:"id"`
	Day        string `json:"day"`
	TimeSlotID int    `json:"timeSlotId"`
	Reason     string `json:"reason,omitempty"`
}

// BlockedSlotID derives the canonical id for a (day, slot) pair.
func BlockedSlotID(day string, timeSlotID int) string {
	return fmt.Sprintf("%s-%d", day, timeSlotID)
}

// ProfessorPreference ties a preferred professor to a course.
type ProfessorPreference struct {
	CourseID    int    `json:"courseId"`
	ProfessorID string `json:"professorId"`
}

// UserPreferences aggregates everything the student configured before
// requesting schedules.
type UserPreferences struct {
	ProfessorPreferences []ProfessorPreference `json:"professorPreferences"`
	PreferredProfessors  []string              `json:"preferredProfessors"`
	AvoidedProfessors    []string              `json:"avoidedProfessors"`
	BlockedTimeSlots     []BlockedTimeSlot     `json:"blockedTimeSlots"`
	Optimizations        []OptimizationFlag    `json:"optimizations"`
	StudentRanking       *float64              `json:"studentRanking,omitempty"`
	PriorityCourses      []string              `json:"priorityCourses"`
}

const defaultStudentRanking = 0.5

// Ranking returns the student ranking, defaulting to 0.5 when absent.
func (p UserPreferences) Ranking() float64 {
	if p.StudentRanking == nil {
		return defaultStudentRanking
	}
	return *p.StudentRanking
}

// HasFlag reports whether the optimization set contains the flag.
func (p UserPreferences) HasFlag(flag OptimizationFlag) bool {
	for _, f := range p.Optimizations {
		if f == flag {
			return true
		}
	}
	return false
}

// Normalized returns a copy with duplicate blocked slots and optimization
// flags collapsed. The receiver is never mutated.
func (p UserPreferences) Normalized() UserPreferences {
	out := p

	seenSlots := make(map[string]struct{}, len(p.BlockedTimeSlots))
	out.BlockedTimeSlots = make([]BlockedTimeSlot, 0, len(p.BlockedTimeSlots))
	for _, blocked := range p.BlockedTimeSlots {
		key := blocked.ID
		if key == "" {
			key = BlockedSlotID(blocked.Day, blocked.TimeSlotID)
		}
		if _, ok := seenSlots[key]; ok {
			continue
		}
		seenSlots[key] = struct{}{}
		blocked.ID = key
		out.BlockedTimeSlots = append(out.BlockedTimeSlots, blocked)
	}

	seenFlags := make(map[OptimizationFlag]struct{}, len(p.Optimizations))
	out.Optimizations = make([]OptimizationFlag, 0, len(p.Optimizations))
	for _, flag := range p.Optimizations {
		if _, ok := seenFlags[flag]; ok {
			continue
		}
		seenFlags[flag] = struct{}{}
		out.Optimizations = append(out.Optimizations, flag)
	}

	return out
}
