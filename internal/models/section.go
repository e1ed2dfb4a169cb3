package models

// Section is one offered instance of a course as returned by the solver.
// Field names follow the solver's wire contract.
type Section struct {
	Codigo    string   `json:"codigo"`
	Nombre    string   `json:"nombre"`
	Profesor  string   `json:"profesor"`
	Horario   []string `json:"horario"`
	Seccion   string   `json:"seccion"`
	CodigoBox string   `json:"codigo_box,omitempty"`
}

// Identified reports whether the section carries at least a code or a name.
// Sections with neither are excluded from block generation.
func (s Section) Identified() bool {
	return s.Codigo != "" || s.Nombre != ""
}

// ScheduleBlock places a section into one weekly grid cell. Blocks are
// derived from schedule strings on every decode and never persisted.
type ScheduleBlock struct {
	Day        string   `json:"day"`
	TimeSlotID int      `json:"timeSlotId"`
	Section    *Section `json:"section"`
}

// Timetable is the decoded, renderable form of one solver solution.
type Timetable struct {
	Score    float64         `json:"totalScore"`
	Sections []Section       `json:"sections"`
	Blocks   []ScheduleBlock `json:"blocks"`
}

// BlockAt returns the first block occupying the given grid cell. Overlapping
// assignments are not detected; whichever block was decoded first wins.
func (t *Timetable) BlockAt(day string, timeSlotID int) (*ScheduleBlock, bool) {
	for i := range t.Blocks {
		if t.Blocks[i].Day == day && t.Blocks[i].TimeSlotID == timeSlotID {
			return &t.Blocks[i], true
		}
	}
	return nil, false
}
