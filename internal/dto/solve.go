package dto

import (
	"bytes"
	"encoding/json"

	"github.com/udp-horarios/horarios-api/internal/models"
)

// SolveRequest is the JSON body sent to the solver. Field names follow the
// solver's Spanish wire contract.
type SolveRequest struct {
	Email               string       `json:"email"`
	RamosPasados        []string     `json:"ramos_pasados"`
	RamosPrioritarios   []string     `json:"ramos_prioritarios"`
	HorariosPreferidos  []string     `json:"horarios_preferidos"`
	HorariosProhibidos  []string     `json:"horarios_prohibidos,omitempty"`
	Malla               string       `json:"malla"`
	Sheet               string       `json:"sheet,omitempty"`
	StudentRanking      float64      `json:"student_ranking"`
	Filtros             *UserFilters `json:"filtros,omitempty"`
}

// UserFilters groups the optional solver filter sections. A section that is
// not triggered is omitted entirely, never emitted with habilitado=false.
type UserFilters struct {
	DiasHorariosLibres      *FreeDaysFilter  `json:"dias_horarios_libres,omitempty"`
	VentanaEntreActividades *GapFilter       `json:"ventana_entre_actividades,omitempty"`
	PreferenciasProfesores  *ProfessorFilter `json:"preferencias_profesores,omitempty"`
}

// Empty reports whether no filter section is present.
func (f *UserFilters) Empty() bool {
	return f == nil || (f.DiasHorariosLibres == nil && f.VentanaEntreActividades == nil && f.PreferenciasProfesores == nil)
}

// FreeDaysFilter asks the solver to keep given days or windows free.
type FreeDaysFilter struct {
	Habilitado           bool     `json:"habilitado"`
	DiasLibresPreferidos []string `json:"dias_libres_preferidos,omitempty"`
	MinimizarVentanas    bool     `json:"minimizar_ventanas"`
	VentanaIdealMinutos  int      `json:"ventana_ideal_minutos,omitempty"`
}

// GapFilter bounds the gap between consecutive activities.
type GapFilter struct {
	Habilitado         bool `json:"habilitado"`
	MinutosEntreClases int  `json:"minutos_entre_clases,omitempty"`
}

// ProfessorFilter steers section choice toward or away from professors.
type ProfessorFilter struct {
	Habilitado           bool     `json:"habilitado"`
	ProfesoresPreferidos []string `json:"profesores_preferidos"`
	ProfesoresEvitar     []string `json:"profesores_evitar"`
}

// SolveResponse is the solver's reply. Zero soluciones is a valid outcome,
// distinct from a transport failure.
type SolveResponse struct {
	DocumentosLeidos int        `json:"documentos_leidos"`
	SolucionesCount  int        `json:"soluciones_count"`
	Soluciones       []Solution `json:"soluciones"`
}

// Solution is one ranked candidate timetable.
type Solution struct {
	TotalScore float64        `json:"total_score"`
	Secciones  []SectionEntry `json:"secciones"`
}

// SectionEntry is the polymorphic element of a solution's section list: the
// solver emits either a bare section or a {prioridad, seccion} wrapper. The
// variant is resolved once here, at the decode boundary; consumers only ever
// see the unwrapped section.
type SectionEntry struct {
	Prioridad *float64
	Section   models.Section
}

type sectionWrapper struct {
	Prioridad *float64       `json:"prioridad"`
	Seccion   models.Section `json:"seccion"`
}

// UnmarshalJSON accepts both encodings. A bare section carries its section
// label under "seccion" as a string, while the wrapper nests an object
// there, which disambiguates the two shapes.
func (e *SectionEntry) UnmarshalJSON(data []byte) error {
	var probe struct {
		Seccion json.RawMessage `json:"seccion"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}

	if isJSONObject(probe.Seccion) {
		var wrapped sectionWrapper
		if err := json.Unmarshal(data, &wrapped); err != nil {
			return err
		}
		e.Prioridad = wrapped.Prioridad
		e.Section = wrapped.Seccion
		return nil
	}

	e.Prioridad = nil
	return json.Unmarshal(data, &e.Section)
}

// MarshalJSON re-emits the original shape so cached responses round-trip.
func (e SectionEntry) MarshalJSON() ([]byte, error) {
	if e.Prioridad != nil {
		return json.Marshal(sectionWrapper{Prioridad: e.Prioridad, Seccion: e.Section})
	}
	return json.Marshal(e.Section)
}

func isJSONObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}
