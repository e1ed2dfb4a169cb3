package dto

import "github.com/udp-horarios/horarios-api/internal/models"

// GenerateScheduleRequest is the API payload that kicks off a solve.
type GenerateScheduleRequest struct {
	Email             string                 `json:"email" validate:"required,email"`
	ApprovedCourseIDs []int                  `json:"approvedCourseIds"`
	Preferences       models.UserPreferences `json:"preferences"`
	Malla             string                 `json:"malla"`
	Sheet             string                 `json:"sheet"`
}

// GenerateScheduleResponse carries the decoded candidate timetables.
type GenerateScheduleResponse struct {
	RequestID        string             `json:"requestId"`
	DocumentosLeidos int                `json:"documentosLeidos"`
	SolutionCount    int                `json:"solutionCount"`
	Solutions        []models.Timetable `json:"solutions"`
	Cached           bool               `json:"cached"`
}

// CompileScheduleRequest previews the compiled solver request without
// contacting the solver.
type CompileScheduleRequest struct {
	Email             string                 `json:"email" validate:"required,email"`
	ApprovedCourseIDs []int                  `json:"approvedCourseIds"`
	Preferences       models.UserPreferences `json:"preferences"`
	Malla             string                 `json:"malla"`
	Sheet             string                 `json:"sheet"`
}

// DecodeScheduleRequest re-decodes a raw solver response into grids.
type DecodeScheduleRequest struct {
	Soluciones []Solution `json:"soluciones" validate:"required"`
}

// ExportScheduleRequest renders one solution as a document.
type ExportScheduleRequest struct {
	Format   string   `json:"format" validate:"required,oneof=csv pdf"`
	Solution Solution `json:"solution"`
}

// DatafilesResponse lists curriculum workbooks known to the solver.
type DatafilesResponse struct {
	Mallas      []string `json:"mallas"`
	Ofertas     []string `json:"ofertas"`
	Porcentajes []string `json:"porcentajes"`
}
