package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/udp-horarios/horarios-api/internal/dto"
	"github.com/udp-horarios/horarios-api/internal/models"
	"github.com/udp-horarios/horarios-api/internal/service"
	appErrors "github.com/udp-horarios/horarios-api/pkg/errors"
	"github.com/udp-horarios/horarios-api/pkg/response"
)

type scheduleGenerator interface {
	Generate(ctx context.Context, req dto.GenerateScheduleRequest) (*dto.GenerateScheduleResponse, error)
	Compile(ctx context.Context, req dto.CompileScheduleRequest) (*dto.SolveRequest, error)
	Decode(req dto.DecodeScheduleRequest) []models.Timetable
	Datafiles(ctx context.Context) (*dto.DatafilesResponse, error)
}

type scheduleExporter interface {
	Export(format string, timetable models.Timetable) (*service.ExportResult, error)
}

// ScheduleHandler exposes the schedule generation endpoints.
type ScheduleHandler struct {
	schedules scheduleGenerator
	decoder   *service.DecoderService
	exporter  scheduleExporter
}

// NewScheduleHandler constructs the handler.
func NewScheduleHandler(schedules *service.ScheduleService, decoder *service.DecoderService, exporter *service.ExportService) *ScheduleHandler {
	return &ScheduleHandler{schedules: schedules, decoder: decoder, exporter: exporter}
}

// Generate godoc
// @Summary Generate candidate timetables for a student
// @Description Compiles the student's preferences into a solver request, runs the solver and returns the decoded weekly grids.
// @Tags Schedules
// @Accept json
// @Produce json
// @Param payload body dto.GenerateScheduleRequest true "Generate payload"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /schedules/generate [post]
func (h *ScheduleHandler) Generate(c *gin.Context) {
	var req dto.GenerateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid generate payload"))
		return
	}
	result, err := h.schedules.Generate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Compile godoc
// @Summary Preview the compiled solver request
// @Description Returns the solver payload that Generate would send, without contacting the solver.
// @Tags Schedules
// @Accept json
// @Produce json
// @Param payload body dto.CompileScheduleRequest true "Compile payload"
// @Success 200 {object} response.Envelope
// @Router /schedules/compile [post]
func (h *ScheduleHandler) Compile(c *gin.Context) {
	var req dto.CompileScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid compile payload"))
		return
	}
	result, err := h.schedules.Compile(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Decode godoc
// @Summary Decode raw solver solutions into weekly grids
// @Tags Schedules
// @Accept json
// @Produce json
// @Param payload body dto.DecodeScheduleRequest true "Decode payload"
// @Success 200 {object} response.Envelope
// @Router /schedules/decode [post]
func (h *ScheduleHandler) Decode(c *gin.Context) {
	var req dto.DecodeScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid decode payload"))
		return
	}
	timetables := h.schedules.Decode(req)
	response.JSON(c, http.StatusOK, timetables, nil)
}

// Export godoc
// @Summary Export one solution as CSV or PDF
// @Tags Schedules
// @Accept json
// @Produce text/csv
// @Produce application/pdf
// @Param payload body dto.ExportScheduleRequest true "Export payload"
// @Success 200 {file} binary
// @Router /schedules/export [post]
func (h *ScheduleHandler) Export(c *gin.Context) {
	var req dto.ExportScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid export payload"))
		return
	}
	timetable := h.decoder.Decode(req.Solution)
	result, err := h.exporter.Export(req.Format, timetable)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Data(http.StatusOK, result.ContentType, result.Content)
}

// Datafiles godoc
// @Summary List curriculum workbooks known to the solver
// @Tags Schedules
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /schedules/datafiles [get]
func (h *ScheduleHandler) Datafiles(c *gin.Context) {
	result, err := h.schedules.Datafiles(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
