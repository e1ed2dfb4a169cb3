package service

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/udp-horarios/horarios-api/internal/models"
	appErrors "github.com/udp-horarios/horarios-api/pkg/errors"
	"github.com/udp-horarios/horarios-api/pkg/export"
)

// ExportService renders a decoded timetable as a weekly grid document. Rows
// are time slots, columns are weekdays; each occupied cell shows the course
// name, the section and the professor.
type ExportService struct {
	csv    *export.CSVExporter
	pdf    *export.PDFExporter
	title  string
	logger *zap.Logger
}

// NewExportService builds the export service.
func NewExportService(title string, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		csv:    export.NewCSVExporter(),
		pdf:    export.NewPDFExporter(),
		title:  title,
		logger: logger,
	}
}

// ExportResult carries the rendered document plus response metadata.
type ExportResult struct {
	Content     []byte
	ContentType string
	Filename    string
}

// Export renders the timetable in the requested format ("csv" or "pdf").
func (s *ExportService) Export(format string, timetable models.Timetable) (*ExportResult, error) {
	dataset := s.buildGrid(timetable)

	switch strings.ToLower(format) {
	case "csv":
		content, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return &ExportResult{Content: content, ContentType: "text/csv", Filename: "horario.csv"}, nil
	case "pdf":
		content, err := s.pdf.Render(dataset, s.title)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return &ExportResult{Content: content, ContentType: "application/pdf", Filename: "horario.pdf"}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
}

func (s *ExportService) buildGrid(timetable models.Timetable) export.Dataset {
	headers := append([]string{"Horario"}, models.WeekdayNames()...)

	slots := models.TimeSlots()
	rows := make([]map[string]string, 0, len(slots))
	for _, slot := range slots {
		row := map[string]string{"Horario": fmt.Sprintf("%s - %s", slot.Start, slot.End)}
		for _, code := range models.WeekdayCodes() {
			block, ok := timetable.BlockAt(models.DayName(code), slot.ID)
			if !ok {
				continue
			}
			row[models.DayName(code)] = cellText(block.Section)
		}
		rows = append(rows, row)
	}

	return export.Dataset{Headers: headers, Rows: rows}
}

func cellText(section *models.Section) string {
	if section == nil {
		return ""
	}
	parts := make([]string, 0, 3)
	if section.Nombre != "" {
		parts = append(parts, section.Nombre)
	}
	if section.Codigo != "" || section.Seccion != "" {
		parts = append(parts, strings.TrimSpace(section.Codigo+" "+section.Seccion))
	}
	if section.Profesor != "" {
		parts = append(parts, section.Profesor)
	}
	return strings.Join(parts, "\n")
}
