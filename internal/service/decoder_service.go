package service

import (
	"strings"

	"go.uber.org/zap"

	"github.com/udp-horarios/horarios-api/internal/dto"
	"github.com/udp-horarios/horarios-api/internal/models"
)

// noScheduleLiteral marks a section meeting with no assigned time. It is
// skipped during decoding, not treated as malformed.
const noScheduleLiteral = "Sin horario"

// DecoderService parses the solver's section lists into renderable weekly
// grids. Every malformed entry is recovered by omission; decoding never
// fails as a whole.
type DecoderService struct {
	logger *zap.Logger
}

// NewDecoderService builds the service.
func NewDecoderService(logger *zap.Logger) *DecoderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DecoderService{logger: logger}
}

// DecodeAll decodes every solution of a solver response.
func (s *DecoderService) DecodeAll(solutions []dto.Solution) []models.Timetable {
	out := make([]models.Timetable, 0, len(solutions))
	for _, solution := range solutions {
		out = append(out, s.Decode(solution))
	}
	return out
}

// Decode turns one solution into a timetable. Sections arrive already
// unwrapped from the {prioridad, seccion} variant by the DTO layer. A
// section that produces no blocks still appears in the section listing.
func (s *DecoderService) Decode(solution dto.Solution) models.Timetable {
	timetable := models.Timetable{
		Score:    solution.TotalScore,
		Sections: make([]models.Section, 0, len(solution.Secciones)),
	}

	for _, entry := range solution.Secciones {
		timetable.Sections = append(timetable.Sections, entry.Section)
	}

	for i := range timetable.Sections {
		section := &timetable.Sections[i]
		if !s.validSection(section) {
			continue
		}
		for _, horario := range section.Horario {
			timetable.Blocks = append(timetable.Blocks, s.decodeEntry(horario, section)...)
		}
	}

	return timetable
}

// validSection applies the defensive checks: a section missing both code and
// name, or without a usable schedule list, is logged and excluded from block
// generation. It still counts toward section statistics.
func (s *DecoderService) validSection(section *models.Section) bool {
	if !section.Identified() {
		s.logger.Warn("section without code or name, skipping blocks")
		return false
	}
	if len(section.Horario) == 0 {
		s.logger.Warn("section has no schedule entries",
			zap.String("codigo", section.Codigo),
			zap.String("nombre", section.Nombre),
		)
		return false
	}
	return true
}

// decodeEntry parses one schedule string into blocks, one per day code.
//
// Grammar: zero or more 2-letter day codes followed by a time range
// "HH:MM - HH:MM". Tokens are scanned left to right; the day-code run ends
// at the first token that is not a recognized day code. An entry with no day
// codes is malformed and discarded. Only the start time participates in slot
// matching.
func (s *DecoderService) decodeEntry(horario string, section *models.Section) []models.ScheduleBlock {
	if horario == "" || horario == noScheduleLiteral {
		return nil
	}

	parts := strings.Fields(horario)
	if len(parts) < 2 {
		return nil
	}

	dayEnd := 0
	for i, part := range parts {
		if !models.IsDayToken(part) {
			dayEnd = i
			break
		}
	}
	if dayEnd == 0 {
		s.logger.Warn("schedule entry has no day codes", zap.String("horario", horario))
		return nil
	}

	dayCodes := parts[:dayEnd]
	timeRange := strings.Join(parts[dayEnd:], " ")
	startTime, _, _ := strings.Cut(timeRange, " - ")

	slot, ok := models.SlotByStart(startTime)
	if !ok {
		// The slot catalog is the authority on valid boundaries, not
		// the solver's output.
		s.logger.Warn("schedule entry start matches no catalog slot",
			zap.String("start", startTime),
			zap.String("horario", horario),
		)
		return nil
	}

	blocks := make([]models.ScheduleBlock, 0, len(dayCodes))
	for _, code := range dayCodes {
		blocks = append(blocks, models.ScheduleBlock{
			Day:        models.DayName(code),
			TimeSlotID: slot.ID,
			Section:    section,
		})
	}
	return blocks
}
