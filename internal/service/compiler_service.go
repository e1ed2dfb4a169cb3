package service

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/udp-horarios/horarios-api/internal/dto"
	"github.com/udp-horarios/horarios-api/internal/models"
)

// Preferred time windows appended for the morning/afternoon optimization
// flags. The solver consumes them verbatim.
const (
	morningWindow   = "08:30-12:50"
	afternoonWindow = "13:00-18:45"
)

// Fixed gap constants carried by the solver filters, in minutes.
const (
	idealGapMinutes   = 30
	minimumGapMinutes = 15
)

// CompilerService translates user preferences into the solver's constraint
// schema. Compilation is pure: the same preferences and approved set always
// produce an identical request, and no input is mutated.
type CompilerService struct {
	logger *zap.Logger
}

// NewCompilerService builds the service.
func NewCompilerService(logger *zap.Logger) *CompilerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CompilerService{logger: logger}
}

// Compile produces the solver request body. codesByID is the catalog's
// id→code mapping; approved ids without a catalog entry are silently
// dropped, since the approval set and the catalog may legitimately diverge.
func (s *CompilerService) Compile(email string, approvedIDs []int, codesByID map[int]string, prefs models.UserPreferences, malla, sheet string) dto.SolveRequest {
	prefs = prefs.Normalized()

	approvedCodes := make([]string, 0, len(approvedIDs))
	for _, id := range approvedIDs {
		if code, ok := codesByID[id]; ok {
			approvedCodes = append(approvedCodes, code)
		}
	}

	priority := make([]string, 0, len(prefs.PriorityCourses))
	priority = append(priority, prefs.PriorityCourses...)

	req := dto.SolveRequest{
		Email:              email,
		RamosPasados:       approvedCodes,
		RamosPrioritarios:  priority,
		HorariosPreferidos: s.preferredWindows(prefs),
		HorariosProhibidos: s.forbiddenBlocks(prefs.BlockedTimeSlots),
		Malla:              malla,
		Sheet:              sheet,
		StudentRanking:     prefs.Ranking(),
	}

	if filters := s.assembleFilters(prefs); !filters.Empty() {
		req.Filtros = filters
	}

	return req
}

// preferredWindows derives "HH:MM-HH:MM" windows from the optimization
// flags. Morning and afternoon are independent; both may be present, always
// in that order. No other flag contributes a window.
func (s *CompilerService) preferredWindows(prefs models.UserPreferences) []string {
	windows := []string{}
	if prefs.HasFlag(models.OptMorningClasses) {
		windows = append(windows, morningWindow)
	}
	if prefs.HasFlag(models.OptAfternoonClasses) {
		windows = append(windows, afternoonWindow)
	}
	return windows
}

// forbiddenBlocks consolidates blocked grid cells into "<days> HH:MM - HH:MM"
// strings, one per distinct time range. Blocking the same range on several
// days yields a single entry listing all day codes in lexical order, never
// one entry per (day, slot) pair.
func (s *CompilerService) forbiddenBlocks(blocked []models.BlockedTimeSlot) []string {
	if len(blocked) == 0 {
		return nil
	}

	type timeRange struct {
		slotID int
		start  string
		end    string
	}

	daysByRange := make(map[timeRange]map[string]struct{})
	for _, b := range blocked {
		slot, ok := models.SlotByID(b.TimeSlotID)
		if !ok {
			s.logger.Warn("blocked slot references unknown time slot", zap.Int("timeSlotId", b.TimeSlotID))
			continue
		}
		code := canonicalDayCode(b.Day)
		if code == "" {
			s.logger.Warn("blocked slot references unknown day", zap.String("day", b.Day))
			continue
		}
		key := timeRange{slotID: slot.ID, start: slot.Start, end: slot.End}
		if daysByRange[key] == nil {
			daysByRange[key] = make(map[string]struct{})
		}
		daysByRange[key][code] = struct{}{}
	}

	ranges := make([]timeRange, 0, len(daysByRange))
	for key := range daysByRange {
		ranges = append(ranges, key)
	}
	sort.Slice(ranges, func(i, j int) bool { return ranges[i].slotID < ranges[j].slotID })

	out := make([]string, 0, len(ranges))
	for _, key := range ranges {
		codes := make([]string, 0, len(daysByRange[key]))
		for code := range daysByRange[key] {
			codes = append(codes, code)
		}
		models.SortDayCodes(codes)

		entry := ""
		for _, code := range codes {
			entry += code + " "
		}
		out = append(out, fmt.Sprintf("%s%s - %s", entry, key.start, key.end))
	}
	return out
}

// assembleFilters builds the optional solver filter sections. A section is
// omitted entirely when its trigger does not hold; the contract is omission,
// not habilitado=false.
func (s *CompilerService) assembleFilters(prefs models.UserPreferences) *dto.UserFilters {
	filters := &dto.UserFilters{}

	if len(prefs.BlockedTimeSlots) > 0 {
		filters.DiasHorariosLibres = &dto.FreeDaysFilter{
			Habilitado:           true,
			DiasLibresPreferidos: blockedDayCodes(prefs.BlockedTimeSlots),
			MinimizarVentanas:    prefs.HasFlag(models.OptMinimizeGaps),
			VentanaIdealMinutos:  idealGapMinutes,
		}
	}

	if prefs.HasFlag(models.OptMinimizeGaps) {
		filters.VentanaEntreActividades = &dto.GapFilter{
			Habilitado:         true,
			MinutosEntreClases: minimumGapMinutes,
		}
	}

	preferred := preferredProfessorIDs(prefs)
	if len(preferred) > 0 || len(prefs.AvoidedProfessors) > 0 {
		avoid := make([]string, 0, len(prefs.AvoidedProfessors))
		avoid = append(avoid, prefs.AvoidedProfessors...)
		filters.PreferenciasProfesores = &dto.ProfessorFilter{
			Habilitado:           true,
			ProfesoresPreferidos: preferred,
			ProfesoresEvitar:     avoid,
		}
	}

	return filters
}

// blockedDayCodes collects the distinct day codes appearing in blocked
// slots, sorted lexically.
func blockedDayCodes(blocked []models.BlockedTimeSlot) []string {
	seen := make(map[string]struct{})
	for _, b := range blocked {
		if code := canonicalDayCode(b.Day); code != "" {
			seen[code] = struct{}{}
		}
	}
	codes := make([]string, 0, len(seen))
	for code := range seen {
		codes = append(codes, code)
	}
	return models.SortDayCodes(codes)
}

// preferredProfessorIDs merges per-course professor preferences with the
// flat preferred list, deduplicated in input order.
func preferredProfessorIDs(prefs models.UserPreferences) []string {
	seen := make(map[string]struct{})
	out := []string{}
	add := func(id string) {
		if id == "" {
			return
		}
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	for _, pref := range prefs.ProfessorPreferences {
		add(pref.ProfessorID)
	}
	for _, name := range prefs.PreferredProfessors {
		add(name)
	}
	return out
}

// canonicalDayCode accepts either a day code or a weekday display name and
// returns the code, or "" when neither matches.
func canonicalDayCode(day string) string {
	if models.IsDayToken(day) {
		return day
	}
	if code, ok := models.DayCode(day); ok {
		return code
	}
	return ""
}
