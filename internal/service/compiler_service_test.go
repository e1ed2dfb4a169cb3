package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udp-horarios/horarios-api/internal/models"
)

func compilerFixture() *CompilerService {
	return NewCompilerService(nil)
}

func TestCompileMapsApprovedIDsToCodes(t *testing.T) {
	compiler := compilerFixture()
	codes := map[int]string{1: "CBM1000", 2: "CBM1001", 4: "CIT1010"}

	req := compiler.Compile("student@mail.udp.cl", []int{1, 2, 3, 4}, codes, models.UserPreferences{}, "MC2020.xlsx", "")

	assert.Equal(t, "student@mail.udp.cl", req.Email)
	// id 3 has no catalog entry and is silently dropped
	assert.Equal(t, []string{"CBM1000", "CBM1001", "CIT1010"}, req.RamosPasados)
	assert.Equal(t, "MC2020.xlsx", req.Malla)
}

func TestCompileDefaultsRankingToHalf(t *testing.T) {
	compiler := compilerFixture()

	req := compiler.Compile("student@mail.udp.cl", nil, nil, models.UserPreferences{}, "MC2020.xlsx", "")
	assert.Equal(t, 0.5, req.StudentRanking)

	ranking := 0.87
	req = compiler.Compile("student@mail.udp.cl", nil, nil, models.UserPreferences{StudentRanking: &ranking}, "MC2020.xlsx", "")
	assert.Equal(t, 0.87, req.StudentRanking)
}

func TestCompilePreferredWindows(t *testing.T) {
	compiler := compilerFixture()

	cases := []struct {
		name  string
		flags []models.OptimizationFlag
		want  []string
	}{
		{"none", nil, []string{}},
		{"morning only", []models.OptimizationFlag{models.OptMorningClasses}, []string{"08:30-12:50"}},
		{"afternoon only", []models.OptimizationFlag{models.OptAfternoonClasses}, []string{"13:00-18:45"}},
		{"both ordered morning first", []models.OptimizationFlag{models.OptAfternoonClasses, models.OptMorningClasses}, []string{"08:30-12:50", "13:00-18:45"}},
		{"unrelated flags contribute nothing", []models.OptimizationFlag{models.OptMinimizeGaps, models.OptCompactDays, models.OptNoFridays}, []string{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := compiler.Compile("student@mail.udp.cl", nil, nil, models.UserPreferences{Optimizations: tc.flags}, "MC2020.xlsx", "")
			assert.Equal(t, tc.want, req.HorariosPreferidos)
		})
	}
}

func TestCompileConsolidatesForbiddenBlocks(t *testing.T) {
	compiler := compilerFixture()
	prefs := models.UserPreferences{
		BlockedTimeSlots: []models.BlockedTimeSlot{
			{Day: "MI", TimeSlotID: 1},
			{Day: "LU", TimeSlotID: 1},
			{Day: "MA", TimeSlotID: 1},
			{Day: "LU", TimeSlotID: 4},
		},
	}

	req := compiler.Compile("student@mail.udp.cl", nil, nil, prefs, "MC2020.xlsx", "")

	require.Len(t, req.HorariosProhibidos, 2)
	assert.Equal(t, "LU MA MI 08:30 - 09:50", req.HorariosProhibidos[0])
	assert.Equal(t, "LU 13:00 - 14:20", req.HorariosProhibidos[1])
}

func TestCompileForbiddenBlocksSkipUnknownSlotAndDay(t *testing.T) {
	compiler := compilerFixture()
	prefs := models.UserPreferences{
		BlockedTimeSlots: []models.BlockedTimeSlot{
			{Day: "LU", TimeSlotID: 99},
			{Day: "XX", TimeSlotID: 1},
			{Day: "Viernes", TimeSlotID: 2},
		},
	}

	req := compiler.Compile("student@mail.udp.cl", nil, nil, prefs, "MC2020.xlsx", "")

	// weekday display names are accepted alongside codes
	require.Len(t, req.HorariosProhibidos, 1)
	assert.Equal(t, "VI 10:00 - 11:20", req.HorariosProhibidos[0])
}

func TestCompileDeduplicatesBlockedSlots(t *testing.T) {
	compiler := compilerFixture()
	prefs := models.UserPreferences{
		BlockedTimeSlots: []models.BlockedTimeSlot{
			{Day: "LU", TimeSlotID: 1},
			{Day: "LU", TimeSlotID: 1},
			{ID: "LU-1", Day: "LU", TimeSlotID: 1},
		},
	}

	req := compiler.Compile("student@mail.udp.cl", nil, nil, prefs, "MC2020.xlsx", "")

	require.Len(t, req.HorariosProhibidos, 1)
	assert.Equal(t, "LU 08:30 - 09:50", req.HorariosProhibidos[0])
}

func TestCompileOmitsFiltersWhenNothingTriggers(t *testing.T) {
	compiler := compilerFixture()

	req := compiler.Compile("student@mail.udp.cl", nil, nil, models.UserPreferences{}, "MC2020.xlsx", "")
	assert.Nil(t, req.Filtros)

	// compact-days and spread-days have no solver counterpart
	req = compiler.Compile("student@mail.udp.cl", nil, nil, models.UserPreferences{
		Optimizations: []models.OptimizationFlag{models.OptCompactDays, models.OptSpreadDays},
	}, "MC2020.xlsx", "")
	assert.Nil(t, req.Filtros)
}

func TestCompileFreeDaysFilterRequiresBlockedSlots(t *testing.T) {
	compiler := compilerFixture()
	prefs := models.UserPreferences{
		BlockedTimeSlots: []models.BlockedTimeSlot{
			{Day: "VI", TimeSlotID: 1},
			{Day: "LU", TimeSlotID: 3},
		},
		Optimizations: []models.OptimizationFlag{models.OptMinimizeGaps},
	}

	req := compiler.Compile("student@mail.udp.cl", nil, nil, prefs, "MC2020.xlsx", "")

	require.NotNil(t, req.Filtros)
	free := req.Filtros.DiasHorariosLibres
	require.NotNil(t, free)
	assert.True(t, free.Habilitado)
	assert.Equal(t, []string{"LU", "VI"}, free.DiasLibresPreferidos)
	assert.True(t, free.MinimizarVentanas)
	assert.Equal(t, 30, free.VentanaIdealMinutos)
}

func TestCompileGapFilterTiedToMinimizeGaps(t *testing.T) {
	compiler := compilerFixture()

	req := compiler.Compile("student@mail.udp.cl", nil, nil, models.UserPreferences{
		Optimizations: []models.OptimizationFlag{models.OptMinimizeGaps},
	}, "MC2020.xlsx", "")

	require.NotNil(t, req.Filtros)
	require.NotNil(t, req.Filtros.VentanaEntreActividades)
	assert.True(t, req.Filtros.VentanaEntreActividades.Habilitado)
	assert.Equal(t, 15, req.Filtros.VentanaEntreActividades.MinutosEntreClases)
	assert.Nil(t, req.Filtros.DiasHorariosLibres)
	assert.Nil(t, req.Filtros.PreferenciasProfesores)
}

func TestCompileProfessorFilterMergesPreferences(t *testing.T) {
	compiler := compilerFixture()
	prefs := models.UserPreferences{
		ProfessorPreferences: []models.ProfessorPreference{
			{CourseID: 1, ProfessorID: "Ana Soto"},
			{CourseID: 2, ProfessorID: "Ana Soto"},
		},
		PreferredProfessors: []string{"Pedro Rojas", "Ana Soto"},
		AvoidedProfessors:   []string{"Juan Díaz"},
	}

	req := compiler.Compile("student@mail.udp.cl", nil, nil, prefs, "MC2020.xlsx", "")

	require.NotNil(t, req.Filtros)
	prof := req.Filtros.PreferenciasProfesores
	require.NotNil(t, prof)
	assert.True(t, prof.Habilitado)
	assert.Equal(t, []string{"Ana Soto", "Pedro Rojas"}, prof.ProfesoresPreferidos)
	assert.Equal(t, []string{"Juan Díaz"}, prof.ProfesoresEvitar)
}

func TestCompileProfessorFilterOnAvoidOnly(t *testing.T) {
	compiler := compilerFixture()
	prefs := models.UserPreferences{AvoidedProfessors: []string{"Juan Díaz"}}

	req := compiler.Compile("student@mail.udp.cl", nil, nil, prefs, "MC2020.xlsx", "")

	require.NotNil(t, req.Filtros)
	require.NotNil(t, req.Filtros.PreferenciasProfesores)
	assert.Empty(t, req.Filtros.PreferenciasProfesores.ProfesoresPreferidos)
	assert.Equal(t, []string{"Juan Díaz"}, req.Filtros.PreferenciasProfesores.ProfesoresEvitar)
}

func TestCompileIsDeterministicAndDoesNotMutateInput(t *testing.T) {
	compiler := compilerFixture()
	prefs := models.UserPreferences{
		BlockedTimeSlots: []models.BlockedTimeSlot{
			{Day: "MI", TimeSlotID: 2},
			{Day: "LU", TimeSlotID: 2},
			{Day: "LU", TimeSlotID: 2},
		},
		Optimizations:   []models.OptimizationFlag{models.OptMorningClasses, models.OptMorningClasses},
		PriorityCourses: []string{"CIT2006"},
	}
	codes := map[int]string{7: "CIT2006"}

	first := compiler.Compile("student@mail.udp.cl", []int{7}, codes, prefs, "MC2020.xlsx", "S1")
	second := compiler.Compile("student@mail.udp.cl", []int{7}, codes, prefs, "MC2020.xlsx", "S1")

	assert.Equal(t, first, second)
	// input order and duplicates survive in the caller's copy
	assert.Len(t, prefs.BlockedTimeSlots, 3)
	assert.Equal(t, "MI", prefs.BlockedTimeSlots[0].Day)
	assert.Len(t, prefs.Optimizations, 2)
}
