package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udp-horarios/horarios-api/internal/dto"
	"github.com/udp-horarios/horarios-api/internal/models"
)

func decoderFixture() *DecoderService {
	return NewDecoderService(nil)
}

func entry(section models.Section) dto.SectionEntry {
	return dto.SectionEntry{Section: section}
}

func TestDecodeExpandsMultiDayEntry(t *testing.T) {
	decoder := decoderFixture()
	solution := dto.Solution{
		TotalScore: 12.5,
		Secciones: []dto.SectionEntry{
			entry(models.Section{
				Codigo:  "CIT2006",
				Nombre:  "Bases de Datos",
				Horario: []string{"LU MA JU 10:00 - 11:20"},
			}),
		},
	}

	timetable := decoder.Decode(solution)

	assert.Equal(t, 12.5, timetable.Score)
	require.Len(t, timetable.Blocks, 3)
	for i, day := range []string{"Lunes", "Martes", "Jueves"} {
		assert.Equal(t, day, timetable.Blocks[i].Day)
		assert.Equal(t, 2, timetable.Blocks[i].TimeSlotID)
	}

	// all three blocks point to the same decoded section
	assert.Same(t, timetable.Blocks[0].Section, timetable.Blocks[1].Section)
	assert.Same(t, timetable.Blocks[1].Section, timetable.Blocks[2].Section)
	assert.Equal(t, "CIT2006", timetable.Blocks[0].Section.Codigo)
}

func TestDecodeSkipsNoScheduleLiteral(t *testing.T) {
	decoder := decoderFixture()
	solution := dto.Solution{
		Secciones: []dto.SectionEntry{
			entry(models.Section{
				Codigo:  "CBM1000",
				Horario: []string{"Sin horario", "MI 08:30 - 09:50"},
			}),
		},
	}

	timetable := decoder.Decode(solution)

	require.Len(t, timetable.Blocks, 1)
	assert.Equal(t, "Miércoles", timetable.Blocks[0].Day)
	assert.Equal(t, 1, timetable.Blocks[0].TimeSlotID)
}

func TestDecodeKeepsScheduleLessSectionInListing(t *testing.T) {
	decoder := decoderFixture()
	solution := dto.Solution{
		Secciones: []dto.SectionEntry{
			entry(models.Section{Codigo: "CBM1001", Nombre: "Cálculo I"}),
			entry(models.Section{Codigo: "CIT1010", Horario: []string{"VI 16:00 - 17:20"}}),
		},
	}

	timetable := decoder.Decode(solution)

	assert.Len(t, timetable.Sections, 2)
	require.Len(t, timetable.Blocks, 1)
	assert.Equal(t, "CIT1010", timetable.Blocks[0].Section.Codigo)
}

func TestDecodeDropsUnidentifiedSection(t *testing.T) {
	decoder := decoderFixture()
	solution := dto.Solution{
		Secciones: []dto.SectionEntry{
			entry(models.Section{Horario: []string{"LU 08:30 - 09:50"}}),
		},
	}

	timetable := decoder.Decode(solution)

	assert.Len(t, timetable.Sections, 1)
	assert.Empty(t, timetable.Blocks)
}

func TestDecodeEntryMalformedStrings(t *testing.T) {
	decoder := decoderFixture()

	cases := []struct {
		name    string
		horario string
	}{
		{"empty", ""},
		{"no day codes", "08:30 - 09:50"},
		{"day codes without time", "LU MA"},
		{"unknown start time", "LU 09:00 - 10:20"},
		{"lowercase day code", "lu 08:30 - 09:50"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			solution := dto.Solution{
				Secciones: []dto.SectionEntry{
					entry(models.Section{Codigo: "CIT2114", Horario: []string{tc.horario}}),
				},
			}
			timetable := decoder.Decode(solution)
			assert.Empty(t, timetable.Blocks)
		})
	}
}

func TestDecodeWeekendCodePassesThrough(t *testing.T) {
	decoder := decoderFixture()
	solution := dto.Solution{
		Secciones: []dto.SectionEntry{
			entry(models.Section{Codigo: "CIT3100", Horario: []string{"SA 08:30 - 09:50"}}),
		},
	}

	timetable := decoder.Decode(solution)

	require.Len(t, timetable.Blocks, 1)
	// SA has no display name; the code itself is kept
	assert.Equal(t, "SA", timetable.Blocks[0].Day)
}

func TestDecodeStartTimeMatchingIgnoresColon(t *testing.T) {
	decoder := decoderFixture()
	solution := dto.Solution{
		Secciones: []dto.SectionEntry{
			entry(models.Section{Codigo: "CIT2007", Horario: []string{"JU 17:25 - 18:45"}}),
		},
	}

	timetable := decoder.Decode(solution)

	require.Len(t, timetable.Blocks, 1)
	assert.Equal(t, 7, timetable.Blocks[0].TimeSlotID)
}

func TestDecodeAllPreservesSolutionOrder(t *testing.T) {
	decoder := decoderFixture()
	solutions := []dto.Solution{
		{TotalScore: 3, Secciones: []dto.SectionEntry{entry(models.Section{Codigo: "A", Horario: []string{"LU 08:30 - 09:50"}})}},
		{TotalScore: 1},
		{TotalScore: 2, Secciones: []dto.SectionEntry{entry(models.Section{Codigo: "B", Horario: []string{"MA 10:00 - 11:20"}})}},
	}

	timetables := decoder.DecodeAll(solutions)

	require.Len(t, timetables, 3)
	assert.Equal(t, 3.0, timetables[0].Score)
	assert.Equal(t, 1.0, timetables[1].Score)
	assert.Equal(t, 2.0, timetables[2].Score)
	assert.Empty(t, timetables[1].Blocks)
}

func TestBlockAtReturnsFirstMatch(t *testing.T) {
	decoder := decoderFixture()
	solution := dto.Solution{
		Secciones: []dto.SectionEntry{
			entry(models.Section{Codigo: "FIRST", Horario: []string{"LU 08:30 - 09:50"}}),
			entry(models.Section{Codigo: "SECOND", Horario: []string{"LU 08:30 - 09:50"}}),
		},
	}

	timetable := decoder.Decode(solution)

	block, ok := timetable.BlockAt("Lunes", 1)
	require.True(t, ok)
	assert.Equal(t, "FIRST", block.Section.Codigo)

	_, ok = timetable.BlockAt("Lunes", 2)
	assert.False(t, ok)
	_, ok = timetable.BlockAt("Martes", 1)
	assert.False(t, ok)
}
