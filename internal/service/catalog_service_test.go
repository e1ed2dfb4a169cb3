package service

import (
	"context"
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udp-horarios/horarios-api/internal/models"
	appErrors "github.com/udp-horarios/horarios-api/pkg/errors"
)

type courseRepoStub struct {
	courses []models.Course
	total   int
	err     error
}

func (s courseRepoStub) List(_ context.Context, _ models.CourseFilter) ([]models.Course, int, error) {
	if s.err != nil {
		return nil, 0, s.err
	}
	return s.courses, s.total, nil
}

func (s courseRepoStub) ListAll(_ context.Context) ([]models.Course, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.courses, nil
}

func catalogFixtureCourses() []models.Course {
	return []models.Course{
		{ID: 1, Code: "CBM1000", Name: "Álgebra", Semester: 1, Prerequisites: pq.Int64Array{0}},
		{ID: 2, Code: "CBM1001", Name: "Cálculo I", Semester: 1, Prerequisites: pq.Int64Array{0}},
		{ID: 3, Code: "CBM2000", Name: "Cálculo II", Semester: 2, Prerequisites: pq.Int64Array{2}},
		{ID: 4, Code: "CIT2006", Name: "Bases de Datos", Semester: 4, Prerequisites: pq.Int64Array{1, 2}},
	}
}

func TestCatalogListCoursesPagination(t *testing.T) {
	service := NewCatalogService(courseRepoStub{courses: catalogFixtureCourses(), total: 40}, nil)

	courses, pagination, err := service.ListCourses(context.Background(), models.CourseFilter{Page: 0, PageSize: 500})
	require.NoError(t, err)
	assert.Len(t, courses, 4)
	require.NotNil(t, pagination)
	assert.Equal(t, 1, pagination.Page)
	assert.Equal(t, 50, pagination.PageSize)
	assert.Equal(t, 40, pagination.TotalCount)
}

func TestCatalogListCoursesRepositoryFailure(t *testing.T) {
	service := NewCatalogService(courseRepoStub{err: errors.New("db down")}, nil)

	_, _, err := service.ListCourses(context.Background(), models.CourseFilter{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)
}

func TestCatalogAvailableCourses(t *testing.T) {
	service := NewCatalogService(courseRepoStub{courses: catalogFixtureCourses()}, nil)

	available, err := service.AvailableCourses(context.Background(), []int{1})
	require.NoError(t, err)

	codes := make([]string, 0, len(available))
	for _, course := range available {
		codes = append(codes, course.Code)
	}
	// CBM1000 is already approved, CBM2000 and CIT2006 miss prerequisites
	assert.Equal(t, []string{"CBM1001"}, codes)
}

func TestCatalogAvailableCoursesNothingApproved(t *testing.T) {
	service := NewCatalogService(courseRepoStub{courses: catalogFixtureCourses()}, nil)

	available, err := service.AvailableCourses(context.Background(), nil)
	require.NoError(t, err)

	codes := make([]string, 0, len(available))
	for _, course := range available {
		codes = append(codes, course.Code)
	}
	assert.Equal(t, []string{"CBM1000", "CBM1001"}, codes)
}

func TestCatalogTimeSlots(t *testing.T) {
	service := NewCatalogService(courseRepoStub{}, nil)
	assert.Len(t, service.TimeSlots(), 9)
}
