package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udp-horarios/horarios-api/internal/models"
)

func newCourseMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func courseRow() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "code", "name", "semester", "prerequisites", "created_at", "updated_at"}).
		AddRow(1, "CBM1000", "Álgebra", 1, "{}", time.Now(), time.Now()).
		AddRow(7, "CIT2006", "Bases de Datos", 4, "{3,5}", time.Now(), time.Now())
}

func TestCourseRepositoryList(t *testing.T) {
	db, mock, cleanup := newCourseMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, code, name, semester, prerequisites, created_at, updated_at FROM courses WHERE 1=1 ORDER BY semester, id LIMIT 50 OFFSET 0")).
		WillReturnRows(courseRow())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM courses WHERE 1=1")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	courses, total, err := repo.List(context.Background(), models.CourseFilter{})
	require.NoError(t, err)
	assert.Len(t, courses, 2)
	assert.Equal(t, 2, total)
	assert.Equal(t, "CBM1000", courses[0].Code)
	assert.Equal(t, []int64{3, 5}, []int64(courses[1].Prerequisites))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryListWithFilters(t *testing.T) {
	db, mock, cleanup := newCourseMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, code, name, semester, prerequisites, created_at, updated_at FROM courses WHERE 1=1 AND semester = $1 AND (LOWER(code) LIKE $2 OR LOWER(name) LIKE $2) ORDER BY semester, id LIMIT 20 OFFSET 20")).
		WithArgs(4, "%datos%").
		WillReturnRows(sqlmock.NewRows([]string{"id", "code", "name", "semester", "prerequisites", "created_at", "updated_at"}).
			AddRow(7, "CIT2006", "Bases de Datos", 4, "{3,5}", time.Now(), time.Now()))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM courses WHERE 1=1 AND semester = $1 AND (LOWER(code) LIKE $2 OR LOWER(name) LIKE $2)")).
		WithArgs(4, "%datos%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(21))

	courses, total, err := repo.List(context.Background(), models.CourseFilter{Search: "Datos", Semester: 4, Page: 2, PageSize: 20})
	require.NoError(t, err)
	assert.Len(t, courses, 1)
	assert.Equal(t, 21, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryCodesByIDs(t *testing.T) {
	db, mock, cleanup := newCourseMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, code FROM courses WHERE id = ANY($1)")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "code"}).
			AddRow(1, "CBM1000").
			AddRow(7, "CIT2006"))

	codes, err := repo.CodesByIDs(context.Background(), []int{1, 7, 99})
	require.NoError(t, err)
	assert.Equal(t, map[int]string{1: "CBM1000", 7: "CIT2006"}, codes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryCodesByIDsEmptyInput(t *testing.T) {
	db, mock, cleanup := newCourseMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	codes, err := repo.CodesByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, codes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryListAll(t *testing.T) {
	db, mock, cleanup := newCourseMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, code, name, semester, prerequisites, created_at, updated_at FROM courses ORDER BY semester, id")).
		WillReturnRows(courseRow())

	courses, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, courses, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}
