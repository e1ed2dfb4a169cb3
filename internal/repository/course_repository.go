package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/udp-horarios/horarios-api/internal/models"
)

// CourseRepository reads the static course catalog (malla). The catalog is
// never written through the API.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository creates a new repository instance.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// List returns catalog courses matching filters with pagination metadata.
func (r *CourseRepository) List(ctx context.Context, filter models.CourseFilter) ([]models.Course, int, error) {
	base := "FROM courses WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.Semester > 0 {
		conditions = append(conditions, fmt.Sprintf("semester = $%d", len(args)+1))
		args = append(args, filter.Semester)
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(code) LIKE $%d OR LOWER(name) LIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 50
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT id, code, name, semester, prerequisites, created_at, updated_at %s ORDER BY semester, id LIMIT %d OFFSET %d", base, size, offset)
	var courses []models.Course
	if err := r.db.SelectContext(ctx, &courses, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list courses: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count courses: %w", err)
	}

	return courses, total, nil
}

// CodesByIDs resolves course ids to codes. Ids absent from the catalog are
// simply missing from the returned map; the caller decides what that means.
func (r *CourseRepository) CodesByIDs(ctx context.Context, ids []int) (map[int]string, error) {
	codes := make(map[int]string, len(ids))
	if len(ids) == 0 {
		return codes, nil
	}

	int64s := make([]int64, len(ids))
	for i, id := range ids {
		int64s[i] = int64(id)
	}

	const query = `SELECT id, code FROM courses WHERE id = ANY($1)`
	rows, err := r.db.QueryxContext(ctx, query, pq.Int64Array(int64s))
	if err != nil {
		return nil, fmt.Errorf("resolve course codes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int
		var code string
		if err := rows.Scan(&id, &code); err != nil {
			return nil, fmt.Errorf("scan course code: %w", err)
		}
		codes[id] = code
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate course codes: %w", err)
	}

	return codes, nil
}

// ListAll returns the full catalog, used for available-course derivation.
func (r *CourseRepository) ListAll(ctx context.Context) ([]models.Course, error) {
	const query = `SELECT id, code, name, semester, prerequisites, created_at, updated_at FROM courses ORDER BY semester, id`
	var courses []models.Course
	if err := r.db.SelectContext(ctx, &courses, query); err != nil {
		return nil, fmt.Errorf("list all courses: %w", err)
	}
	return courses, nil
}
