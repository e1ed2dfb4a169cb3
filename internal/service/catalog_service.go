package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/udp-horarios/horarios-api/internal/models"
	appErrors "github.com/udp-horarios/horarios-api/pkg/errors"
)

type courseRepository interface {
	List(ctx context.Context, filter models.CourseFilter) ([]models.Course, int, error)
	ListAll(ctx context.Context) ([]models.Course, error)
}

// CatalogService serves the read-only curriculum and time-slot catalogs.
type CatalogService struct {
	courses courseRepository
	logger  *zap.Logger
}

// NewCatalogService builds the service.
func NewCatalogService(courses courseRepository, logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{courses: courses, logger: logger}
}

// ListCourses returns catalog courses with pagination.
func (s *CatalogService) ListCourses(ctx context.Context, filter models.CourseFilter) ([]models.Course, *models.Pagination, error) {
	courses, total, err := s.courses.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list courses")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 50
	}

	return courses, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// AvailableCourses returns courses the student could enroll in next: not yet
// approved and with every prerequisite satisfied.
func (s *CatalogService) AvailableCourses(ctx context.Context, approvedIDs []int) ([]models.Course, error) {
	all, err := s.courses.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course catalog")
	}

	approved := make(map[int]struct{}, len(approvedIDs))
	for _, id := range approvedIDs {
		approved[id] = struct{}{}
	}

	available := make([]models.Course, 0, len(all))
	for _, course := range all {
		if course.AvailableFor(approved) {
			available = append(available, course)
		}
	}
	return available, nil
}

// TimeSlots returns the fixed nine-slot catalog.
func (s *CatalogService) TimeSlots() []models.TimeSlot {
	return models.TimeSlots()
}
