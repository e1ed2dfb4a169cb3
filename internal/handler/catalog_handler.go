package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/udp-horarios/horarios-api/internal/models"
	"github.com/udp-horarios/horarios-api/internal/service"
	appErrors "github.com/udp-horarios/horarios-api/pkg/errors"
	"github.com/udp-horarios/horarios-api/pkg/response"
)

type catalogReader interface {
	ListCourses(ctx context.Context, filter models.CourseFilter) ([]models.Course, *models.Pagination, error)
	AvailableCourses(ctx context.Context, approvedIDs []int) ([]models.Course, error)
	TimeSlots() []models.TimeSlot
}

// CatalogHandler exposes the curriculum and time-slot catalogs.
type CatalogHandler struct {
	catalog catalogReader
}

// NewCatalogHandler constructs the handler.
func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// ListCourses godoc
// @Summary List catalog courses
// @Tags Catalog
// @Produce json
// @Param search query string false "Search by code or name"
// @Param semester query int false "Filter by semester"
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /courses [get]
func (h *CatalogHandler) ListCourses(c *gin.Context) {
	filter := models.CourseFilter{
		Search:   c.Query("search"),
		Semester: intQuery(c, "semester"),
		Page:     intQuery(c, "page"),
		PageSize: intQuery(c, "pageSize"),
	}
	courses, pagination, err := h.catalog.ListCourses(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, courses, pagination)
}

// AvailableCourses godoc
// @Summary List courses available given a set of approved course ids
// @Description Approved ids are passed as a comma-separated "approved" query param.
// @Tags Catalog
// @Produce json
// @Param approved query string false "Comma-separated approved course ids"
// @Success 200 {object} response.Envelope
// @Router /courses/available [get]
func (h *CatalogHandler) AvailableCourses(c *gin.Context) {
	approved, err := parseIDList(c.Query("approved"))
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid approved course ids"))
		return
	}
	courses, err := h.catalog.AvailableCourses(c.Request.Context(), approved)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, courses, nil)
}

// TimeSlots godoc
// @Summary List the fixed weekly time-slot catalog
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /timeslots [get]
func (h *CatalogHandler) TimeSlots(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.catalog.TimeSlots(), nil)
}

func intQuery(c *gin.Context, name string) int {
	value, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return 0
	}
	return value
}

func parseIDList(raw string) ([]int, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]int, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
