package models

import (
	"time"

	"github.com/lib/pq"
)

// Course is one catalog entry of the curriculum (malla). The catalog is
// read-only from the API's point of view.
type Course struct {
	ID            int           `db:"id" json:"id"`
	Code          string        `db:"code" json:"code"`
	Name          string        `db:"name" json:"name"`
	Semester      int           `db:"semester" json:"semester"`
	Prerequisites pq.Int64Array `db:"prerequisites" json:"prerequisites"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time     `db:"updated_at" json:"updated_at"`
}

// CourseFilter describes query params for listing catalog courses.
type CourseFilter struct {
	Search   string
	Semester int
	Page     int
	PageSize int
}

// Pagination carries list paging metadata on response envelopes.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}

// AvailableFor reports whether the course can be taken given a set of
// approved course ids: not already approved and all prerequisites met. A
// prerequisite id of 0 marks "no prerequisite" in the catalog data.
func (c Course) AvailableFor(approved map[int]struct{}) bool {
	if _, ok := approved[c.ID]; ok {
		return false
	}
	for _, prereq := range c.Prerequisites {
		if prereq == 0 {
			continue
		}
		if _, ok := approved[int(prereq)]; !ok {
			return false
		}
	}
	return true
}
