package models

import (
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestAvailableFor(t *testing.T) {
	approved := map[int]struct{}{1: {}, 2: {}}

	noPrereqs := Course{ID: 5, Prerequisites: pq.Int64Array{0}}
	assert.True(t, noPrereqs.AvailableFor(approved))

	met := Course{ID: 6, Prerequisites: pq.Int64Array{1, 2}}
	assert.True(t, met.AvailableFor(approved))

	unmet := Course{ID: 7, Prerequisites: pq.Int64Array{1, 3}}
	assert.False(t, unmet.AvailableFor(approved))

	alreadyApproved := Course{ID: 1}
	assert.False(t, alreadyApproved.AvailableFor(approved))
}
