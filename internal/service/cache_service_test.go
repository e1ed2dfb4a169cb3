package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingCacheRepo struct {
	err error
}

func (f failingCacheRepo) Get(_ context.Context, _ string, _ interface{}) error { return f.err }
func (f failingCacheRepo) Set(_ context.Context, _ string, _ interface{}, _ time.Duration) error {
	return f.err
}
func (f failingCacheRepo) DeleteByPattern(_ context.Context, _ string) error { return f.err }

func TestCacheServiceDisabledAlwaysMisses(t *testing.T) {
	service := NewCacheService(newMemoryCacheRepo(), nil, time.Minute, nil, false)

	var out string
	assert.False(t, service.Get(context.Background(), "key", &out))
	service.Set(context.Background(), "key", "value")
	assert.False(t, service.Get(context.Background(), "key", &out))
}

func TestCacheServiceRoundTrip(t *testing.T) {
	service := NewCacheService(newMemoryCacheRepo(), nil, time.Minute, nil, true)
	require.True(t, service.Enabled())

	type payload struct {
		Count int `json:"count"`
	}
	service.Set(context.Background(), "key", payload{Count: 3})

	var out payload
	require.True(t, service.Get(context.Background(), "key", &out))
	assert.Equal(t, 3, out.Count)
}

func TestCacheServiceFailuresDegradeToMiss(t *testing.T) {
	service := NewCacheService(failingCacheRepo{err: errors.New("redis down")}, nil, time.Minute, nil, true)

	var out string
	assert.False(t, service.Get(context.Background(), "key", &out))

	// set failures are swallowed as well
	service.Set(context.Background(), "key", "value")
}

func TestCacheServiceNilRepoIsDisabled(t *testing.T) {
	service := NewCacheService(nil, nil, time.Minute, nil, true)
	assert.False(t, service.Enabled())

	var out string
	assert.False(t, service.Get(context.Background(), "key", &out))
}
