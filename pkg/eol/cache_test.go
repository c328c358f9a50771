/*
 * Copyright 2025 StackGuard, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package eol

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stackguard/edgesync/pkg/logger"
	"github.com/stackguard/edgesync/pkg/models"
)

var errUpstreamDown = errors.New("upstream down")

type fakeFetcher struct {
	cycles []models.EOLCycle
	err    error
	calls  int
}

func (f *fakeFetcher) FetchCycles(_ context.Context, _ Category) ([]models.EOLCycle, error) {
	f.calls++

	if f.err != nil {
		return nil, f.err
	}

	return f.cycles, nil
}

func newTestCache(fetcher Fetcher, ttl time.Duration) (*Cache, *time.Time) {
	cache := NewCache(fetcher, ttl, logger.NewTestLogger())

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	cache.clock = func() time.Time { return now }

	return cache, &now
}

func TestGetRegistryFreshHitSkipsRefetch(t *testing.T) {
	fetcher := &fakeFetcher{cycles: []models.EOLCycle{{Cycle: "24H2"}}}
	cache, now := newTestCache(fetcher, time.Hour)

	first, err := cache.GetRegistry(context.Background(), CategoryClient)
	require.NoError(t, err)
	assert.False(t, first.Stale)
	assert.Equal(t, 1, fetcher.calls)

	*now = now.Add(30 * time.Minute)

	second, err := cache.GetRegistry(context.Background(), CategoryClient)
	require.NoError(t, err)
	assert.Equal(t, 1, fetcher.calls, "fresh entry must not refetch")
	assert.Equal(t, first.Cycles, second.Cycles)
}

func TestGetRegistryRefetchesAfterTTL(t *testing.T) {
	fetcher := &fakeFetcher{cycles: []models.EOLCycle{{Cycle: "24H2"}}}
	cache, now := newTestCache(fetcher, time.Hour)

	_, err := cache.GetRegistry(context.Background(), CategoryClient)
	require.NoError(t, err)

	*now = now.Add(2 * time.Hour)

	reg, err := cache.GetRegistry(context.Background(), CategoryClient)
	require.NoError(t, err)
	assert.Equal(t, 2, fetcher.calls)
	assert.False(t, reg.Stale)
	assert.Equal(t, *now, reg.FetchedAt)
}

func TestGetRegistryServesStaleOnRefetchFailure(t *testing.T) {
	fetcher := &fakeFetcher{cycles: []models.EOLCycle{{Cycle: "23H2"}}}
	cache, now := newTestCache(fetcher, time.Hour)

	fetched, err := cache.GetRegistry(context.Background(), CategoryClient)
	require.NoError(t, err)

	fetcher.err = errUpstreamDown
	*now = now.Add(2 * time.Hour)

	reg, err := cache.GetRegistry(context.Background(), CategoryClient)
	require.NoError(t, err, "stale data must be served, not an error")
	assert.True(t, reg.Stale)
	assert.Equal(t, fetched.Cycles, reg.Cycles)
	assert.Equal(t, fetched.FetchedAt, reg.FetchedAt)
}

func TestGetRegistryColdCacheFailureSurfaces(t *testing.T) {
	fetcher := &fakeFetcher{err: errUpstreamDown}
	cache, _ := newTestCache(fetcher, time.Hour)

	reg, err := cache.GetRegistry(context.Background(), CategoryClient)

	assert.Nil(t, reg)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRegistryUnavailable)
	assert.ErrorIs(t, err, errUpstreamDown)
}

func TestGetRegistryCategoriesAreIndependent(t *testing.T) {
	fetcher := &fakeFetcher{cycles: []models.EOLCycle{{Cycle: "2022"}}}
	cache, _ := newTestCache(fetcher, time.Hour)

	_, err := cache.GetRegistry(context.Background(), CategoryClient)
	require.NoError(t, err)

	_, err = cache.GetRegistry(context.Background(), CategoryServer)
	require.NoError(t, err)

	assert.Equal(t, 2, fetcher.calls)
}
