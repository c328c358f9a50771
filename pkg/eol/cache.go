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

// Package eol caches OS lifecycle registries fetched from the upstream
// end-of-life feed.
package eol

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/stackguard/edgesync/pkg/logger"
	"github.com/stackguard/edgesync/pkg/models"
)

// Category selects which OS family registry to fetch. Each category maps
// to a distinct upstream feed.
type Category string

const (
	CategoryClient Category = "windows"
	CategoryServer Category = "windows-server"
)

const defaultTTL = 24 * time.Hour

// ErrRegistryUnavailable is returned when the upstream feed is unreachable
// and no cached data exists to fall back on.
var ErrRegistryUnavailable = errors.New("eol: reference data unavailable")

// Registry is the cached lifecycle data for one category. Stale marks data
// served past its TTL because a refetch failed.
type Registry struct {
	Cycles    []models.EOLCycle
	FetchedAt time.Time
	Stale     bool
}

// Fetcher retrieves lifecycle cycles for a category from upstream.
type Fetcher interface {
	FetchCycles(ctx context.Context, category Category) ([]models.EOLCycle, error)
}

type cacheEntry struct {
	cycles    []models.EOLCycle
	fetchedAt time.Time
}

// Cache is an explicitly constructed, injected registry cache. Concurrent
// callers on a cold category may both trigger a refetch; the fetch is
// upstream-idempotent so the last writer overwrites with equivalent data.
type Cache struct {
	mu      sync.Mutex
	entries map[Category]*cacheEntry
	fetcher Fetcher
	ttl     time.Duration
	clock   func() time.Time
	logger  logger.Logger
}

// NewCache builds a Cache around the given fetcher. A zero ttl defaults to
// 24 hours.
func NewCache(fetcher Fetcher, ttl time.Duration, log logger.Logger) *Cache {
	if ttl <= 0 {
		ttl = defaultTTL
	}

	return &Cache{
		entries: make(map[Category]*cacheEntry),
		fetcher: fetcher,
		ttl:     ttl,
		clock:   time.Now,
		logger:  log,
	}
}

// GetRegistry returns cached data when fresh, refetching otherwise. On
// refetch failure an existing cache entry is returned stale with a logged
// warning; with no cache at all the failure is surfaced.
func (c *Cache) GetRegistry(ctx context.Context, category Category) (*Registry, error) {
	now := c.clock()

	c.mu.Lock()
	entry := c.entries[category]
	c.mu.Unlock()

	if entry != nil && now.Sub(entry.fetchedAt) < c.ttl {
		return &Registry{Cycles: entry.cycles, FetchedAt: entry.fetchedAt}, nil
	}

	cycles, err := c.fetcher.FetchCycles(ctx, category)
	if err != nil {
		if entry != nil {
			c.logger.Warn().
				Err(err).
				Str("category", string(category)).
				Time("fetched_at", entry.fetchedAt).
				Msg("EOL refetch failed, serving stale registry")

			return &Registry{Cycles: entry.cycles, FetchedAt: entry.fetchedAt, Stale: true}, nil
		}

		return nil, fmt.Errorf("%w: %w", ErrRegistryUnavailable, err)
	}

	c.mu.Lock()
	c.entries[category] = &cacheEntry{cycles: cycles, fetchedAt: now}
	c.mu.Unlock()

	return &Registry{Cycles: cycles, FetchedAt: now}, nil
}
