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

// Package db implements the Postgres storage layer for tenants, endpoints,
// endpoint sources, sync jobs, policies, and compliance evaluations.
package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stackguard/edgesync/pkg/logger"
	"github.com/stackguard/edgesync/pkg/models"
)

// Store is the pgx-backed implementation of Service.
type Store struct {
	pool   *pgxpool.Pool
	logger logger.Logger
}

// New connects to the configured Postgres cluster and returns a Store.
func New(ctx context.Context, cfg *models.DatabaseConfig, log logger.Logger) (*Store, error) {
	pool, err := NewPool(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	return &Store{pool: pool, logger: log}, nil
}

// NewWithPool wraps an existing pool, used by tests.
func NewWithPool(pool *pgxpool.Pool, log logger.Logger) *Store {
	return &Store{pool: pool, logger: log}
}

// RunMigrations applies pending schema migrations on the store's pool.
func (s *Store) RunMigrations(ctx context.Context) error {
	return RunMigrations(ctx, s.pool, s.logger)
}

// Close releases the underlying connection pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}
