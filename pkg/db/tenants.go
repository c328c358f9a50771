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

package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/stackguard/edgesync/pkg/models"
)

const tenantSelection = `
SELECT id, name, slug, COALESCE(external_site_id, ''), created_at, updated_at
FROM tenants`

func (s *Store) scanTenant(row pgx.Row) (*models.Tenant, error) {
	var t models.Tenant

	err := row.Scan(&t.ID, &t.Name, &t.Slug, &t.ExternalSiteID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("%w: %w", ErrFailedToQuery, err)
	}

	return &t, nil
}

// GetTenantByExternalSiteID looks up the tenant materialized for a vendor site.
func (s *Store) GetTenantByExternalSiteID(ctx context.Context, siteID string) (*models.Tenant, error) {
	row := s.pool.QueryRow(ctx, tenantSelection+` WHERE external_site_id = $1`, siteID)
	return s.scanTenant(row)
}

// GetTenantBySlug looks up a tenant by its unique slug. Used by the slug
// uniqueness probe during tenant creation.
func (s *Store) GetTenantBySlug(ctx context.Context, slug string) (*models.Tenant, error) {
	row := s.pool.QueryRow(ctx, tenantSelection+` WHERE slug = $1`, slug)
	return s.scanTenant(row)
}

// CreateTenant inserts a new tenant row. Slug and external site id carry
// unique constraints; callers retry with a different slug on conflict.
func (s *Store) CreateTenant(ctx context.Context, tenant *models.Tenant) error {
	now := time.Now().UTC()

	if tenant.CreatedAt.IsZero() {
		tenant.CreatedAt = now
	}

	tenant.UpdatedAt = now

	_, err := s.pool.Exec(ctx,
		`INSERT INTO tenants (id, name, slug, external_site_id, created_at, updated_at)
		 VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6)`,
		tenant.ID, tenant.Name, tenant.Slug, tenant.ExternalSiteID,
		tenant.CreatedAt, tenant.UpdatedAt)
	if err != nil {
		return fmt.Errorf("%w: tenant %s: %w", ErrFailedToInsert, tenant.Slug, err)
	}

	return nil
}

// UpdateTenantName refreshes the display name of an existing tenant.
// Identity fields (id, slug, external site id) are never rewritten.
func (s *Store) UpdateTenantName(ctx context.Context, tenantID, name string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE tenants SET name = $2, updated_at = $3 WHERE id = $1`,
		tenantID, name, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("%w: tenant %s: %w", ErrFailedToUpdate, tenantID, err)
	}

	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// ListSiteTenantMappings returns the external site id -> tenant id map
// consumed by agent ingestion.
func (s *Store) ListSiteTenantMappings(ctx context.Context) (map[string]string, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT external_site_id, id FROM tenants WHERE external_site_id IS NOT NULL`)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToQuery, err)
	}
	defer rows.Close()

	mapping := make(map[string]string)

	for rows.Next() {
		var siteID, tenantID string

		if err := rows.Scan(&siteID, &tenantID); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFailedToQuery, err)
		}

		mapping[siteID] = tenantID
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToQuery, err)
	}

	return mapping, nil
}
