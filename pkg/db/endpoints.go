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
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/stackguard/edgesync/pkg/models"
)

// UpsertEndpoint inserts or refreshes the endpoint row keyed on
// (tenant_id, hostname). Each upsert carries a full fresh snapshot, so
// last write wins across pages. The returned flag reports whether a new
// row was created; endpoint.ID is set to the stored row id either way.
func (s *Store) UpsertEndpoint(ctx context.Context, endpoint *models.Endpoint) (bool, error) {
	now := time.Now().UTC()

	if endpoint.ID == "" {
		endpoint.ID = uuid.New().String()
	}

	if endpoint.FirstSeen.IsZero() {
		endpoint.FirstSeen = now
	}

	endpoint.UpdatedAt = now

	// xmax = 0 only holds for freshly inserted tuples, which distinguishes
	// created from updated without a second round trip.
	row := s.pool.QueryRow(ctx,
		`INSERT INTO endpoints (
			id, tenant_id, hostname,
			os_name, os_revision, os_major_version, feature_update, edition, build_number,
			compliance_score, is_compliant, critical_issues, high_issues, medium_issues,
			is_active, infected, last_seen, first_seen, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
		ON CONFLICT (tenant_id, hostname) DO UPDATE SET
			os_name = EXCLUDED.os_name,
			os_revision = EXCLUDED.os_revision,
			os_major_version = EXCLUDED.os_major_version,
			feature_update = EXCLUDED.feature_update,
			edition = EXCLUDED.edition,
			build_number = EXCLUDED.build_number,
			compliance_score = EXCLUDED.compliance_score,
			is_compliant = EXCLUDED.is_compliant,
			critical_issues = EXCLUDED.critical_issues,
			high_issues = EXCLUDED.high_issues,
			medium_issues = EXCLUDED.medium_issues,
			is_active = EXCLUDED.is_active,
			infected = EXCLUDED.infected,
			last_seen = EXCLUDED.last_seen,
			updated_at = EXCLUDED.updated_at
		RETURNING id, (xmax = 0)`,
		endpoint.ID, endpoint.TenantID, endpoint.Hostname,
		endpoint.OSName, endpoint.OSRevision, endpoint.OSMajorVersion,
		endpoint.FeatureUpdate, endpoint.Edition, endpoint.BuildNumber,
		endpoint.ComplianceScore, endpoint.IsCompliant,
		endpoint.CriticalIssues, endpoint.HighIssues, endpoint.MediumIssues,
		endpoint.IsActive, endpoint.Infected,
		endpoint.LastSeen, endpoint.FirstSeen, endpoint.UpdatedAt)

	var created bool

	if err := row.Scan(&endpoint.ID, &created); err != nil {
		return false, fmt.Errorf("%w: endpoint %s: %w", ErrFailedToInsert, endpoint.Hostname, err)
	}

	return created, nil
}
