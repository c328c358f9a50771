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

	"github.com/stackguard/edgesync/pkg/models"
)

// UpsertEndpointSource inserts or refreshes the (endpoint, source) ledger
// row. When the row is primary, every other source on the same endpoint is
// demoted in the same transaction, keeping the at-most-one-primary
// invariant under concurrent writers.
func (s *Store) UpsertEndpointSource(ctx context.Context, source *models.EndpointSource) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFailedToInsert, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if source.IsPrimary {
		_, err = tx.Exec(ctx,
			`UPDATE endpoint_sources SET is_primary = FALSE
			 WHERE endpoint_id = $1 AND source_type <> $2 AND is_primary`,
			source.EndpointID, source.SourceType)
		if err != nil {
			return fmt.Errorf("%w: demote primaries for endpoint %s: %w",
				ErrFailedToUpdate, source.EndpointID, err)
		}
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO endpoint_sources (
			endpoint_id, source_type, source_record_id, is_primary, last_synced, raw_payload
		) VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (endpoint_id, source_type) DO UPDATE SET
			source_record_id = EXCLUDED.source_record_id,
			is_primary = EXCLUDED.is_primary,
			last_synced = EXCLUDED.last_synced,
			raw_payload = EXCLUDED.raw_payload`,
		source.EndpointID, source.SourceType, source.SourceRecordID,
		source.IsPrimary, source.LastSynced, source.RawPayload)
	if err != nil {
		return fmt.Errorf("%w: source %s/%s: %w",
			ErrFailedToInsert, source.EndpointID, source.SourceType, err)
	}

	return tx.Commit(ctx)
}

// ListEndpointSources returns the source ledger for one endpoint.
func (s *Store) ListEndpointSources(ctx context.Context, endpointID string) ([]*models.EndpointSource, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT endpoint_id, source_type, source_record_id, is_primary, last_synced, raw_payload
		 FROM endpoint_sources WHERE endpoint_id = $1
		 ORDER BY source_type`,
		endpointID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToQuery, err)
	}
	defer rows.Close()

	var sources []*models.EndpointSource

	for rows.Next() {
		var src models.EndpointSource

		err := rows.Scan(&src.EndpointID, &src.SourceType, &src.SourceRecordID,
			&src.IsPrimary, &src.LastSynced, &src.RawPayload)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFailedToQuery, err)
		}

		sources = append(sources, &src)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToQuery, err)
	}

	return sources, nil
}
