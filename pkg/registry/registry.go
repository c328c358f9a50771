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

// Package registry maintains the per-endpoint ledger of vendor sources.
package registry

import (
	"context"
	"encoding/json"
	"time"

	"github.com/stackguard/edgesync/pkg/db"
	"github.com/stackguard/edgesync/pkg/logger"
	"github.com/stackguard/edgesync/pkg/models"
)

// Manager records which vendor feeds have contributed to an endpoint.
type Manager interface {
	UpsertSource(ctx context.Context, endpointID string, record models.SourceRecord, rawPayload json.RawMessage, syncedAt time.Time) error
	Sources(ctx context.Context, endpointID string) ([]*models.EndpointSource, error)
}

// MultiSourceRegistry is the storage-backed Manager. It decouples which
// feed created an endpoint from which feed last updated it, so a second
// vendor can be added without rewriting ingestion.
type MultiSourceRegistry struct {
	db     db.Service
	logger logger.Logger
}

// NewMultiSourceRegistry builds a registry over the given store.
func NewMultiSourceRegistry(database db.Service, log logger.Logger) *MultiSourceRegistry {
	return &MultiSourceRegistry{
		db:     database,
		logger: log,
	}
}

// UpsertSource writes the (endpoint, source) ledger row, refreshing the
// sync timestamp and raw payload. Only the canonical EDR feed is marked
// primary; other sources stay non-primary until a merge policy exists.
func (r *MultiSourceRegistry) UpsertSource(
	ctx context.Context,
	endpointID string,
	record models.SourceRecord,
	rawPayload json.RawMessage,
	syncedAt time.Time,
) error {
	source := &models.EndpointSource{
		EndpointID:     endpointID,
		SourceType:     record.Source(),
		SourceRecordID: record.RecordID(),
		IsPrimary:      record.Source() == models.SourceTypeEDR,
		LastSynced:     syncedAt,
		RawPayload:     rawPayload,
	}

	if err := r.db.UpsertEndpointSource(ctx, source); err != nil {
		return err
	}

	r.logger.Debug().
		Str("endpoint_id", endpointID).
		Str("source_type", string(source.SourceType)).
		Bool("is_primary", source.IsPrimary).
		Msg("Upserted endpoint source")

	return nil
}

// Sources lists the ledger rows for an endpoint.
func (r *MultiSourceRegistry) Sources(ctx context.Context, endpointID string) ([]*models.EndpointSource, error) {
	return r.db.ListEndpointSources(ctx, endpointID)
}
