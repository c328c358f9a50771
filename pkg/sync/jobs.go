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

package sync

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/stackguard/edgesync/pkg/db"
	"github.com/stackguard/edgesync/pkg/logger"
	"github.com/stackguard/edgesync/pkg/models"
)

// JobTracker opens sync jobs and guarantees a terminal transition. A job
// that is opened must be closed exactly once; the storage-level status
// guard makes a second close a no-op.
type JobTracker struct {
	db     db.Service
	clock  Clock
	logger logger.Logger
}

// NewJobTracker builds a tracker over the given store.
func NewJobTracker(database db.Service, clock Clock, log logger.Logger) *JobTracker {
	if clock == nil {
		clock = realClock{}
	}

	return &JobTracker{
		db:     database,
		clock:  clock,
		logger: log,
	}
}

// Begin opens a RUNNING job for the given source.
func (t *JobTracker) Begin(ctx context.Context, source models.SourceType) (*models.SyncJob, error) {
	job := &models.SyncJob{
		ID:        uuid.New().String(),
		Source:    source,
		Status:    models.JobStatusRunning,
		StartedAt: t.clock.Now().UTC(),
	}

	if err := t.db.CreateSyncJob(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to open sync job: %w", err)
	}

	t.logger.Info().
		Str("job_id", job.ID).
		Str("source", string(source)).
		Msg("Opened sync job")

	return job, nil
}

// Close transitions the job to COMPLETED with final counters, or FAILED
// with the batch error message. Intended for defer; transition failures
// are logged rather than propagated so they cannot mask the batch error.
func (t *JobTracker) Close(ctx context.Context, job *models.SyncJob, counters models.SyncJob, runErr error) {
	// The batch context may already be canceled, and cancellation is the
	// most common reason the batch failed. The terminal write must still
	// land.
	ctx = context.WithoutCancel(ctx)

	if runErr != nil {
		if err := t.db.FailSyncJob(ctx, job.ID, runErr.Error()); err != nil {
			t.logger.Error().Err(err).Str("job_id", job.ID).Msg("Failed to mark sync job FAILED")
		}

		return
	}

	if err := t.db.CompleteSyncJob(ctx, job.ID, counters); err != nil {
		t.logger.Error().Err(err).Str("job_id", job.ID).Msg("Failed to mark sync job COMPLETED")

		return
	}

	t.logger.Info().
		Str("job_id", job.ID).
		Int("processed", counters.RecordsProcessed).
		Int("created", counters.RecordsCreated).
		Int("updated", counters.RecordsUpdated).
		Int("failed", counters.RecordsFailed).
		Msg("Completed sync job")
}
