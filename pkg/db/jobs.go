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

	"github.com/stackguard/edgesync/pkg/models"
)

// CreateSyncJob opens a job in RUNNING state.
func (s *Store) CreateSyncJob(ctx context.Context, job *models.SyncJob) error {
	if job.StartedAt.IsZero() {
		job.StartedAt = time.Now().UTC()
	}

	job.Status = models.JobStatusRunning

	_, err := s.pool.Exec(ctx,
		`INSERT INTO sync_jobs (id, tenant_id, source, status, started_at)
		 VALUES ($1, NULLIF($2, ''), $3, $4, $5)`,
		job.ID, job.TenantID, job.Source, job.Status, job.StartedAt)
	if err != nil {
		return fmt.Errorf("%w: sync job: %w", ErrFailedToInsert, err)
	}

	return nil
}

// CompleteSyncJob records a normal terminal transition with final counters.
// The status guard makes the transition happen at most once.
func (s *Store) CompleteSyncJob(ctx context.Context, jobID string, counters models.SyncJob) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE sync_jobs SET
			status = $2,
			completed_at = $3,
			records_processed = $4,
			records_created = $5,
			records_updated = $6,
			records_failed = $7
		 WHERE id = $1 AND status = $8`,
		jobID, models.JobStatusCompleted, time.Now().UTC(),
		counters.RecordsProcessed, counters.RecordsCreated,
		counters.RecordsUpdated, counters.RecordsFailed,
		models.JobStatusRunning)
	if err != nil {
		return fmt.Errorf("%w: complete job %s: %w", ErrFailedToUpdate, jobID, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrJobNotRunning, jobID)
	}

	return nil
}

// FailSyncJob records a failed terminal transition with the captured error.
func (s *Store) FailSyncJob(ctx context.Context, jobID, errorMessage string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE sync_jobs SET status = $2, completed_at = $3, error_message = $4
		 WHERE id = $1 AND status = $5`,
		jobID, models.JobStatusFailed, time.Now().UTC(), errorMessage,
		models.JobStatusRunning)
	if err != nil {
		return fmt.Errorf("%w: fail job %s: %w", ErrFailedToUpdate, jobID, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrJobNotRunning, jobID)
	}

	return nil
}
