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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/stackguard/edgesync/pkg/db"
	"github.com/stackguard/edgesync/pkg/logger"
	"github.com/stackguard/edgesync/pkg/models"
)

func TestJobTrackerBeginOpensRunningJob(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := db.NewMockService(ctrl)
	tracker := NewJobTracker(store, nil, logger.NewTestLogger())

	store.EXPECT().CreateSyncJob(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, job *models.SyncJob) error {
			assert.NotEmpty(t, job.ID)
			assert.Equal(t, models.SourceTypeEDR, job.Source)
			assert.Equal(t, models.JobStatusRunning, job.Status)
			assert.False(t, job.StartedAt.IsZero())

			return nil
		})

	job, err := tracker.Begin(context.Background(), models.SourceTypeEDR)
	require.NoError(t, err)
	assert.NotNil(t, job)
}

func TestJobTrackerBeginPropagatesStoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := db.NewMockService(ctrl)
	tracker := NewJobTracker(store, nil, logger.NewTestLogger())

	store.EXPECT().CreateSyncJob(gomock.Any(), gomock.Any()).Return(errStoreBroken)

	job, err := tracker.Begin(context.Background(), models.SourceTypeEDR)

	assert.Nil(t, job)
	require.ErrorIs(t, err, errStoreBroken)
}

func TestJobTrackerCloseCompletesWithCounters(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := db.NewMockService(ctrl)
	tracker := NewJobTracker(store, nil, logger.NewTestLogger())

	counters := models.SyncJob{RecordsProcessed: 10, RecordsCreated: 3, RecordsUpdated: 7}

	store.EXPECT().CompleteSyncJob(gomock.Any(), "job-1", counters).Return(nil)

	tracker.Close(context.Background(), &models.SyncJob{ID: "job-1"}, counters, nil)
}

func TestJobTrackerCloseFailsJobOnBatchError(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := db.NewMockService(ctrl)
	tracker := NewJobTracker(store, nil, logger.NewTestLogger())

	store.EXPECT().FailSyncJob(gomock.Any(), "job-1", "vendor api exploded").Return(nil)

	tracker.Close(context.Background(), &models.SyncJob{ID: "job-1"}, models.SyncJob{}, errUpstream)
}

func TestJobTrackerCloseDetachesFromCanceledContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := db.NewMockService(ctrl)
	tracker := NewJobTracker(store, nil, logger.NewTestLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store.EXPECT().FailSyncJob(gomock.Any(), "job-1", "context canceled").
		DoAndReturn(func(writeCtx context.Context, _, _ string) error {
			assert.NoError(t, writeCtx.Err(),
				"the terminal write must not inherit the batch cancellation")

			return nil
		})

	tracker.Close(ctx, &models.SyncJob{ID: "job-1"}, models.SyncJob{}, context.Canceled)
}

func TestJobTrackerCloseSwallowsTransitionFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := db.NewMockService(ctrl)
	tracker := NewJobTracker(store, nil, logger.NewTestLogger())

	store.EXPECT().CompleteSyncJob(gomock.Any(), "job-1", gomock.Any()).
		Return(db.ErrJobNotRunning)

	// Must not panic or propagate; the batch outcome already happened.
	tracker.Close(context.Background(), &models.SyncJob{ID: "job-1"}, models.SyncJob{}, nil)
}
