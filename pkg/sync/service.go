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

// Package sync drives the vendor inventory ingestion and compliance
// evaluation engine.
package sync

import (
	"context"
	"time"

	"github.com/stackguard/edgesync/pkg/logger"
)

// SyncService runs the full sync cycle on a fixed interval. One cycle is
// sites first, then agents, so freshly discovered sites are mapped before
// their agents arrive.
type SyncService struct {
	config   *Config
	mapper   *SiteTenantMapper
	pipeline *AgentIngestionPipeline
	clock    Clock
	logger   logger.Logger
	stop     chan struct{}
}

// NewSyncService validates the config and wires the service.
func NewSyncService(
	config *Config,
	mapper *SiteTenantMapper,
	pipeline *AgentIngestionPipeline,
	clock Clock,
	log logger.Logger,
) (*SyncService, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	if clock == nil {
		clock = realClock{}
	}

	return &SyncService{
		config:   config,
		mapper:   mapper,
		pipeline: pipeline,
		clock:    clock,
		logger:   log,
		stop:     make(chan struct{}),
	}, nil
}

// Start runs an immediate cycle, then re-runs on the poll interval until
// the context is canceled or Stop is called.
func (s *SyncService) Start(ctx context.Context) error {
	interval := time.Duration(s.config.PollInterval)

	s.logger.Info().Dur("interval", interval).Msg("Sync service started")

	s.runCycle(ctx)

	ticker := s.clock.Ticker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.stop:
			return nil
		case <-ticker.Chan():
			s.runCycle(ctx)
		}
	}
}

// Stop signals the poll loop to exit after the current cycle.
func (s *SyncService) Stop() {
	close(s.stop)
}

// RunOnce executes a single sync cycle. Exposed for one-shot invocations.
func (s *SyncService) RunOnce(ctx context.Context) error {
	if _, err := s.mapper.SyncSitesToTenants(ctx); err != nil {
		return err
	}

	_, err := s.pipeline.SyncAgents(ctx, s.logProgress)

	return err
}

func (s *SyncService) runCycle(ctx context.Context) {
	started := s.clock.Now()

	if _, err := s.mapper.SyncSitesToTenants(ctx); err != nil {
		s.logger.Error().Err(err).Msg("Site reconciliation failed, skipping agent sync")

		return
	}

	result, err := s.pipeline.SyncAgents(ctx, s.logProgress)
	if err != nil {
		s.logger.Error().Err(err).Msg("Agent sync failed")

		return
	}

	s.logger.Info().
		Str("job_id", result.JobID).
		Int("processed", result.Processed).
		Int("created", result.Created).
		Int("updated", result.Updated).
		Int("skipped", result.Skipped).
		Int("failed", result.Failed).
		Float64("coverage_pct", result.Coverage).
		Str("per_tenant", tenantBreakdown(result.PerTenant)).
		Dur("elapsed", s.clock.Now().Sub(started)).
		Msg("Sync cycle finished")
}

func (s *SyncService) logProgress(page, processed, created, updated int) {
	s.logger.Debug().
		Int("page", page).
		Int("processed", processed).
		Int("created", created).
		Int("updated", updated).
		Msg("Ingested agent page")
}
