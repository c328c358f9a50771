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
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/stackguard/edgesync/pkg/compliance"
	"github.com/stackguard/edgesync/pkg/db"
	"github.com/stackguard/edgesync/pkg/edr"
	"github.com/stackguard/edgesync/pkg/eol"
	"github.com/stackguard/edgesync/pkg/events"
	"github.com/stackguard/edgesync/pkg/logger"
	"github.com/stackguard/edgesync/pkg/models"
	"github.com/stackguard/edgesync/pkg/registry"
)

const defaultAgentPageSize = 100

var (
	// ErrNoSiteMapping means the site to tenant map is empty. This is a
	// configuration error surfaced before any job is opened.
	ErrNoSiteMapping = errors.New("no site to tenant mappings configured")

	errTooManyAgentPages = errors.New("agent pagination exceeded page ceiling")
)

// ProgressFunc is invoked after each ingested page with the page number
// and cumulative counters.
type ProgressFunc func(page, processed, created, updated int)

// Result is the aggregate outcome of one agent batch.
type Result struct {
	JobID     string
	Processed int
	Created   int
	Updated   int
	Skipped   int
	Failed    int
	PerTenant map[string]int
	Coverage  float64
	Duration  time.Duration
}

// AgentIngestionPipeline pages through the vendor agent listing and
// reconciles each record into the endpoint store. Per-record failures are
// counted, never fatal; upstream API failures abort the batch and fail
// the job.
type AgentIngestionPipeline struct {
	db        db.Service
	client    AgentClient
	lifecycle LifecycleProvider
	sources   registry.Manager
	publisher events.Publisher
	jobs      *JobTracker
	clock     Clock
	logger    logger.Logger
	pageSize  int
	maxPages  int
}

// NewAgentIngestionPipeline wires the pipeline. A nil publisher disables
// event emission; maxPages <= 0 leaves pagination unbounded.
func NewAgentIngestionPipeline(
	database db.Service,
	client AgentClient,
	lifecycle LifecycleProvider,
	sources registry.Manager,
	publisher events.Publisher,
	jobs *JobTracker,
	clock Clock,
	log logger.Logger,
	pageSize, maxPages int,
) *AgentIngestionPipeline {
	if clock == nil {
		clock = realClock{}
	}

	if publisher == nil {
		publisher = events.NoopPublisher{}
	}

	if pageSize <= 0 {
		pageSize = defaultAgentPageSize
	}

	return &AgentIngestionPipeline{
		db:        database,
		client:    client,
		lifecycle: lifecycle,
		sources:   sources,
		publisher: publisher,
		jobs:      jobs,
		clock:     clock,
		logger:    log,
		pageSize:  pageSize,
		maxPages:  maxPages,
	}
}

// SyncAgents runs one full agent batch. Re-running with identical upstream
// data produces zero net changes; every write is an upsert keyed on a
// stable composite key.
func (p *AgentIngestionPipeline) SyncAgents(ctx context.Context, progress ProgressFunc) (*Result, error) {
	started := p.clock.Now()

	mappings, err := p.db.ListSiteTenantMappings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load site mappings: %w", err)
	}

	if len(mappings) == 0 {
		return nil, ErrNoSiteMapping
	}

	policy := p.loadPolicy(ctx)
	cycles := p.loadLifecycleCycles(ctx)
	total := p.countAvailable(ctx)

	job, err := p.jobs.Begin(ctx, models.SourceTypeEDR)
	if err != nil {
		return nil, err
	}

	result := &Result{JobID: job.ID, PerTenant: make(map[string]int)}

	var runErr error

	// The job must reach a terminal state even when the batch panics or
	// the context is canceled mid-page.
	defer func() {
		if r := recover(); r != nil {
			p.jobs.Close(ctx, job, result.counters(), fmt.Errorf("agent batch panicked: %v", r))
			panic(r)
		}

		p.jobs.Close(ctx, job, result.counters(), runErr)
	}()

	runErr = p.ingestPages(ctx, mappings, policy, cycles, result, progress)

	result.Duration = p.clock.Now().Sub(started)

	if total > 0 {
		result.Coverage = float64(result.Processed) / float64(total) * 100
	}

	if runErr != nil {
		return nil, runErr
	}

	p.publishSyncCompleted(ctx, result)

	return result, nil
}

func (r *Result) counters() models.SyncJob {
	return models.SyncJob{
		RecordsProcessed: r.Processed,
		RecordsCreated:   r.Created,
		RecordsUpdated:   r.Updated,
		RecordsFailed:    r.Failed,
	}
}

// ingestPages follows the vendor cursor to completion, counting per-record
// outcomes. Only upstream API errors propagate.
func (p *AgentIngestionPipeline) ingestPages(
	ctx context.Context,
	mappings map[string]string,
	policy *models.CompliancePolicy,
	cycles []models.EOLCycle,
	result *Result,
	progress ProgressFunc,
) error {
	cursor := ""

	for page := 1; ; page++ {
		if p.maxPages > 0 && page > p.maxPages {
			return fmt.Errorf("%w: %d pages", errTooManyAgentPages, p.maxPages)
		}

		agentsPage, err := p.client.ListAgents(ctx, cursor, p.pageSize)
		if err != nil {
			return err
		}

		for i := range agentsPage.Data {
			agent := &agentsPage.Data[i]

			tenantID, ok := mappings[agent.SiteID]
			if !ok {
				result.Skipped++

				p.logger.Debug().
					Str("agent_id", agent.ID).
					Str("site_id", agent.SiteID).
					Msg("Agent site has no tenant mapping, skipping")

				continue
			}

			created, err := p.processAgent(ctx, agent, tenantID, policy, cycles)
			if err != nil {
				result.Failed++

				p.logger.Error().
					Err(err).
					Str("agent_id", agent.ID).
					Str("hostname", agent.ComputerName).
					Msg("Failed to process agent record")

				continue
			}

			result.Processed++
			result.PerTenant[tenantID]++

			if created {
				result.Created++
			} else {
				result.Updated++
			}
		}

		if progress != nil {
			progress(page, result.Processed, result.Created, result.Updated)
		}

		if agentsPage.Pagination.NextCursor == nil || *agentsPage.Pagination.NextCursor == "" {
			return nil
		}

		cursor = *agentsPage.Pagination.NextCursor
	}
}

// processAgent computes the compliance verdict for one record and upserts
// the endpoint, its source-ledger row, and the evaluation trail entry.
func (p *AgentIngestionPipeline) processAgent(
	ctx context.Context,
	agent *edr.Agent,
	tenantID string,
	policy *models.CompliancePolicy,
	cycles []models.EOLCycle,
) (bool, error) {
	now := p.clock.Now().UTC()

	health := compliance.ScoreAgentHealth(&compliance.AgentHealth{
		IsActive:                agent.IsActive,
		IsUpToDate:              agent.IsUpToDate,
		Infected:                agent.Infected,
		ActiveThreats:           agent.ActiveThreats,
		UserActionsNeeded:       agent.UserActionsNeeded,
		MissingPermissions:      agent.MissingPermissions,
		AppsVulnerabilityStatus: agent.AppsVulnerabilityStatus,
	})

	desc := compliance.ParseWindowsVersion(agent.OSName, agent.OSRevision, cycles)

	var eval *compliance.Evaluation
	if desc != nil && policy != nil {
		eval = compliance.EvaluatePolicy(desc, policy, cycles, now)
	}

	endpoint := buildEndpoint(agent, tenantID, health, desc, eval, now)

	created, err := p.db.UpsertEndpoint(ctx, endpoint)
	if err != nil {
		return false, err
	}

	rawPayload, err := json.Marshal(agent)
	if err != nil {
		return false, fmt.Errorf("failed to marshal agent payload: %w", err)
	}

	if err := p.sources.UpsertSource(ctx, endpoint.ID, agent, rawPayload, now); err != nil {
		return false, err
	}

	if eval != nil {
		record := &models.ComplianceEvaluation{
			EndpointID:      endpoint.ID,
			PolicyID:        policy.ID,
			EvaluatedAt:     now,
			MajorVersion:    desc.MajorVersion,
			FeatureUpdate:   desc.FeatureUpdate,
			Edition:         desc.Edition,
			BuildNumber:     desc.BuildNumber,
			IsCompliant:     eval.IsCompliant,
			Score:           eval.Score,
			FailureReasons:  eval.FailureReasons(),
			RequiredActions: eval.RequiredActions(),
		}

		if err := p.db.InsertEvaluation(ctx, record); err != nil {
			return false, err
		}
	}

	p.publishEndpointUpdated(ctx, endpoint, created, now)

	return created, nil
}

// buildEndpoint assembles the full endpoint snapshot. The stored score is
// the lower of the agent-health score and the policy score; the verdict
// requires both to pass.
func buildEndpoint(
	agent *edr.Agent,
	tenantID string,
	health *compliance.HealthScore,
	desc *models.VersionDescriptor,
	eval *compliance.Evaluation,
	now time.Time,
) *models.Endpoint {
	endpoint := &models.Endpoint{
		TenantID:        tenantID,
		Hostname:        agent.ComputerName,
		OSName:          agent.OSName,
		OSRevision:      agent.OSRevision,
		ComplianceScore: health.Score,
		IsCompliant:     health.IsCompliant,
		IsActive:        agent.IsActive,
		Infected:        agent.Infected,
		LastSeen:        now,
	}

	if agent.LastActiveDate != nil {
		endpoint.LastSeen = *agent.LastActiveDate
	}

	if desc != nil {
		endpoint.OSMajorVersion = desc.MajorVersion
		endpoint.FeatureUpdate = desc.FeatureUpdate
		endpoint.Edition = desc.Edition
		endpoint.BuildNumber = desc.BuildNumber
	}

	if eval != nil {
		if eval.Score < endpoint.ComplianceScore {
			endpoint.ComplianceScore = eval.Score
		}

		endpoint.IsCompliant = endpoint.IsCompliant && eval.IsCompliant
		endpoint.CriticalIssues = eval.SeverityCount(compliance.SeverityCritical)
		endpoint.HighIssues = eval.SeverityCount(compliance.SeverityHigh)
		endpoint.MediumIssues = eval.SeverityCount(compliance.SeverityMedium)
	}

	return endpoint
}

// loadPolicy fetches the active policy. No active policy downgrades the
// run to health-only scoring.
func (p *AgentIngestionPipeline) loadPolicy(ctx context.Context) *models.CompliancePolicy {
	policy, err := p.db.GetActivePolicy(ctx)
	if err != nil {
		if errors.Is(err, db.ErrNoActivePolicy) {
			p.logger.Warn().Msg("No active compliance policy, skipping policy evaluation")
		} else {
			p.logger.Error().Err(err).Msg("Failed to load active policy, skipping policy evaluation")
		}

		return nil
	}

	return policy
}

// loadLifecycleCycles collects the client and server registries into one
// slice; the parser filters by major version. Registry failures degrade
// to whatever categories are available.
func (p *AgentIngestionPipeline) loadLifecycleCycles(ctx context.Context) []models.EOLCycle {
	var cycles []models.EOLCycle

	for _, category := range []eol.Category{eol.CategoryClient, eol.CategoryServer} {
		reg, err := p.lifecycle.GetRegistry(ctx, category)
		if err != nil {
			p.logger.Warn().
				Err(err).
				Str("category", string(category)).
				Msg("Lifecycle registry unavailable")

			continue
		}

		if reg.Stale {
			p.logger.Warn().
				Str("category", string(category)).
				Time("fetched_at", reg.FetchedAt).
				Msg("Using stale lifecycle registry")
		}

		cycles = append(cycles, reg.Cycles...)
	}

	return cycles
}

func (p *AgentIngestionPipeline) countAvailable(ctx context.Context) int {
	total, err := p.client.CountAgents(ctx)
	if err != nil {
		p.logger.Warn().Err(err).Msg("Agent count pre-flight failed, coverage unavailable")

		return 0
	}

	return total
}

func (p *AgentIngestionPipeline) publishEndpointUpdated(ctx context.Context, endpoint *models.Endpoint, created bool, now time.Time) {
	err := p.publisher.PublishEndpointUpdated(ctx, &events.EndpointUpdatedData{
		EndpointID:      endpoint.ID,
		TenantID:        endpoint.TenantID,
		Hostname:        endpoint.Hostname,
		ComplianceScore: endpoint.ComplianceScore,
		IsCompliant:     endpoint.IsCompliant,
		Created:         created,
		Timestamp:       now,
	})
	if err != nil {
		p.logger.Warn().Err(err).Str("endpoint_id", endpoint.ID).Msg("Failed to publish endpoint event")
	}
}

func (p *AgentIngestionPipeline) publishSyncCompleted(ctx context.Context, result *Result) {
	err := p.publisher.PublishSyncCompleted(ctx, &events.SyncCompletedData{
		JobID:            result.JobID,
		Source:           string(models.SourceTypeEDR),
		Status:           string(models.JobStatusCompleted),
		RecordsProcessed: result.Processed,
		RecordsCreated:   result.Created,
		RecordsUpdated:   result.Updated,
		RecordsFailed:    result.Failed,
		RecordsSkipped:   result.Skipped,
		Coverage:         result.Coverage,
		Timestamp:        p.clock.Now().UTC(),
	})
	if err != nil {
		p.logger.Warn().Err(err).Str("job_id", result.JobID).Msg("Failed to publish sync event")
	}
}

// tenantBreakdown renders the per-tenant counters for logging.
func tenantBreakdown(perTenant map[string]int) string {
	if len(perTenant) == 0 {
		return ""
	}

	parts := make([]string, 0, len(perTenant))
	for tenantID, count := range perTenant {
		parts = append(parts, fmt.Sprintf("%s=%d", tenantID, count))
	}

	return strings.Join(parts, " ")
}
