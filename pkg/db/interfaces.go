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

//go:generate mockgen -destination=mock_db.go -package=db github.com/stackguard/edgesync/pkg/db Service

package db

import (
	"context"

	"github.com/stackguard/edgesync/pkg/models"
)

// Service is the storage contract the sync engine reads and writes.
type Service interface {
	// Tenants.
	GetTenantByExternalSiteID(ctx context.Context, siteID string) (*models.Tenant, error)
	GetTenantBySlug(ctx context.Context, slug string) (*models.Tenant, error)
	CreateTenant(ctx context.Context, tenant *models.Tenant) error
	UpdateTenantName(ctx context.Context, tenantID, name string) error
	ListSiteTenantMappings(ctx context.Context) (map[string]string, error)

	// Endpoints. UpsertEndpoint is keyed on (tenant_id, hostname) and
	// reports whether the row was created or updated.
	UpsertEndpoint(ctx context.Context, endpoint *models.Endpoint) (created bool, err error)

	// Endpoint sources.
	UpsertEndpointSource(ctx context.Context, source *models.EndpointSource) error
	ListEndpointSources(ctx context.Context, endpointID string) ([]*models.EndpointSource, error)

	// Sync jobs.
	CreateSyncJob(ctx context.Context, job *models.SyncJob) error
	CompleteSyncJob(ctx context.Context, jobID string, counters models.SyncJob) error
	FailSyncJob(ctx context.Context, jobID, errorMessage string) error

	// Policies and evaluations.
	GetActivePolicy(ctx context.Context) (*models.CompliancePolicy, error)
	InsertEvaluation(ctx context.Context, eval *models.ComplianceEvaluation) error

	Close()
}
