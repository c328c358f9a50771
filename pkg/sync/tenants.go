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
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/stackguard/edgesync/pkg/db"
	"github.com/stackguard/edgesync/pkg/edr"
	"github.com/stackguard/edgesync/pkg/logger"
	"github.com/stackguard/edgesync/pkg/models"
)

const (
	slugMaxLength     = 48
	slugProbeAttempts = 10
)

// SiteAction records what the mapper did for one vendor site.
type SiteAction string

const (
	SiteActionCreated SiteAction = "created"
	SiteActionUpdated SiteAction = "updated"
	SiteActionMatched SiteAction = "matched"
	SiteActionSkipped SiteAction = "skipped"
)

// SiteResult is the per-site action log entry for one mapping run.
type SiteResult struct {
	SiteID   string
	SiteName string
	TenantID string
	Action   SiteAction
}

// SiteTenantMapper reconciles vendor sites onto internal tenants. Tenant
// identity is keyed on the external site id; only the display name is
// refreshed on resync.
type SiteTenantMapper struct {
	db     db.Service
	client SiteClient
	clock  Clock
	logger logger.Logger
}

// NewSiteTenantMapper builds a mapper over the given store and vendor client.
func NewSiteTenantMapper(database db.Service, client SiteClient, clock Clock, log logger.Logger) *SiteTenantMapper {
	if clock == nil {
		clock = realClock{}
	}

	return &SiteTenantMapper{
		db:     database,
		client: client,
		clock:  clock,
		logger: log,
	}
}

// SyncSitesToTenants pages through all vendor sites and ensures each maps
// onto exactly one tenant. Per-site failures are logged and counted as
// skipped; they never abort the run.
func (m *SiteTenantMapper) SyncSitesToTenants(ctx context.Context) ([]SiteResult, error) {
	sites, err := m.client.FetchAllSites(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch vendor sites: %w", err)
	}

	results := make([]SiteResult, 0, len(sites))

	for i := range sites {
		site := &sites[i]

		result, err := m.reconcileSite(ctx, site)
		if err != nil {
			m.logger.Error().
				Err(err).
				Str("site_id", site.ID).
				Str("site_name", site.Name).
				Msg("Failed to reconcile site, skipping")

			results = append(results, SiteResult{
				SiteID:   site.ID,
				SiteName: site.Name,
				Action:   SiteActionSkipped,
			})

			continue
		}

		results = append(results, *result)
	}

	m.logSummary(results)

	return results, nil
}

// SiteTenantMapping returns the current siteID to tenantID map.
func (m *SiteTenantMapper) SiteTenantMapping(ctx context.Context) (map[string]string, error) {
	return m.db.ListSiteTenantMappings(ctx)
}

func (m *SiteTenantMapper) reconcileSite(ctx context.Context, site *edr.Site) (*SiteResult, error) {
	tenant, err := m.db.GetTenantByExternalSiteID(ctx, site.ID)

	switch {
	case err == nil:
		action := SiteActionMatched

		if tenant.Name != site.Name {
			if err := m.db.UpdateTenantName(ctx, tenant.ID, site.Name); err != nil {
				return nil, err
			}

			action = SiteActionUpdated
		}

		return &SiteResult{SiteID: site.ID, SiteName: site.Name, TenantID: tenant.ID, Action: action}, nil

	case errors.Is(err, db.ErrNotFound):
		return m.createTenant(ctx, site)

	default:
		return nil, err
	}
}

func (m *SiteTenantMapper) createTenant(ctx context.Context, site *edr.Site) (*SiteResult, error) {
	slug, err := m.uniqueSlug(ctx, site.Name)
	if err != nil {
		return nil, err
	}

	tenant := &models.Tenant{
		ID:             uuid.New().String(),
		Name:           site.Name,
		Slug:           slug,
		ExternalSiteID: site.ID,
	}

	if err := m.db.CreateTenant(ctx, tenant); err != nil {
		return nil, err
	}

	m.logger.Info().
		Str("site_id", site.ID).
		Str("tenant_id", tenant.ID).
		Str("slug", slug).
		Msg("Created tenant for new site")

	return &SiteResult{SiteID: site.ID, SiteName: site.Name, TenantID: tenant.ID, Action: SiteActionCreated}, nil
}

// uniqueSlug probes the store for a free slug, suffixing a counter on
// collision. The probe is bounded; exhaustion falls back to a timestamp
// suffix, which is unique enough for the create to succeed.
func (m *SiteTenantMapper) uniqueSlug(ctx context.Context, name string) (string, error) {
	base := slugify(name)
	candidate := base

	for attempt := 1; attempt <= slugProbeAttempts; attempt++ {
		_, err := m.db.GetTenantBySlug(ctx, candidate)
		if errors.Is(err, db.ErrNotFound) {
			return candidate, nil
		}

		if err != nil {
			return "", err
		}

		candidate = fmt.Sprintf("%s-%d", base, attempt)
	}

	return base + "-" + strconv.FormatInt(m.clock.Now().Unix(), 10), nil
}

func (m *SiteTenantMapper) logSummary(results []SiteResult) {
	counts := make(map[SiteAction]int, 4)
	for i := range results {
		counts[results[i].Action]++
	}

	m.logger.Info().
		Int("sites", len(results)).
		Int("created", counts[SiteActionCreated]).
		Int("updated", counts[SiteActionUpdated]).
		Int("matched", counts[SiteActionMatched]).
		Int("skipped", counts[SiteActionSkipped]).
		Msg("Reconciled vendor sites")
}

// slugify lowercases the name, collapses non-alphanumeric runs into single
// hyphens, and truncates to the slug length cap.
func slugify(name string) string {
	var b strings.Builder

	lastHyphen := true // suppress leading hyphen

	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)

			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')

				lastHyphen = true
			}
		}
	}

	slug := strings.TrimSuffix(b.String(), "-")
	if len(slug) > slugMaxLength {
		slug = strings.TrimSuffix(slug[:slugMaxLength], "-")
	}

	if slug == "" {
		slug = "site"
	}

	return slug
}
