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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/stackguard/edgesync/pkg/db"
	"github.com/stackguard/edgesync/pkg/edr"
	"github.com/stackguard/edgesync/pkg/logger"
	"github.com/stackguard/edgesync/pkg/models"
)

var errStoreBroken = errors.New("store broken")

type fakeSiteClient struct {
	sites []edr.Site
	err   error
}

func (f *fakeSiteClient) FetchAllSites(context.Context) ([]edr.Site, error) {
	return f.sites, f.err
}

func newMapper(t *testing.T, client SiteClient) (*SiteTenantMapper, *db.MockService) {
	t.Helper()

	ctrl := gomock.NewController(t)
	store := db.NewMockService(ctrl)

	return NewSiteTenantMapper(store, client, nil, logger.NewTestLogger()), store
}

func TestSyncSitesToTenantsCreatesWithUniqueSlug(t *testing.T) {
	client := &fakeSiteClient{sites: []edr.Site{{ID: "s1", Name: "Acme Corp"}}}
	mapper, store := newMapper(t, client)

	store.EXPECT().GetTenantByExternalSiteID(gomock.Any(), "s1").
		Return(nil, db.ErrNotFound)
	// First slug candidate is taken, the probe suffixes a counter.
	store.EXPECT().GetTenantBySlug(gomock.Any(), "acme-corp").
		Return(&models.Tenant{ID: "other"}, nil)
	store.EXPECT().GetTenantBySlug(gomock.Any(), "acme-corp-1").
		Return(nil, db.ErrNotFound)
	store.EXPECT().CreateTenant(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tenant *models.Tenant) error {
			assert.Equal(t, "acme-corp-1", tenant.Slug)
			assert.Equal(t, "Acme Corp", tenant.Name)
			assert.Equal(t, "s1", tenant.ExternalSiteID)
			assert.NotEmpty(t, tenant.ID)

			return nil
		})

	results, err := mapper.SyncSitesToTenants(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, SiteActionCreated, results[0].Action)
	assert.NotEmpty(t, results[0].TenantID)
}

func TestSyncSitesToTenantsMatchesAndUpdates(t *testing.T) {
	client := &fakeSiteClient{sites: []edr.Site{
		{ID: "s1", Name: "Acme Corp"},
		{ID: "s2", Name: "Globex Renamed"},
	}}
	mapper, store := newMapper(t, client)

	store.EXPECT().GetTenantByExternalSiteID(gomock.Any(), "s1").
		Return(&models.Tenant{ID: "t1", Name: "Acme Corp"}, nil)
	store.EXPECT().GetTenantByExternalSiteID(gomock.Any(), "s2").
		Return(&models.Tenant{ID: "t2", Name: "Globex"}, nil)
	store.EXPECT().UpdateTenantName(gomock.Any(), "t2", "Globex Renamed").
		Return(nil)

	results, err := mapper.SyncSitesToTenants(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, SiteActionMatched, results[0].Action)
	assert.Equal(t, "t1", results[0].TenantID)
	assert.Equal(t, SiteActionUpdated, results[1].Action)
}

func TestSyncSitesToTenantsSkipsFailedSite(t *testing.T) {
	client := &fakeSiteClient{sites: []edr.Site{
		{ID: "s1", Name: "Broken Site"},
		{ID: "s2", Name: "Good Site"},
	}}
	mapper, store := newMapper(t, client)

	store.EXPECT().GetTenantByExternalSiteID(gomock.Any(), "s1").
		Return(nil, errStoreBroken)
	store.EXPECT().GetTenantByExternalSiteID(gomock.Any(), "s2").
		Return(&models.Tenant{ID: "t2", Name: "Good Site"}, nil)

	results, err := mapper.SyncSitesToTenants(context.Background())
	require.NoError(t, err, "per-site failures must not abort the run")
	require.Len(t, results, 2)
	assert.Equal(t, SiteActionSkipped, results[0].Action)
	assert.Equal(t, SiteActionMatched, results[1].Action)
}

func TestSyncSitesToTenantsVendorFailure(t *testing.T) {
	client := &fakeSiteClient{err: errStoreBroken}
	mapper, _ := newMapper(t, client)

	results, err := mapper.SyncSitesToTenants(context.Background())

	assert.Nil(t, results)
	require.Error(t, err)
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"spaces and case", "Acme Corp", "acme-corp"},
		{"punctuation collapses", "Acme, Inc. (EU)", "acme-inc-eu"},
		{"leading and trailing junk", "--Weird__Name--", "weird-name"},
		{"already clean", "plant7", "plant7"},
		{"empty falls back", "!!!", "site"},
		{
			"long name truncates without trailing hyphen",
			"A Very Long Organization Name That Goes On And On Forever",
			"a-very-long-organization-name-that-goes-on-and-o",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := slugify(tt.in)

			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, len(got), slugMaxLength)
		})
	}
}
