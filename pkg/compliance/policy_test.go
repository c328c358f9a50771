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

package compliance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stackguard/edgesync/pkg/models"
)

var evalNow = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func eolDate(year, month, day int) models.FlexTime {
	return models.FlexTime{
		Time:  time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC),
		Valid: true,
	}
}

func TestEvaluatePolicyEmptyPolicyIsCompliant(t *testing.T) {
	desc := &models.VersionDescriptor{MajorVersion: "11", FeatureUpdate: "24H2", Edition: "Pro"}

	eval := EvaluatePolicy(desc, &models.CompliancePolicy{}, nil, evalNow)

	assert.True(t, eval.IsCompliant)
	assert.Equal(t, 100, eval.Score)
	assert.Empty(t, eval.Failures)
}

func TestEvaluatePolicyUnsupportedOSOverride(t *testing.T) {
	desc := &models.VersionDescriptor{MajorVersion: "11", FeatureUpdate: "22H2", Edition: "Pro"}
	policy := &models.CompliancePolicy{RequireSupported: true}
	cycles := []models.EOLCycle{
		{Cycle: "22H2", ReleaseLabel: "11 22H2", EOL: eolDate(2024, 10, 8)},
		{Cycle: "24H2", ReleaseLabel: "11 24H2", EOL: eolDate(2027, 10, 12)},
	}

	eval := EvaluatePolicy(desc, policy, cycles, evalNow)

	// Score stays above the health threshold, the verdict fails anyway.
	assert.Equal(t, 60, eval.Score)
	assert.False(t, eval.IsCompliant)
	assert.True(t, eval.CriticalUnsupported)
	assert.Equal(t, 1, eval.SeverityCount(SeverityCritical))
	require.Len(t, eval.Failures, 1)
	assert.Contains(t, eval.Failures[0].Reason, "end of life")
}

func TestEvaluatePolicySupportedCyclePasses(t *testing.T) {
	desc := &models.VersionDescriptor{MajorVersion: "11", FeatureUpdate: "24H2"}
	policy := &models.CompliancePolicy{RequireSupported: true}
	cycles := []models.EOLCycle{
		{Cycle: "24H2", ReleaseLabel: "11 24H2", EOL: eolDate(2027, 10, 12)},
	}

	eval := EvaluatePolicy(desc, policy, cycles, evalNow)

	assert.True(t, eval.IsCompliant)
	assert.Equal(t, 100, eval.Score)
}

func TestEvaluatePolicyRules(t *testing.T) {
	tests := []struct {
		name          string
		desc          models.VersionDescriptor
		policy        models.CompliancePolicy
		wantScore     int
		wantCompliant bool
		wantSeverity  Severity
	}{
		{
			name:          "version outside allow list",
			desc:          models.VersionDescriptor{MajorVersion: "10", FeatureUpdate: "22H2"},
			policy:        models.CompliancePolicy{AllowedVersions: []string{"11"}},
			wantScore:     70,
			wantCompliant: false,
			wantSeverity:  SeverityHigh,
		},
		{
			name:          "allow list match is case insensitive",
			desc:          models.VersionDescriptor{MajorVersion: "Server 2022"},
			policy:        models.CompliancePolicy{AllowedVersions: []string{"server 2022"}},
			wantScore:     100,
			wantCompliant: true,
		},
		{
			name:          "blocked version",
			desc:          models.VersionDescriptor{MajorVersion: "10"},
			policy:        models.CompliancePolicy{BlockedVersions: []string{"10"}},
			wantScore:     50,
			wantCompliant: false,
			wantSeverity:  SeverityHigh,
		},
		{
			name:          "feature update below minimum",
			desc:          models.VersionDescriptor{MajorVersion: "11", FeatureUpdate: "22H2"},
			policy:        models.CompliancePolicy{MinimumVersions: map[string]string{"11": "23H2"}},
			wantScore:     75,
			wantCompliant: false,
			wantSeverity:  SeverityMedium,
		},
		{
			name:          "feature update above minimum passes",
			desc:          models.VersionDescriptor{MajorVersion: "11", FeatureUpdate: "24H2"},
			policy:        models.CompliancePolicy{MinimumVersions: map[string]string{"11": "23H2"}},
			wantScore:     100,
			wantCompliant: true,
		},
		{
			name:          "minimum for another major does not apply",
			desc:          models.VersionDescriptor{MajorVersion: "10", FeatureUpdate: "21H2"},
			policy:        models.CompliancePolicy{MinimumVersions: map[string]string{"11": "23H2"}},
			wantScore:     100,
			wantCompliant: true,
		},
		{
			name:          "edition outside allow list",
			desc:          models.VersionDescriptor{MajorVersion: "11", Edition: "Home"},
			policy:        models.CompliancePolicy{AllowedEditions: []string{"Pro", "Enterprise"}},
			wantScore:     80,
			wantCompliant: false,
			wantSeverity:  SeverityMedium,
		},
		{
			name:          "blocked edition",
			desc:          models.VersionDescriptor{MajorVersion: "11", Edition: "Home"},
			policy:        models.CompliancePolicy{BlockedEditions: []string{"home"}},
			wantScore:     70,
			wantCompliant: false,
			wantSeverity:  SeverityMedium,
		},
		{
			name:          "stale build with latest-build requirement",
			desc:          models.VersionDescriptor{MajorVersion: "11", BuildNumber: 22621, IsLatestBuild: false},
			policy:        models.CompliancePolicy{RequireLatestBuild: true},
			wantScore:     80,
			wantCompliant: false,
			wantSeverity:  SeverityMedium,
		},
		{
			name:          "build age ceiling exceeded",
			desc:          models.VersionDescriptor{MajorVersion: "11", BuildsBehind: 3},
			policy:        models.CompliancePolicy{MaxBuildAgeDays: 2},
			wantScore:     85,
			wantCompliant: false,
			wantSeverity:  SeverityMedium,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eval := EvaluatePolicy(&tt.desc, &tt.policy, nil, evalNow)

			assert.Equal(t, tt.wantScore, eval.Score)
			assert.Equal(t, tt.wantCompliant, eval.IsCompliant)

			if tt.wantSeverity != "" {
				assert.Equal(t, 1, eval.SeverityCount(tt.wantSeverity))
			}
		})
	}
}

func TestEvaluatePolicyClampsStackedFailures(t *testing.T) {
	desc := &models.VersionDescriptor{MajorVersion: "10", FeatureUpdate: "21H2", Edition: "Home"}
	policy := &models.CompliancePolicy{
		AllowedVersions:    []string{"11"},
		BlockedVersions:    []string{"10"},
		MinimumVersions:    map[string]string{"10": "22H2"},
		BlockedEditions:    []string{"Home"},
		RequireLatestBuild: true,
	}

	eval := EvaluatePolicy(desc, policy, nil, evalNow)

	assert.Equal(t, 0, eval.Score)
	assert.False(t, eval.IsCompliant)
	assert.Len(t, eval.Failures, 5)
	assert.Len(t, eval.FailureReasons(), 5)
	assert.Len(t, eval.RequiredActions(), 5)
}
