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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stackguard/edgesync/pkg/models"
)

func windows11Cycles() []models.EOLCycle {
	return []models.EOLCycle{
		{Cycle: "24H2", ReleaseLabel: "11 24H2", Latest: "26100"},
		{Cycle: "23H2", ReleaseLabel: "11 23H2", Latest: "22631"},
		{Cycle: "22H2", ReleaseLabel: "11 22H2", Latest: "22621"},
	}
}

func TestParseWindowsVersion(t *testing.T) {
	tests := []struct {
		name       string
		osName     string
		osRevision string
		want       *models.VersionDescriptor
	}{
		{
			name:       "windows 11 pro with resolvable build",
			osName:     "Windows 11 Pro 23H2",
			osRevision: "22631",
			want: &models.VersionDescriptor{
				MajorVersion:  "11",
				FeatureUpdate: "23H2",
				Edition:       "Pro",
				BuildNumber:   22631,
				IsLatestBuild: false,
				BuildsBehind:  1,
			},
		},
		{
			name:       "windows 11 enterprise on latest build",
			osName:     "Windows 11 Enterprise",
			osRevision: "26100",
			want: &models.VersionDescriptor{
				MajorVersion:  "11",
				FeatureUpdate: "24H2",
				Edition:       "Enterprise",
				BuildNumber:   26100,
				IsLatestBuild: true,
				BuildsBehind:  0,
			},
		},
		{
			name:       "dotted revision picks the build segment",
			osName:     "Windows 11 Pro",
			osRevision: "10.0.22631.3007",
			want: &models.VersionDescriptor{
				MajorVersion:  "11",
				FeatureUpdate: "23H2",
				Edition:       "Pro",
				BuildNumber:   22631,
				IsLatestBuild: false,
				BuildsBehind:  1,
			},
		},
		{
			name:       "server release",
			osName:     "Windows Server 2019 Datacenter",
			osRevision: "17763",
			want: &models.VersionDescriptor{
				MajorVersion: "Server 2019",
				Edition:      "Server",
				BuildNumber:  17763,
			},
		},
		{
			name:       "non-windows returns nil",
			osName:     "Ubuntu 22.04.3 LTS",
			osRevision: "5.15.0-91",
			want:       nil,
		},
		{
			name:       "unparseable windows version returns nil",
			osName:     "Windows CE",
			osRevision: "",
			want:       nil,
		},
		{
			name:       "empty revision keeps zero build",
			osName:     "Windows 10 Home",
			osRevision: "",
			want: &models.VersionDescriptor{
				MajorVersion: "10",
				Edition:      "Home",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseWindowsVersion(tt.osName, tt.osRevision, windows11Cycles())

			if tt.want == nil {
				assert.Nil(t, got)
				return
			}

			require.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseWindowsVersionIgnoresForeignMajorCycles(t *testing.T) {
	// The Windows 10 1511 cycle carries "11" as a substring; it must not be
	// counted toward the Windows 11 lineage.
	cycles := append(windows11Cycles(), models.EOLCycle{
		Cycle: "10-1511", ReleaseLabel: "10 1511", Latest: "27000",
	})

	got := ParseWindowsVersion("Windows 11 Enterprise", "26100", cycles)

	require.NotNil(t, got)
	assert.Equal(t, "24H2", got.FeatureUpdate)
	assert.True(t, got.IsLatestBuild)
	assert.Zero(t, got.BuildsBehind)
}

func TestParseWindowsVersionWithoutCycles(t *testing.T) {
	got := ParseWindowsVersion("Windows 11 Pro", "22631", nil)

	require.NotNil(t, got)
	assert.Equal(t, "11", got.MajorVersion)
	assert.Empty(t, got.FeatureUpdate)
	assert.False(t, got.IsLatestBuild)
}

func TestCompareFeatureUpdates(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		sign int
	}{
		{"newer year wins", "24H2", "23H2", 1},
		{"older year loses", "22H2", "23H1", -1},
		{"same year second half wins", "23H2", "23H1", 1},
		{"equal labels", "23H2", "23H2", 0},
		{"unparseable sorts lowest", "", "22H1", -1},
		{"both unparseable equal", "n/a", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CompareFeatureUpdates(tt.a, tt.b)

			switch {
			case tt.sign > 0:
				assert.Positive(t, got)
			case tt.sign < 0:
				assert.Negative(t, got)
			default:
				assert.Zero(t, got)
			}
		})
	}
}
