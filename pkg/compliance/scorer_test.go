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
)

func TestScoreAgentHealth(t *testing.T) {
	tests := []struct {
		name          string
		health        AgentHealth
		wantScore     int
		wantCompliant bool
	}{
		{
			name:          "healthy agent scores full marks",
			health:        AgentHealth{IsActive: true, IsUpToDate: true},
			wantScore:     100,
			wantCompliant: true,
		},
		{
			name:          "out of date agent stays compliant at the threshold",
			health:        AgentHealth{IsActive: true, IsUpToDate: false, MissingPermissions: []string{"full_disk_access"}},
			wantScore:     80,
			wantCompliant: true,
		},
		{
			name:          "infected agent is never compliant",
			health:        AgentHealth{IsActive: true, IsUpToDate: true, Infected: true},
			wantScore:     60,
			wantCompliant: false,
		},
		{
			name:          "threat deduction is capped",
			health:        AgentHealth{IsActive: true, IsUpToDate: true, ActiveThreats: 9},
			wantScore:     70,
			wantCompliant: false,
		},
		{
			name: "worst case clamps to zero",
			health: AgentHealth{
				IsActive:      false,
				IsUpToDate:    false,
				Infected:      true,
				ActiveThreats: 5,
			},
			wantScore:     0,
			wantCompliant: false,
		},
		{
			name:          "vulnerable apps deduct more than pending updates",
			health:        AgentHealth{IsActive: true, IsUpToDate: true, AppsVulnerabilityStatus: "vulnerable"},
			wantScore:     80,
			wantCompliant: true,
		},
		{
			name:          "apps pending patches",
			health:        AgentHealth{IsActive: true, IsUpToDate: true, AppsVulnerabilityStatus: "patch_required"},
			wantScore:     85,
			wantCompliant: true,
		},
		{
			name: "user actions stack per item",
			health: AgentHealth{
				IsActive:          true,
				IsUpToDate:        true,
				UserActionsNeeded: []string{"reboot_needed", "upgrade_needed", "user_action_needed"},
			},
			wantScore:     76,
			wantCompliant: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScoreAgentHealth(&tt.health)

			assert.Equal(t, tt.wantScore, got.Score)
			assert.Equal(t, tt.wantCompliant, got.IsCompliant)
			assert.GreaterOrEqual(t, got.Score, 0)
			assert.LessOrEqual(t, got.Score, 100)
		})
	}
}

func TestScoreAgentHealthRecordsDeductions(t *testing.T) {
	got := ScoreAgentHealth(&AgentHealth{
		IsActive:      false,
		IsUpToDate:    true,
		ActiveThreats: 2,
	})

	assert.Len(t, got.Deductions, 2)
	assert.Equal(t, 55, got.Score)
}
