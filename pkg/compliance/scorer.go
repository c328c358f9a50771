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

import "fmt"

const (
	maxScore = 100

	deductionInactive        = 25
	deductionNotUpToDate     = 15
	deductionInfected        = 40
	deductionPerThreat       = 10
	deductionThreatCap       = 30
	deductionPerUserAction   = 8
	deductionPerMissingPerm  = 5
	deductionAppsNeedUpdate  = 15
	deductionAppsVulnerable  = 20
	healthCompliantThreshold = 80

	appsStatusNeedsUpdate = "patch_required"
	appsStatusVulnerable  = "vulnerable"
)

// AgentHealth carries the raw vendor-reported health signals the scorer
// deducts from. Independent of EOL and version data.
type AgentHealth struct {
	IsActive                bool
	IsUpToDate              bool
	Infected                bool
	ActiveThreats           int
	UserActionsNeeded       []string
	MissingPermissions      []string
	AppsVulnerabilityStatus string
}

// HealthScore is the heuristic agent-health verdict.
type HealthScore struct {
	Score       int
	IsCompliant bool
	Deductions  []string
}

// ScoreAgentHealth starts at 100 and applies fixed deductions for each
// unhealthy signal, clamping to [0,100]. An infected agent is never
// compliant regardless of residual score.
func ScoreAgentHealth(health *AgentHealth) *HealthScore {
	score := maxScore

	var deductions []string

	if !health.IsActive {
		score -= deductionInactive

		deductions = append(deductions, "agent is not active")
	}

	if !health.IsUpToDate {
		score -= deductionNotUpToDate

		deductions = append(deductions, "agent software is out of date")
	}

	if health.Infected {
		score -= deductionInfected

		deductions = append(deductions, "agent reports active infection")
	}

	if health.ActiveThreats > 0 {
		threatDeduction := health.ActiveThreats * deductionPerThreat
		if threatDeduction > deductionThreatCap {
			threatDeduction = deductionThreatCap
		}

		score -= threatDeduction

		deductions = append(deductions,
			fmt.Sprintf("%d active threats", health.ActiveThreats))
	}

	if n := len(health.UserActionsNeeded); n > 0 {
		score -= n * deductionPerUserAction

		deductions = append(deductions,
			fmt.Sprintf("%d pending user actions", n))
	}

	if n := len(health.MissingPermissions); n > 0 {
		score -= n * deductionPerMissingPerm

		deductions = append(deductions,
			fmt.Sprintf("%d missing permissions", n))
	}

	switch health.AppsVulnerabilityStatus {
	case appsStatusVulnerable:
		score -= deductionAppsVulnerable

		deductions = append(deductions, "installed applications are vulnerable")
	case appsStatusNeedsUpdate:
		score -= deductionAppsNeedUpdate

		deductions = append(deductions, "installed applications need updates")
	}

	score = clampScore(score)

	return &HealthScore{
		Score:       score,
		IsCompliant: score >= healthCompliantThreshold && !health.Infected,
		Deductions:  deductions,
	}
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}

	if score > maxScore {
		return maxScore
	}

	return score
}
