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
	"fmt"
	"strings"
	"time"

	"github.com/stackguard/edgesync/pkg/models"
)

// Severity classifies a policy rule failure for per-severity rollups.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
)

const (
	deductionUnsupported    = 40
	deductionNotAllowed     = 30
	deductionBlocked        = 50
	deductionBelowMinimum   = 25
	deductionEditionDenied  = 20
	deductionEditionBlocked = 30
	deductionNotLatestBuild = 20
	deductionBuildTooOld    = 15
)

// RuleFailure is one triggered policy rule with its human-readable reason
// and remediation action.
type RuleFailure struct {
	Reason   string
	Action   string
	Severity Severity
}

// Evaluation is the outcome of evaluating a descriptor against a policy.
// Persistence of the append-only evaluation record is the caller's
// responsibility.
type Evaluation struct {
	Score               int
	IsCompliant         bool
	CriticalUnsupported bool
	Failures            []RuleFailure
}

// FailureReasons returns the triggered reasons in rule order.
func (e *Evaluation) FailureReasons() []string {
	reasons := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		reasons = append(reasons, f.Reason)
	}

	return reasons
}

// RequiredActions returns the remediation actions in rule order.
func (e *Evaluation) RequiredActions() []string {
	actions := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		actions = append(actions, f.Action)
	}

	return actions
}

// SeverityCount returns how many triggered rules carry the given severity.
func (e *Evaluation) SeverityCount(sev Severity) int {
	count := 0

	for _, f := range e.Failures {
		if f.Severity == sev {
			count++
		}
	}

	return count
}

// EvaluatePolicy runs the deterministic rule pipeline. Each rule deducts
// points independently; rule order only affects message ordering. The
// final score is clamped to [0,100]. An OS past end of life is never
// compliant regardless of residual score.
func EvaluatePolicy(
	desc *models.VersionDescriptor,
	policy *models.CompliancePolicy,
	cycles []models.EOLCycle,
	now time.Time,
) *Evaluation {
	eval := &Evaluation{Score: maxScore}

	if policy.RequireSupported {
		checkSupported(eval, desc, cycles, now)
	}

	if len(policy.AllowedVersions) > 0 && !containsFold(policy.AllowedVersions, desc.MajorVersion) {
		eval.fail(deductionNotAllowed, SeverityHigh,
			fmt.Sprintf("Windows %s is not in the allowed version list", desc.MajorVersion),
			fmt.Sprintf("Migrate to an approved Windows version (%s)",
				strings.Join(policy.AllowedVersions, ", ")))
	}

	if containsFold(policy.BlockedVersions, desc.MajorVersion) {
		eval.fail(deductionBlocked, SeverityHigh,
			fmt.Sprintf("Windows %s is explicitly blocked by policy", desc.MajorVersion),
			"Migrate off the blocked Windows version")
	}

	if minimum, ok := policy.MinimumVersions[desc.MajorVersion]; ok {
		if CompareFeatureUpdates(desc.FeatureUpdate, minimum) < 0 {
			eval.fail(deductionBelowMinimum, SeverityMedium,
				fmt.Sprintf("feature update %s is below the required minimum %s",
					orUnknown(desc.FeatureUpdate), minimum),
				fmt.Sprintf("Install feature update %s or later", minimum))
		}
	}

	if len(policy.AllowedEditions) > 0 && !containsFold(policy.AllowedEditions, desc.Edition) {
		eval.fail(deductionEditionDenied, SeverityMedium,
			fmt.Sprintf("edition %s is not in the allowed edition list", orUnknown(desc.Edition)),
			fmt.Sprintf("Reinstall with an approved edition (%s)",
				strings.Join(policy.AllowedEditions, ", ")))
	}

	if containsFold(policy.BlockedEditions, desc.Edition) {
		eval.fail(deductionEditionBlocked, SeverityMedium,
			fmt.Sprintf("edition %s is blocked by policy", desc.Edition),
			"Reinstall with an approved edition")
	}

	if policy.RequireLatestBuild && !desc.IsLatestBuild {
		eval.fail(deductionNotLatestBuild, SeverityMedium,
			fmt.Sprintf("build %d is not the latest available build", desc.BuildNumber),
			"Install the latest cumulative update")
	}

	if policy.MaxBuildAgeDays > 0 && desc.BuildsBehind > policy.MaxBuildAgeDays {
		eval.fail(deductionBuildTooOld, SeverityMedium,
			fmt.Sprintf("build is %d feature updates behind, exceeding the allowed ceiling",
				desc.BuildsBehind),
			"Update to a recent build")
	}

	eval.Score = clampScore(eval.Score)
	eval.IsCompliant = len(eval.Failures) == 0 && !eval.CriticalUnsupported

	return eval
}

// checkSupported fails the evaluation when the descriptor's lifecycle
// cycle has passed its EOL date. A missing cycle or a boolean lifecycle
// sentinel means no defined EOL date, which passes the rule.
func checkSupported(eval *Evaluation, desc *models.VersionDescriptor, cycles []models.EOLCycle, now time.Time) {
	cycle := findCycle(cycles, desc)
	if cycle == nil || !cycle.EOL.Passed(now) {
		return
	}

	eval.CriticalUnsupported = true
	eval.fail(deductionUnsupported, SeverityCritical,
		fmt.Sprintf("Windows %s %s reached end of life on %s",
			desc.MajorVersion, desc.FeatureUpdate, cycle.EOL.Time.Format("2006-01-02")),
		"Upgrade to a supported Windows release")
}

// findCycle locates the registry cycle for the descriptor's major version
// and feature-update label.
func findCycle(cycles []models.EOLCycle, desc *models.VersionDescriptor) *models.EOLCycle {
	for i := range cycles {
		cycle := &cycles[i]

		if !cycleMatchesMajor(cycle, desc.MajorVersion) {
			continue
		}

		if desc.FeatureUpdate != "" && featureUpdateLabel(cycle) == desc.FeatureUpdate {
			return cycle
		}
	}

	return nil
}

func (e *Evaluation) fail(deduction int, sev Severity, reason, action string) {
	e.Score -= deduction
	e.Failures = append(e.Failures, RuleFailure{
		Reason:   reason,
		Action:   action,
		Severity: sev,
	})
}

func containsFold(list []string, value string) bool {
	for _, item := range list {
		if strings.EqualFold(item, value) {
			return true
		}
	}

	return false
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}

	return s
}
