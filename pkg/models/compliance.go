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

package models

import "time"

// CompliancePolicy is the named rule set an OS version descriptor is
// evaluated against. Read-only input to the evaluator.
type CompliancePolicy struct {
	ID                 string            `json:"id"`
	Name               string            `json:"name"`
	IsActive           bool              `json:"is_active"`
	RequireSupported   bool              `json:"require_supported"`
	AllowedVersions    []string          `json:"allowed_versions,omitempty"`
	BlockedVersions    []string          `json:"blocked_versions,omitempty"`
	MinimumVersions    map[string]string `json:"minimum_versions,omitempty"`
	AllowedEditions    []string          `json:"allowed_editions,omitempty"`
	BlockedEditions    []string          `json:"blocked_editions,omitempty"`
	RequireLatestBuild bool              `json:"require_latest_build"`
	MaxBuildAgeDays    int               `json:"max_build_age_days,omitempty"`
}

// VersionDescriptor is the structured form of a raw OS name + build string.
type VersionDescriptor struct {
	MajorVersion  string `json:"major_version"`
	FeatureUpdate string `json:"feature_update,omitempty"`
	Edition       string `json:"edition,omitempty"`
	BuildNumber   int    `json:"build_number,omitempty"`
	IsLatestBuild bool   `json:"is_latest_build"`
	BuildsBehind  int    `json:"builds_behind"`
}

// ComplianceEvaluation is one append-only evaluation result. Records are
// only ever created, forming a compliance history trail per endpoint.
type ComplianceEvaluation struct {
	ID              string    `json:"id"`
	EndpointID      string    `json:"endpoint_id"`
	PolicyID        string    `json:"policy_id"`
	EvaluatedAt     time.Time `json:"evaluated_at"`
	MajorVersion    string    `json:"major_version,omitempty"`
	FeatureUpdate   string    `json:"feature_update,omitempty"`
	Edition         string    `json:"edition,omitempty"`
	BuildNumber     int       `json:"build_number,omitempty"`
	IsCompliant     bool      `json:"is_compliant"`
	Score           int       `json:"score"`
	FailureReasons  []string  `json:"failure_reasons,omitempty"`
	RequiredActions []string  `json:"required_actions,omitempty"`
}
