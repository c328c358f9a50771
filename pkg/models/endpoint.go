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

import (
	"encoding/json"
	"time"
)

// SourceType tags which vendor feed contributed an endpoint record.
type SourceType string

const (
	// SourceTypeEDR is the canonical endpoint-security vendor feed. Its
	// fields win when an endpoint is populated by more than one source.
	SourceTypeEDR SourceType = "edr"
)

// Endpoint is a managed device reconciled from one or more vendor feeds.
// (tenant_id, hostname) is the idempotency key for all upserts.
type Endpoint struct {
	ID       string `json:"id"`
	TenantID string `json:"tenant_id"`
	Hostname string `json:"hostname"`

	OSName         string `json:"os_name,omitempty"`
	OSRevision     string `json:"os_revision,omitempty"`
	OSMajorVersion string `json:"os_major_version,omitempty"`
	FeatureUpdate  string `json:"feature_update,omitempty"`
	Edition        string `json:"edition,omitempty"`
	BuildNumber    int    `json:"build_number,omitempty"`

	ComplianceScore int  `json:"compliance_score"`
	IsCompliant     bool `json:"is_compliant"`
	CriticalIssues  int  `json:"critical_issues"`
	HighIssues      int  `json:"high_issues"`
	MediumIssues    int  `json:"medium_issues"`

	IsActive  bool      `json:"is_active"`
	Infected  bool      `json:"infected"`
	LastSeen  time.Time `json:"last_seen"`
	FirstSeen time.Time `json:"first_seen"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EndpointSource is the per-(endpoint, source) ledger row recording which
// feeds have contributed data and which one is primary. At most one source
// per endpoint is primary at a time.
type EndpointSource struct {
	EndpointID     string          `json:"endpoint_id"`
	SourceType     SourceType      `json:"source_type"`
	SourceRecordID string          `json:"source_record_id"`
	IsPrimary      bool            `json:"is_primary"`
	LastSynced     time.Time       `json:"last_synced"`
	RawPayload     json.RawMessage `json:"raw_payload,omitempty"`
}

// SourceRecord is the tagged-variant contract a vendor record must satisfy
// before it can feed the source ledger. Adding a second vendor means adding
// a type that implements this, not weakening the ingestion path.
type SourceRecord interface {
	Source() SourceType
	RecordID() string
}
