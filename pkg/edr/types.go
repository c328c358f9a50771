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

package edr

import (
	"time"

	"github.com/stackguard/edgesync/pkg/models"
)

// Site is the vendor-side grouping of managed endpoints. Each site maps
// 1:1 onto an internal tenant.
type Site struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	AccountName string `json:"accountName,omitempty"`
	State       string `json:"state,omitempty"`
	TotalAgents int    `json:"totalAgents,omitempty"`
}

// Agent is the vendor's per-endpoint record.
type Agent struct {
	ID                      string     `json:"id"`
	ComputerName            string     `json:"computerName"`
	SiteID                  string     `json:"siteId"`
	SiteName                string     `json:"siteName,omitempty"`
	OSName                  string     `json:"osName,omitempty"`
	OSRevision              string     `json:"osRevision,omitempty"`
	IsActive                bool       `json:"isActive"`
	IsUpToDate              bool       `json:"isUpToDate"`
	Infected                bool       `json:"infected"`
	ActiveThreats           int        `json:"activeThreats"`
	AppsVulnerabilityStatus string     `json:"appsVulnerabilityStatus,omitempty"`
	MissingPermissions      []string   `json:"missingPermissions,omitempty"`
	UserActionsNeeded       []string   `json:"userActionsNeeded,omitempty"`
	LastActiveDate          *time.Time `json:"lastActiveDate,omitempty"`
}

// Source implements models.SourceRecord.
func (*Agent) Source() models.SourceType { return models.SourceTypeEDR }

// RecordID implements models.SourceRecord.
func (a *Agent) RecordID() string { return a.ID }

// Pagination is the cursor envelope the vendor returns on every list call.
// A null nextCursor terminates the loop.
type Pagination struct {
	TotalItems int     `json:"totalItems"`
	NextCursor *string `json:"nextCursor"`
}

// SitesPage is one page of the sites listing.
type SitesPage struct {
	Data struct {
		Sites []Site `json:"sites"`
	} `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// AgentsPage is one page of the agents listing.
type AgentsPage struct {
	Data       []Agent    `json:"data"`
	Pagination Pagination `json:"pagination"`
}
