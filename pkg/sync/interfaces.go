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

	"github.com/stackguard/edgesync/pkg/edr"
	"github.com/stackguard/edgesync/pkg/eol"
)

// SiteClient is the vendor surface the tenant mapper consumes.
type SiteClient interface {
	FetchAllSites(ctx context.Context) ([]edr.Site, error)
}

// AgentClient is the vendor surface the ingestion pipeline consumes.
type AgentClient interface {
	ListAgents(ctx context.Context, cursor string, limit int) (*edr.AgentsPage, error)
	CountAgents(ctx context.Context) (int, error)
}

// LifecycleProvider serves cached EOL registry data.
type LifecycleProvider interface {
	GetRegistry(ctx context.Context, category eol.Category) (*eol.Registry, error)
}
