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
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// ListAgents fetches a single page of agent records, filtered to active
// agents sorted by last activity descending.
func (c *Client) ListAgents(ctx context.Context, cursor string, limit int) (*AgentsPage, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("isActive", "true")
	query.Set("sortBy", "lastActiveDate")
	query.Set("sortOrder", "desc")

	if cursor != "" {
		query.Set("cursor", cursor)
	}

	var page AgentsPage

	if err := c.getJSON(ctx, "/agents", query, &page); err != nil {
		return nil, fmt.Errorf("failed to list agents: %w", err)
	}

	return &page, nil
}

// CountAgents is the cheap limit=1 pre-flight used to compute batch
// coverage against the vendor's reported total.
func (c *Client) CountAgents(ctx context.Context) (int, error) {
	page, err := c.ListAgents(ctx, "", 1)
	if err != nil {
		return 0, fmt.Errorf("failed to count agents: %w", err)
	}

	return page.Pagination.TotalItems, nil
}
