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

// ListSites fetches a single page of vendor sites.
func (c *Client) ListSites(ctx context.Context, cursor string, limit int) (*SitesPage, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))

	if cursor != "" {
		query.Set("cursor", cursor)
	}

	var page SitesPage

	if err := c.getJSON(ctx, "/sites", query, &page); err != nil {
		return nil, fmt.Errorf("failed to list sites: %w", err)
	}

	return &page, nil
}

// FetchAllSites pages through the sites listing to completion. A single
// page call systematically undercounts sites, so the loop always follows
// the cursor until the vendor returns none, bounded by the page ceiling.
func (c *Client) FetchAllSites(ctx context.Context) ([]Site, error) {
	var sites []Site

	cursor := ""

	for pageCount := 0; ; pageCount++ {
		if pageCount >= c.config.MaxSitePages {
			return nil, fmt.Errorf("%w: %d site pages", errTooManyPages, pageCount)
		}

		page, err := c.ListSites(ctx, cursor, c.config.PageSize)
		if err != nil {
			return nil, err
		}

		sites = append(sites, page.Data.Sites...)

		if page.Pagination.NextCursor == nil || *page.Pagination.NextCursor == "" {
			break
		}

		cursor = *page.Pagination.NextCursor
	}

	c.logger.Debug().Int("sites", len(sites)).Msg("Fetched all sites from vendor")

	return sites, nil
}
