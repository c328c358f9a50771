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

// Package edr provides the client for the endpoint-security vendor API.
package edr

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/stackguard/edgesync/pkg/logger"
	"github.com/stackguard/edgesync/pkg/models"
)

const (
	defaultPageSize     = 100
	defaultMaxSitePages = 20
	defaultRateLimit    = 5 // requests per second
	defaultHTTPTimeout  = 30 * time.Second
)

// Client talks to the vendor management API. All list calls are cursor
// paginated; outbound requests share a rate limiter so batch jobs stay
// inside the vendor's API quota.
type Client struct {
	config     *models.EDRSourceConfig
	httpClient HTTPClient
	limiter    *rate.Limiter
	logger     logger.Logger
}

// NewClient validates the source configuration and returns a Client.
func NewClient(cfg *models.EDRSourceConfig, log logger.Logger) (*Client, error) {
	if cfg == nil || cfg.Endpoint == "" {
		return nil, ErrMissingEndpoint
	}

	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	cfgCopy := *cfg
	if cfgCopy.PageSize <= 0 {
		cfgCopy.PageSize = defaultPageSize
	}

	if cfgCopy.MaxSitePages <= 0 {
		cfgCopy.MaxSitePages = defaultMaxSitePages
	}

	rateLimit := cfgCopy.RateLimit
	if rateLimit <= 0 {
		rateLimit = defaultRateLimit
	}

	return &Client{
		config:     &cfgCopy,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
		limiter:    rate.NewLimiter(rate.Limit(rateLimit), 1),
		logger:     log,
	}, nil
}

// PageSize returns the configured page size for list calls.
func (c *Client) PageSize() int {
	return c.config.PageSize
}

// getJSON performs a rate-limited GET against the vendor API and decodes
// the response into out.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	reqURL := strings.TrimSuffix(c.config.Endpoint, "/") + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return err
	}

	req.Header.Set("Authorization", "ApiToken "+c.config.APIKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)

		return fmt.Errorf("%w: %d, response: %s", errUnexpectedStatusCode,
			resp.StatusCode, string(bodyBytes))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to parse response from %s: %w", path, err)
	}

	return nil
}
