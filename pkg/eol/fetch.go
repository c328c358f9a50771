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

package eol

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/stackguard/edgesync/pkg/models"
)

const (
	defaultFeedEndpoint = "https://endoflife.date/api"
	fetchTimeout        = 15 * time.Second
)

var errFeedStatusCode = errors.New("eol feed returned unexpected status")

// HTTPFetcher fetches lifecycle cycles from the public end-of-life feed.
// One JSON document per category: <endpoint>/<category>.json.
type HTTPFetcher struct {
	endpoint   string
	httpClient *http.Client
}

// NewHTTPFetcher builds a fetcher against the given feed endpoint. An
// empty endpoint defaults to the public feed.
func NewHTTPFetcher(endpoint string) *HTTPFetcher {
	if endpoint == "" {
		endpoint = defaultFeedEndpoint
	}

	return &HTTPFetcher{
		endpoint:   strings.TrimSuffix(endpoint, "/"),
		httpClient: &http.Client{Timeout: fetchTimeout},
	}
}

// FetchCycles implements Fetcher.
func (f *HTTPFetcher) FetchCycles(ctx context.Context, category Category) ([]models.EOLCycle, error) {
	reqURL := fmt.Sprintf("%s/%s.json", f.endpoint, category)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s lifecycle feed: %w", category, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)

		return nil, fmt.Errorf("%w: %d, response: %s", errFeedStatusCode,
			resp.StatusCode, string(bodyBytes))
	}

	var cycles []models.EOLCycle

	if err := json.NewDecoder(resp.Body).Decode(&cycles); err != nil {
		return nil, fmt.Errorf("failed to parse %s lifecycle feed: %w", category, err)
	}

	return cycles, nil
}
