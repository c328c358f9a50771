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
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchCyclesParsesFeed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/windows.json", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"cycle":"24H2","releaseLabel":"11 24H2","releaseDate":"2024-10-01","support":"2026-10-13","eol":"2027-10-12","latest":"26100","lts":false},
			{"cycle":"22H2","releaseLabel":"11 22H2","releaseDate":"2022-09-20","support":false,"eol":"2024-10-08","latest":"22621"}
		]`))
	}))
	defer server.Close()

	fetcher := NewHTTPFetcher(server.URL)

	cycles, err := fetcher.FetchCycles(context.Background(), CategoryClient)
	require.NoError(t, err)
	require.Len(t, cycles, 2)

	assert.Equal(t, "24H2", cycles[0].Cycle)
	assert.Equal(t, "26100", cycles[0].Latest)
	assert.True(t, cycles[0].EOL.Valid)
	assert.Equal(t, time.Date(2027, 10, 12, 0, 0, 0, 0, time.UTC), cycles[0].EOL.Time)

	// Boolean lifecycle sentinel decodes to "no defined date".
	assert.False(t, cycles[1].Support.Valid)
	assert.False(t, cycles[1].Support.Bool)
}

func TestFetchCyclesNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream exploded", http.StatusInternalServerError)
	}))
	defer server.Close()

	fetcher := NewHTTPFetcher(server.URL)

	cycles, err := fetcher.FetchCycles(context.Background(), CategoryServer)

	assert.Nil(t, cycles)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestFetchCyclesMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"not":"a list"}`))
	}))
	defer server.Close()

	fetcher := NewHTTPFetcher(server.URL)

	_, err := fetcher.FetchCycles(context.Background(), CategoryClient)
	require.Error(t, err)
}
