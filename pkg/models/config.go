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
	"errors"
	"fmt"
	"time"
)

var (
	errInvalidDuration       = errors.New("invalid duration")
	errInvalidLifecycleField = errors.New("lifecycle field is neither date nor boolean")
)

// Duration is a time.Duration that unmarshals from either a JSON number
// (nanoseconds) or a Go duration string like "24h".
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		dur, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("%w: %w", errInvalidDuration, err)
		}

		*d = Duration(dur)

		return nil
	default:
		return errInvalidDuration
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// DatabaseConfig describes the Postgres cluster holding tenant, endpoint,
// and job state.
type DatabaseConfig struct {
	Host            string `json:"host"`
	Port            int    `json:"port"`
	Database        string `json:"database"`
	Username        string `json:"username"`
	Password        string `json:"password,omitempty"`
	SSLMode         string `json:"ssl_mode,omitempty"`
	ApplicationName string `json:"application_name,omitempty"`
	MaxConnections  int32  `json:"max_connections,omitempty"`
	MinConnections  int32  `json:"min_connections,omitempty"`
}

// NATSConfig describes the JetStream broker used for inventory events.
// Publishing is optional; an empty URL disables it.
type NATSConfig struct {
	URL    string `json:"url,omitempty"`
	Stream string `json:"stream,omitempty"`
}

// EDRSourceConfig describes the vendor EDR API feed.
type EDRSourceConfig struct {
	Endpoint     string  `json:"endpoint"`
	APIKey       string  `json:"api_key"`
	PageSize     int     `json:"page_size,omitempty"`
	MaxSitePages int     `json:"max_site_pages,omitempty"`
	RateLimit    float64 `json:"rate_limit,omitempty"` // requests per second
}

// EOLConfig describes the upstream lifecycle feed and cache freshness.
type EOLConfig struct {
	Endpoint string   `json:"endpoint,omitempty"`
	CacheTTL Duration `json:"cache_ttl,omitempty"`
}
