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
	"errors"
	"time"

	"github.com/stackguard/edgesync/pkg/logger"
	"github.com/stackguard/edgesync/pkg/models"
)

const defaultPollInterval = 30 * time.Minute

var (
	errEDRSourceRequired = errors.New("edr source configuration is required")
	errDatabaseRequired  = errors.New("database configuration is required")
)

// Config is the sync service configuration, loaded from JSON via
// pkg/config.
type Config struct {
	PollInterval  models.Duration        `json:"poll_interval,omitempty"`
	AgentPageSize int                    `json:"agent_page_size,omitempty"`
	MaxAgentPages int                    `json:"max_agent_pages,omitempty"`
	EDR           models.EDRSourceConfig `json:"edr"`
	EOL           models.EOLConfig       `json:"eol,omitempty"`
	Database      models.DatabaseConfig  `json:"database"`
	NATS          models.NATSConfig      `json:"nats,omitempty"`
	Logging       *logger.Config         `json:"logging,omitempty"`
}

// Validate checks required fields and applies defaults. Vendor client
// specifics (page sizes, rate limits) are validated by the client itself.
func (c *Config) Validate() error {
	if c.EDR.Endpoint == "" || c.EDR.APIKey == "" {
		return errEDRSourceRequired
	}

	if c.Database.Host == "" || c.Database.Database == "" {
		return errDatabaseRequired
	}

	if c.PollInterval <= 0 {
		c.PollInterval = models.Duration(defaultPollInterval)
	}

	return nil
}
