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

package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/stackguard/edgesync/pkg/models"
)

// GetActivePolicy returns the currently active compliance policy. Rule
// lists are stored as a jsonb document to keep the policy schema stable as
// rules evolve.
func (s *Store) GetActivePolicy(ctx context.Context) (*models.CompliancePolicy, error) {
	var (
		policy models.CompliancePolicy
		rules  []byte
	)

	row := s.pool.QueryRow(ctx,
		`SELECT id, name, is_active, rules FROM compliance_policies
		 WHERE is_active LIMIT 1`)

	if err := row.Scan(&policy.ID, &policy.Name, &policy.IsActive, &rules); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoActivePolicy
		}

		return nil, fmt.Errorf("%w: %w", ErrFailedToQuery, err)
	}

	if err := json.Unmarshal(rules, &policy); err != nil {
		return nil, fmt.Errorf("%w: policy %s rules: %w", ErrFailedToQuery, policy.ID, err)
	}

	return &policy, nil
}
