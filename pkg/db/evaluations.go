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
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/stackguard/edgesync/pkg/models"
)

// InsertEvaluation appends one compliance evaluation record. Evaluations
// are never updated or deleted; the table is the compliance history trail.
func (s *Store) InsertEvaluation(ctx context.Context, eval *models.ComplianceEvaluation) error {
	if eval.ID == "" {
		eval.ID = uuid.New().String()
	}

	if eval.EvaluatedAt.IsZero() {
		eval.EvaluatedAt = time.Now().UTC()
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO compliance_evaluations (
			id, endpoint_id, policy_id, evaluated_at,
			major_version, feature_update, edition, build_number,
			is_compliant, score, failure_reasons, required_actions
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		eval.ID, eval.EndpointID, eval.PolicyID, eval.EvaluatedAt,
		eval.MajorVersion, eval.FeatureUpdate, eval.Edition, eval.BuildNumber,
		eval.IsCompliant, eval.Score, eval.FailureReasons, eval.RequiredActions)
	if err != nil {
		return fmt.Errorf("%w: evaluation for endpoint %s: %w",
			ErrFailedToInsert, eval.EndpointID, err)
	}

	return nil
}
