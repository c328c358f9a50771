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

import "errors"

var (
	ErrDatabaseNotConfigured = errors.New("database not configured")
	ErrFailedOpenDB          = errors.New("failed to open database")
	ErrFailedToQuery         = errors.New("failed to query")
	ErrFailedToInsert        = errors.New("failed to insert")
	ErrFailedToUpdate        = errors.New("failed to update")

	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("not found")

	// ErrJobNotRunning is returned when a terminal transition targets a job
	// that is not in RUNNING state. Jobs transition exactly once.
	ErrJobNotRunning = errors.New("sync job is not running")

	// ErrNoActivePolicy is returned when no compliance policy is active.
	ErrNoActivePolicy = errors.New("no active compliance policy")
)
