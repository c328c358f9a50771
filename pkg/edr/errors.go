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

import "errors"

var (
	// ErrMissingEndpoint and ErrMissingAPIKey are configuration errors,
	// surfaced before any batch work begins.
	ErrMissingEndpoint = errors.New("edr: endpoint is required")
	ErrMissingAPIKey   = errors.New("edr: api key is required")

	errUnexpectedStatusCode = errors.New("unexpected status code")

	// errTooManyPages guards against pagination bugs causing an
	// unterminated cursor loop.
	errTooManyPages = errors.New("pagination exceeded page ceiling")
)
