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

// Package events publishes inventory CloudEvents to NATS JetStream so
// downstream consumers observe endpoint and sync-job changes. Publishing
// is best-effort; callers log failures and continue.
package events

import (
	"context"
	"time"
)

const (
	SubjectEndpointUpdated = "edgesync.endpoint.updated"
	SubjectSyncCompleted   = "edgesync.sync.completed"

	eventSource = "edgesync/sync"

	TypeEndpointUpdated = "com.stackguard.edgesync.endpoint.updated"
	TypeSyncCompleted   = "com.stackguard.edgesync.sync.completed"
)

// CloudEvent is the CloudEvents 1.0 envelope all published events share.
type CloudEvent struct {
	SpecVersion     string      `json:"specversion"`
	ID              string      `json:"id"`
	Source          string      `json:"source"`
	Type            string      `json:"type"`
	DataContentType string      `json:"datacontenttype"`
	Subject         string      `json:"subject"`
	Time            *time.Time  `json:"time,omitempty"`
	Data            interface{} `json:"data,omitempty"`
}

// EndpointUpdatedData is the payload of an endpoint-updated event.
type EndpointUpdatedData struct {
	EndpointID      string    `json:"endpoint_id"`
	TenantID        string    `json:"tenant_id"`
	Hostname        string    `json:"hostname"`
	ComplianceScore int       `json:"compliance_score"`
	IsCompliant     bool      `json:"is_compliant"`
	Created         bool      `json:"created"`
	Timestamp       time.Time `json:"timestamp"`
}

// SyncCompletedData is the payload of a sync-completed event.
type SyncCompletedData struct {
	JobID            string    `json:"job_id"`
	Source           string    `json:"source"`
	Status           string    `json:"status"`
	RecordsProcessed int       `json:"records_processed"`
	RecordsCreated   int       `json:"records_created"`
	RecordsUpdated   int       `json:"records_updated"`
	RecordsFailed    int       `json:"records_failed"`
	RecordsSkipped   int       `json:"records_skipped"`
	Coverage         float64   `json:"coverage"`
	Timestamp        time.Time `json:"timestamp"`
}

// Publisher emits inventory events. Implementations must be safe for
// concurrent use.
type Publisher interface {
	PublishEndpointUpdated(ctx context.Context, data *EndpointUpdatedData) error
	PublishSyncCompleted(ctx context.Context, data *SyncCompletedData) error
	Close()
}

// NoopPublisher discards all events. Used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishEndpointUpdated(context.Context, *EndpointUpdatedData) error {
	return nil
}

func (NoopPublisher) PublishSyncCompleted(context.Context, *SyncCompletedData) error {
	return nil
}

func (NoopPublisher) Close() {}
