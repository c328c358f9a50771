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

package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/stackguard/edgesync/pkg/logger"
	"github.com/stackguard/edgesync/pkg/models"
)

const defaultStream = "edgesync-events"

// NATSPublisher publishes CloudEvents to a JetStream stream.
type NATSPublisher struct {
	nc     *nats.Conn
	js     jetstream.JetStream
	stream string
	logger logger.Logger
}

// Connect dials NATS, ensures the events stream exists, and returns a
// publisher bound to it.
func Connect(ctx context.Context, cfg *models.NATSConfig, log logger.Logger) (*NATSPublisher, error) {
	nc, err := nats.Connect(cfg.URL,
		nats.ErrorHandler(func(_ *nats.Conn, _ *nats.Subscription, err error) {
			log.Error().Err(err).Msg("NATS async error")
		}),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Warn().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()

		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	stream := cfg.Stream
	if stream == "" {
		stream = defaultStream
	}

	if _, err = js.Stream(ctx, stream); err != nil {
		streamConfig := jetstream.StreamConfig{
			Name:     stream,
			Subjects: []string{"edgesync.endpoint.*", "edgesync.sync.*"},
		}

		if _, err = js.CreateOrUpdateStream(ctx, streamConfig); err != nil {
			nc.Close()

			return nil, fmt.Errorf("failed to create or get stream %s: %w", stream, err)
		}

		log.Info().Str("stream", stream).Msg("Created JetStream events stream")
	}

	return &NATSPublisher{nc: nc, js: js, stream: stream, logger: log}, nil
}

// PublishEndpointUpdated implements Publisher.
func (p *NATSPublisher) PublishEndpointUpdated(ctx context.Context, data *EndpointUpdatedData) error {
	return p.publish(ctx, SubjectEndpointUpdated, TypeEndpointUpdated, data.Timestamp, data)
}

// PublishSyncCompleted implements Publisher.
func (p *NATSPublisher) PublishSyncCompleted(ctx context.Context, data *SyncCompletedData) error {
	return p.publish(ctx, SubjectSyncCompleted, TypeSyncCompleted, data.Timestamp, data)
}

func (p *NATSPublisher) publish(ctx context.Context, subject, eventType string, ts time.Time, data interface{}) error {
	event := CloudEvent{
		SpecVersion:     "1.0",
		ID:              uuid.New().String(),
		Source:          eventSource,
		Type:            eventType,
		DataContentType: "application/json",
		Subject:         subject,
		Time:            &ts,
		Data:            data,
	}

	eventBytes, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", eventType, err)
	}

	ack, err := p.js.Publish(ctx, event.Subject, eventBytes)
	if err != nil {
		return fmt.Errorf("failed to publish %s event: %w", eventType, err)
	}

	p.logger.Debug().
		Str("event_id", event.ID).
		Str("subject", event.Subject).
		Uint64("seq", ack.Sequence).
		Msg("Published event")

	return nil
}

// Close drains the underlying connection.
func (p *NATSPublisher) Close() {
	p.nc.Close()
}
