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

package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/stackguard/edgesync/pkg/config"
	"github.com/stackguard/edgesync/pkg/db"
	"github.com/stackguard/edgesync/pkg/edr"
	"github.com/stackguard/edgesync/pkg/eol"
	"github.com/stackguard/edgesync/pkg/events"
	"github.com/stackguard/edgesync/pkg/logger"
	"github.com/stackguard/edgesync/pkg/registry"
	"github.com/stackguard/edgesync/pkg/sync"
)

func main() {
	configPath := flag.String("config", "/etc/edgesync/sync.json", "Path to config file")
	once := flag.Bool("once", false, "Run a single sync cycle and exit")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var cfg sync.Config

	cfgLoader := config.NewConfig(nil)
	if err := cfgLoader.LoadAndValidate(ctx, *configPath, &cfg); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logCfg := cfg.Logging
	if logCfg == nil {
		logCfg = logger.DefaultConfig()
	}

	mainLogger, err := logger.NewLogger(logCfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	if err := run(ctx, &cfg, mainLogger, *once); err != nil && !errors.Is(err, context.Canceled) {
		mainLogger.Fatal().Err(err).Msg("Sync service failed")
	}

	mainLogger.Info().Msg("Sync service stopped")
}

func run(ctx context.Context, cfg *sync.Config, mainLogger logger.Logger, once bool) error {
	store, err := db.New(ctx, &cfg.Database, mainLogger)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.RunMigrations(ctx); err != nil {
		return err
	}

	client, err := edr.NewClient(&cfg.EDR, mainLogger)
	if err != nil {
		return err
	}

	var publisher events.Publisher = events.NoopPublisher{}

	if cfg.NATS.URL != "" {
		natsPublisher, err := events.Connect(ctx, &cfg.NATS, mainLogger)
		if err != nil {
			return err
		}
		defer natsPublisher.Close()

		publisher = natsPublisher
	}

	lifecycle := eol.NewCache(
		eol.NewHTTPFetcher(cfg.EOL.Endpoint),
		time.Duration(cfg.EOL.CacheTTL),
		mainLogger,
	)

	sources := registry.NewMultiSourceRegistry(store, mainLogger)
	jobs := sync.NewJobTracker(store, nil, mainLogger)
	mapper := sync.NewSiteTenantMapper(store, client, nil, mainLogger)
	pipeline := sync.NewAgentIngestionPipeline(
		store, client, lifecycle, sources, publisher, jobs, nil, mainLogger,
		cfg.AgentPageSize, cfg.MaxAgentPages)

	service, err := sync.NewSyncService(cfg, mapper, pipeline, nil, mainLogger)
	if err != nil {
		return err
	}

	if once {
		return service.RunOnce(ctx)
	}

	return service.Start(ctx)
}
