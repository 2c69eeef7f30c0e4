// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-readsync/internal/adapter"
	"github.com/MKhiriev/go-readsync/internal/config"
	"github.com/MKhiriev/go-readsync/internal/logger"
	"github.com/MKhiriev/go-readsync/internal/notify"
	"github.com/MKhiriev/go-readsync/internal/service"
	"github.com/MKhiriev/go-readsync/internal/store"
	"github.com/MKhiriev/go-readsync/models"
)

// App aggregates every long-lived component of the client process.
type App struct {
	log *logger.Logger
	cfg *config.ClientConfig

	db          *store.DB
	notifier    notify.Notifier
	coordinator service.Coordinator
	job         service.SyncJob
}

// NewApp builds the full client component graph from cfg. The returned App
// owns every component and releases them when Run returns.
func NewApp(cfg *config.ClientConfig, log *logger.Logger) (*App, error) {
	db, err := store.NewSQLiteDB(cfg.Storage.DB.DSN)
	if err != nil {
		return nil, fmt.Errorf("open local cache: %w", err)
	}

	cache := store.NewCacheRepository(db, log)
	tokens := adapter.NewStaticTokenProvider(cfg.App.Token)

	drive, err := adapter.NewHTTPDriveClient(cfg.Adapter, cfg.App, tokens, log)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create drive client: %w", err)
	}

	var notifier notify.Notifier
	var broadcaster service.Broadcaster
	if cfg.Notify.Dir != "" {
		notifier, err = notify.NewFileNotifier(cfg.Notify.Dir, log)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("create cross-instance notifier: %w", err)
		}
		broadcaster = notifier
	}

	coordinator := service.NewCoordinator(cache, drive, broadcaster, cfg.Sync, log)

	return &App{
		log:         log,
		cfg:         cfg,
		db:          db,
		notifier:    notifier,
		coordinator: coordinator,
		job:         service.NewSyncJob(coordinator),
	}, nil
}

// Run starts the client and blocks until ctx is cancelled. The local cache is
// surfaced immediately, then a remote sync runs in the foreground and the
// periodic sync job takes over.
func (a *App) Run(ctx context.Context) error {
	defer a.db.Close()
	defer a.coordinator.Close()

	if a.notifier != nil {
		defer a.notifier.Close()

		// Siblings refresh from the shared cache only; a remote sync here
		// would multiply into a request storm across open instances.
		unsubscribe := a.notifier.Subscribe(func(msg models.NotifyMessage) {
			if err := a.coordinator.RefreshFromCache(context.Background()); err != nil {
				a.log.Warn().Err(err).Str("kind", msg.Kind).Msg("refresh after sibling notification failed")
			}
		})
		defer unsubscribe()
	}

	if err := a.coordinator.RequestSync(ctx); err != nil {
		a.log.Error().Err(err).Msg("initial sync failed")
	}

	a.job.Start(ctx, a.cfg.Workers.SyncInterval)
	defer a.job.Stop()

	<-ctx.Done()
	a.log.Info().Msg("shutting down")

	return nil
}
