package client

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-leave-sync/internal/adapter"
	"github.com/MKhiriev/go-leave-sync/internal/config"
	"github.com/MKhiriev/go-leave-sync/internal/logger"
	"github.com/MKhiriev/go-leave-sync/internal/service"
	"github.com/MKhiriev/go-leave-sync/internal/store"
	"github.com/MKhiriev/go-leave-sync/internal/workers"
)

// UI is the interactive front end driven by App.
type UI interface {
	Run(ctx context.Context) error
}

type App struct {
	services *service.ClientServices
	ui       UI
	workers  *workers.Workers
	logger   *logger.Logger
}

func NewApp(services *service.ClientServices, ui UI, logger *logger.Logger) *App {
	var jobs []workers.Worker
	if services.AutoSync != nil {
		jobs = append(jobs, services.AutoSync)
	}

	return &App{
		services: services,
		ui:       ui,
		workers:  workers.NewWorkers(jobs...),
		logger:   logger,
	}
}

// Run starts the background workers, runs the UI until it exits and stops
// the workers again.
func (a *App) Run(ctx context.Context) error {
	a.logger.Info().Int("workers", a.workers.Len()).Msg("starting client")

	a.workers.Run(ctx)
	defer a.workers.Stop()

	if err := a.ui.Run(ctx); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}

	a.logger.Info().Msg("client stopped")
	return nil
}

// NewBlobStore returns the remote /data adapter when an adapter address is
// configured, and the embedded storage backend otherwise.
func NewBlobStore(ctx context.Context, cfg *config.ClientConfig, logger *logger.Logger) (store.BlobStore, error) {
	if cfg.Remote() {
		logger.Info().Str("address", cfg.Adapter.HTTPAddress).Msg("using remote document store")
		remote, err := adapter.NewHTTPBlobStore(cfg.Adapter, cfg.App, logger)
		if err != nil {
			return nil, fmt.Errorf("create remote adapter: %w", err)
		}
		return remote, nil
	}
	return store.NewBlobStore(ctx, cfg.Storage, logger)
}

// CheckServer logs the server version when blobs is a remote store. A
// failed probe is logged and otherwise ignored; the first load reports it
// to the user.
func CheckServer(ctx context.Context, blobs store.BlobStore, logger *logger.Logger) {
	remote, ok := blobs.(adapter.RemoteStore)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	version, err := remote.ServerVersion(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("server version probe failed")
		return
	}
	logger.Info().Str("server_version", version).Msg("connected to server")
}
