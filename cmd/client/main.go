package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-leave-sync/internal/client"
	"github.com/MKhiriev/go-leave-sync/internal/config"
	"github.com/MKhiriev/go-leave-sync/internal/logger"
	"github.com/MKhiriev/go-leave-sync/internal/service"
	"github.com/MKhiriev/go-leave-sync/internal/store"
	"github.com/MKhiriev/go-leave-sync/internal/tui"
	"github.com/MKhiriev/go-leave-sync/models"
)

const role = "leavesync-client"

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	info := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Println(info)

	cfg, err := config.GetClientConfig()
	if err != nil {
		logger.NewLogger(role).Fatal().Err(err).Msg("error getting configs")
	}
	if cfg.App.Version == "" {
		cfg.App.Version = info.BuildVersion()
	}

	log, err := logger.New(logger.Config{Role: role, Level: cfg.App.LogLevel, File: cfg.App.LogFile})
	if err != nil {
		logger.NewLogger(role).Fatal().Err(err).Msg("error creating logger")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	blobs, err := client.NewBlobStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create document store")
	}
	client.CheckServer(ctx, blobs, log)

	prefs, err := store.NewLocalPreferences(cfg.Storage.Preferences.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("open preferences")
	}

	services := service.NewClientServices(blobs, prefs, *cfg, log)
	ui := tui.New(services, cfg.App, log)

	app := client.NewApp(services, ui, log)
	if err = app.Run(ctx); err != nil && !errors.Is(err, tui.ErrUserQuit) {
		log.Fatal().Err(err).Msg("client run error")
	}
}
