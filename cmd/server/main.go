package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-leave-sync/internal/config"
	"github.com/MKhiriev/go-leave-sync/internal/handler"
	"github.com/MKhiriev/go-leave-sync/internal/logger"
	"github.com/MKhiriev/go-leave-sync/internal/server"
	"github.com/MKhiriev/go-leave-sync/internal/service"
	"github.com/MKhiriev/go-leave-sync/internal/store"
	"github.com/MKhiriev/go-leave-sync/models"
)

const role = "leavesync-server"

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	info := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Println(info)

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		logger.NewLogger(role).Fatal().Err(err).Msg("error getting configs")
	}
	if cfg.App.Version == "" {
		cfg.App.Version = info.BuildVersion()
	}

	log, err := logger.New(logger.Config{Role: role, Level: cfg.App.LogLevel})
	if err != nil {
		logger.NewLogger(role).Fatal().Err(err).Msg("error creating logger")
	}
	log.Debug().
		Str("backend", cfg.Storage.Backend).
		Str("blob_key", cfg.Storage.BlobKey).
		Str("address", cfg.Server.HTTPAddress).
		Bool("integrity_check", cfg.App.HashKey != "").
		Msg("received configs")

	blobs, err := store.NewBlobStore(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating blob store")
	}

	services, err := service.NewServices(blobs, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	if err = srv.RunServer(); err != nil {
		log.Fatal().Err(err).Msg("error running server")
	}
}
