package service

import (
	"github.com/MKhiriev/go-leave-sync/internal/config"
	"github.com/MKhiriev/go-leave-sync/internal/logger"
	"github.com/MKhiriev/go-leave-sync/internal/store"
)

// ClientServices groups the services of the interactive client.
type ClientServices struct {
	SyncClient *SyncClient
	Workspace  *Workspace
	// AutoSync is nil unless the sync mode is auto.
	AutoSync *AutoSyncJob
}

func NewClientServices(blobs store.BlobStore, prefs store.Preferences, cfg config.ClientConfig, logger *logger.Logger) *ClientServices {
	syncClient := NewSyncClient(blobs, cfg.Storage.BlobKey, cfg.Workers, logger.GetChildLogger())
	services := &ClientServices{
		SyncClient: syncClient,
		Workspace:  NewWorkspace(syncClient, prefs, logger),
	}
	if cfg.Workers.SyncMode == config.SyncModeAuto {
		services.AutoSync = NewAutoSyncJob(syncClient, cfg.Workers, logger)
	}
	return services
}
