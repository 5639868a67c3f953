package service

import (
	"fmt"

	"github.com/MKhiriev/go-leave-sync/internal/config"
	"github.com/MKhiriev/go-leave-sync/internal/logger"
	"github.com/MKhiriev/go-leave-sync/internal/store"
)

// Services groups the server-side services.
type Services struct {
	DataService    DataService
	AppInfoService AppInfoService
}

func NewServices(blobs store.BlobStore, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, fmt.Errorf("create app info service: %w", err)
	}

	data := NewDataValidationService().Wrap(NewDataService(blobs, cfg.Storage.BlobKey, logger))

	return &Services{
		DataService:    data,
		AppInfoService: appInfo,
	}, nil
}
