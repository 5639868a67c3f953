package service

import (
	"context"

	"github.com/MKhiriev/go-leave-sync/internal/config"
	"github.com/MKhiriev/go-leave-sync/internal/logger"
)

// appInfoService reports the server build to /api/version. Clients log it
// at startup to spot a stale server.
type appInfoService struct {
	version string
}

func NewAppInfoService(cfg config.App, logger *logger.Logger) (AppInfoService, error) {
	if cfg.Version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	logger.Debug().Str("version", cfg.Version).Msg("serving app info")
	return &appInfoService{version: cfg.Version}, nil
}

func (s *appInfoService) GetAppVersion(context.Context) string {
	return s.version
}
