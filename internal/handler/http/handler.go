package http

import (
	"github.com/MKhiriev/go-leave-sync/internal/config"
	"github.com/MKhiriev/go-leave-sync/internal/logger"
	"github.com/MKhiriev/go-leave-sync/internal/service"
	"github.com/MKhiriev/go-leave-sync/internal/utils"
)

type Handler struct {
	services *service.Services
	hasher   *utils.Hasher

	logger *logger.Logger
}

// NewHandler creates a Handler. When cfg.HashKey is set, document uploads
// must carry a matching HashSHA256 header.
func NewHandler(services *service.Services, cfg config.App, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		hasher:   utils.NewHasher(cfg.HashKey),
		logger:   logger,
	}
}
