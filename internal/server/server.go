package server

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-leave-sync/internal/config"
	"github.com/MKhiriev/go-leave-sync/internal/handler"
	"github.com/MKhiriev/go-leave-sync/internal/logger"
)

type server struct {
	httpServer *httpServer
	logger     *logger.Logger
}

func NewServer(handlers *handler.Handlers, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")

	if handlers == nil || handlers.HTTP == nil || cfg.HTTPAddress == "" {
		return nil, errNoServersAreCreated
	}

	return &server{
		httpServer: newHTTPServer(handlers.HTTP.Init(), cfg, logger),
		logger:     logger,
	}, nil
}

func (s *server) RunServer() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	return s.run(ctx)
}

func (s *server) Shutdown() {
	if s.httpServer != nil {
		s.httpServer.Shutdown()
	}
}

// run serves until ctx is done or the listener fails. Either way the server
// is shut down and in-flight requests are drained before it returns.
func (s *server) run(ctx context.Context) error {
	if s.httpServer == nil {
		return errNoServersToRun
	}

	serveErr := make(chan error, 1)
	go func() { serveErr <- s.httpServer.serve() }()

	select {
	case <-ctx.Done():
		s.logger.Info().Msg("shutdown requested")
		s.Shutdown()
		if err := <-serveErr; err != nil {
			return err
		}
	case err := <-serveErr:
		if err != nil {
			return err
		}
	}

	s.logger.Info().Msg("server stopped")
	return nil
}
