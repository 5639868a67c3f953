package config

import (
	"fmt"
	"time"
)

// ClientApp holds client-side application settings derived from the shared
// structured config.
type ClientApp struct {
	// HashKey is the HMAC key used by the client for payload integrity checks.
	HashKey string
	// Version is shown in the TUI header.
	Version string
	// LogFile is where the client logs while the TUI owns the terminal.
	LogFile string
	// LogLevel is the minimum level written to LogFile.
	LogLevel string
	// ExportDir is where spreadsheet exports are written.
	ExportDir string
}

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the /data endpoint address used by the client.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// App contains application-level client settings.
	App ClientApp
	// Adapter contains the remote endpoint. Empty means embedded storage.
	Adapter ClientAdapter
	// Storage is used for the embedded backend and the preferences file.
	Storage Storage
	// Workers contains auto-sync settings.
	Workers Workers
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := clientConfigFrom(cfg)
	if err = clientCfg.validate(); err != nil {
		return nil, err
	}
	return clientCfg, nil
}

func clientConfigFrom(cfg *StructuredConfig) *ClientConfig {
	return &ClientConfig{
		App: ClientApp{
			HashKey:   cfg.App.HashKey,
			Version:   cfg.App.Version,
			LogFile:   cfg.App.LogFile,
			LogLevel:  cfg.App.LogLevel,
			ExportDir: cfg.App.ExportDir,
		},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: cfg.Storage,
		Workers: cfg.Workers,
	}
}

// Remote reports whether the client talks to a remote /data endpoint.
func (cfg *ClientConfig) Remote() bool {
	return cfg.Adapter.HTTPAddress != ""
}
