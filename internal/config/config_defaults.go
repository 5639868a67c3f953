package config

import "time"

const (
	DefaultBlobKey         = "leavesync-data.json"
	DefaultHTTPAddress     = "localhost:8080"
	DefaultRequestTimeout  = 15 * time.Second
	DefaultPollInterval    = 15 * time.Second
	DefaultSaveDebounce    = 3 * time.Second
	DefaultEchoSuppression = 5 * time.Second
)

// applyDefaults fills every field no source has set.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = BackendMemory
	}
	if cfg.Storage.BlobKey == "" {
		cfg.Storage.BlobKey = DefaultBlobKey
	}
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = DefaultHTTPAddress
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Adapter.RequestTimeout == 0 {
		cfg.Adapter.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Workers.SyncMode == "" {
		cfg.Workers.SyncMode = SyncModeManual
	}
	if cfg.Workers.PollInterval == 0 {
		cfg.Workers.PollInterval = DefaultPollInterval
	}
	if cfg.Workers.SaveDebounce == 0 {
		cfg.Workers.SaveDebounce = DefaultSaveDebounce
	}
	if cfg.Workers.EchoSuppression == 0 {
		cfg.Workers.EchoSuppression = DefaultEchoSuppression
	}
}
