package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() *StructuredConfig {
	cfg := &StructuredConfig{}
	cfg.applyDefaults()
	return cfg
}

func TestStructuredConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *StructuredConfig)
		wantErr error
	}{
		{name: "defaults", mutate: func(*StructuredConfig) {}},
		{name: "unknown backend", mutate: func(c *StructuredConfig) { c.Storage.Backend = "redis" }, wantErr: ErrInvalidStorageConfigs},
		{name: "file without dir", mutate: func(c *StructuredConfig) { c.Storage.Backend = BackendFile }, wantErr: ErrInvalidStorageConfigs},
		{name: "file with dir", mutate: func(c *StructuredConfig) { c.Storage.Backend = BackendFile; c.Storage.Files.Dir = "/tmp" }},
		{name: "sqlite without dsn", mutate: func(c *StructuredConfig) { c.Storage.Backend = BackendSQLite }, wantErr: ErrInvalidStorageConfigs},
		{name: "s3 without region", mutate: func(c *StructuredConfig) { c.Storage.Backend = BackendS3; c.Storage.S3.Bucket = "b" }, wantErr: ErrInvalidStorageConfigs},
		{name: "unknown sync mode", mutate: func(c *StructuredConfig) { c.Workers.SyncMode = "eager" }, wantErr: ErrInvalidWorkerConfigs},
		{name: "auto with negative debounce", mutate: func(c *StructuredConfig) {
			c.Workers.SyncMode = SyncModeAuto
			c.Workers.SaveDebounce = -time.Second
		}, wantErr: ErrInvalidWorkerConfigs},
		{name: "negative server timeout", mutate: func(c *StructuredConfig) { c.Server.RequestTimeout = -1 }, wantErr: ErrInvalidServerConfigs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestClientConfig_Validate_RemoteSkipsStorage(t *testing.T) {
	cfg := validConfig()
	cfg.Storage.Backend = BackendPostgres // no DSN, irrelevant for a remote client
	cfg.Adapter.HTTPAddress = "http://localhost:8080"

	client := clientConfigFrom(cfg)

	assert.True(t, client.Remote())
	assert.NoError(t, client.validate())
}

func TestClientConfig_Validate_RemoteNeedsTimeout(t *testing.T) {
	cfg := validConfig()
	cfg.Adapter.HTTPAddress = "http://localhost:8080"
	cfg.Adapter.RequestTimeout = 0

	assert.ErrorIs(t, clientConfigFrom(cfg).validate(), ErrInvalidAdapterConfigs)
}

func TestClientConfig_Validate_EmbeddedChecksStorage(t *testing.T) {
	cfg := validConfig()
	cfg.Storage.Backend = BackendSQLite

	client := clientConfigFrom(cfg)

	assert.False(t, client.Remote())
	assert.ErrorIs(t, client.validate(), ErrInvalidStorageConfigs)
}
