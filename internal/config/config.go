// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// Storage backends accepted by Storage.Backend.
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendS3       = "s3"
)

// Sync modes accepted by Workers.SyncMode.
const (
	// SyncModeManual saves and refreshes only on explicit user action.
	SyncModeManual = "manual"
	// SyncModeAuto polls the remote document and saves edits after a debounce.
	SyncModeAuto = "auto"
)

// StructuredConfig is the top-level configuration container for the
// LeaveSync application. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line flags,
// and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the integrity key,
	// the log file and the application version.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the document store backends and the
	// device-local preferences file.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds the address of the remote /data endpoint used by the client.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds configuration for the background auto-sync job.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// HashKey is the HMAC key used for request integrity checking
	// (the HashSHA256 header). Integrity checking is off when empty.
	// Env: APP_HASH_KEY
	HashKey string `env:"HASH_KEY"`

	// Version is the semantic version string of the running application
	// (e.g. "1.2.3"). Exposed via the /api/version endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// LogFile is the path of the client log file. The client logs to
	// stdout when empty.
	// Env: APP_LOG_FILE
	LogFile string `env:"LOG_FILE"`

	// LogLevel is the minimum zerolog level name. Debug when empty.
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`

	// ExportDir is where spreadsheet exports are written.
	// Env: APP_EXPORT_DIR
	ExportDir string `env:"EXPORT_DIR"`
}

// Storage groups the configuration for the document store and the
// device-local preferences.
type Storage struct {
	// Backend selects the document store: memory, file, sqlite, postgres or s3.
	// Env: STORAGE_BACKEND
	Backend string `env:"BACKEND"`

	// BlobKey is the key the shared document is stored under.
	// Env: STORAGE_BLOB_KEY
	BlobKey string `env:"BLOB_KEY"`

	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`

	// Files holds the file-system store settings.
	Files Files `envPrefix:"FILES_"`

	// S3 holds the object store settings.
	S3 S3 `envPrefix:"S3_"`

	// Preferences holds the device-local preferences file settings.
	Preferences Preferences `envPrefix:"PREFERENCES_"`
}

// DB holds connection settings for the relational database backends.
type DB struct {
	// DSN is the PostgreSQL connection string or the SQLite file path.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Files holds file-system settings for the file backend.
type Files struct {
	// Dir is the directory blobs are stored in, one file per key.
	// Env: STORAGE_FILES_DIR
	Dir string `env:"DIR"`
}

// S3 holds the settings of an S3 compatible object store.
type S3 struct {
	// Env: STORAGE_S3_BUCKET
	Bucket string `env:"BUCKET"`
	// Env: STORAGE_S3_REGION
	Region string `env:"REGION"`
	// Endpoint overrides the AWS endpoint, e.g. for MinIO.
	// Env: STORAGE_S3_ENDPOINT
	Endpoint string `env:"ENDPOINT"`
	// Env: STORAGE_S3_ACCESS_KEY
	AccessKey string `env:"ACCESS_KEY"`
	// Env: STORAGE_S3_SECRET_KEY
	SecretKey string `env:"SECRET_KEY"`
}

// Preferences holds the location of the device-local preferences.
type Preferences struct {
	// Path is the preferences JSON file. Preferences are kept in memory
	// when empty or ":memory:".
	// Env: STORAGE_PREFERENCES_PATH
	Path string `env:"PATH"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Adapter holds the settings of the client's remote document store.
type Adapter struct {
	// HTTPAddress is the base address of the /data endpoint. When empty the
	// client talks to the configured Storage backend directly.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds every outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds configuration for the auto-sync job.
type Workers struct {
	// SyncMode is manual or auto.
	// Env: WORKERS_SYNC_MODE
	SyncMode string `env:"SYNC_MODE"`

	// PollInterval is how often the remote document is polled in auto mode.
	// Env: WORKERS_POLL_INTERVAL
	PollInterval time.Duration `env:"POLL_INTERVAL"`

	// SaveDebounce is the quiet period after the last edit before an
	// automatic save.
	// Env: WORKERS_SAVE_DEBOUNCE
	SaveDebounce time.Duration `env:"SAVE_DEBOUNCE"`

	// EchoSuppression is the window after a save during which polls are
	// skipped.
	// Env: WORKERS_ECHO_SUPPRESSION
	EchoSuppression time.Duration `env:"ECHO_SUPPRESSION"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from environment variables, command-line flags and the
// optional JSON file.
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return loadConfig(os.Args[1:])
}

func loadConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(args).
		withJSON().
		build()
}
