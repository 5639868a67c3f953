// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if err := cfg.Storage.validate(); err != nil {
		return err
	}
	if cfg.Server.RequestTimeout < 0 {
		return fmt.Errorf("%w: negative server request timeout", ErrInvalidServerConfigs)
	}
	return cfg.Workers.validate()
}

func (cfg *ClientConfig) validate() error {
	if cfg.Remote() {
		if cfg.Adapter.RequestTimeout <= 0 {
			return fmt.Errorf("%w: request timeout must be positive", ErrInvalidAdapterConfigs)
		}
	} else if err := cfg.Storage.validate(); err != nil {
		return err
	}

	return cfg.Workers.validate()
}

func (s Storage) validate() error {
	if s.BlobKey == "" {
		return fmt.Errorf("%w: empty blob key", ErrInvalidStorageConfigs)
	}

	switch s.Backend {
	case BackendMemory:
	case BackendFile:
		if s.Files.Dir == "" {
			return fmt.Errorf("%w: file backend needs a directory", ErrInvalidStorageConfigs)
		}
	case BackendSQLite, BackendPostgres:
		if s.DB.DSN == "" {
			return fmt.Errorf("%w: %s backend needs a DSN", ErrInvalidStorageConfigs, s.Backend)
		}
	case BackendS3:
		if s.S3.Bucket == "" || s.S3.Region == "" {
			return fmt.Errorf("%w: s3 backend needs a bucket and a region", ErrInvalidStorageConfigs)
		}
	default:
		return fmt.Errorf("%w: unknown backend %q", ErrInvalidStorageConfigs, s.Backend)
	}

	return nil
}

func (w Workers) validate() error {
	switch w.SyncMode {
	case SyncModeManual:
		return nil
	case SyncModeAuto:
		if w.PollInterval <= 0 || w.SaveDebounce <= 0 || w.EchoSuppression < 0 {
			return fmt.Errorf("%w: auto sync needs positive intervals", ErrInvalidWorkerConfigs)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown sync mode %q", ErrInvalidWorkerConfigs, w.SyncMode)
	}
}
