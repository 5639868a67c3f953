package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type StructuredJSONConfig struct {
	App struct {
		HashKey   string `json:"hash_key"`
		Version   string `json:"version"`
		LogFile   string `json:"log_file"`
		LogLevel  string `json:"log_level"`
		ExportDir string `json:"export_dir"`
	} `json:"app,omitempty"`

	Storage struct {
		Backend string `json:"backend"`
		BlobKey string `json:"blob_key"`

		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		Files struct {
			Dir string `json:"dir"`
		} `json:"files,omitempty"`

		S3 struct {
			Bucket    string `json:"bucket"`
			Region    string `json:"region"`
			Endpoint  string `json:"endpoint"`
			AccessKey string `json:"access_key"`
			SecretKey string `json:"secret_key"`
		} `json:"s3,omitempty"`

		Preferences struct {
			Path string `json:"path"`
		} `json:"preferences,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Adapter struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"adapter,omitempty"`

	Workers struct {
		SyncMode        string   `json:"sync_mode"`
		PollInterval    Duration `json:"poll_interval"`
		SaveDebounce    Duration `json:"save_debounce"`
		EchoSuppression Duration `json:"echo_suppression"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			HashKey:   jsonCfg.App.HashKey,
			Version:   jsonCfg.App.Version,
			LogFile:   jsonCfg.App.LogFile,
			LogLevel:  jsonCfg.App.LogLevel,
			ExportDir: jsonCfg.App.ExportDir,
		},
		Storage: Storage{
			Backend: jsonCfg.Storage.Backend,
			BlobKey: jsonCfg.Storage.BlobKey,
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
			Files: Files{
				Dir: jsonCfg.Storage.Files.Dir,
			},
			S3: S3{
				Bucket:    jsonCfg.Storage.S3.Bucket,
				Region:    jsonCfg.Storage.S3.Region,
				Endpoint:  jsonCfg.Storage.S3.Endpoint,
				AccessKey: jsonCfg.Storage.S3.AccessKey,
				SecretKey: jsonCfg.Storage.S3.SecretKey,
			},
			Preferences: Preferences{
				Path: jsonCfg.Storage.Preferences.Path,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Adapter: Adapter{
			HTTPAddress:    jsonCfg.Adapter.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
		},
		Workers: Workers{
			SyncMode:        jsonCfg.Workers.SyncMode,
			PollInterval:    time.Duration(jsonCfg.Workers.PollInterval),
			SaveDebounce:    time.Duration(jsonCfg.Workers.SaveDebounce),
			EchoSuppression: time.Duration(jsonCfg.Workers.EchoSuppression),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
