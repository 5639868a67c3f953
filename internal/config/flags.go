package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses a LeaveSync command line.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-r remote /data endpoint address used by the client
//	-backend storage backend (memory, file, sqlite, postgres, s3)
//	-blob-key key of the shared document
//	-f file storage directory
//	-d database DSN
//	-prefs device preferences file
//	-c/-config json file path with configs
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-hash-key integrity hash key
//	-log-file client log file
//	-log-level minimum log level
//	-sync-mode manual or auto
//	-poll-interval auto-sync poll interval
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("leavesync", flag.ContinueOnError)

	var serverAddress NetAddress
	var remoteAddress string
	var backend, blobKey string
	var filesDir, databaseDSN, prefsPath string
	var jsonConfigPath string
	var requestTimeout time.Duration
	var hashKey, logFile, logLevel string
	var syncMode string
	var pollInterval time.Duration

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&remoteAddress, "r", "", "Remote /data endpoint address")
	fs.StringVar(&backend, "backend", "", "Storage backend")
	fs.StringVar(&blobKey, "blob-key", "", "Shared document key")
	fs.StringVar(&filesDir, "f", "", "File storage directory")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&prefsPath, "prefs", "", "Device preferences file")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&hashKey, "hash-key", "", "Integrity hash key")
	fs.StringVar(&logFile, "log-file", "", "Client log file")
	fs.StringVar(&logLevel, "log-level", "", "Minimum log level")
	fs.StringVar(&syncMode, "sync-mode", "", "Sync mode: manual or auto")
	fs.DurationVar(&pollInterval, "poll-interval", 0, "Auto-sync poll interval")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &StructuredConfig{
		App: App{
			HashKey:  hashKey,
			LogFile:  logFile,
			LogLevel: logLevel,
		},
		Storage: Storage{
			Backend: backend,
			BlobKey: blobKey,
			DB: DB{
				DSN: databaseDSN,
			},
			Files: Files{
				Dir: filesDir,
			},
			Preferences: Preferences{
				Path: prefsPath,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Adapter: Adapter{
			HTTPAddress:    remoteAddress,
			RequestTimeout: requestTimeout,
		},
		Workers: Workers{
			SyncMode:     syncMode,
			PollInterval: pollInterval,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be between 1 and 65535")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
