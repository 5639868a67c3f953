package adapter

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-leave-sync/internal/config"
	"github.com/MKhiriev/go-leave-sync/internal/logger"
	"github.com/MKhiriev/go-leave-sync/internal/store"
	"github.com/MKhiriev/go-leave-sync/internal/utils"
)

const (
	dataPath    = "/data"
	versionPath = "/api/version"
)

// HTTPBlobStore talks to the /data endpoint of a LeaveSync server.
type HTTPBlobStore struct {
	client *utils.HTTPClient
	hasher *utils.Hasher
	now    func() time.Time
	logger *logger.Logger
}

// NewHTTPBlobStore constructs an [HTTPBlobStore]. It normalises and validates
// the base URL from adapterCfg.HTTPAddress and configures the request
// timeout. When appCfg.HashKey is set, every PUT carries a HashSHA256 header.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPBlobStore(adapterCfg config.ClientAdapter, appCfg config.ClientApp, logger *logger.Logger) (*HTTPBlobStore, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	return &HTTPBlobStore{
		client: utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout),
		hasher: utils.NewHasher(appCfg.HashKey),
		now:    time.Now,
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// FetchLatest implements store.BlobStore. The key is owned by the server and
// ignored here. A cache-busting query parameter and no-cache headers make
// every call reach the server. A JSON null body means nothing was stored yet
// and yields store.ErrBlobNotFound.
func (h *HTTPBlobStore) FetchLatest(ctx context.Context, _ string) ([]byte, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Cache-Control", "no-cache").
		SetHeader("Pragma", "no-cache").
		SetQueryParam("t", strconv.FormatInt(h.now().UnixNano(), 10)).
		Get(dataPath)
	if err != nil {
		h.logger.Err(err).Str("func", "HTTPBlobStore.FetchLatest").Msg("fetch request failed")
		return nil, fmt.Errorf("fetch document request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	body := bytes.TrimSpace(resp.Body())
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return nil, store.ErrBlobNotFound
	}
	return body, nil
}

// WriteFull implements store.BlobStore with a PUT of the whole document.
// The server decides the key and the write options.
func (h *HTTPBlobStore) WriteFull(ctx context.Context, _ string, blob []byte, _ store.WriteOptions) error {
	req := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(blob)
	if h.hasher.Enabled() {
		req.SetHeader(utils.HashHeader, h.hasher.Sum(blob))
	}

	resp, err := req.Put(dataPath)
	if err != nil {
		h.logger.Err(err).Str("func", "HTTPBlobStore.WriteFull").Msg("write request failed")
		return fmt.Errorf("write document request: %w", err)
	}
	return mapHTTPError(resp)
}

// ServerVersion implements [RemoteStore].
func (h *HTTPBlobStore) ServerVersion(ctx context.Context) (string, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Accept", "text/plain").
		Get(versionPath)
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.String()), nil
}
