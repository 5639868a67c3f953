package service

import (
	"context"
	"encoding/json"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/servicemock/service_mock.go -package=servicemock

// DataService serves the shared document over the HTTP-facing store.
type DataService interface {
	// Get returns the stored document, or nil when nothing is stored yet.
	Get(ctx context.Context) (json.RawMessage, error)
	// Put replaces the stored document.
	Put(ctx context.Context, document json.RawMessage) error
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// DataServiceWrapper defines middleware composition for DataService.
// Implementations wrap an existing DataService to add behavior such as
// validation.
type DataServiceWrapper interface {
	Wrap(DataService) DataService
}
