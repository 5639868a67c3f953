package service

import (
	"context"
	"encoding/json"
)

// DataValidationService rejects documents that are not valid JSON before
// they reach the store.
type DataValidationService struct {
	inner DataService
}

func NewDataValidationService() DataServiceWrapper {
	return &DataValidationService{}
}

func (v *DataValidationService) Get(ctx context.Context) (json.RawMessage, error) {
	return v.inner.Get(ctx)
}

func (v *DataValidationService) Put(ctx context.Context, document json.RawMessage) error {
	if len(document) == 0 || !json.Valid(document) {
		return ErrInvalidDataProvided
	}
	return v.inner.Put(ctx, document)
}

func (v *DataValidationService) Wrap(inner DataService) DataService {
	v.inner = inner
	return v
}
