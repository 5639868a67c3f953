// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/go-leave-sync/internal/service"
	"github.com/MKhiriev/go-leave-sync/internal/store"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestGetData(t *testing.T) {
	tests := []struct {
		name     string
		document json.RawMessage
		err      error
		wantBody string
	}{
		{name: "stored document", document: json.RawMessage(`{"users":[]}`), wantBody: `{"users":[]}`},
		{name: "nothing stored", document: nil, wantBody: "null"},
		{name: "read failure", err: errors.New("s3 down"), wantBody: "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, data, _ := newMockedHandler(t, "")
			data.EXPECT().Get(gomock.Any()).Return(tt.document, tt.err)

			req := httptest.NewRequest(http.MethodGet, "/data", nil)
			rr := httptest.NewRecorder()
			h.getData(rr, req)

			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, "no-store", rr.Header().Get("Cache-Control"))
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			assert.Equal(t, tt.wantBody, rr.Body.String())
		})
	}
}

func TestPutData(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
		wantBody   string
	}{
		{name: "saved", wantStatus: http.StatusOK, wantBody: `{"ok":true}`},
		{
			name:       "invalid json",
			serviceErr: service.ErrInvalidDataProvided,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Invalid JSON"}`,
		},
		{
			name:       "store failure",
			serviceErr: errors.New("disk full"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"Failed to save data"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, data, _ := newMockedHandler(t, "")
			body := `{"users":[{"id":1}]}`
			data.EXPECT().Put(gomock.Any(), gomock.Eq(json.RawMessage(body))).Return(tt.serviceErr)

			req := httptest.NewRequest(http.MethodPut, "/data", strings.NewReader(body))
			rr := httptest.NewRecorder()
			h.putData(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.JSONEq(t, tt.wantBody, rr.Body.String())
		})
	}
}

func TestPreflight(t *testing.T) {
	h, _, _ := newMockedHandler(t, "")
	rr := httptest.NewRecorder()

	h.preflight(rr, httptest.NewRequest(http.MethodOptions, "/data", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, rr.Body.String())
}

func TestPutFailure(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{name: "malformed body", err: fmt.Errorf("decode: %w", service.ErrInvalidDataProvided), wantStatus: http.StatusBadRequest, wantMsg: "Invalid JSON"},
		{name: "duplicate key", err: store.ErrBlobExists, wantStatus: http.StatusInternalServerError, wantMsg: "Failed to save data"},
		{name: "store down", err: errors.New("connection refused"), wantStatus: http.StatusInternalServerError, wantMsg: "Failed to save data"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := putFailure(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}
