package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/go-leave-sync/internal/logger"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithTraceID(t *testing.T) {
	tests := []struct {
		name          string
		incoming      string
		wantGenerated bool
	}{
		{name: "incoming trace id is reused", incoming: "trace-abc"},
		{name: "trace id is generated", incoming: "", wantGenerated: true},
		{name: "malformed trace id is replaced", incoming: "bad id\nforged=1", wantGenerated: true},
		{name: "oversized trace id is replaced", incoming: strings.Repeat("a", maxTraceIDLen+1), wantGenerated: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := &Handler{logger: &logger.Logger{Logger: zerolog.New(&buf)}}

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				logger.FromRequest(r).Info().Msg("inside")
			})

			req := httptest.NewRequest(http.MethodGet, "/data", nil)
			if tt.incoming != "" {
				req.Header.Set(traceIDHeader, tt.incoming)
			}
			rr := httptest.NewRecorder()
			h.withTraceID(next).ServeHTTP(rr, req)

			traceID := rr.Header().Get(traceIDHeader)
			if tt.wantGenerated {
				_, err := uuid.Parse(traceID)
				assert.NoError(t, err)
			} else {
				assert.Equal(t, tt.incoming, traceID)
			}

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, traceID, entry["trace_id"])
			assert.Equal(t, "inside", entry["message"])
		})
	}
}

func TestWithTraceID_ParentLoggerUntouched(t *testing.T) {
	var buf bytes.Buffer
	h := &Handler{logger: &logger.Logger{Logger: zerolog.New(&buf)}}

	h.withTraceID(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})).
		ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/data", nil))

	h.logger.Info().Msg("after")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.NotContains(t, entry, "trace_id")
}

func TestValidTraceID(t *testing.T) {
	assert.True(t, validTraceID("trace-abc_1.2"))
	assert.True(t, validTraceID(strings.Repeat("a", maxTraceIDLen)))
	assert.False(t, validTraceID(""))
	assert.False(t, validTraceID("has space"))
	assert.False(t, validTraceID("ünïcode"))
}
