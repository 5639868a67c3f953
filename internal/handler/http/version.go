package http

import (
	"io"
	"net/http"

	"github.com/MKhiriev/go-leave-sync/internal/logger"
)

// getServerVersion answers with the bare version string. Clients compare it
// on startup, so it is never cached.
func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Header().Set("Cache-Control", "no-store")

	if _, err := io.WriteString(w, h.services.AppInfoService.GetAppVersion(r.Context())); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.getServerVersion").Msg("error writing response")
	}
}
