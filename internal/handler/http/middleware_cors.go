package http

import (
	"net/http"

	"github.com/MKhiriev/go-leave-sync/internal/utils"
)

const (
	corsAllowOrigin  = "*"
	corsAllowMethods = "GET, PUT, OPTIONS"
	corsAllowHeaders = "Content-Type"
)

// withCORS allows any origin to read and replace the document. The header
// carrying the body hash is allowed only when hashing is enabled.
func (h *Handler) withCORS(next http.Handler) http.Handler {
	allowHeaders := corsAllowHeaders
	if h.hasher.Enabled() {
		allowHeaders += ", " + utils.HashHeader
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", corsAllowOrigin)
		w.Header().Set("Access-Control-Allow-Methods", corsAllowMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowHeaders)

		next.ServeHTTP(w, r)
	})
}
