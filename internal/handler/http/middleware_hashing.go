package http

import (
	"bytes"
	"io"
	"net/http"

	"github.com/MKhiriev/go-leave-sync/internal/app"
	"github.com/MKhiriev/go-leave-sync/internal/logger"
	"github.com/MKhiriev/go-leave-sync/internal/utils"
)

// checkHash rejects uploads whose HashSHA256 header is missing or does not
// match the HMAC of the body. It is a no-op without a hash key. The body is
// restored for the next handler.
func (h *Handler) checkHash(next http.Handler) http.Handler {
	if !h.hasher.Enabled() {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		body, err := io.ReadAll(r.Body)
		if err != nil {
			log.Err(err).Str("func", "*Handler.checkHash").Msg("failed to read request body")
			utils.WriteError(w, app.MsgInvalidJSON, http.StatusBadRequest)
			return
		}
		r.Body = io.NopCloser(bytes.NewReader(body))

		sum := r.Header.Get(utils.HashHeader)
		if sum == "" || !h.hasher.Verify(body, sum) {
			log.Warn().Str("func", "*Handler.checkHash").
				Bool("header_present", sum != "").
				Int("body_size", len(body)).
				Msg("integrity check failed")
			utils.WriteError(w, app.MsgIntegrityCheckFailed, http.StatusBadRequest)
			return
		}

		next.ServeHTTP(w, r)
	})
}
