// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"io"
	"net/http"

	"github.com/MKhiriev/go-leave-sync/internal/app"
	"github.com/MKhiriev/go-leave-sync/internal/logger"
	"github.com/MKhiriev/go-leave-sync/internal/utils"
)

var nullDocument = []byte("null")

// getData writes the stored document. A missing document and a failed read
// are both answered with 200 and a JSON null, so a client can always fall
// back to its defaults.
func (h *Handler) getData(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	w.Header().Set("Cache-Control", "no-store")

	document, err := h.services.DataService.Get(r.Context())
	if err != nil {
		log.Err(err).Str("func", "*Handler.getData").Msg("error reading document")
		document = nil
	}
	if len(document) == 0 {
		document = nullDocument
	}

	if _, err = utils.WriteRawJSON(w, document, http.StatusOK); err != nil {
		log.Err(err).Str("func", "*Handler.getData").Msg("error writing response")
	}
}

// putData replaces the stored document with the request body.
func (h *Handler) putData(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Err(err).Str("func", "*Handler.putData").Msg("failed to read request body")
		utils.WriteError(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	if err = h.services.DataService.Put(r.Context(), body); err != nil {
		status, message := putFailure(err)
		log.Err(err).Str("func", "*Handler.putData").Int("status", status).Msg("error saving document")
		utils.WriteError(w, message, status)
		return
	}

	if _, err = utils.WriteJSON(w, map[string]bool{"ok": true}, http.StatusOK); err != nil {
		log.Err(err).Str("func", "*Handler.putData").Msg("error writing response")
	}
}

func (h *Handler) preflight(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
