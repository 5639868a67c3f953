// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-leave-sync/internal/app"
	"github.com/MKhiriev/go-leave-sync/internal/utils"
	"github.com/go-chi/chi/v5"
)

// CheckHTTPMethod returns an [http.HandlerFunc] that is intended to be
// registered as the router's MethodNotAllowed handler via
// [chi.Mux.MethodNotAllowed].
//
// Chi calls it when the request path matches a registered route but the
// HTTP method is not handled. It answers with 405 and a JSON body
// {"error":"Method not allowed"}. A path that matches no registered pattern
// exactly is answered with 404.
//
// Usage:
//
//	router := chi.NewRouter()
//	// ... register routes ...
//	router.MethodNotAllowed(CheckHTTPMethod(router))
func CheckHTTPMethod(router *chi.Mux) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		for _, route := range router.Routes() {
			if route.Pattern == r.URL.Path {
				utils.WriteError(w, app.MsgMethodNotAllowed, http.StatusMethodNotAllowed)
				return
			}
		}

		http.NotFound(w, r)
	}
}
