package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const dataPath = "/data"

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer, h.withTraceID, h.withLogging, h.withCORS, withGZip)

	router.Get(dataPath, h.getData)
	router.With(h.checkHash).Put(dataPath, h.putData)
	router.Options(dataPath, h.preflight)

	router.Get("/api/version", h.getServerVersion)

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
