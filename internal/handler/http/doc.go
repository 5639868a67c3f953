// Package http implements the HTTP-facing document store.
//
// It exposes the /data endpoint that clients use to read and replace the
// shared document, and /api/version. Cross-cutting concerns such as CORS,
// request tracing, access logging, response compression, and integrity
// checks are handled in this package before requests are delegated to the
// service layer.
package http
