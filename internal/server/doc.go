// Package server runs the HTTP server that hosts the shared document.
//
// It owns the server lifecycle: startup, signal handling and graceful
// shutdown on SIGTERM, SIGINT or SIGQUIT.
package server
