package server

// Server runs the LeaveSync HTTP endpoint.
type Server interface {
	// RunServer serves until SIGTERM, SIGINT or SIGQUIT and then shuts down
	// gracefully. It returns early if the listener fails.
	RunServer() error

	// Shutdown stops accepting requests and drains the in-flight ones.
	Shutdown()
}
