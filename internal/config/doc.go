// Package config provides configuration loading, merging, and validation
// facilities for the LeaveSync server and client.
//
// Configuration is assembled from multiple sources. For every field the
// first source that sets a non-zero value wins:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// Fields left unset by every source receive defaults (see applyDefaults).
// The main entry points are [GetStructuredConfig] for the server and
// [GetClientConfig] for the client.
package config
