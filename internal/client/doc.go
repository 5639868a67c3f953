// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the interactive client application runtime.
//
// It picks the document store, wires the terminal UI to the client services
// and runs the optional auto-sync job for the lifetime of the UI.
package client
