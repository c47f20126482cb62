// Package app is scout's composition root.
//
// Bootstrap loads config and prefs, builds the image cache, the client
// locator and the authenticated API client, and returns a Runtime whose
// Service is the single entry point every front end (CLI, TUI, local HTTP
// server) calls into.
//
// # Service
//
// Service never caches connection details. Each DiscoverConnection and
// PerformAuthenticatedRequest call rediscovers the client, so a restart with
// a new port and password is picked up on the next call. Results handed
// back to callers carry the port but never the password.
//
// # Polling
//
// Watch seeds a state.Store with one discovery, then StartPoller refreshes it
// in the background. After a failure the next poll is delayed by
// calculateBackoff, doubling per consecutive failure up to 30s.
//
// # Logging
//
// NewLogger returns a go-kit logfmt logger filtered at the requested level.
// Each component adds its own "component" key with log.With.
package app
