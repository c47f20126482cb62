// Package lcu locates a running League client and talks to its local API.
//
// # Discovery
//
// The client listens on a random port and protects its API with a password
// generated per run. Neither is published anywhere stable, so a Locator tries
// several sources in a fixed order and stops at the first one that works:
//
//  1. The lockfile in the game client's install directory
//  2. The lockfile in the Riot Client config directory (used when the game
//     client is embedded in the Riot Client host)
//  3. The command lines of running client processes, where the platform can
//     list them (Windows via PowerShell, macOS via ps)
//
// A lockfile is a single line of the form
//
//	name:pid:port:password:protocol
//
// Lockfiles written by the host process alone are rejected by IsHostProcess.
// When every source is skipped, Discover returns a *NotFoundError listing each
// source with the reason it was skipped. DebugInfo walks the same sources
// without stopping and renders one line per source for diagnostics.
//
// Discovery results are never cached. The client can restart at any time with
// a new port and password, so callers discover again before each request.
//
// # Requests
//
// Client.Request sends one HTTPS request to 127.0.0.1 with HTTP Basic auth
// (user "riot", the discovered password). Certificate verification is off for
// that client only. Failures are returned as *APIError:
//
//   - KindInvalidMethod: the method is not an HTTP token; nothing was sent
//   - KindTransport: connect, TLS or read failure
//   - KindHTTP: non-2xx status; Body holds the response text
//
// There are no retries at this layer.
package lcu
