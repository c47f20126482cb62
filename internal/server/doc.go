// Package server exposes the image cache and connection status over HTTP on
// a loopback address, for overlays and browser sources that cannot read the
// cache directory themselves.
//
//	GET /images/{path}   cached image bytes, 404 on miss, CORS open
//	GET /connection      {"ok":true,"port":51234}
//	GET /healthz         OK
//	GET /metrics         Prometheus exposition
package server
