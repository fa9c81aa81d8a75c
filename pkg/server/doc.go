// Package server exposes the decode pipeline over HTTP.
//
// Routes:
//
//	GET /healthz                       liveness probe, always "ok"
//	GET /version                       build information as JSON
//	GET /decode?url=...&fill=&columns=&format=&refresh=
//	                                   the rendered message (text or JSON)
//	GET /triples?url=...&columns=      extracted triples as JSON
//
// Errors are reported as JSON objects {"error": ..., "code": ...} with a
// status derived from the error code (see [StatusFor]).
//
// The router is built on github.com/go-chi/chi/v5. Every request passes
// through a request-id middleware (the incoming X-Request-Id, or a fresh
// UUID) and chi's RealIP and Recoverer, and is logged through the server's
// charmbracelet/log logger.
package server
