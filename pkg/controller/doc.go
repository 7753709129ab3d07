// Package controller contains HTTP middlewares and helper handlers used by the
// site server.
//
// Provided middlewares:
//   - WithCORS: Adds CORS headers for read-only access and handles OPTIONS preflight.
//   - WithLogger: Attaches a request-scoped logger and request ID to the context and logs access info.
//   - WithCompression: Encodes responses with brotli or gzip when the client accepts it.
//   - WithMetrics: Records request counts and latencies on an OpenTelemetry meter.
//
// Provided helpers:
//   - PprofMux: Returns a ServeMux exposing net/http/pprof handlers.
package controller
