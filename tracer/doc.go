// Package tracer provides a thin OpenTelemetry tracer client.
//
// The HTTP metrics middleware accepts a Tracer and opens one span per request
// around its gating phase (route resolution, exclusion check, admission),
// recording the resolved path label and the decisions taken. Combined with
// logger.Config.EnableTracing, the middleware's debug entries carry the same
// trace and span IDs.
package tracer
