// Package logger provides the zap-backed structured logger shared by the
// HTTP metrics packages in this module.
//
// LoggerClient wraps a *zap.Logger with a map-based field API. The
// *WithContext methods append "trace_id" and "span_id" when tracing is enabled
// and the context carries a recording OpenTelemetry span, which correlates the
// middleware's debug trace with the gating span opened by the tracer package.
//
//	log := logger.NewLoggerClient(logger.Config{Level: logger.Debug, ServiceName: "orders-api"})
//	log.Debug("exclusion evaluated", nil, map[string]interface{}{"path": "/health", "excluded": true})
//
// With fx, include logger.FXModule and provide a logger.Config.
package logger
