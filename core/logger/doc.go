// Package logger provides a structured logging facility based on Zap.
//
// New builds a development configuration for the debug level and a
// production one otherwise, encoded as console (coloured levels) or json.
//
// # Ray IDs
//
// WithRayID extracts the request id stored by the rayid middleware from a
// Fiber context and attaches it as the ray_id field, so every log line of a
// renumber request can be correlated.
//
// # Usage
//
//	log, _ := logger.New(&cfg.Log)
//	log.Info("Server started")
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Renumber failed", zap.Error(err))
package logger
