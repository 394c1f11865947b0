// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance for CLI runs and the HTTP server.
// Reconciliation passes log through the same logger that the commands build,
// so console output and report summaries share one format.
//
// # Context Awareness
//
// WithRayID extracts the RayID from a Fiber context and attaches it to the
// log entry, so that all logs related to a specific request can be correlated.
//
// # Configuration
//
//   - Level: debug, info, warn, error
//   - Format: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Reconciliation started")
package logger
