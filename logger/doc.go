// Package logger provides structured logging for middlewarekit using zerolog.
//
// It supports JSON and console output, level configuration, and
// component-scoped loggers with structured fields.
//
// # Configuration
//
//	logger:
//	  level: "debug"
//	  format: "json"
//
// # Usage
//
//	log := logger.WithComponent("request")
//	log.Debug("request aborted", logger.Fields("method", "POST"))
package logger
