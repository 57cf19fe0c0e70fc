// Package logger provides structured logging for the injector engine
// using zerolog.
//
// It supports JSON and console output, level configuration, and
// component-scoped loggers with map-based structured fields.
//
// # Configuration
//
//	logging:
//	  level: "debug"
//	  format: "json"
//
// # Usage
//
//	log := logger.NewDefault("injector").WithComponent("di")
//	log.Debug("type bound", logger.Fields(logger.FieldType, "app.Greeter"))
package logger
