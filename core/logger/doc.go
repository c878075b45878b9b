// Package logger builds the zap logger used across the service.
//
// Level and format come from the log section of the configuration. Debug
// selects zap's development preset; console format is meant for terminals
// and the CLI commands, json for everything shipped to a collector.
//
// HTTP logs are correlated by ray id: the rayid middleware stores it on the
// fiber context, WithRayID copies it onto a logger and Requests emits one
// line per finished request.
//
//	log, err := logger.New(&cfg.Log)
//	app.Use(rayid.New(), logger.Requests(log))
package logger
