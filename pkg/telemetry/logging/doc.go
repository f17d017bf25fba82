// Package logging builds log/slog loggers from configuration.
//
// Loggers write JSON, text or console output to stderr by default, leaving
// stdout to lint results. Records logged with a context pick up the run ID
// and file stored there:
//
//	logger, err := logging.New(logging.Config{Level: "debug", Format: "json"})
//	ctx = logging.WithRunID(ctx, runID)
//	logger.InfoContext(ctx, "lint finished", "diagnostics", n)
package logging
