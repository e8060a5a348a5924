// Package logging provides structured logging for maskentry.
//
// This package wraps a package-level zap logger. Logging is silent unless a
// level is given with --log-level or the MASKENTRY_LOG_LEVEL environment
// variable, so library code can log freely without polluting CLI output.
//
// # Log Levels
//
//   - Debug: Keystroke rejections, mask changes, session payloads
//   - Info: Server lifecycle and connections
//   - Warn: Ignored configuration, dropped sessions
//   - Error: Startup failures
//
// # Output
//
// Logs go to stderr in console format. Interactive commands should point
// MASKENTRY_LOG_FILE (or InitializeWithOutput) at a file so log lines do not
// draw over the terminal UI:
//
//	if err := logging.InitializeWithOutput("debug", "/tmp/maskentry.log"); err != nil {
//	    return err
//	}
//	defer logging.Sync()
package logging
