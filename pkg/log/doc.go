/*
Package log provides structured logging for Vigil using zerolog.

The package wraps zerolog behind a global logger initialized once via
log.Init. Output is JSON for production or a console writer for humans,
selected by configuration. Child loggers carry context fields:

	probeLog := log.WithComponent("probe")
	probeLog.Info().Int("status", 200).Msg("endpoint healthy")

	cycleLog := log.WithCycleID(id)
	cycleLog.Warn().Msg("probe failed")

Fatal logs the message and exits the process; it is reserved for startup
configuration failures.
*/
package log
