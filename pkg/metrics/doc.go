/*
Package metrics exposes prometheus instrumentation for the watchdog.

Collectors are registered at package init and shared process-wide: probe
counts and durations, the live consecutive-failure gauge, remediation runs
and per-container restart outcomes. Serve starts an optional /metrics
listener; when no metrics address is configured nothing is exposed.
*/
package metrics
