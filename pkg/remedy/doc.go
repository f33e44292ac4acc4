/*
Package remedy implements the remediation coordinator.

When the watchdog decides the monitored endpoint is down, the coordinator
walks the configured container names in order and restarts each one
through the runtime. Failures are isolated per target: an unknown name is
recorded as not_found and a failed restart as failed, and in both cases
the coordinator moves on to the next target. Callers always receive one
outcome per configured target.
*/
package remedy
