/*
Package probe implements the HTTP health probe.

A Prober issues one GET request per cycle against the configured endpoint
with the configured timeout and credentials, and returns a Verdict. Success
is strictly HTTP 200; any other status, transport error or timeout is a
failure. The prober never retries; accumulating failures across cycles is
the watchdog tracker's job.
*/
package probe
