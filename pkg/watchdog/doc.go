/*
Package watchdog contains the decision core of Vigil: the
consecutive-failure tracker and the loop that drives probe cycles.

The Tracker is a small state machine. Every successful probe resets it to
zero; every failed probe increments it by one. When the count reaches the
configured threshold the Watchdog remediates exactly once, then resets
the tracker unconditionally, whether or not every container restart
succeeded. Partial remediation failure deliberately does not re-trigger
within the same crossing; retrying immediately would risk a restart storm
against an already struggling runtime.

The loop runs one cycle immediately at startup, then one per interval
tick for the lifetime of the process. Cycles are strictly sequential, so
the tracker needs no locking. Recoverable errors never escape a cycle.
*/
package watchdog
