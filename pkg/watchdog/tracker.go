package watchdog

// Tracker is the consecutive-failure state machine. It owns the only
// piece of cross-cycle state in the watchdog: a counter that climbs by
// one per failed probe, resets to zero on success, and signals when the
// configured threshold is reached. The counter never persists across
// process restarts.
type Tracker struct {
	threshold int
	failures  int
}

// NewTracker creates a Tracker with the given threshold. A threshold of
// 1 remediates on every single failure.
func NewTracker(threshold int) *Tracker {
	if threshold < 1 {
		threshold = 1
	}
	return &Tracker{threshold: threshold}
}

// Observe consumes one probe verdict. It returns true exactly when the
// failure count reaches the threshold; the caller must then remediate
// once and call Reset, regardless of how the remediation went.
func (t *Tracker) Observe(healthy bool) bool {
	if healthy {
		t.failures = 0
		return false
	}
	t.failures++
	return t.failures >= t.threshold
}

// Reset clears the counter. Called unconditionally after a remediation
// attempt completes so the counter never climbs past the threshold.
func (t *Tracker) Reset() {
	t.failures = 0
}

// Failures returns the current consecutive-failure count
func (t *Tracker) Failures() int {
	return t.failures
}

// Threshold returns the configured threshold
func (t *Tracker) Threshold() int {
	return t.threshold
}
