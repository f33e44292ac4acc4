package watchdog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTracker_SuccessAlwaysResets(t *testing.T) {
	tr := NewTracker(5)

	tr.Observe(false)
	tr.Observe(false)
	tr.Observe(false)
	assert.Equal(t, 3, tr.Failures())

	tr.Observe(true)
	assert.Equal(t, 0, tr.Failures())
}

func TestTracker_ThresholdCrossing(t *testing.T) {
	tests := []struct {
		name      string
		threshold int
		verdicts  []bool // true = healthy
		wantDue   []bool
		wantCount []int
	}{
		{
			name:      "three consecutive failures trigger at threshold 3",
			threshold: 3,
			verdicts:  []bool{false, false, false},
			wantDue:   []bool{false, false, true},
			wantCount: []int{1, 2, 3},
		},
		{
			name:      "success before threshold resets the path",
			threshold: 3,
			verdicts:  []bool{false, false, true},
			wantDue:   []bool{false, false, false},
			wantCount: []int{1, 2, 0},
		},
		{
			name:      "threshold 1 fires on every failure",
			threshold: 1,
			verdicts:  []bool{false},
			wantDue:   []bool{true},
			wantCount: []int{1},
		},
		{
			name:      "alternating never fires at threshold 2",
			threshold: 2,
			verdicts:  []bool{false, true, false, true, false},
			wantDue:   []bool{false, false, false, false, false},
			wantCount: []int{1, 0, 1, 0, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTracker(tt.threshold)
			for i, healthy := range tt.verdicts {
				due := tr.Observe(healthy)
				assert.Equal(t, tt.wantDue[i], due, "verdict %d", i)
				assert.Equal(t, tt.wantCount[i], tr.Failures(), "verdict %d", i)
			}
		})
	}
}

func TestTracker_ResetAfterRemediation(t *testing.T) {
	tr := NewTracker(2)

	tr.Observe(false)
	due := tr.Observe(false)
	assert.True(t, due)

	// The loop resets unconditionally after remediating, so the counter
	// never climbs past the threshold
	tr.Reset()
	assert.Equal(t, 0, tr.Failures())

	assert.False(t, tr.Observe(false))
	assert.True(t, tr.Observe(false))
}

func TestTracker_NeverExceedsThresholdBeforeDue(t *testing.T) {
	tr := NewTracker(4)
	for i := 0; i < 3; i++ {
		assert.False(t, tr.Observe(false))
		assert.Less(t, tr.Failures(), 4)
	}
}

func TestNewTracker_ClampsInvalidThreshold(t *testing.T) {
	tr := NewTracker(0)
	assert.Equal(t, 1, tr.Threshold())
	assert.True(t, tr.Observe(false))
}
