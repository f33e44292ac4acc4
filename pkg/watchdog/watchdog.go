package watchdog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vigilhq/vigil/pkg/config"
	"github.com/vigilhq/vigil/pkg/log"
	"github.com/vigilhq/vigil/pkg/metrics"
	"github.com/vigilhq/vigil/pkg/probe"
	"github.com/vigilhq/vigil/pkg/remedy"
)

// Prober issues one health probe per cycle
type Prober interface {
	Check(ctx context.Context) probe.Verdict
}

// Remediator restarts the configured targets and reports per-target outcomes
type Remediator interface {
	Remediate(ctx context.Context, targets []string) []remedy.Outcome
}

// Watchdog drives the probe/decide/remediate loop. Cycles run strictly
// sequentially: one cycle completes, remediation included, before the
// next probe is issued.
type Watchdog struct {
	cfg        *config.Config
	prober     Prober
	remediator Remediator
	tracker    *Tracker
	logger     zerolog.Logger
}

// New creates a Watchdog from its collaborators
func New(cfg *config.Config, prober Prober, remediator Remediator) *Watchdog {
	return &Watchdog{
		cfg:        cfg,
		prober:     prober,
		remediator: remediator,
		tracker:    NewTracker(cfg.FailureThreshold),
		logger:     log.WithComponent("watchdog"),
	}
}

// Run executes the first cycle immediately, then one cycle per interval
// tick until ctx is cancelled. Missed ticks coalesce, so a cycle that
// overruns the interval delays the next one instead of stacking up.
func (w *Watchdog) Run(ctx context.Context) {
	w.logger.Info().
		Str("url", w.cfg.URL).
		Dur("interval", w.cfg.Interval()).
		Int("threshold", w.cfg.FailureThreshold).
		Strs("containers", w.cfg.Containers).
		Msg("watchdog started")

	w.cycle(ctx)

	ticker := time.NewTicker(w.cfg.Interval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("watchdog stopped")
			return
		case <-ticker.C:
			w.cycle(ctx)
		}
	}
}

// cycle runs one probe and acts on the verdict. Panics are logged and
// swallowed: the watchdog staying alive outranks surfacing an internal
// fault.
func (w *Watchdog) cycle(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			w.logger.Error().Interface("panic", r).Msg("cycle panicked, watchdog continues")
		}
	}()

	cycleLog := w.logger.With().Str("cycle_id", uuid.NewString()).Logger()

	verdict := w.prober.Check(ctx)
	metrics.RecordProbe(verdict.Healthy, verdict.Duration)

	due := w.tracker.Observe(verdict.Healthy)
	metrics.ConsecutiveFailures.Set(float64(w.tracker.Failures()))

	if verdict.Healthy {
		cycleLog.Debug().
			Dur("duration", verdict.Duration).
			Msg("endpoint healthy")
		return
	}

	cycleLog.Warn().
		Int("status", verdict.StatusCode).
		Str("detail", verdict.Detail).
		Int("consecutive_failures", w.tracker.Failures()).
		Int("threshold", w.tracker.Threshold()).
		Msg("probe failed")

	if !due {
		return
	}

	cycleLog.Error().
		Int("threshold", w.tracker.Threshold()).
		Msg("failure threshold reached, remediating")
	metrics.RemediationsTotal.Inc()

	outcomes := w.remediator.Remediate(ctx, w.cfg.Containers)

	var restarted, notFound, failed int
	for _, o := range outcomes {
		switch o.Status {
		case remedy.StatusRestarted:
			restarted++
		case remedy.StatusNotFound:
			notFound++
		case remedy.StatusFailed:
			failed++
		}
	}
	cycleLog.Info().
		Int("restarted", restarted).
		Int("not_found", notFound).
		Int("failed", failed).
		Msg("remediation finished")

	// Reset regardless of per-container outcomes: remediation runs once
	// per threshold crossing, never in a storm.
	w.tracker.Reset()
	metrics.ConsecutiveFailures.Set(0)
}
