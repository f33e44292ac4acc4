package remedy

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/vigilhq/vigil/pkg/log"
	"github.com/vigilhq/vigil/pkg/metrics"
	"github.com/vigilhq/vigil/pkg/runtime"
)

// Status classifies the outcome of one target's remediation
type Status string

const (
	// StatusRestarted means the container was found and restarted
	StatusRestarted Status = "restarted"

	// StatusNotFound means no container matched the configured name
	StatusNotFound Status = "not_found"

	// StatusFailed means the container could not be restarted, or the
	// runtime could not be queried for this target
	StatusFailed Status = "failed"
)

// Outcome is the per-target result of a remediation run
type Outcome struct {
	Target string
	Status Status
	Err    error
}

// Coordinator restarts the configured containers when the watchdog
// crosses its failure threshold. Targets are processed strictly in
// order, one at a time, and every target gets an outcome: a missing or
// unrestartable container never blocks the targets after it.
type Coordinator struct {
	rt     runtime.Runtime
	logger zerolog.Logger
}

// NewCoordinator creates a Coordinator over the given runtime
func NewCoordinator(rt runtime.Runtime) *Coordinator {
	return &Coordinator{
		rt:     rt,
		logger: log.WithComponent("remedy"),
	}
}

// Remediate restarts each target in configured order and returns one
// outcome per target. The result always has the same length and order
// as targets.
func (c *Coordinator) Remediate(ctx context.Context, targets []string) []Outcome {
	outcomes := make([]Outcome, 0, len(targets))

	for _, target := range targets {
		outcome := c.remediateOne(ctx, target)
		outcomes = append(outcomes, outcome)
		metrics.ContainerRestartsTotal.WithLabelValues(string(outcome.Status)).Inc()

		switch outcome.Status {
		case StatusRestarted:
			c.logger.Info().Str("container", target).Msg("container restarted")
		case StatusNotFound:
			c.logger.Warn().Str("container", target).Msg("container not found, skipping")
		case StatusFailed:
			c.logger.Error().Str("container", target).Err(outcome.Err).Msg("container restart failed")
		}
	}

	return outcomes
}

// remediateOne resolves a single name and restarts the match. The
// container list is queried fresh for every target because containers
// may be recreated with new identifiers at any time.
func (c *Coordinator) remediateOne(ctx context.Context, target string) Outcome {
	containers, err := c.rt.ListContainers(ctx)
	if err != nil {
		return Outcome{
			Target: target,
			Status: StatusFailed,
			Err:    fmt.Errorf("failed to query runtime: %w", err),
		}
	}

	id, found := resolve(containers, target)
	if !found {
		return Outcome{Target: target, Status: StatusNotFound}
	}

	if err := c.rt.RestartContainer(ctx, id); err != nil {
		return Outcome{Target: target, Status: StatusFailed, Err: err}
	}

	return Outcome{Target: target, Status: StatusRestarted}
}

// resolve matches a configured name against the runtime's container
// names. Docker stores names with a leading slash, so both the bare
// name and "/"+name are accepted as exact matches.
func resolve(containers []runtime.Container, target string) (string, bool) {
	for _, c := range containers {
		for _, name := range c.Names {
			if name == target || name == "/"+target {
				return c.ID, true
			}
		}
	}
	return "", false
}
