package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vigilhq/vigil/pkg/config"
	"github.com/vigilhq/vigil/pkg/log"
	"github.com/vigilhq/vigil/pkg/metrics"
	"github.com/vigilhq/vigil/pkg/probe"
	"github.com/vigilhq/vigil/pkg/remedy"
	"github.com/vigilhq/vigil/pkg/runtime"
	"github.com/vigilhq/vigil/pkg/watchdog"
)

var (
	// Version information (set via ldflags during build)
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

var configPath string

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "vigil",
	Short: "Vigil - self-healing watchdog for containerized services",
	Long: `Vigil probes an HTTP(S) health endpoint on a fixed interval and,
after a configurable number of consecutive failures, restarts a named
set of containers through the Docker Engine API.

Configuration comes from an optional YAML file plus VIGIL_* environment
variables; see the config package documentation for the full list.`,
	Version: Version,
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"Vigil version %s\nCommit: %s\nBuilt: %s\n",
		Version, Commit, BuildTime,
	))

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to YAML config file")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(restartCmd)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the watchdog loop",
	Long: `Start the watchdog: probe the configured endpoint immediately, then
on every interval, restarting the configured containers whenever the
failure threshold is crossed. Runs until SIGINT or SIGTERM.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}
		initLogging(cfg)

		if len(cfg.Containers) == 0 {
			log.Warn("no containers configured, remediation will restart nothing")
		}

		rt, err := runtime.NewDockerRuntime(cfg.DockerHost)
		if err != nil {
			return err
		}
		defer rt.Close()

		// An unreachable daemon is not fatal: remediation reports it per
		// target, and the daemon may come up later.
		pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := rt.Ping(pingCtx); err != nil {
			log.Logger.Warn().Err(err).Msg("docker daemon not reachable at startup")
		}
		pingCancel()

		if cfg.MetricsAddr != "" {
			go func() {
				log.Logger.Info().Str("addr", cfg.MetricsAddr).Msg("metrics listener started")
				if err := metrics.Serve(cfg.MetricsAddr); err != nil {
					log.Logger.Error().Err(err).Msg("metrics listener failed")
				}
			}()
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			sig := <-sigCh
			log.Logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
			cancel()
		}()

		w := watchdog.New(cfg, probe.New(cfg), remedy.NewCoordinator(rt))
		w.Run(ctx)
		return nil
	},
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Probe the endpoint once and report the verdict",
	Long: `Perform a single health probe with the configured credentials and
timeout. Exits 0 when the endpoint answers HTTP 200, 1 otherwise.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}
		initLogging(cfg)

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout())
		defer cancel()

		v := probe.New(cfg).Check(ctx)
		if !v.Healthy {
			return fmt.Errorf("endpoint unhealthy: %s", v.Detail)
		}

		fmt.Printf("✓ %s healthy (HTTP %d in %s)\n", cfg.URL, v.StatusCode, v.Duration.Round(time.Millisecond))
		return nil
	},
}

var restartCmd = &cobra.Command{
	Use:   "restart",
	Short: "Restart the configured containers once",
	Long: `Run one remediation pass against the configured container list,
exactly as the watchdog would after a threshold crossing. Per-container
failures are reported but are not fatal.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}
		initLogging(cfg)

		if len(cfg.Containers) == 0 {
			fmt.Println("No containers configured, nothing to restart.")
			return nil
		}

		rt, err := runtime.NewDockerRuntime(cfg.DockerHost)
		if err != nil {
			return err
		}
		defer rt.Close()

		outcomes := remedy.NewCoordinator(rt).Remediate(context.Background(), cfg.Containers)
		for _, o := range outcomes {
			switch o.Status {
			case remedy.StatusRestarted:
				fmt.Printf("✓ %s restarted\n", o.Target)
			case remedy.StatusNotFound:
				fmt.Printf("- %s not found\n", o.Target)
			case remedy.StatusFailed:
				fmt.Printf("✗ %s failed: %v\n", o.Target, o.Err)
			}
		}
		return nil
	},
}

func initLogging(cfg *config.Config) {
	log.Init(log.Config{
		Level:      log.Level(cfg.Log.Level),
		JSONOutput: cfg.Log.Format != "console",
		Output:     os.Stdout,
	})
}
