package runtime

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"
)

// Container is the projection of a runtime container that the watchdog
// cares about: identity and the names it can be resolved by.
type Container struct {
	ID    string
	Names []string
	State string
}

// Runtime is the container runtime capability the remediation coordinator
// depends on. The Docker implementation is the only production one; tests
// substitute fakes.
type Runtime interface {
	// ListContainers returns all containers known to the runtime,
	// including stopped ones.
	ListContainers(ctx context.Context) ([]Container, error)

	// RestartContainer restarts the container with the given identifier.
	RestartContainer(ctx context.Context, id string) error

	// Close releases the runtime connection.
	Close() error
}

// DockerRuntime implements Runtime against the Docker Engine API
type DockerRuntime struct {
	cli *client.Client
}

// NewDockerRuntime connects to the Docker daemon. An empty host selects
// the platform default socket: a named pipe on Windows, a unix socket
// elsewhere. A bare filesystem path is treated as a unix socket path.
func NewDockerRuntime(host string) (*DockerRuntime, error) {
	host = normalizeHost(host)

	cli, err := client.NewClientWithOpts(
		client.WithHost(host),
		client.WithAPIVersionNegotiation(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Docker client for %s: %w", host, err)
	}

	return &DockerRuntime{cli: cli}, nil
}

// DefaultHost returns the platform default Docker daemon address
func DefaultHost() string {
	if runtime.GOOS == "windows" {
		return "npipe:////./pipe/docker_engine"
	}
	return "unix:///var/run/docker.sock"
}

func normalizeHost(host string) string {
	if host == "" {
		return DefaultHost()
	}
	if strings.Contains(host, "://") {
		return host
	}
	return "unix://" + host
}

// ListContainers returns every container the daemon knows about,
// running or not
func (r *DockerRuntime) ListContainers(ctx context.Context) ([]Container, error) {
	summaries, err := r.cli.ContainerList(ctx, container.ListOptions{All: true})
	if err != nil {
		return nil, fmt.Errorf("failed to list containers: %w", err)
	}

	containers := make([]Container, 0, len(summaries))
	for _, s := range summaries {
		containers = append(containers, Container{
			ID:    s.ID,
			Names: s.Names,
			State: s.State,
		})
	}
	return containers, nil
}

// RestartContainer restarts a container by ID using the daemon's
// default stop timeout
func (r *DockerRuntime) RestartContainer(ctx context.Context, id string) error {
	if err := r.cli.ContainerRestart(ctx, id, container.StopOptions{}); err != nil {
		return fmt.Errorf("failed to restart container %s: %w", id, err)
	}
	return nil
}

// Ping checks that the daemon is reachable
func (r *DockerRuntime) Ping(ctx context.Context) error {
	if _, err := r.cli.Ping(ctx); err != nil {
		return fmt.Errorf("docker daemon unreachable: %w", err)
	}
	return nil
}

// Close closes the client connection
func (r *DockerRuntime) Close() error {
	return r.cli.Close()
}
