package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// AuthType selects how the probe authenticates against the health endpoint
type AuthType string

const (
	AuthNone   AuthType = "none"
	AuthBasic  AuthType = "basic"
	AuthBearer AuthType = "bearer"
)

// Auth holds credential material for the selected auth type
type Auth struct {
	Type     AuthType `yaml:"type"`
	Username string   `yaml:"username"`
	Password string   `yaml:"password"`
	Token    string   `yaml:"token"`
}

// Log holds logging configuration
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "json" or "console"
}

// Config is the full watchdog configuration, loaded once at startup
// and immutable afterwards.
type Config struct {
	URL              string   `yaml:"url"`
	IntervalMS       int      `yaml:"interval_ms"`
	TimeoutMS        int      `yaml:"timeout_ms"`
	FailureThreshold int      `yaml:"failure_threshold"`
	Auth             Auth     `yaml:"auth"`
	Containers       []string `yaml:"containers"`
	DockerHost       string   `yaml:"docker_host"`
	MetricsAddr      string   `yaml:"metrics_addr"`
	Log              Log      `yaml:"log"`
}

// Default returns a Config with all defaults applied
func Default() *Config {
	return &Config{
		IntervalMS:       60000,
		TimeoutMS:        10000,
		FailureThreshold: 3,
		Auth:             Auth{Type: AuthNone},
		Log:              Log{Level: "info", Format: "json"},
	}
}

// Load builds the configuration: defaults, then the optional YAML file,
// then environment variables on top, then validation.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnv overrides config fields from VIGIL_* environment variables
func (c *Config) applyEnv() error {
	if v := os.Getenv("VIGIL_URL"); v != "" {
		c.URL = v
	}
	if v := os.Getenv("VIGIL_INTERVAL_MS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid VIGIL_INTERVAL_MS %q: %w", v, err)
		}
		c.IntervalMS = n
	}
	if v := os.Getenv("VIGIL_TIMEOUT_MS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid VIGIL_TIMEOUT_MS %q: %w", v, err)
		}
		c.TimeoutMS = n
	}
	if v := os.Getenv("VIGIL_FAILURE_THRESHOLD"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid VIGIL_FAILURE_THRESHOLD %q: %w", v, err)
		}
		c.FailureThreshold = n
	}
	if v := os.Getenv("VIGIL_AUTH_TYPE"); v != "" {
		c.Auth.Type = AuthType(strings.ToLower(v))
	}
	if v := os.Getenv("VIGIL_AUTH_USERNAME"); v != "" {
		c.Auth.Username = v
	}
	if v := os.Getenv("VIGIL_AUTH_PASSWORD"); v != "" {
		c.Auth.Password = v
	}
	if v := os.Getenv("VIGIL_AUTH_TOKEN"); v != "" {
		c.Auth.Token = v
	}
	if v := os.Getenv("VIGIL_CONTAINERS"); v != "" {
		c.Containers = splitContainers(v)
	}
	if v := os.Getenv("VIGIL_DOCKER_HOST"); v != "" {
		c.DockerHost = v
	}
	if v := os.Getenv("VIGIL_METRICS_ADDR"); v != "" {
		c.MetricsAddr = v
	}
	if v := os.Getenv("VIGIL_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("VIGIL_LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
	return nil
}

// Validate checks the configuration for fatal errors. It is called once
// at startup; any error here aborts the process before the first probe.
func (c *Config) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("health check URL is required (VIGIL_URL)")
	}
	u, err := url.Parse(c.URL)
	if err != nil {
		return fmt.Errorf("invalid health check URL %q: %w", c.URL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("health check URL %q must use http or https", c.URL)
	}

	if c.IntervalMS <= 0 {
		return fmt.Errorf("check interval must be positive, got %d", c.IntervalMS)
	}
	if c.TimeoutMS <= 0 {
		return fmt.Errorf("probe timeout must be positive, got %d", c.TimeoutMS)
	}
	if c.FailureThreshold < 1 {
		return fmt.Errorf("failure threshold must be >= 1, got %d", c.FailureThreshold)
	}

	switch c.Auth.Type {
	case AuthNone:
	case AuthBasic:
		if c.Auth.Username == "" || c.Auth.Password == "" {
			return fmt.Errorf("basic auth requires both username and password")
		}
	case AuthBearer:
		if c.Auth.Token == "" {
			return fmt.Errorf("bearer auth requires a token")
		}
	default:
		return fmt.Errorf("unknown auth type %q (expected none, basic or bearer)", c.Auth.Type)
	}

	return nil
}

// Interval returns the check interval as a duration
func (c *Config) Interval() time.Duration {
	return time.Duration(c.IntervalMS) * time.Millisecond
}

// Timeout returns the probe timeout as a duration
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

// splitContainers parses a comma-separated container name list,
// trimming whitespace and dropping empty entries
func splitContainers(s string) []string {
	var names []string
	for _, part := range strings.Split(s, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}
