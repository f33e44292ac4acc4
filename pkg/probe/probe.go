package probe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/vigilhq/vigil/pkg/config"
)

// Verdict is the classified outcome of a single probe
type Verdict struct {
	// Healthy is true only when the endpoint answered with HTTP 200
	Healthy bool

	// StatusCode is the HTTP status received, or 0 when no response arrived
	StatusCode int

	// Detail describes the failure for diagnostics; empty on success
	Detail string

	// CheckedAt is when the probe started
	CheckedAt time.Time

	// Duration is how long the probe took
	Duration time.Duration
}

// Prober issues health-check requests against a single endpoint.
// It performs no retries; retry policy lives in the failure tracker.
type Prober struct {
	url    string
	auth   config.Auth
	client *http.Client
}

// New creates a Prober from the watchdog configuration
func New(cfg *config.Config) *Prober {
	return &Prober{
		url:  cfg.URL,
		auth: cfg.Auth,
		client: &http.Client{
			Timeout: cfg.Timeout(),
		},
	}
}

// Check performs one GET against the endpoint and classifies the result.
// Every outcome other than a 200 response is a failure; the Detail field
// distinguishes non-200 responses, transport failures and requests that
// could not be built, but the distinction is diagnostic only.
func (p *Prober) Check(ctx context.Context) Verdict {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return Verdict{
			Healthy:   false,
			Detail:    fmt.Sprintf("request could not be constructed: %v", err),
			CheckedAt: start,
			Duration:  time.Since(start),
		}
	}

	switch p.auth.Type {
	case config.AuthNone:
	case config.AuthBasic:
		req.SetBasicAuth(p.auth.Username, p.auth.Password)
	case config.AuthBearer:
		req.Header.Set("Authorization", "Bearer "+p.auth.Token)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return Verdict{
			Healthy:   false,
			Detail:    fmt.Sprintf("request sent but no response received: %v", err),
			CheckedAt: start,
			Duration:  time.Since(start),
		}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return Verdict{
			Healthy:    false,
			StatusCode: resp.StatusCode,
			Detail:     fmt.Sprintf("server responded with non-200 status: HTTP %d %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
			CheckedAt:  start,
			Duration:   time.Since(start),
		}
	}

	return Verdict{
		Healthy:    true,
		StatusCode: resp.StatusCode,
		CheckedAt:  start,
		Duration:   time.Since(start),
	}
}

// URL returns the probed endpoint
func (p *Prober) URL() string {
	return p.url
}
