package probe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/vigilhq/vigil/pkg/config"
)

func testConfig(url string) *config.Config {
	cfg := config.Default()
	cfg.URL = url
	return cfg
}

func TestCheck_HealthyEndpoint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	v := New(testConfig(server.URL)).Check(context.Background())

	if !v.Healthy {
		t.Errorf("expected healthy, got unhealthy: %s", v.Detail)
	}
	if v.StatusCode != http.StatusOK {
		t.Errorf("expected status 200, got %d", v.StatusCode)
	}
	if v.Duration <= 0 {
		t.Error("expected positive duration")
	}
}

func TestCheck_Non200IsFailure(t *testing.T) {
	// Anything but exactly 200 is a failure, including other 2xx codes
	for _, status := range []int{http.StatusCreated, http.StatusNoContent, http.StatusFound, http.StatusServiceUnavailable} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		v := New(testConfig(server.URL)).Check(context.Background())
		server.Close()

		if v.Healthy {
			t.Errorf("status %d: expected unhealthy", status)
		}
		if v.StatusCode != status {
			t.Errorf("status %d: verdict recorded %d", status, v.StatusCode)
		}
		if !strings.Contains(v.Detail, "non-200") {
			t.Errorf("status %d: unexpected detail %q", status, v.Detail)
		}
	}
}

func TestCheck_ConnectionRefused(t *testing.T) {
	// Grab a port that nothing listens on
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	v := New(testConfig(url)).Check(context.Background())

	if v.Healthy {
		t.Error("expected unhealthy for refused connection")
	}
	if v.StatusCode != 0 {
		t.Errorf("expected no status code, got %d", v.StatusCode)
	}
	if !strings.Contains(v.Detail, "no response received") {
		t.Errorf("unexpected detail %q", v.Detail)
	}
}

func TestCheck_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.TimeoutMS = 50

	v := New(cfg).Check(context.Background())

	if v.Healthy {
		t.Error("expected unhealthy due to timeout")
	}
	if !strings.Contains(v.Detail, "no response received") {
		t.Errorf("unexpected detail %q", v.Detail)
	}
}

func TestCheck_BasicAuthHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "admin" || pass != "s3cret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.Auth = config.Auth{Type: config.AuthBasic, Username: "admin", Password: "s3cret"}

	v := New(cfg).Check(context.Background())
	if !v.Healthy {
		t.Errorf("expected healthy with basic auth, got: %s", v.Detail)
	}
}

func TestCheck_BearerAuthHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-123" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.Auth = config.Auth{Type: config.AuthBearer, Token: "tok-123"}

	v := New(cfg).Check(context.Background())
	if !v.Healthy {
		t.Errorf("expected healthy with bearer auth, got: %s", v.Detail)
	}
}

func TestCheck_NoAuthHeaderByDefault(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	v := New(testConfig(server.URL)).Check(context.Background())
	if !v.Healthy {
		t.Errorf("expected healthy without auth, got: %s", v.Detail)
	}
}

func TestCheck_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	v := New(testConfig(server.URL)).Check(ctx)
	if v.Healthy {
		t.Error("expected unhealthy due to cancelled context")
	}
}

func TestCheck_InvalidURL(t *testing.T) {
	cfg := testConfig("http://inva lid url")

	v := New(cfg).Check(context.Background())
	if v.Healthy {
		t.Error("expected unhealthy for malformed URL")
	}
	if !strings.Contains(v.Detail, "could not be constructed") {
		t.Errorf("unexpected detail %q", v.Detail)
	}
}
