package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/multierr"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

const testConfig = `
name: primesd-test
environment: staging
logging:
  level: warn
  format: json
server:
  host: 127.0.0.1
  port: 0
  shutdown_timeout: 2s
primes:
  generator: incremental
  window:
    initial: 64
    max: 4096
  max_count: 500
`

func TestLoadConfigFromFile(t *testing.T) {
	cfg, err := loadConfig(writeConfig(t, testConfig))
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}

	if cfg.Name != "primesd-test" || cfg.Environment != "staging" {
		t.Errorf("unexpected service section: %+v", cfg.ServiceConfig)
	}
	if cfg.Server.ShutdownTimeout != 2*time.Second {
		t.Errorf("expected 2s shutdown timeout, got %s", cfg.Server.ShutdownTimeout)
	}
	if cfg.Primes.Generator != "incremental" || cfg.Primes.Window.Initial != 64 || cfg.Primes.Window.Max != 4096 {
		t.Errorf("unexpected primes section: %+v", cfg.Primes)
	}
	if cfg.Primes.MaxQuerySpan != 10_000_000 {
		t.Errorf("expected default max_query_span, got %d", cfg.Primes.MaxQuerySpan)
	}
	if cfg.Observability.Endpoint != "localhost:4318" {
		t.Errorf("expected default OTLP endpoint, got %q", cfg.Observability.Endpoint)
	}
	if cfg.Version == "" {
		t.Error("expected version to default from build info")
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("PRIMES_SERVER_PORT", "9090")
	t.Setenv("PRIMES_PRIMES_GENERATOR", "naive")

	cfg, err := loadConfig(writeConfig(t, testConfig))
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090 from env, got %d", cfg.Server.Port)
	}
	if cfg.Primes.Generator != "naive" {
		t.Errorf("expected naive generator from env, got %q", cfg.Primes.Generator)
	}
}

func TestLoadConfigReportsEveryProblem(t *testing.T) {
	path := writeConfig(t, `
name: primesd
environment: moon
server:
  port: 70000
primes:
  generator: wheel
`)
	_, err := loadConfig(path)
	if err == nil {
		t.Fatal("expected invalid configuration")
	}
	if n := len(multierr.Errors(errors.Unwrap(err))); n < 3 {
		t.Errorf("expected at least 3 combined errors, got %d: %v", n, err)
	}
	for _, want := range []string{"environment", "server.port", "primes"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected %q in %v", want, err)
		}
	}
}

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

func TestRunShutsDownOnCancel(t *testing.T) {
	path := writeConfig(t, strings.Replace(testConfig, "port: 0", fmt.Sprintf("port: %d", freePort(t)), 1))
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- run(ctx, path) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("run returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after cancel")
	}
}
