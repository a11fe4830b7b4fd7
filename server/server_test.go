package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"

	"github.com/kbukum/primekit/errors"
	"github.com/kbukum/primekit/logger"
	"github.com/kbukum/primekit/observability"
	"github.com/kbukum/primekit/service"
)

type primesBody struct {
	Data []uint64 `json:"data"`
	Meta Meta     `json:"meta"`
}

func newTestServer(t *testing.T, cfg service.Config, checkers ...observability.HealthChecker) (*Server, *service.Primes) {
	t.Helper()
	svc, err := service.New(cfg, service.WithLogger(logger.NewNop()))
	if err != nil {
		t.Fatalf("service.New: %v", err)
	}
	s := New(Config{Host: "127.0.0.1"}, logger.NewNop())
	s.ApplyMiddleware()
	s.RegisterDefaultEndpoints("primesd", "v0.0.0-test", map[string]any{"generator": string(svc.Kind())},
		append([]observability.HealthChecker{svc}, checkers...)...)
	s.RegisterPrimes(svc)
	return s, svc
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, target, http.NoBody))
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) errors.ErrorBody {
	t.Helper()
	var resp errors.ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not an error body: %v (%s)", err, rr.Body.String())
	}
	return resp.Error
}

func TestPrimesRoutes(t *testing.T) {
	s, _ := newTestServer(t, service.Config{})
	between := []uint64{11, 13, 17, 19, 23, 29}

	tests := []struct {
		name   string
		target string
		want   []uint64
		meta   Meta
	}{
		{"min and max", "/v1/primes?min=10&max=30", between, Meta{Count: 6, Generator: "segmented", Min: 10, Max: 30}},
		{"max only", "/v1/primes?max=10", []uint64{2, 3, 5, 7}, Meta{Count: 4, Generator: "segmented", Max: 10}},
		{"inclusive range", "/v1/primes?range=10..=29", between, Meta{Count: 6, Generator: "segmented", Range: "10..=29"}},
		{"exclusive range", "/v1/primes?range=10..29", between[:5], Meta{Count: 5, Generator: "segmented", Range: "10..29"}},
		{"empty range", "/v1/primes?range=30..30", []uint64{}, Meta{Count: 0, Generator: "segmented", Range: "30..30"}},
		{"first", "/v1/primes/first?count=5", []uint64{2, 3, 5, 7, 11}, Meta{Count: 5, Generator: "segmented"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := get(t, s.Handler(), tc.target)
			if rr.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
			}
			var body primesBody
			if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if diff := cmp.Diff(tc.want, body.Data); diff != "" {
				t.Errorf("data mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tc.meta, body.Meta); diff != "" {
				t.Errorf("meta mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPrimesRoutesErrors(t *testing.T) {
	s, _ := newTestServer(t, service.Config{MaxQuerySpan: 1000, MaxCount: 50})

	tests := []struct {
		name   string
		target string
		status int
		code   errors.ErrorCode
		msg    string
	}{
		{"unbounded range", "/v1/primes?range=10..", http.StatusBadRequest, errors.ErrCodeInvalidRange, ""},
		{"bad range", "/v1/primes?range=ten..20", http.StatusBadRequest, errors.ErrCodeInvalidRange, ""},
		{"no bounds", "/v1/primes", http.StatusBadRequest, errors.ErrCodeInvalidInput, "max: is required"},
		{"range and min", "/v1/primes?range=1..=9&min=1", http.StatusBadRequest, errors.ErrCodeInvalidInput, "min: cannot be combined with range"},
		{"negative min", "/v1/primes?min=-1&max=10", http.StatusBadRequest, errors.ErrCodeInvalidInput, ""},
		{"span too wide", "/v1/primes?min=0&max=5000", http.StatusBadRequest, errors.ErrCodeInvalidInput, "range: spans 5000 integers"},
		{"missing count", "/v1/primes/first", http.StatusBadRequest, errors.ErrCodeInvalidInput, "count: is required"},
		{"zero count", "/v1/primes/first?count=0", http.StatusBadRequest, errors.ErrCodeInvalidInput, "count: must be at least 1"},
		{"count over limit", "/v1/primes/first?count=51", http.StatusBadRequest, errors.ErrCodeInvalidInput, ""},
		{"unknown route", "/v2/primes", http.StatusNotFound, errors.ErrCodeNotFound, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := get(t, s.Handler(), tc.target)
			if rr.Code != tc.status {
				t.Fatalf("expected %d, got %d: %s", tc.status, rr.Code, rr.Body.String())
			}
			body := decodeError(t, rr)
			if body.Code != tc.code {
				t.Errorf("expected code %s, got %s (%s)", tc.code, body.Code, body.Message)
			}
			if tc.msg != "" && !strings.Contains(body.Message, tc.msg) {
				t.Errorf("expected message to contain %q, got %q", tc.msg, body.Message)
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	s, _ := newTestServer(t, service.Config{})
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/v1/primes?max=10", http.NoBody))
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rr.Code)
	}
}

func TestIncrementalGeneratorOverHTTP(t *testing.T) {
	s, _ := newTestServer(t, service.Config{Generator: "incremental"})

	rr := get(t, s.Handler(), "/v1/primes?min=2&max=13")
	var body primesBody
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if diff := cmp.Diff([]uint64{2, 3, 5, 7, 11}, body.Data); diff != "" {
		t.Errorf("incremental upper bound should be exclusive (-want +got):\n%s", diff)
	}

	// the first-n walk must not lose primes at window edges
	rr = get(t, s.Handler(), "/v1/primes/first?count=200")
	body = primesBody{}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(body.Data) != 200 || body.Data[199] != 1223 {
		t.Errorf("expected 200 primes ending at 1223, got %d ending at %v", len(body.Data), body.Data[len(body.Data)-1:])
	}
}

type staticChecker observability.Health

func (s staticChecker) CheckHealth(context.Context) observability.Health {
	return observability.Health(s)
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name   string
		extra  []observability.HealthChecker
		status int
		want   string
	}{
		{"up", nil, http.StatusOK, "up"},
		{"degraded", []observability.HealthChecker{staticChecker{Name: "cache", Status: observability.HealthStatusDegraded}}, http.StatusOK, "degraded"},
		{"down", []observability.HealthChecker{staticChecker{Name: "cache", Status: observability.HealthStatusDown}}, http.StatusServiceUnavailable, "down"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, _ := newTestServer(t, service.Config{}, tc.extra...)
			rr := get(t, s.Handler(), "/health")
			if rr.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, rr.Code)
			}
			var body struct {
				Service    string                 `json:"service"`
				Status     string                 `json:"status"`
				Components []observability.Health `json:"components"`
			}
			if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if body.Status != tc.want {
				t.Errorf("expected status %q, got %q", tc.want, body.Status)
			}
			if body.Service != "primesd" {
				t.Errorf("expected service primesd, got %q", body.Service)
			}
			if len(body.Components) == 0 || body.Components[0].Name != "generator" {
				t.Errorf("expected generator component first, got %+v", body.Components)
			}
		})
	}
}

func TestInfo(t *testing.T) {
	s, _ := newTestServer(t, service.Config{Generator: "naive"})
	rr := get(t, s.Handler(), "/info")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["service"] != "primesd" {
		t.Errorf("expected service primesd, got %v", body["service"])
	}
	if body["generator"] != "naive" {
		t.Errorf("expected generator naive, got %v", body["generator"])
	}
	if _, ok := body["uptime"]; !ok {
		t.Error("expected uptime in info body")
	}
}

func TestRequestIDEchoed(t *testing.T) {
	s, _ := newTestServer(t, service.Config{})

	rr := get(t, s.Handler(), "/v1/primes?max=10")
	if rr.Header().Get("X-Request-Id") == "" {
		t.Error("expected generated X-Request-Id")
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/primes?max=10", http.NoBody)
	req.Header.Set("X-Request-Id", "req-7")
	rr = httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)
	if got := rr.Header().Get("X-Request-Id"); got != "req-7" {
		t.Errorf("expected req-7, got %q", got)
	}
}

func TestErrorBodyCarriesRequestID(t *testing.T) {
	s, _ := newTestServer(t, service.Config{})

	req := httptest.NewRequest(http.MethodGet, "/v1/primes?range=abc", http.NoBody)
	req.Header.Set("X-Request-Id", "req-8")
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	if body := decodeError(t, rr); body.RequestID != "req-8" {
		t.Errorf("expected request_id req-8 in error body, got %q", body.RequestID)
	}
}

func TestRateLimitApplied(t *testing.T) {
	svc, err := service.New(service.Config{}, service.WithLogger(logger.NewNop()))
	if err != nil {
		t.Fatalf("service.New: %v", err)
	}
	s := New(Config{RateLimit: 2}, logger.NewNop())
	s.ApplyMiddleware()
	s.RegisterPrimes(svc)

	for i := range 2 {
		if rr := get(t, s.Handler(), "/v1/primes?max=10"); rr.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, rr.Code)
		}
	}
	rr := get(t, s.Handler(), "/v1/primes?max=10")
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rr.Code)
	}
	if body := decodeError(t, rr); body.Code != errors.ErrCodeRateLimited || !body.Retryable {
		t.Errorf("expected retryable RATE_LIMITED, got %+v", body)
	}
}

func TestRespondWithErrorPlainError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rr := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rr)
	RespondWithError(c, fmt.Errorf("disk on fire"))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
	body := decodeError(t, rr)
	if body.Code != errors.ErrCodeInternal {
		t.Errorf("expected INTERNAL_ERROR, got %s", body.Code)
	}
	if strings.Contains(body.Message, "disk on fire") {
		t.Error("internal causes must not leak into the response")
	}
}

func TestStartStop(t *testing.T) {
	svc, err := service.New(service.Config{}, service.WithLogger(logger.NewNop()))
	if err != nil {
		t.Fatalf("service.New: %v", err)
	}
	s := New(Config{Host: "127.0.0.1", Port: 0}, logger.NewNop())
	s.ApplyMiddleware()
	s.RegisterPrimes(svc)

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer func() {
		if err := s.Stop(context.Background()); err != nil {
			t.Errorf("Stop: %v", err)
		}
	}()

	resp, err := http.Get("http://" + s.Addr() + "/v1/primes?range=..=20")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()

	var body primesBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if diff := cmp.Diff([]uint64{2, 3, 5, 7, 11, 13, 17, 19}, body.Data); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestConfig(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Port)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
	if got := (&Config{Host: "0.0.0.0", Port: 9000}).Addr(); got != "0.0.0.0:9000" {
		t.Errorf("expected 0.0.0.0:9000, got %s", got)
	}

	for _, bad := range []Config{{Port: 70000}, {ReadTimeout: -1}, {RateLimit: -1}} {
		if err := bad.Validate(); err == nil {
			t.Errorf("expected %+v to be rejected", bad)
		}
	}
}
