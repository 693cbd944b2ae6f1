package searchtools

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNew_NoURL(t *testing.T) {
	_, err := New(context.Background())
	if err == nil {
		t.Fatal("expected error when no engine URL provided")
	}
}

func TestNew_InvalidOptions(t *testing.T) {
	tests := []struct {
		name    string
		opts    []Option
		wantErr string
	}{
		{"time mode", []Option{WithTimeMode("epoch")}, "unknown time mode"},
		{"response mode", []Option{WithResponseMode("verbose")}, "unknown response mode"},
		{
			"unknown time field",
			[]Option{WithIndex(IndexProfile{Name: "x", TimeFields: []string{"bornAt"}})},
			"unknown time field",
		},
		{
			"duplicate profile",
			[]Option{WithIndex(IndexProfile{Name: "x"}, IndexProfile{Name: "x"})},
			"duplicate index profile",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := append([]Option{WithEngine("http://localhost:7700", ""), WithoutReadinessCheck()}, tt.opts...)
			_, err := New(context.Background(), opts...)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestNew_EngineNotReady(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := New(context.Background(),
		WithEngine(srv.URL, ""),
		WithReadinessTimeout(300*time.Millisecond),
	)
	if err == nil || !strings.Contains(err.Error(), "engine not ready") {
		t.Fatalf("error = %v, want engine not ready", err)
	}
}

func TestClientOptions(t *testing.T) {
	cfg := &clientConfig{}

	WithEngine("http://meili:7700", "secret").apply(cfg)
	if cfg.url != "http://meili:7700" || cfg.apiKey != "secret" {
		t.Errorf("engine = %q/%q", cfg.url, cfg.apiKey)
	}

	WithTimeout(3 * time.Second).apply(cfg)
	WithReadinessTimeout(time.Second).apply(cfg)
	WithoutReadinessCheck().apply(cfg)
	if cfg.timeout != 3*time.Second || cfg.readinessTimeout != time.Second || !cfg.skipReadiness {
		t.Errorf("timeouts = %v/%v/%v", cfg.timeout, cfg.readinessTimeout, cfg.skipReadiness)
	}

	WithTimeMode(TimeModeTimestamp).apply(cfg)
	WithResponseMode(ResponseDetailed).apply(cfg)
	WithPagination(10, 100).apply(cfg)
	if cfg.timeMode != TimeModeTimestamp || cfg.responseMode != ResponseDetailed {
		t.Errorf("modes = %q/%q", cfg.timeMode, cfg.responseMode)
	}
	if cfg.defaultLimit != 10 || cfg.maxLimit != 100 {
		t.Errorf("pagination = %d/%d", cfg.defaultLimit, cfg.maxLimit)
	}

	WithIndex(IndexProfile{Name: "a"}).apply(cfg)
	WithIndex(IndexProfile{Name: "b"}, IndexProfile{Name: "c"}).apply(cfg)
	if len(cfg.indexes) != 3 {
		t.Errorf("indexes = %d, want 3", len(cfg.indexes))
	}

	WithAreas(Areas{FacetField: "areaName"}).apply(cfg)
	if cfg.areas.FacetField != "areaName" {
		t.Errorf("areas = %+v", cfg.areas)
	}

	logger := slog.Default()
	WithLogger(logger).apply(cfg)
	if cfg.logger != logger {
		t.Error("expected logger to be set")
	}

	reg := prometheus.NewRegistry()
	WithPrometheus(reg).apply(cfg)
	if cfg.metricsReg != reg {
		t.Error("expected metricsReg to be set")
	}
}

func TestClient_Close_NilStore(t *testing.T) {
	c := &Client{store: nil}
	c.Close() // не должен упасть
}

func TestObserver_NilSafe(t *testing.T) {
	var obs *observer
	obs.observe("test", "", time.Now(), nil)
	obs.observe("test", "", time.Now(), errors.New("err"))
}

func TestObserver_WithPrometheus(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs, err := newObserver(nil, reg)
	if err != nil {
		t.Fatalf("newObserver: %v", err)
	}

	obs.observe("search", "policies", time.Now().Add(-10*time.Millisecond), nil)
	obs.observe("search", "policies", time.Now(), &ResultError{Message: "bad", Code: "invalid_search_filter"})
	obs.observe("search", "policies", time.Now(), &ResultError{Message: "down", Type: "communication_error"})

	if got := testutil.ToFloat64(obs.metrics.operations.WithLabelValues("search", "policies", "ok")); got != 1 {
		t.Errorf("ok count = %v, want 1", got)
	}
	if got := testutil.ToFloat64(
		obs.metrics.operations.WithLabelValues("search", "policies", "invalid_search_filter"),
	); got != 1 {
		t.Errorf("invalid_search_filter count = %v, want 1", got)
	}
	if got := testutil.CollectAndCount(obs.metrics.operations); got != 3 {
		t.Errorf("series = %d, want 3", got)
	}

	// A second observer on the same registry reuses the collectors.
	if _, err := newObserver(nil, reg); err != nil {
		t.Fatalf("second newObserver: %v", err)
	}
}

func TestObserver_WithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	obs, err := newObserver(logger, nil)
	if err != nil {
		t.Fatalf("newObserver: %v", err)
	}
	obs.observe("index_stats", "companies", time.Now(), nil)
	obs.observe("index_stats", "companies", time.Now(), errors.New("test error"))

	out := buf.String()
	if !strings.Contains(out, "operation completed") || !strings.Contains(out, "operation failed") {
		t.Errorf("log output = %q", out)
	}
	if !strings.Contains(out, "index=companies") {
		t.Errorf("index attribute missing: %q", out)
	}
}

func TestOutcome(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "ok"},
		{&ResultError{Code: "index_not_found"}, "index_not_found"},
		{&ResultError{Type: "unknown_error"}, "unknown_error"},
		{errors.New("plain"), "error"},
	}
	for _, tt := range tests {
		if got := outcome(tt.err); got != tt.want {
			t.Errorf("outcome(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

// fakeEngine answers the health and search endpoints of the engine API.
func fakeEngine(t *testing.T, searchBody string) (*httptest.Server, *[]byte) {
	t.Helper()
	var lastSearch []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/health":
			_, _ = io.WriteString(w, `{"status":"available"}`)
		case strings.HasSuffix(r.URL.Path, "/search"):
			lastSearch, _ = io.ReadAll(r.Body)
			_, _ = io.WriteString(w, searchBody)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &lastSearch
}

func TestClient_SearchAgainstEngine(t *testing.T) {
	srv, lastSearch := fakeEngine(t, `{"hits":[{"id":"p1","title":"人才政策"}],"query":"人才",`+
		`"processingTimeMs":3,"limit":5,"offset":0,"estimatedTotalHits":42}`)

	client, err := New(context.Background(),
		WithEngine(srv.URL, ""),
		WithTimeMode(TimeModeTimestamp),
		WithResponseMode(ResponseDetailed),
		WithIndex(IndexProfile{Name: "policies", Label: "政策信息", TimeFields: []string{"publishDate"}}),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer client.Close()

	res := client.Search(context.Background(), "policies", SearchParams{
		Keyword:    "人才",
		FilterJSON: []byte(`{"publishDate":{"gte":"2025-09-09T00:00:00Z"}}`),
		Limit:      5,
	})
	if err := res.Err(); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if res.Count != 1 || res.Message != "找到1条政策信息" {
		t.Errorf("result = %+v", res)
	}
	if res.EstimatedTotalHits == nil || *res.EstimatedTotalHits != 42 {
		t.Errorf("estimated_total_hits = %v", res.EstimatedTotalHits)
	}
	if len(res.Hits()) != 1 {
		t.Errorf("hits = %v", res.Data)
	}
	if !strings.Contains(string(*lastSearch), "publishDateTimestamp \\u003e= 1757376000000") &&
		!strings.Contains(string(*lastSearch), "publishDateTimestamp >= 1757376000000") {
		t.Errorf("engine request = %s", *lastSearch)
	}
}

func TestObserver_ResultRecordsHits(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs, err := newObserver(nil, reg)
	if err != nil {
		t.Fatalf("newObserver: %v", err)
	}

	res := Result{Success: true, Count: 7}
	if got := obs.result("search", "companies", time.Now(), res); got.Count != 7 {
		t.Errorf("result changed: %+v", got)
	}
	obs.result("search", "companies", time.Now(), Result{Success: false, Error: "down", ErrorType: "communication_error"})
	obs.result("index_stats", "companies", time.Now(), Result{Success: true, Count: 1})

	if got := testutil.CollectAndCount(obs.metrics.hits); got != 1 {
		t.Errorf("hits series = %d, want 1", got)
	}
	if got := testutil.ToFloat64(
		obs.metrics.operations.WithLabelValues("search", "companies", "communication_error"),
	); got != 1 {
		t.Errorf("failure count = %v, want 1", got)
	}
}
