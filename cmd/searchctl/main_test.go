package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kailas-cloud/searchtools/internal/config"
)

const testConfig = `
engine:
  url: %s
search:
  time_mode: timestamp
indexes:
  - name: supply_demands
    label: 供需信息
    time_fields: [createdAt, updatedAt, expiresAt]
    expiry_field: expiresAt
    hide_expired: true
  - name: policies
    time_fields: [publishDate]
areas:
  facet_field: areaName
  facet_indexes: [supply_demands]
`

func writeConfig(t *testing.T, engineURL string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.yaml")
	data := strings.Replace(testConfig, "%s", engineURL, 1)
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	if err := app.Run(context.Background(), append([]string{"searchctl"}, args...)); err != nil {
		t.Fatalf("run %v: %v", args, err)
	}
	return out.String()
}

func TestCompileQuery(t *testing.T) {
	cfg, err := config.Parse([]byte(strings.Replace(testConfig, "%s", "http://localhost:7700", 1)))
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	now := time.Date(2025, 9, 9, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		opts        compileOptions
		wantClauses []string
		wantSort    []string
	}{
		{
			name: "time filter with visibility",
			opts: compileOptions{
				Index:  "supply_demands",
				Filter: `{"category":"纸箱","createdAt":{"gte":"2025-09-09T00:00:00.000Z"}}`,
				Sort:   []string{"createdAt:desc"},
				Now:    now,
			},
			wantClauses: []string{
				"category = '纸箱'",
				"createdAtTimestamp >= 1757376000000",
				"(expiresAtTimestamp > 1757376000000 OR expiresAtTimestamp IS NULL)",
			},
			wantSort: []string{"createdAtTimestamp:desc"},
		},
		{
			name: "caller filters on expiry",
			opts: compileOptions{
				Index:  "supply_demands",
				Filter: `{"expiresAt":{"lt":"2025-09-09T00:00:00Z"}}`,
				Now:    now,
			},
			wantClauses: []string{"expiresAtTimestamp < 1757376000000"},
		},
		{
			name: "unconfigured index uses default profile",
			opts: compileOptions{
				Index:  "news",
				Filter: `{"updatedAt":{"gt":"2025-09-09"},"publishDate":"2025-09-09"}`,
				Now:    now,
			},
			wantClauses: []string{
				"updatedAtTimestamp > 1757376000000",
				"publishDate = '2025-09-09'",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := compileQuery(cfg, tt.opts)
			if err != nil {
				t.Fatalf("compileQuery: %v", err)
			}
			if strings.Join(q.Filter, "\n") != strings.Join(tt.wantClauses, "\n") {
				t.Errorf("clauses = %q, want %q", q.Filter, tt.wantClauses)
			}
			if strings.Join(q.Sort, ",") != strings.Join(tt.wantSort, ",") {
				t.Errorf("sort = %q, want %q", q.Sort, tt.wantSort)
			}
			if q.Limit != 20 || q.Offset != 0 {
				t.Errorf("page = %d/%d, want 20/0", q.Limit, q.Offset)
			}
		})
	}
}

func TestCompileQuery_BadFilter(t *testing.T) {
	cfg, err := config.Parse([]byte(strings.Replace(testConfig, "%s", "http://localhost:7700", 1)))
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	_, err = compileQuery(cfg, compileOptions{Index: "policies", Filter: `["x"]`})
	if err == nil || !strings.Contains(err.Error(), "--filter") {
		t.Errorf("error = %v, want --filter parse error", err)
	}
}

func TestCompileCommand_JSON(t *testing.T) {
	path := writeConfig(t, "http://localhost:7700")

	out := run(t, "--config", path, "compile",
		"--index", "policies",
		"--filter", `{"publishDate":{"gte":"2025-09-09T00:00:00Z"},"level":["省级","市级"]}`,
		"--sort", "publishDate:desc",
		"--limit", "5000",
		"--json",
	)

	var got compiled
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode output %q: %v", out, err)
	}
	want := "publishDateTimestamp >= 1757376000000 AND level IN ['省级', '市级']"
	if got.Filter != want {
		t.Errorf("filter = %q, want %q", got.Filter, want)
	}
	if len(got.Sort) != 1 || got.Sort[0] != "publishDateTimestamp:desc" {
		t.Errorf("sort = %v", got.Sort)
	}
	if got.Limit != 1000 {
		t.Errorf("limit = %d, want clamped 1000", got.Limit)
	}
	if got.TimeMode != "timestamp" {
		t.Errorf("time mode = %q", got.TimeMode)
	}
}

func TestCompileCommand_TimeModeOverride(t *testing.T) {
	path := writeConfig(t, "http://localhost:7700")

	out := run(t, "--config", path, "--time-mode", "iso", "compile",
		"--index", "policies",
		"--filter", `{"publishDate":{"gte":1757376000}}`,
	)

	if !strings.Contains(out, "publishDate >= '2025-09-09T00:00:00Z'") {
		t.Errorf("output missing ISO clause:\n%s", out)
	}
	if !strings.Contains(out, "time mode: iso") {
		t.Errorf("output missing mode line:\n%s", out)
	}
}

func TestSearchCommand(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/indexes/supply_demands/search" {
			http.NotFound(w, r)
			return
		}
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"hits":[{"id":"1","title":"纸箱"}],"query":"纸箱",`+
			`"processingTimeMs":2,"limit":20,"offset":0,"estimatedTotalHits":1}`)
	}))
	defer srv.Close()

	path := writeConfig(t, srv.URL)
	out := run(t, "--config", path, "search", "--index", "supply_demands", "-q", "纸箱")

	var env struct {
		Success bool             `json:"success"`
		Data    []map[string]any `json:"data"`
		Count   int              `json:"count"`
		Message string           `json:"message"`
	}
	if err := json.Unmarshal([]byte(out), &env); err != nil {
		t.Fatalf("decode output %q: %v", out, err)
	}
	if !env.Success || env.Count != 1 || env.Message != "找到1条供需信息" {
		t.Errorf("envelope = %+v", env)
	}
	if body["q"] != "纸箱" {
		t.Errorf("engine q = %v", body["q"])
	}
	if _, ok := body["filter"]; !ok {
		t.Error("visibility filter was not sent")
	}
}

func TestToolsCommand(t *testing.T) {
	path := writeConfig(t, "http://localhost:7700")
	out := run(t, "--config", path, "tools")

	var defs []struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal([]byte(out), &defs); err != nil {
		t.Fatalf("decode output %q: %v", out, err)
	}
	names := make(map[string]bool, len(defs))
	for _, d := range defs {
		names[d.Name] = true
	}
	for _, want := range []string{"search_supply_demands", "search_policies", "search_index", "get_area_names"} {
		if !names[want] {
			t.Errorf("tool %q missing from %v", want, names)
		}
	}
}
