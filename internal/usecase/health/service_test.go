package health

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/searchtools/internal/db"
)

// --- Mocks ---

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

type mockStatter struct {
	missing map[string]bool
	calls   int
}

func (m *mockStatter) IndexStats(_ context.Context, index string) (*db.IndexStats, error) {
	m.calls++
	if m.missing[index] {
		return nil, errors.New("index_not_found")
	}
	return &db.IndexStats{Index: index}, nil
}

// --- Tests ---

func TestCheck_AllHealthy(t *testing.T) {
	svc := New(&mockPinger{}, &mockStatter{}, []string{"policies", "companies"})
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	for _, k := range []string{"engine", "index:policies", "index:companies"} {
		if r.Checks[k] != CheckOK {
			t.Errorf("expected %s %q, got %q", k, CheckOK, r.Checks[k])
		}
	}
}

func TestCheck_EngineDown(t *testing.T) {
	st := &mockStatter{}
	svc := New(&mockPinger{err: errors.New("connection refused")}, st, []string{"policies"})
	r := svc.Check(context.Background())

	if r.Status != Unhealthy {
		t.Errorf("expected %q, got %q", Unhealthy, r.Status)
	}
	if r.Checks["engine"] != CheckError {
		t.Errorf("expected engine %q, got %q", CheckError, r.Checks["engine"])
	}
	if st.calls != 0 {
		t.Errorf("indexes must not be checked when the engine is down, got %d calls", st.calls)
	}
}

func TestCheck_MissingIndex(t *testing.T) {
	svc := New(&mockPinger{}, &mockStatter{missing: map[string]bool{"companies": true}}, []string{"policies", "companies"})
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks["index:companies"] != CheckError {
		t.Errorf("expected companies %q, got %q", CheckError, r.Checks["index:companies"])
	}
	if r.Checks["index:policies"] != CheckOK {
		t.Errorf("expected policies %q, got %q", CheckOK, r.Checks["index:policies"])
	}
}

func TestCheck_NoIndexChecker(t *testing.T) {
	svc := New(&mockPinger{}, nil, []string{"policies"})
	r := svc.Check(context.Background())

	if r.Status != Healthy || len(r.Checks) != 1 {
		t.Errorf("report = %+v", r)
	}
}
