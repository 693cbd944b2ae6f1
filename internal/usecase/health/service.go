package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates the engine is up but some configured indexes are not.
	Degraded Status = "degraded"
	// Unhealthy indicates the engine is unreachable.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	engine  EnginePinger
	stats   IndexStatter
	indexes []string
}

// New creates a Service. stats can be nil, in which case indexes are not checked.
func New(engine EnginePinger, stats IndexStatter, indexes []string) *Service {
	return &Service{engine: engine, stats: stats, indexes: indexes}
}

// Check pings the engine, then confirms every configured index is readable.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	if err := s.engine.Ping(ctx); err != nil {
		checks["engine"] = CheckError
		return Report{Status: Unhealthy, Checks: checks}
	}
	checks["engine"] = CheckOK

	status := Healthy
	if s.stats != nil {
		for _, idx := range s.indexes {
			if _, err := s.stats.IndexStats(ctx, idx); err != nil {
				checks["index:"+idx] = CheckError
				status = Degraded
				continue
			}
			checks["index:"+idx] = CheckOK
		}
	}

	return Report{Status: status, Checks: checks}
}
