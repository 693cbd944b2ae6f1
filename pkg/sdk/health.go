package searchtools

import (
	"context"
	"time"

	healthuc "github.com/kailas-cloud/searchtools/internal/usecase/health"
)

// HealthStatus represents the aggregated engine health.
type HealthStatus struct {
	Status string            // "ok", "degraded", "error"
	Checks map[string]string // "engine" or "index:<name>" → "ok"/"error"
}

// Health pings the engine and checks every profiled index.
func (c *Client) Health(ctx context.Context) HealthStatus {
	start := time.Now()
	report := c.healthSvc.Check(ctx)
	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	var err error
	if report.Status != healthuc.Healthy {
		err = &ResultError{Message: "engine " + string(report.Status), Type: string(report.Status)}
	}
	c.obs.observe("health", "", start, err)
	return HealthStatus{
		Status: string(report.Status),
		Checks: checks,
	}
}

// healthUseCase is the internal interface for health checks.
type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}
