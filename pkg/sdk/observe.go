package searchtools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "searchtools"

// sdkMetrics are the client-side counterparts of the server's tool metrics.
type sdkMetrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	hits       *prometheus.HistogramVec
}

func newSDKMetrics(reg prometheus.Registerer) (*sdkMetrics, error) {
	operations, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Subsystem: "sdk",
		Name:      "operations_total",
		Help:      "SDK operations by operation, index and outcome.",
	}, []string{"operation", "index", "outcome"}))
	if err != nil {
		return nil, err
	}
	duration, err := registerHistogramVec(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Subsystem: "sdk",
		Name:      "operation_duration_seconds",
		Help:      "SDK operation latency including the engine round trip.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation"}))
	if err != nil {
		return nil, err
	}
	hits, err := registerHistogramVec(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Subsystem: "sdk",
		Name:      "search_hits",
		Help:      "Hits returned per successful search.",
		Buckets:   []float64{0, 1, 5, 10, 20, 50, 100, 500, 1000},
	}, []string{"index"}))
	if err != nil {
		return nil, err
	}
	return &sdkMetrics{operations: operations, duration: duration, hits: hits}, nil
}

// register adds c to reg. When an equal collector is already registered,
// for example by a second Client on the same registry, that one is returned.
func register(reg prometheus.Registerer, c prometheus.Collector) (prometheus.Collector, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		return are.ExistingCollector, nil
	}
	return nil, fmt.Errorf("searchtools: register metric: %w", err)
}

func registerCounterVec(reg prometheus.Registerer, c *prometheus.CounterVec) (*prometheus.CounterVec, error) {
	got, err := register(reg, c)
	if err != nil {
		return nil, err
	}
	cv, ok := got.(*prometheus.CounterVec)
	if !ok {
		return nil, fmt.Errorf("searchtools: metric already registered as %T", got)
	}
	return cv, nil
}

func registerHistogramVec(reg prometheus.Registerer, h *prometheus.HistogramVec) (*prometheus.HistogramVec, error) {
	got, err := register(reg, h)
	if err != nil {
		return nil, err
	}
	hv, ok := got.(*prometheus.HistogramVec)
	if !ok {
		return nil, fmt.Errorf("searchtools: metric already registered as %T", got)
	}
	return hv, nil
}

// outcome labels a finished operation: "ok", the engine error code, or the failure type.
func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	var re *ResultError
	if errors.As(err, &re) {
		if re.Code != "" {
			return re.Code
		}
		if re.Type != "" {
			return re.Type
		}
	}
	return "error"
}

// observer logs and counts SDK operations. A nil observer, or one without
// a logger or registry, skips the corresponding side.
type observer struct {
	logger  *slog.Logger
	metrics *sdkMetrics
}

func newObserver(logger *slog.Logger, reg prometheus.Registerer) (*observer, error) {
	o := &observer{logger: logger}
	if reg == nil {
		return o, nil
	}
	m, err := newSDKMetrics(reg)
	if err != nil {
		return nil, err
	}
	o.metrics = m
	return o, nil
}

// result records res and returns it unchanged.
func (o *observer) result(op, index string, start time.Time, res Result) Result {
	err := res.Err()
	if o != nil && o.metrics != nil && err == nil && op == "search" {
		o.metrics.hits.WithLabelValues(index).Observe(float64(res.Count))
	}
	o.observe(op, index, start, err)
	return res
}

func (o *observer) observe(op, index string, start time.Time, err error) {
	if o == nil {
		return
	}
	elapsed := time.Since(start)
	label := outcome(err)

	if o.metrics != nil {
		o.metrics.operations.WithLabelValues(op, index, label).Inc()
		o.metrics.duration.WithLabelValues(op).Observe(elapsed.Seconds())
	}

	if o.logger == nil {
		return
	}
	attrs := []slog.Attr{
		slog.String("op", op),
		slog.Duration("duration", elapsed),
		slog.String("outcome", label),
	}
	if index != "" {
		attrs = append(attrs, slog.String("index", index))
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		o.logger.LogAttrs(context.Background(), slog.LevelWarn, "operation failed", attrs...)
		return
	}
	o.logger.LogAttrs(context.Background(), slog.LevelDebug, "operation completed", attrs...)
}
