package searchtools

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	url              string
	apiKey           string
	timeout          time.Duration
	readinessTimeout time.Duration
	skipReadiness    bool

	timeMode     TimeMode
	responseMode ResponseMode
	defaultLimit int
	maxLimit     int

	indexes []IndexProfile
	areas   Areas

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithEngine sets the Meilisearch base URL and API key.
func WithEngine(url, apiKey string) Option {
	return optionFunc(func(c *clientConfig) {
		c.url = url
		c.apiKey = apiKey
	})
}

// WithTimeout bounds each engine round trip. Default: 10s.
func WithTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.timeout = d
	})
}

// WithReadinessTimeout bounds the availability check done by New. Default: 10s.
func WithReadinessTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.readinessTimeout = d
	})
}

// WithoutReadinessCheck makes New return without contacting the engine.
func WithoutReadinessCheck() Option {
	return optionFunc(func(c *clientConfig) {
		c.skipReadiness = true
	})
}

// WithTimeMode selects the time-field representation. Default: TimeModeISO.
func WithTimeMode(m TimeMode) Option {
	return optionFunc(func(c *clientConfig) {
		c.timeMode = m
	})
}

// WithResponseMode selects the success result shape. Default: ResponseBasic.
func WithResponseMode(m ResponseMode) Option {
	return optionFunc(func(c *clientConfig) {
		c.responseMode = m
	})
}

// WithPagination sets the default and maximum page size. Defaults: 20 and 1000.
func WithPagination(defaultLimit, maxLimit int) Option {
	return optionFunc(func(c *clientConfig) {
		c.defaultLimit = defaultLimit
		c.maxLimit = maxLimit
	})
}

// WithIndex registers index profiles. Can be repeated.
func WithIndex(profiles ...IndexProfile) Option {
	return optionFunc(func(c *clientConfig) {
		c.indexes = append(c.indexes, profiles...)
	})
}

// WithAreas enables AreaNames.
func WithAreas(a Areas) Option {
	return optionFunc(func(c *clientConfig) {
		c.areas = a
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
