package searchtools

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/searchtools/internal/db/meili"
	"github.com/kailas-cloud/searchtools/internal/domain/envelope"
	"github.com/kailas-cloud/searchtools/internal/domain/index"
	"github.com/kailas-cloud/searchtools/internal/domain/search/mode"
	"github.com/kailas-cloud/searchtools/internal/domain/search/request"
	"github.com/kailas-cloud/searchtools/internal/domain/search/timefield"
	healthuc "github.com/kailas-cloud/searchtools/internal/usecase/health"
	searchuc "github.com/kailas-cloud/searchtools/internal/usecase/search"
)

const defaultReadinessTimeout = 10 * time.Second

// Внутренние интерфейсы для подмены в тестах.
type searchUseCase interface {
	Search(ctx context.Context, index string, req *request.Request) envelope.Envelope
	AreaNames(ctx context.Context) envelope.Envelope
	IndexStats(ctx context.Context, index string) envelope.Envelope
	ListIndexes(ctx context.Context, limit, offset int) envelope.Envelope
}

type closer interface {
	Close()
}

// Client is the searchtools SDK entry point. It is safe for concurrent use.
type Client struct {
	store     closer
	searchSvc searchUseCase
	healthSvc healthUseCase
	compiler  *compiler
	obs       *observer
}

// New creates a Client and, unless WithoutReadinessCheck is given, waits for the engine.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.url == "" {
		return nil, errors.New("searchtools: engine URL required (use WithEngine)")
	}
	if cfg.timeMode != "" && !timefield.Mode(cfg.timeMode).IsValid() {
		return nil, fmt.Errorf("searchtools: unknown time mode %q", cfg.timeMode)
	}
	if cfg.responseMode != "" && !mode.Mode(cfg.responseMode).IsValid() {
		return nil, fmt.Errorf("searchtools: unknown response mode %q", cfg.responseMode)
	}

	profiles, err := buildProfiles(cfg.indexes)
	if err != nil {
		return nil, err
	}

	store, err := meili.NewStore(meili.Config{URL: cfg.url, APIKey: cfg.apiKey, Timeout: cfg.timeout})
	if err != nil {
		return nil, fmt.Errorf("searchtools: create engine client: %w", err)
	}

	if !cfg.skipReadiness {
		timeout := cfg.readinessTimeout
		if timeout <= 0 {
			timeout = defaultReadinessTimeout
		}
		if err := store.WaitForReady(ctx, timeout); err != nil {
			store.Close()
			return nil, fmt.Errorf("searchtools: engine not ready: %w", err)
		}
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		store.Close()
		return nil, err
	}

	svc := searchuc.New(store, store, profiles, searchuc.Config{
		TimeMode:     timefield.Mode(cfg.timeMode),
		ResponseMode: mode.Mode(cfg.responseMode),
		DefaultLimit: cfg.defaultLimit,
		MaxLimit:     cfg.maxLimit,
		Areas: searchuc.AreasConfig{
			FacetField:   cfg.areas.FacetField,
			FacetIndexes: cfg.areas.FacetIndexes,
			ScanIndex:    cfg.areas.ScanIndex,
			ScanField:    cfg.areas.ScanField,
			MaxScanHits:  cfg.areas.MaxScanHits,
		},
	}, zap.NewNop())

	names := make([]string, 0, len(cfg.indexes))
	for _, p := range cfg.indexes {
		names = append(names, p.Name)
	}

	return &Client{
		store:     store,
		searchSvc: svc,
		healthSvc: healthuc.New(store, store, names),
		compiler:  newCompiler(svc.Builder(), profiles, cfg.defaultLimit, cfg.maxLimit),
		obs:       obs,
	}, nil
}

func buildProfiles(in []IndexProfile) (*index.Registry, error) {
	profiles := make([]index.Profile, 0, len(in))
	for _, ip := range in {
		p, err := index.New(ip.Name, ip.Label, ip.TimeFields, ip.ExpiryField, ip.HideExpired)
		if err != nil {
			return nil, fmt.Errorf("searchtools: %w", err)
		}
		profiles = append(profiles, p)
	}
	reg, err := index.NewRegistry(profiles...)
	if err != nil {
		return nil, fmt.Errorf("searchtools: %w", err)
	}
	return reg, nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}
