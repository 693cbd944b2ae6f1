package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/kailas-cloud/searchtools/internal/config"
	"github.com/kailas-cloud/searchtools/internal/db/meili"
	"github.com/kailas-cloud/searchtools/internal/domain/envelope"
	"github.com/kailas-cloud/searchtools/internal/domain/search/mode"
	"github.com/kailas-cloud/searchtools/internal/domain/search/timefield"
	logpkg "github.com/kailas-cloud/searchtools/internal/logger"
	"github.com/kailas-cloud/searchtools/internal/tools"
	searchuc "github.com/kailas-cloud/searchtools/internal/usecase/search"
)

// app is the wiring shared by the engine-backed commands.
type app struct {
	cfg    config.Config
	logger *zap.Logger
	store  *meili.Store
	search *searchuc.Service
	tools  *tools.Registry
}

// loadConfig reads the configuration selected by the global flags and applies overrides.
func loadConfig(c *cli.Command) (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if path := c.String("config"); path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.Load(c.String("env"))
	}
	if err != nil {
		return config.Config{}, fmt.Errorf("loading config: %w", err)
	}

	if m := c.String("time-mode"); m != "" {
		cfg.Search.TimeMode = m
	}
	if m := c.String("response-mode"); m != "" {
		cfg.Search.ResponseMode = m
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// buildApp builds the engine client and services. No engine round trip happens here.
func buildApp(c *cli.Command) (*app, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}

	logger, err := logpkg.NewLogger(c.String("env"), c.String("log-level"))
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	store, err := meili.NewStore(meili.Config{
		URL:     cfg.Engine.URL,
		APIKey:  cfg.Engine.APIKey,
		Timeout: cfg.Engine.Timeout(),
	})
	if err != nil {
		return nil, fmt.Errorf("creating engine client: %w", err)
	}

	profiles, err := cfg.Profiles()
	if err != nil {
		return nil, fmt.Errorf("building index profiles: %w", err)
	}

	svc := searchuc.New(store, store, profiles, serviceConfig(cfg), logger)

	registry := tools.NewRegistry(logger)
	bindings := make([]tools.Binding, 0, len(cfg.Indexes))
	for _, ic := range cfg.Indexes {
		bindings = append(bindings, tools.Binding{Tool: ic.Tool, Index: ic.Name, Description: ic.Description})
	}
	if err := tools.RegisterSearchTools(registry, svc, tools.Options{
		Bindings: bindings,
		Areas:    cfg.Areas.Enabled(),
	}); err != nil {
		return nil, fmt.Errorf("registering tools: %w", err)
	}

	return &app{cfg: cfg, logger: logger, store: store, search: svc, tools: registry}, nil
}

func (a *app) Close() {
	_ = a.logger.Sync()
	a.store.Close()
}

func serviceConfig(cfg config.Config) searchuc.Config {
	return searchuc.Config{
		TimeMode:     timefield.Mode(cfg.Search.TimeMode),
		ResponseMode: mode.Mode(cfg.Search.ResponseMode),
		DefaultLimit: cfg.Search.DefaultLimit,
		MaxLimit:     cfg.Search.MaxLimit,
		Areas: searchuc.AreasConfig{
			FacetField:   cfg.Areas.FacetField,
			FacetIndexes: cfg.Areas.FacetIndexes,
			ScanIndex:    cfg.Areas.ScanIndex,
			ScanField:    cfg.Areas.ScanField,
			MaxScanHits:  cfg.Areas.MaxScanHits,
		},
	}
}

// printJSON writes v as indented JSON. Comparison operators stay readable.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	return nil
}

// printEnvelope prints env and turns a failure envelope into exit status 1.
func printEnvelope(w io.Writer, env envelope.Envelope) error {
	if err := printJSON(w, env); err != nil {
		return err
	}
	if !env.Success {
		return cli.Exit("", 1)
	}
	return nil
}
