package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/searchtools/internal/domain/index"
	"github.com/kailas-cloud/searchtools/internal/domain/search/mode"
	"github.com/kailas-cloud/searchtools/internal/domain/search/timefield"
)

// Config holds the searchtools configuration.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Engine  EngineConfig  `yaml:"engine"`
	Search  SearchConfig  `yaml:"search"`
	Indexes []IndexConfig `yaml:"indexes"`
	Areas   AreasConfig   `yaml:"areas"`
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Host            string `yaml:"host"`
	Port            int    `yaml:"port"`
	ReadTimeoutSec  int    `yaml:"read_timeout_sec"`
	WriteTimeoutSec int    `yaml:"write_timeout_sec"`
	ShutdownSec     int    `yaml:"shutdown_timeout_sec"`
}

// Addr returns the listen address.
func (h HTTPConfig) Addr() string {
	return net.JoinHostPort(h.Host, strconv.Itoa(h.Port))
}

// EngineConfig holds search engine connection settings.
type EngineConfig struct {
	URL              string `yaml:"url"`
	APIKey           string `yaml:"api_key"`
	TimeoutSec       int    `yaml:"timeout_sec"`
	ReadinessTimeout int    `yaml:"readiness_timeout_sec"`
}

// Timeout returns the per-request engine timeout.
func (e EngineConfig) Timeout() time.Duration {
	return time.Duration(e.TimeoutSec) * time.Second
}

// SearchConfig holds query compilation and response settings.
type SearchConfig struct {
	TimeMode     string `yaml:"time_mode"`     // iso | timestamp
	ResponseMode string `yaml:"response_mode"` // basic | detailed
	DefaultLimit int    `yaml:"default_limit"`
	MaxLimit     int    `yaml:"max_limit"`
}

// IndexConfig describes one searchable index and the tool that exposes it.
type IndexConfig struct {
	Name        string   `yaml:"name"`
	Tool        string   `yaml:"tool"`
	Label       string   `yaml:"label"`
	Description string   `yaml:"description"`
	TimeFields  []string `yaml:"time_fields"`
	ExpiryField string   `yaml:"expiry_field"`
	HideExpired bool     `yaml:"hide_expired"`
}

// AreasConfig holds area-name discovery settings.
type AreasConfig struct {
	FacetField   string   `yaml:"facet_field"`
	FacetIndexes []string `yaml:"facet_indexes"`
	ScanIndex    string   `yaml:"scan_index"`
	ScanField    string   `yaml:"scan_field"`
	MaxScanHits  int      `yaml:"max_scan_hits"`
}

// Enabled reports whether any area source is configured.
func (a AreasConfig) Enabled() bool {
	return (a.FacetField != "" && len(a.FacetIndexes) > 0) || (a.ScanIndex != "" && a.ScanField != "")
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	return LoadFile(findConfigPath(env))
}

// LoadFile reads configuration from an explicit path.
func LoadFile(configPath string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}
	return Parse(data)
}

// Parse expands env variables, decodes YAML, applies defaults and validates.
func Parse(data []byte) (Config, error) {
	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.Host == "" {
		c.HTTP.Host = "127.0.0.1"
	}
	if c.HTTP.Port == 0 {
		c.HTTP.Port = 8800
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 30
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Engine.URL == "" {
		c.Engine.URL = "http://localhost:7700"
	}
	if c.Engine.TimeoutSec <= 0 {
		c.Engine.TimeoutSec = 10
	}
	if c.Engine.ReadinessTimeout <= 0 {
		c.Engine.ReadinessTimeout = 10
	}
	if c.Search.TimeMode == "" {
		c.Search.TimeMode = string(timefield.ISO)
	}
	if c.Search.ResponseMode == "" {
		c.Search.ResponseMode = string(mode.Basic)
	}
	if c.Search.DefaultLimit <= 0 {
		c.Search.DefaultLimit = 20
	}
	if c.Search.MaxLimit <= 0 {
		c.Search.MaxLimit = 1000
	}
	if c.Areas.MaxScanHits <= 0 {
		c.Areas.MaxScanHits = 1000
	}
	for i := range c.Indexes {
		if c.Indexes[i].Tool == "" && c.Indexes[i].Name != "" {
			c.Indexes[i].Tool = "search_" + c.Indexes[i].Name
		}
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.Engine.URL == "" {
		return fmt.Errorf("engine.url is required")
	}
	if !timefield.Mode(c.Search.TimeMode).IsValid() {
		return fmt.Errorf("search.time_mode must be \"iso\" or \"timestamp\", got %q", c.Search.TimeMode)
	}
	if !mode.Mode(c.Search.ResponseMode).IsValid() {
		return fmt.Errorf("search.response_mode must be \"basic\" or \"detailed\", got %q", c.Search.ResponseMode)
	}
	if c.Search.DefaultLimit > c.Search.MaxLimit {
		return fmt.Errorf("search.default_limit %d exceeds search.max_limit %d",
			c.Search.DefaultLimit, c.Search.MaxLimit)
	}

	names := make(map[string]struct{}, len(c.Indexes))
	tools := make(map[string]struct{}, len(c.Indexes))
	for i, ic := range c.Indexes {
		if ic.Name == "" {
			return fmt.Errorf("indexes[%d].name is required", i)
		}
		if _, dup := names[ic.Name]; dup {
			return fmt.Errorf("indexes: duplicate name %q", ic.Name)
		}
		names[ic.Name] = struct{}{}
		if _, dup := tools[ic.Tool]; dup {
			return fmt.Errorf("indexes: duplicate tool %q", ic.Tool)
		}
		tools[ic.Tool] = struct{}{}
		if _, err := ic.Profile(); err != nil {
			return fmt.Errorf("indexes[%d]: %w", i, err)
		}
	}

	if c.Areas.FacetField != "" && len(c.Areas.FacetIndexes) == 0 {
		return fmt.Errorf("areas.facet_indexes is required when areas.facet_field is set")
	}
	for i, name := range c.Areas.FacetIndexes {
		if name == "" {
			return fmt.Errorf("areas.facet_indexes[%d] is empty", i)
		}
	}
	if (c.Areas.ScanIndex == "") != (c.Areas.ScanField == "") {
		return fmt.Errorf("areas.scan_index and areas.scan_field must be set together")
	}
	return nil
}

// Profile builds the index profile described by the entry.
func (ic IndexConfig) Profile() (index.Profile, error) {
	return index.New(ic.Name, ic.Label, ic.TimeFields, ic.ExpiryField, ic.HideExpired)
}

// Profiles builds the index registry from the configured indexes.
func (c *Config) Profiles() (*index.Registry, error) {
	profiles := make([]index.Profile, 0, len(c.Indexes))
	for _, ic := range c.Indexes {
		p, err := ic.Profile()
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return index.NewRegistry(profiles...)
}

// IndexNames returns the configured index names in order.
func (c *Config) IndexNames() []string {
	out := make([]string, 0, len(c.Indexes))
	for _, ic := range c.Indexes {
		out = append(out, ic.Name)
	}
	return out
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
