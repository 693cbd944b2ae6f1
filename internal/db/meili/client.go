// Package meili implements db.Store on top of the Meilisearch HTTP API.
package meili

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/meilisearch/meilisearch-go"

	"github.com/kailas-cloud/searchtools/internal/db"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

// DefaultTimeout bounds a single engine round trip when Config.Timeout is zero.
const DefaultTimeout = 10 * time.Second

// Config holds connection parameters for a Meilisearch store.
type Config struct {
	URL     string
	APIKey  string
	Timeout time.Duration
}

// Store implements db.Store via meilisearch-go.
// One Store is shared by all requests; the underlying client is safe for concurrent use.
type Store struct {
	client meilisearch.ServiceManager
	http   *http.Client
}

// NewStore creates a Meilisearch store.
func NewStore(cfg Config) (*Store, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("url is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	hc := &http.Client{Timeout: timeout}
	opts := []meilisearch.Option{meilisearch.WithCustomClient(hc)}
	if cfg.APIKey != "" {
		opts = append(opts, meilisearch.WithAPIKey(cfg.APIKey))
	}

	return &Store{
		client: meilisearch.New(cfg.URL, opts...),
		http:   hc,
	}, nil
}

// Ping checks that the engine reports itself available.
func (s *Store) Ping(ctx context.Context) error {
	start := time.Now()
	_, err := s.client.HealthWithContext(ctx)
	if err != nil {
		err = classify(db.OpHealth, "", err)
	}
	observe(db.OpHealth, "", start, err)
	return err
}

// Close releases idle connections.
func (s *Store) Close() {
	s.http.CloseIdleConnections()
}

// WaitForReady polls Ping until the engine responds or timeout expires.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	for {
		if err := s.Ping(ctx); err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for search engine: %w", ctx.Err())
		case <-ticker.C:
		}
	}
}
