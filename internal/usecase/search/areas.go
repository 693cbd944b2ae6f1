package search

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/kailas-cloud/searchtools/internal/db"
	"github.com/kailas-cloud/searchtools/internal/domain"
	"github.com/kailas-cloud/searchtools/internal/domain/envelope"
	"github.com/kailas-cloud/searchtools/internal/metrics"
)

// DefaultMaxScanHits caps the raw field scan when no maximum is configured.
const DefaultMaxScanHits = 1000

// AreasConfig drives area-name discovery.
type AreasConfig struct {
	// FacetField is requested as a facet on every FacetIndexes entry.
	FacetField   string
	FacetIndexes []string
	// ScanIndex/ScanField name an index whose array-valued field is read from raw hits.
	ScanIndex   string
	ScanField   string
	MaxScanHits int
}

// Enabled reports whether any source of area names is configured.
func (c AreasConfig) Enabled() bool {
	return (c.FacetField != "" && len(c.FacetIndexes) > 0) || (c.ScanIndex != "" && c.ScanField != "")
}

// AreaNames unions facet keys across the facet indexes and the values of the
// scan field, sorted lexicographically. Indexes that fail are logged and skipped.
func (s *Service) AreaNames(ctx context.Context) envelope.Envelope {
	cfg := s.cfg.Areas
	if !cfg.Enabled() {
		return envelope.UnknownFailure("unknown error: " + domain.ErrAreasDisabled.Error())
	}
	log := s.log(ctx)
	names := make(map[string]struct{})

	if cfg.FacetField != "" {
		for _, idx := range cfg.FacetIndexes {
			q := db.NewSearch(idx).Page(0, 0).Facets(cfg.FacetField).MustBuild()
			res, err := s.engine.Search(ctx, q)
			if err != nil {
				s.skipIndex(log, idx, err)
				continue
			}
			for name := range res.FacetDistribution[cfg.FacetField] {
				addName(names, name)
			}
		}
	}

	if cfg.ScanIndex != "" && cfg.ScanField != "" {
		limit := cfg.MaxScanHits
		if limit <= 0 {
			limit = DefaultMaxScanHits
		}
		q := db.NewSearch(cfg.ScanIndex).Page(limit, 0).Attributes(cfg.ScanField).MustBuild()
		res, err := s.engine.Search(ctx, q)
		if err != nil {
			s.skipIndex(log, cfg.ScanIndex, err)
		} else {
			for _, hit := range res.Hits {
				collectNames(names, hit[cfg.ScanField])
			}
		}
	}

	out := make([]string, 0, len(names))
	for n := range names {
		out = append(out, n)
	}
	sort.Strings(out)

	return envelope.OK(out, len(out), fmt.Sprintf("found %d area names", len(out)))
}

func (s *Service) skipIndex(log *zap.Logger, idx string, err error) {
	metrics.AreaIndexFailuresTotal.WithLabelValues(idx).Inc()
	log.Warn("Area discovery skipped index",
		zap.String("index", idx),
		zap.String("kind", db.KindOf(err).String()),
		zap.Error(err),
	)
}

// collectNames accepts a single string or an array of strings; anything else is ignored.
func collectNames(names map[string]struct{}, v any) {
	switch t := v.(type) {
	case string:
		addName(names, t)
	case []any:
		for _, e := range t {
			if s, ok := e.(string); ok {
				addName(names, s)
			}
		}
	case []string:
		for _, s := range t {
			addName(names, s)
		}
	}
}

func addName(names map[string]struct{}, n string) {
	if n == "" {
		return
	}
	names[n] = struct{}{}
}
