package meili

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/meilisearch/meilisearch-go"

	"github.com/kailas-cloud/searchtools/internal/db"
	"github.com/kailas-cloud/searchtools/internal/metrics"
)

// Search runs a keyword search with filter, sort, projection and facets.
// Filter clauses are sent in the list form; the engine ANDs list elements.
func (s *Store) Search(ctx context.Context, q *db.SearchQuery) (*db.SearchResult, error) {
	if err := q.Validate(); err != nil {
		return nil, &db.Error{Op: db.OpSearch, Index: q.Index, Kind: db.KindInternal, Err: err}
	}

	start := time.Now()
	resp, err := s.client.Index(q.Index).SearchWithContext(ctx, q.Keyword, toSearchRequest(q))
	if err != nil {
		err = classify(db.OpSearch, q.Index, err)
		observe(db.OpSearch, q.Index, start, err)
		return nil, err
	}

	res, err := parseSearchResponse(resp)
	if err != nil {
		err = &db.Error{Op: db.OpSearch, Index: q.Index, Kind: db.KindInternal, Err: err}
	}
	observe(db.OpSearch, q.Index, start, err)
	if err != nil {
		return nil, err
	}
	if q.Limit == 0 {
		res.Hits = []map[string]any{}
		res.Limit = 0
	}
	metrics.EngineHitsReturned.WithLabelValues(q.Index).Observe(float64(len(res.Hits)))
	return res, nil
}

// zeroPageLimit stands in for a zero page size. The SDK omits a zero limit,
// which the engine reads as its default of 20; the extra hit is discarded.
const zeroPageLimit = 1

func toSearchRequest(q *db.SearchQuery) *meilisearch.SearchRequest {
	req := &meilisearch.SearchRequest{
		Limit:  int64(q.Limit),
		Offset: int64(q.Offset),
	}
	if q.Limit == 0 {
		req.Limit = zeroPageLimit
	}
	if len(q.Attributes) > 0 {
		req.AttributesToRetrieve = q.Attributes
	}
	if len(q.Filter) > 0 {
		req.Filter = q.Filter
	}
	if len(q.Sort) > 0 {
		req.Sort = q.Sort
	}
	if len(q.Facets) > 0 {
		req.Facets = q.Facets
	}
	return req
}

// parseSearchResponse re-decodes hits and facets through JSON so integer
// fields stay exact and the result does not depend on SDK container types.
func parseSearchResponse(resp *meilisearch.SearchResponse) (*db.SearchResult, error) {
	res := &db.SearchResult{
		EstimatedTotalHits: resp.EstimatedTotalHits,
		Limit:              resp.Limit,
		Offset:             resp.Offset,
		ProcessingTimeMs:   resp.ProcessingTimeMs,
	}

	if err := reencode(resp.Hits, &res.Hits); err != nil {
		return nil, fmt.Errorf("decode hits: %w", err)
	}
	if res.Hits == nil {
		res.Hits = []map[string]any{}
	}
	if resp.FacetDistribution != nil {
		if err := reencode(resp.FacetDistribution, &res.FacetDistribution); err != nil {
			return nil, fmt.Errorf("decode facet distribution: %w", err)
		}
	}
	return res, nil
}

func reencode(src, dst any) error {
	raw, err := json.Marshal(src)
	if err != nil {
		return err //nolint:wrapcheck // wrapped by caller
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	return dec.Decode(dst) //nolint:wrapcheck // wrapped by caller
}
