package search

import (
	"context"

	"github.com/kailas-cloud/searchtools/internal/db"
)

// Searcher runs one engine query.
type Searcher interface {
	Search(ctx context.Context, q *db.SearchQuery) (*db.SearchResult, error)
}

// IndexReader reads index metadata from the engine.
type IndexReader interface {
	IndexStats(ctx context.Context, index string) (*db.IndexStats, error)
	ListIndexes(ctx context.Context, limit, offset int) (*db.IndexList, error)
}
