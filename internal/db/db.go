package db

import "context"

// Store is the search engine facade combining all sub-interfaces.
type Store interface {
	Pinger
	Searcher
	IndexReader
	Close()
}

// Pinger checks engine availability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Searcher runs queries against a single index.
type Searcher interface {
	Search(ctx context.Context, q *SearchQuery) (*SearchResult, error)
}

// IndexReader reads index metadata.
type IndexReader interface {
	IndexStats(ctx context.Context, index string) (*IndexStats, error)
	ListIndexes(ctx context.Context, limit, offset int) (*IndexList, error)
}
