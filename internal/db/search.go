package db

import "time"

// SearchQuery is the input for one engine search round trip.
// Filter holds AND-ed clauses in the engine's filter grammar.
type SearchQuery struct {
	Index      string
	Keyword    string
	Limit      int
	Offset     int
	Attributes []string
	Filter     []string
	Sort       []string
	Facets     []string
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Hits               []map[string]any
	EstimatedTotalHits int64
	Limit              int64
	Offset             int64
	ProcessingTimeMs   int64
	// FacetDistribution maps facet field → value → count.
	FacetDistribution map[string]map[string]int64
}

// IndexStats describes the contents of one index.
type IndexStats struct {
	Index             string
	NumberOfDocuments int64
	IsIndexing        bool
	FieldDistribution map[string]int64
}

// IndexInfo is one entry of the index listing.
type IndexInfo struct {
	UID        string
	PrimaryKey string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IndexList is a page of the index listing.
type IndexList struct {
	Results []IndexInfo
	Total   int64
	Limit   int64
	Offset  int64
}
