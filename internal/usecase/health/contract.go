package health

import (
	"context"

	"github.com/kailas-cloud/searchtools/internal/db"
)

// EnginePinger checks search engine availability.
type EnginePinger interface {
	Ping(ctx context.Context) error
}

// IndexStatter reads index stats; used to confirm configured indexes exist.
type IndexStatter interface {
	IndexStats(ctx context.Context, index string) (*db.IndexStats, error)
}
