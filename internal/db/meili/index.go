package meili

import (
	"context"
	"time"

	"github.com/meilisearch/meilisearch-go"

	"github.com/kailas-cloud/searchtools/internal/db"
)

// IndexStats returns document count and field distribution for an index.
func (s *Store) IndexStats(ctx context.Context, index string) (*db.IndexStats, error) {
	if index == "" {
		return nil, &db.Error{Op: db.OpStats, Kind: db.KindInternal, Err: db.ErrIndexRequired}
	}

	start := time.Now()
	st, err := s.client.Index(index).GetStatsWithContext(ctx)
	if err != nil {
		err = classify(db.OpStats, index, err)
		observe(db.OpStats, index, start, err)
		return nil, err
	}
	observe(db.OpStats, index, start, nil)

	return &db.IndexStats{
		Index:             index,
		NumberOfDocuments: st.NumberOfDocuments,
		IsIndexing:        st.IsIndexing,
		FieldDistribution: st.FieldDistribution,
	}, nil
}

// ListIndexes returns one page of index descriptors.
func (s *Store) ListIndexes(ctx context.Context, limit, offset int) (*db.IndexList, error) {
	start := time.Now()
	resp, err := s.client.ListIndexesWithContext(ctx, &meilisearch.IndexesQuery{
		Limit:  int64(limit),
		Offset: int64(offset),
	})
	if err != nil {
		err = classify(db.OpListIndexes, "", err)
		observe(db.OpListIndexes, "", start, err)
		return nil, err
	}
	observe(db.OpListIndexes, "", start, nil)

	out := &db.IndexList{
		Results: make([]db.IndexInfo, 0, len(resp.Results)),
		Total:   resp.Total,
		Limit:   resp.Limit,
		Offset:  resp.Offset,
	}
	for _, r := range resp.Results {
		out.Results = append(out.Results, db.IndexInfo{
			UID:        r.UID,
			PrimaryKey: r.PrimaryKey,
			CreatedAt:  r.CreatedAt,
			UpdatedAt:  r.UpdatedAt,
		})
	}
	return out, nil
}
