package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/searchtools/internal/db"
	"github.com/kailas-cloud/searchtools/internal/domain/envelope"
	"github.com/kailas-cloud/searchtools/internal/domain/index"
	"github.com/kailas-cloud/searchtools/internal/domain/search/mode"
	"github.com/kailas-cloud/searchtools/internal/domain/search/request"
	"github.com/kailas-cloud/searchtools/internal/domain/search/timefield"
	"github.com/kailas-cloud/searchtools/internal/logger"
	"github.com/kailas-cloud/searchtools/internal/query"
)

// Config is the static orchestration configuration, read once at startup.
type Config struct {
	TimeMode     timefield.Mode
	ResponseMode mode.Mode
	DefaultLimit int
	MaxLimit     int
	Areas        AreasConfig
}

// Service compiles requests, calls the engine and maps every outcome to an envelope.
// It never returns an error: failures become failure envelopes.
type Service struct {
	engine   Searcher
	indexes  IndexReader
	registry *index.Registry
	builder  *query.Builder
	cfg      Config
	logger   *zap.Logger
}

// New creates a search service.
func New(
	engine Searcher, indexes IndexReader, registry *index.Registry,
	cfg Config, logger *zap.Logger,
) *Service {
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = request.DefaultLimit
	}
	if cfg.MaxLimit <= 0 {
		cfg.MaxLimit = request.MaxLimit
	}
	if !cfg.ResponseMode.IsValid() {
		cfg.ResponseMode = mode.Basic
	}
	if !cfg.TimeMode.IsValid() {
		cfg.TimeMode = timefield.ISO
	}
	return &Service{
		engine:   engine,
		indexes:  indexes,
		registry: registry,
		builder:  query.NewBuilder(cfg.TimeMode),
		cfg:      cfg,
		logger:   logger,
	}
}

// WithClock overrides the clock used by the visibility policy.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.builder.WithClock(now)
	return s
}

// Builder exposes the query builder for offline compilation.
func (s *Service) Builder() *query.Builder { return s.builder }

// Profile resolves an index profile, falling back to the default profile.
func (s *Service) Profile(name string) index.Profile {
	return s.registry.Resolve(name)
}

// Search runs a keyword search over one index.
func (s *Service) Search(ctx context.Context, indexName string, req *request.Request) envelope.Envelope {
	profile := s.registry.Resolve(indexName)
	r := req.Normalize(s.cfg.DefaultLimit, s.cfg.MaxLimit)

	q, err := s.builder.Build(profile, &r)
	if err != nil {
		return s.failure(ctx, "build query", err)
	}

	s.log(ctx).Debug("Search query compiled",
		zap.String("index", q.Index),
		zap.Stringer("query", q),
	)

	res, err := s.engine.Search(ctx, q)
	if err != nil {
		return s.failure(ctx, "search", err)
	}

	count := len(res.Hits)
	env := envelope.OK(res.Hits, count, profile.Message(count))
	if s.cfg.ResponseMode == mode.Detailed {
		env = env.WithPage(envelope.Page{
			EstimatedTotalHits: res.EstimatedTotalHits,
			Limit:              res.Limit,
			Offset:             res.Offset,
			ProcessingTimeMs:   res.ProcessingTimeMs,
		})
	}
	return env
}

// IndexStats reports document count, indexing state and field distribution.
func (s *Service) IndexStats(ctx context.Context, indexName string) envelope.Envelope {
	st, err := s.indexes.IndexStats(ctx, indexName)
	if err != nil {
		return s.failure(ctx, "index stats", err)
	}
	data := map[string]any{
		"index":               st.Index,
		"number_of_documents": st.NumberOfDocuments,
		"is_indexing":         st.IsIndexing,
		"field_distribution":  st.FieldDistribution,
	}
	return envelope.OK(data, 1, fmt.Sprintf("index %s holds %d documents", st.Index, st.NumberOfDocuments))
}

// ListIndexes returns one page of engine indexes.
func (s *Service) ListIndexes(ctx context.Context, limit, offset int) envelope.Envelope {
	if limit <= 0 {
		limit = s.cfg.DefaultLimit
	}
	if limit > s.cfg.MaxLimit {
		limit = s.cfg.MaxLimit
	}
	if offset < 0 {
		offset = 0
	}

	list, err := s.indexes.ListIndexes(ctx, limit, offset)
	if err != nil {
		return s.failure(ctx, "list indexes", err)
	}

	items := make([]map[string]any, 0, len(list.Results))
	for _, r := range list.Results {
		items = append(items, map[string]any{
			"uid":         r.UID,
			"primary_key": r.PrimaryKey,
			"created_at":  timefield.FormatISO(r.CreatedAt),
			"updated_at":  timefield.FormatISO(r.UpdatedAt),
		})
	}
	env := envelope.OK(items, len(items), fmt.Sprintf("found %d indexes", len(items)))
	if s.cfg.ResponseMode == mode.Detailed {
		env = env.WithPage(envelope.Page{
			EstimatedTotalHits: list.Total,
			Limit:              list.Limit,
			Offset:             list.Offset,
		})
	}
	return env
}

// failure converts a collaborator error into a failure envelope.
func (s *Service) failure(ctx context.Context, op string, err error) envelope.Envelope {
	log := s.log(ctx)

	var dbErr *db.Error
	if !errors.As(err, &dbErr) {
		log.Error("Search operation failed", zap.String("op", op), zap.Error(err))
		return envelope.UnknownFailure("unknown error: " + err.Error())
	}

	switch dbErr.Kind {
	case db.KindRequest:
		log.Warn("Search engine rejected request",
			zap.String("op", op),
			zap.String("index", dbErr.Index),
			zap.String("code", dbErr.Code),
			zap.Error(err),
		)
		return envelope.RequestFailure("search engine API error: "+dbErr.Err.Error(), dbErr.Code)
	case db.KindCommunication:
		log.Error("Search engine unreachable", zap.String("op", op), zap.Error(err))
		return envelope.CommunicationFailure("search engine communication error: " + dbErr.Err.Error())
	default:
		log.Error("Search operation failed", zap.String("op", op), zap.Error(err))
		return envelope.UnknownFailure("unknown error: " + dbErr.Err.Error())
	}
}

func (s *Service) log(ctx context.Context) *zap.Logger {
	return logger.FromContextOr(ctx, s.logger)
}
