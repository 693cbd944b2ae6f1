package searchtools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kailas-cloud/searchtools/internal/domain"
	"github.com/kailas-cloud/searchtools/internal/domain/envelope"
	"github.com/kailas-cloud/searchtools/internal/domain/index"
	"github.com/kailas-cloud/searchtools/internal/domain/search/filter"
	"github.com/kailas-cloud/searchtools/internal/domain/search/request"
	"github.com/kailas-cloud/searchtools/internal/query"
)

// Search runs a keyword search over one index. Failures are reported in the Result.
func (c *Client) Search(ctx context.Context, indexName string, p SearchParams) Result {
	start := time.Now()
	req, err := toRequest(p)
	if err != nil {
		return c.obs.result("search", indexName, start, toResult(envelope.InvalidArguments(err.Error())))
	}
	return c.obs.result("search", indexName, start, toResult(c.searchSvc.Search(ctx, indexName, &req)))
}

// AreaNames returns the sorted union of area names across the configured sources.
func (c *Client) AreaNames(ctx context.Context) Result {
	start := time.Now()
	return c.obs.result("area_names", "", start, toResult(c.searchSvc.AreaNames(ctx)))
}

// IndexStats reports document count, indexing state and field distribution of an index.
func (c *Client) IndexStats(ctx context.Context, indexName string) Result {
	start := time.Now()
	return c.obs.result("index_stats", indexName, start, toResult(c.searchSvc.IndexStats(ctx, indexName)))
}

// ListIndexes returns one page of engine indexes.
func (c *Client) ListIndexes(ctx context.Context, limit, offset int) Result {
	start := time.Now()
	return c.obs.result("list_indexes", "", start, toResult(c.searchSvc.ListIndexes(ctx, limit, offset)))
}

// Compile returns the engine query a Search with p would send, without contacting the engine.
func (c *Client) Compile(indexName string, p SearchParams) (Compiled, error) {
	return c.compiler.compile(indexName, p)
}

// compiler mirrors the search path up to the engine call.
type compiler struct {
	builder      *query.Builder
	profiles     *index.Registry
	defaultLimit int
	maxLimit     int
}

func newCompiler(b *query.Builder, profiles *index.Registry, defaultLimit, maxLimit int) *compiler {
	if defaultLimit <= 0 {
		defaultLimit = request.DefaultLimit
	}
	if maxLimit <= 0 {
		maxLimit = request.MaxLimit
	}
	return &compiler{builder: b, profiles: profiles, defaultLimit: defaultLimit, maxLimit: maxLimit}
}

func (c *compiler) compile(indexName string, p SearchParams) (Compiled, error) {
	req, err := toRequest(p)
	if err != nil {
		return Compiled{}, err
	}
	req = req.Normalize(c.defaultLimit, c.maxLimit)

	q, err := c.builder.Build(c.profiles.Resolve(indexName), &req)
	if err != nil {
		return Compiled{}, fmt.Errorf("searchtools: compile: %w", err)
	}
	return Compiled{
		Index:   q.Index,
		Clauses: q.Filter,
		Filter:  query.Join(q.Filter),
		Sort:    q.Sort,
		Limit:   q.Limit,
		Offset:  q.Offset,
	}, nil
}

func toRequest(p SearchParams) (request.Request, error) {
	conds, err := toConditions(p)
	if err != nil {
		return request.Request{}, err
	}
	req, err := request.New(p.Keyword, conds, p.Limit, p.Offset, p.Attributes, p.Sort)
	if err != nil {
		return request.Request{}, domain.NewArgumentError("keyword", err.Error())
	}
	return req, nil
}

func toConditions(p SearchParams) (filter.Conditions, error) {
	if len(p.FilterJSON) > 0 {
		var conds filter.Conditions
		if err := json.Unmarshal(p.FilterJSON, &conds); err != nil {
			return nil, domain.NewArgumentError("filter_conditions", err.Error())
		}
		return conds, nil
	}
	return filter.FromMap(p.Filter), nil
}

// toResult converts an internal envelope to the public Result.
func toResult(env envelope.Envelope) Result {
	res := Result{
		Success:            env.Success,
		Data:               env.Data,
		Message:            env.Message,
		EstimatedTotalHits: env.EstimatedTotalHits,
		Limit:              env.Limit,
		Offset:             env.Offset,
		ProcessingTimeMs:   env.ProcessingTimeMs,
		Error:              env.Error,
		ErrorCode:          env.ErrorCode,
		ErrorType:          env.ErrorType,
	}
	if env.Count != nil {
		res.Count = *env.Count
	}
	return res
}
