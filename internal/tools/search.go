package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kailas-cloud/searchtools/internal/domain/envelope"
	"github.com/kailas-cloud/searchtools/internal/domain/search/request"
)

// SearchService is the orchestrator consumed by the search tools.
type SearchService interface {
	Search(ctx context.Context, index string, req *request.Request) envelope.Envelope
	AreaNames(ctx context.Context) envelope.Envelope
	IndexStats(ctx context.Context, index string) envelope.Envelope
	ListIndexes(ctx context.Context, limit, offset int) envelope.Envelope
}

// Binding exposes one configured index as a dedicated search tool.
type Binding struct {
	Tool        string
	Index       string
	Description string
}

// Options selects the optional tools.
type Options struct {
	Bindings []Binding
	// Areas registers get_area_names.
	Areas bool
}

// Generic tool names.
const (
	ToolSearchIndex = "search_index"
	ToolAreaNames   = "get_area_names"
	ToolIndexStats  = "get_index_stats"
	ToolListIndexes = "list_indexes"
)

const (
	defaultPageLimit  = 20
	defaultPageOffset = 0
)

// RegisterSearchTools registers one tool per binding plus the generic tools.
func RegisterSearchTools(r *Registry, svc SearchService, opts Options) error {
	for _, b := range opts.Bindings {
		desc := b.Description
		if desc == "" {
			desc = fmt.Sprintf("Search the %s index.", b.Index)
		}
		if err := r.Register(Tool{
			Name:        b.Tool,
			Description: desc,
			Params:      searchParams,
			Handler:     indexSearchHandler(svc, b.Index),
		}); err != nil {
			return err
		}
	}

	generic := []Tool{
		{
			Name:        ToolSearchIndex,
			Description: "Search any index by name. Configured indexes keep their time fields and visibility policy.",
			Params:      append([]Param{indexParam}, searchParams...),
			Handler:     genericSearchHandler(svc),
		},
		{
			Name:        ToolIndexStats,
			Description: "Document count, indexing state and field distribution of an index.",
			Params:      []Param{indexParam},
			Handler:     indexStatsHandler(svc),
		},
		{
			Name:        ToolListIndexes,
			Description: "List the indexes of the search engine.",
			Params:      []Param{limitParam, offsetParam},
			Handler:     listIndexesHandler(svc),
		},
	}
	if opts.Areas {
		generic = append(generic, Tool{
			Name:        ToolAreaNames,
			Description: "All known area names across indexes, sorted.",
			Handler:     areaNamesHandler(svc),
		})
	}
	for _, t := range generic {
		if err := r.Register(t); err != nil {
			return err
		}
	}
	return nil
}

func indexSearchHandler(svc SearchService, index string) Handler {
	return func(ctx context.Context, raw json.RawMessage) envelope.Envelope {
		var args searchArgs
		if err := decodeArgs(raw, &args); err != nil {
			return envelope.InvalidArguments(err.Error())
		}
		req, err := args.request()
		if err != nil {
			return envelope.InvalidArguments(err.Error())
		}
		return svc.Search(ctx, index, req)
	}
}

func genericSearchHandler(svc SearchService) Handler {
	return func(ctx context.Context, raw json.RawMessage) envelope.Envelope {
		var args indexSearchArgs
		if err := decodeArgs(raw, &args); err != nil {
			return envelope.InvalidArguments(err.Error())
		}
		if args.Index == "" {
			return envelope.InvalidArguments(errIndexRequired.Error())
		}
		req, err := args.request()
		if err != nil {
			return envelope.InvalidArguments(err.Error())
		}
		return svc.Search(ctx, args.Index, req)
	}
}

func indexStatsHandler(svc SearchService) Handler {
	return func(ctx context.Context, raw json.RawMessage) envelope.Envelope {
		var args indexArgs
		if err := decodeArgs(raw, &args); err != nil {
			return envelope.InvalidArguments(err.Error())
		}
		if args.Index == "" {
			return envelope.InvalidArguments(errIndexRequired.Error())
		}
		return svc.IndexStats(ctx, args.Index)
	}
}

func listIndexesHandler(svc SearchService) Handler {
	return func(ctx context.Context, raw json.RawMessage) envelope.Envelope {
		var args pageArgs
		if err := decodeArgs(raw, &args); err != nil {
			return envelope.InvalidArguments(err.Error())
		}
		limit, offset := defaultPageLimit, defaultPageOffset
		if args.Limit != nil {
			limit = *args.Limit
		}
		if args.Offset != nil {
			offset = *args.Offset
		}
		return svc.ListIndexes(ctx, limit, offset)
	}
}

func areaNamesHandler(svc SearchService) Handler {
	return func(ctx context.Context, raw json.RawMessage) envelope.Envelope {
		var args struct{}
		if err := decodeArgs(raw, &args); err != nil {
			return envelope.InvalidArguments(err.Error())
		}
		return svc.AreaNames(ctx)
	}
}
