package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/kailas-cloud/searchtools/internal/config"
	"github.com/kailas-cloud/searchtools/internal/db"
	"github.com/kailas-cloud/searchtools/internal/domain/search/filter"
	"github.com/kailas-cloud/searchtools/internal/domain/search/request"
	"github.com/kailas-cloud/searchtools/internal/domain/search/timefield"
	"github.com/kailas-cloud/searchtools/internal/query"
)

// compileOptions are the inputs of an offline compilation.
type compileOptions struct {
	Index   string
	Keyword string
	Filter  string
	Sort    []string
	Limit   int
	Offset  int
	Now     time.Time
}

// compiled is the machine-readable compile output.
type compiled struct {
	Index    string   `json:"index"`
	TimeMode string   `json:"time_mode"`
	Clauses  []string `json:"clauses"`
	Filter   string   `json:"filter"`
	Sort     []string `json:"sort"`
	Limit    int      `json:"limit"`
	Offset   int      `json:"offset"`
}

func compileCommand() *cli.Command {
	return &cli.Command{
		Name:  "compile",
		Usage: "Print the engine filter and sort compiled for an index, without contacting the engine",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "index", Usage: "Index name", Required: true},
			&cli.StringFlag{Name: "keyword", Aliases: []string{"q"}, Usage: "Full-text keyword"},
			&cli.StringFlag{Name: "filter", Usage: `Filter conditions as a JSON object, e.g. '{"createdAt":{"gte":"2025-09-09T00:00:00Z"}}'`},
			&cli.StringSliceFlag{Name: "sort", Usage: "Sort token field[:asc|desc], repeatable"},
			&cli.IntFlag{Name: "limit", Usage: "Page size"},
			&cli.IntFlag{Name: "offset", Usage: "Hits to skip"},
			&cli.StringFlag{Name: "now", Usage: "Clock for the expiry cutoff (RFC 3339), defaults to the current time"},
			&cli.BoolFlag{Name: "json", Usage: "Print JSON instead of text"},
		},
		Action: func(_ context.Context, c *cli.Command) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			opts := compileOptions{
				Index:   c.String("index"),
				Keyword: c.String("keyword"),
				Filter:  c.String("filter"),
				Sort:    c.StringSlice("sort"),
				Limit:   c.Int("limit"),
				Offset:  c.Int("offset"),
				Now:     time.Now(),
			}
			if s := c.String("now"); s != "" {
				now, err := time.Parse(time.RFC3339, s)
				if err != nil {
					return fmt.Errorf("parsing --now: %w", err)
				}
				opts.Now = now
			}

			q, err := compileQuery(cfg, opts)
			if err != nil {
				return err
			}
			out := compiled{
				Index:    q.Index,
				TimeMode: cfg.Search.TimeMode,
				Clauses:  q.Filter,
				Filter:   query.Join(q.Filter),
				Sort:     q.Sort,
				Limit:    q.Limit,
				Offset:   q.Offset,
			}
			w := c.Root().Writer
			if c.Bool("json") {
				return printJSON(w, out)
			}
			return renderCompiled(w, out, q)
		},
	}
}

// compileQuery builds the engine query for opts using the configured profiles.
func compileQuery(cfg config.Config, opts compileOptions) (*db.SearchQuery, error) {
	profiles, err := cfg.Profiles()
	if err != nil {
		return nil, fmt.Errorf("building index profiles: %w", err)
	}

	var conds filter.Conditions
	if opts.Filter != "" {
		if err := json.Unmarshal([]byte(opts.Filter), &conds); err != nil {
			return nil, fmt.Errorf("parsing --filter: %w", err)
		}
	}

	req, err := request.New(opts.Keyword, conds, opts.Limit, opts.Offset, nil, opts.Sort)
	if err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}
	req = req.Normalize(cfg.Search.DefaultLimit, cfg.Search.MaxLimit)

	now := opts.Now
	b := query.NewBuilder(timefield.Mode(cfg.Search.TimeMode)).WithClock(func() time.Time { return now })
	q, err := b.Build(profiles.Resolve(opts.Index), &req)
	if err != nil {
		return nil, fmt.Errorf("compiling query: %w", err)
	}
	return q, nil
}

func renderCompiled(w io.Writer, out compiled, q *db.SearchQuery) error {
	lines := []string{
		"index:     " + out.Index,
		"time mode: " + out.TimeMode,
		"clauses:",
	}
	if len(out.Clauses) == 0 {
		lines = append(lines, "  (none)")
	}
	for i, cl := range out.Clauses {
		lines = append(lines, fmt.Sprintf("  %d. %s", i+1, cl))
	}
	lines = append(lines,
		"filter:    "+out.Filter,
		fmt.Sprintf("sort:      %v", out.Sort),
		fmt.Sprintf("page:      limit=%d offset=%d", out.Limit, out.Offset),
		"query:     "+q.String(),
	)
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	}
	return nil
}
