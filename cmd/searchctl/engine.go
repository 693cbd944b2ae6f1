package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/kailas-cloud/searchtools/internal/domain/search/filter"
	"github.com/kailas-cloud/searchtools/internal/domain/search/request"
)

// withApp runs fn against a freshly wired app and releases it afterwards.
func withApp(fn func(ctx context.Context, c *cli.Command, a *app) error) cli.ActionFunc {
	return func(ctx context.Context, c *cli.Command) error {
		a, err := buildApp(c)
		if err != nil {
			return err
		}
		defer a.Close()
		return fn(ctx, c, a)
	}
}

func searchCommand() *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Search one index and print the result envelope",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "index", Usage: "Index name", Required: true},
			&cli.StringFlag{Name: "keyword", Aliases: []string{"q"}, Usage: "Full-text keyword"},
			&cli.StringFlag{Name: "filter", Usage: "Filter conditions as a JSON object"},
			&cli.StringSliceFlag{Name: "sort", Usage: "Sort token field[:asc|desc], repeatable"},
			&cli.StringSliceFlag{Name: "attributes", Usage: "Fields to return, repeatable"},
			&cli.IntFlag{Name: "limit", Usage: "Page size"},
			&cli.IntFlag{Name: "offset", Usage: "Hits to skip"},
		},
		Action: withApp(func(ctx context.Context, c *cli.Command, a *app) error {
			var conds filter.Conditions
			if f := c.String("filter"); f != "" {
				if err := json.Unmarshal([]byte(f), &conds); err != nil {
					return fmt.Errorf("parsing --filter: %w", err)
				}
			}
			req, err := request.New(
				c.String("keyword"), conds, c.Int("limit"), c.Int("offset"),
				c.StringSlice("attributes"), c.StringSlice("sort"),
			)
			if err != nil {
				return fmt.Errorf("invalid request: %w", err)
			}
			return printEnvelope(c.Root().Writer, a.search.Search(ctx, c.String("index"), &req))
		}),
	}
}

func areasCommand() *cli.Command {
	return &cli.Command{
		Name:  "areas",
		Usage: "List the area names known across the configured indexes",
		Action: withApp(func(ctx context.Context, c *cli.Command, a *app) error {
			return printEnvelope(c.Root().Writer, a.search.AreaNames(ctx))
		}),
	}
}

func statsCommand() *cli.Command {
	return &cli.Command{
		Name:      "stats",
		Usage:     "Show document count and field distribution of an index",
		ArgsUsage: "<index>",
		Action: withApp(func(ctx context.Context, c *cli.Command, a *app) error {
			name := c.Args().First()
			if name == "" {
				return cli.Exit("index name is required", 2)
			}
			return printEnvelope(c.Root().Writer, a.search.IndexStats(ctx, name))
		}),
	}
}

func indexesCommand() *cli.Command {
	return &cli.Command{
		Name:  "indexes",
		Usage: "List the engine indexes",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Usage: "Page size"},
			&cli.IntFlag{Name: "offset", Usage: "Indexes to skip"},
		},
		Action: withApp(func(ctx context.Context, c *cli.Command, a *app) error {
			return printEnvelope(c.Root().Writer, a.search.ListIndexes(ctx, c.Int("limit"), c.Int("offset")))
		}),
	}
}

func toolsCommand() *cli.Command {
	return &cli.Command{
		Name:  "tools",
		Usage: "Print the tool definitions exposed by the server",
		Action: withApp(func(_ context.Context, c *cli.Command, a *app) error {
			return printJSON(c.Root().Writer, a.tools.Definitions())
		}),
	}
}

func callCommand() *cli.Command {
	return &cli.Command{
		Name:      "call",
		Usage:     "Invoke a tool by name with JSON arguments",
		ArgsUsage: "<tool> [arguments-json]",
		Action: withApp(func(ctx context.Context, c *cli.Command, a *app) error {
			name := c.Args().Get(0)
			if name == "" {
				return cli.Exit("tool name is required", 2)
			}
			env, err := a.tools.Call(ctx, name, json.RawMessage(c.Args().Get(1)))
			if err != nil {
				return err
			}
			return printEnvelope(c.Root().Writer, env)
		}),
	}
}
