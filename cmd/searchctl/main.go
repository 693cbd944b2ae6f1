package main

import (
	"context"
	"log"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/kailas-cloud/searchtools/internal/config"
	"github.com/kailas-cloud/searchtools/internal/version"
)

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "searchctl",
		Usage:   "Compile, run and inspect searchtools queries",
		Version: version.Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "env",
				Usage: "Configuration environment, reads config/<env>.yaml",
				Value: config.GetEnv(),
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "Configuration file path (overrides --env)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level: debug, info, warn, error",
				Value: "warn",
			},
			&cli.StringFlag{
				Name:  "time-mode",
				Usage: "Override search.time_mode: iso or timestamp",
			},
			&cli.StringFlag{
				Name:  "response-mode",
				Usage: "Override search.response_mode: basic or detailed",
			},
		},
		Commands: []*cli.Command{
			compileCommand(),
			searchCommand(),
			areasCommand(),
			statsCommand(),
			indexesCommand(),
			toolsCommand(),
			callCommand(),
		},
	}
}
