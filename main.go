package main

import (
	"log"
	"os"

	"github.com/dtnitsch/brochure-agent/internal/build"
	"github.com/dtnitsch/brochure-agent/internal/fetchcmd"
	"github.com/dtnitsch/brochure-agent/internal/runs"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "brochure-agent",
		Usage: "generate a company brochure from a website using an LLM",
		Commands: []*cli.Command{
			{
				Name:   "build",
				Usage:  "fetch a site, classify its links, and generate a brochure",
				Action: build.BuildAction,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "url", Usage: "root page URL", Required: true},
					&cli.StringFlag{Name: "config", Value: "brochure-agent.yaml", Usage: "path to YAML config"},
					&cli.StringFlag{Name: "model", Usage: "model name override"},
					&cli.IntFlag{Name: "workers", Usage: "relevant-page fetch workers"},
					&cli.StringFlag{Name: "output-dir", Usage: "directory for brochure artifacts"},
					&cli.BoolFlag{Name: "quiet", Usage: "only log errors"},
				},
			},
			{
				Name:   "fetch",
				Usage:  "fetch and extract a single page, dump the result as JSON",
				Action: fetchcmd.FetchAction,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "url", Usage: "page URL", Required: true},
					&cli.StringFlag{Name: "config", Value: "brochure-agent.yaml", Usage: "path to YAML config"},
					&cli.BoolFlag{Name: "quiet", Usage: "only log errors"},
				},
			},
			{
				Name:   "runs",
				Usage:  "list recorded brochure runs",
				Action: runs.RunsAction,
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "limit", Value: 20, Usage: "max runs to list"},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
