// Package fetchcmd implements the `fetch` command: fetch and extract a
// single page and dump the resulting Page as JSON. Useful for inspecting
// what the pipeline would feed the model.
package fetchcmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/dtnitsch/brochure-agent/models"
	"github.com/dtnitsch/brochure-agent/pkg/detector"
	"github.com/dtnitsch/brochure-agent/pkg/webpage"
	"github.com/urfave/cli/v2"
)

func FetchAction(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	config, err := models.LoadConfig(c.String("config"))
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(2)
	}

	rawURL := c.String("url")
	if rawURL == "" {
		return fmt.Errorf("no URL provided via --url flag")
	}

	fetcher := webpage.NewFetcher(
		webpage.WithAllowedTLDs(config.AllowedTLDs),
		webpage.WithTimeout(config.FetchTimeout),
		webpage.WithDetector(detector.New()),
	)

	page, err := fetcher.Fetch(rawURL)
	if err != nil {
		return err
	}
	if page.FetchFailed {
		logger.Warn("Fetch failed", "url", rawURL, "diagnostic", page.Text)
	}

	jsonData, err := json.MarshalIndent(page, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal page: %w", err)
	}
	fmt.Println(string(jsonData))
	return nil
}
