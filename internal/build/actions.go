// Package build implements the `build` command: run the full pipeline for
// one root URL, print the brochure, save the artifact, and record the run.
package build

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/dtnitsch/brochure-agent/models"
	"github.com/dtnitsch/brochure-agent/pkg/brochure"
	"github.com/dtnitsch/brochure-agent/pkg/db"
	"github.com/dtnitsch/brochure-agent/pkg/detector"
	"github.com/dtnitsch/brochure-agent/pkg/inference"
	"github.com/dtnitsch/brochure-agent/pkg/storage"
	"github.com/dtnitsch/brochure-agent/pkg/webpage"
	"github.com/urfave/cli/v2"
)

func BuildAction(c *cli.Context) error {
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
	applyFlags(c, config)

	rootURL := c.String("url")
	if rootURL == "" {
		return fmt.Errorf("no root URL provided via --url flag")
	}

	client, err := inference.NewClient(config.APIKey)
	if err != nil {
		logger.Error("failed to create inference client", "error", err)
		os.Exit(2)
	}

	database, err := db.Open()
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(2)
	}
	defer database.Close()

	fetcher := webpage.NewFetcher(
		webpage.WithAllowedTLDs(config.AllowedTLDs),
		webpage.WithTimeout(config.FetchTimeout),
		webpage.WithDetector(detector.New()),
	)

	logger.Info("Fetching root page", "url", rootURL)
	rootPage, err := fetcher.Fetch(rootURL)
	if err != nil {
		return fmt.Errorf("root URL rejected: %w", err)
	}
	if rootPage.FetchFailed {
		recordFailedRun(logger, database, rootURL, config.Model, rootPage.Text)
		return fmt.Errorf("failed to fetch root page: %s", rootPage.Text)
	}
	logger.Info("Root page fetched", "title", rootPage.Title,
		"links", len(rootPage.Links), "language", rootPage.Metadata.Language,
		"words", rootPage.Metadata.WordCount)

	creator := brochure.NewCreator(client, fetcher, config.Model, rootPage, config.Workers, logger)
	markdown, err := creator.BuildBrochure(c.Context)
	if err != nil {
		recordFailedRun(logger, database, rootURL, config.Model, err.Error())
		return err
	}

	if markdown == brochure.NoRelevantPages {
		fmt.Println(markdown)
		if _, err := database.RecordRun(&db.Run{
			RootURL: rootURL,
			Model:   config.Model,
			Status:  db.RunNoRelevantPages,
		}); err != nil {
			logger.Error("failed to record run", "error", err)
		}
		return nil
	}

	fmt.Println(markdown)

	store := &storage.Storage{}
	path, err := store.SaveBrochure(config.OutputDir, rootURL, markdown)
	if err != nil {
		logger.Error("failed to save brochure artifact", "error", err)
	} else {
		logger.Info("Brochure saved", "path", path)
	}

	report := creator.Report()
	runID, err := database.RecordRun(&db.Run{
		RootURL:           rootURL,
		Model:             config.Model,
		Status:            db.RunCompleted,
		EntityName:        report.EntityName,
		EntityStatus:      report.EntityStatus,
		RelevantLinkCount: len(report.Pages),
		FetchedPageCount:  report.FetchedPageCount(),
		BrochurePath:      path,
	})
	if err != nil {
		logger.Error("failed to record run", "error", err)
		return nil
	}
	for _, rp := range report.Pages {
		if err := database.AddRunPage(&db.RunPage{
			RunID:       runID,
			LinkType:    rp.Type,
			URL:         rp.URL,
			FetchFailed: rp.FetchFailed,
			Language:    rp.Language,
			WordCount:   rp.WordCount,
		}); err != nil {
			logger.Error("failed to record run page", "error", err, "url", rp.URL)
		}
	}
	logger.Info("Run recorded", "run_id", runID)

	return nil
}

func applyFlags(c *cli.Context, config *models.Config) {
	if c.IsSet("model") {
		config.Model = c.String("model")
	}
	if c.IsSet("workers") {
		config.Workers = c.Int("workers")
	}
	if c.IsSet("output-dir") {
		config.OutputDir = c.String("output-dir")
	}
}

func recordFailedRun(logger *slog.Logger, database *db.DB, rootURL, model, reason string) {
	if _, err := database.RecordRun(&db.Run{
		RootURL: rootURL,
		Model:   model,
		Status:  db.RunFailed,
		Error:   reason,
	}); err != nil {
		logger.Error("failed to record run", "error", err)
	}
}
