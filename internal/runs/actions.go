// Package runs implements the `runs` command: list recorded brochure runs.
package runs

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/dtnitsch/brochure-agent/pkg/db"
	"github.com/urfave/cli/v2"
)

func RunsAction(c *cli.Context) error {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	database, err := db.Open()
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(2)
	}
	defer database.Close()

	runs, err := database.ListRuns(c.Int("limit"))
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	for _, run := range runs {
		fmt.Printf("#%d  %s  %s  %s", run.ID, run.CreatedAt.Format("2006-01-02 15:04"), run.Status, run.RootURL)
		if run.EntityName != "" {
			fmt.Printf("  (%s, %s)", run.EntityName, run.EntityStatus)
		}
		if run.BrochurePath != "" {
			fmt.Printf("  -> %s", run.BrochurePath)
		}
		fmt.Println()
	}
	return nil
}
