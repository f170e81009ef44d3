package db

import (
	"database/sql"
	"fmt"
	"time"
)

// Run statuses.
const (
	RunCompleted       = "completed"
	RunNoRelevantPages = "no_relevant_pages"
	RunFailed          = "failed"
)

// Run is one recorded brochure build.
type Run struct {
	ID                int64
	RootURL           string
	Model             string
	Status            string
	EntityName        string
	EntityStatus      string
	RelevantLinkCount int
	FetchedPageCount  int
	BrochurePath      string
	Error             string
	CreatedAt         time.Time
}

// RunPage is one classified relevant link within a run.
type RunPage struct {
	ID          int64
	RunID       int64
	LinkType    string
	URL         string
	FetchFailed bool
	Language    string
	WordCount   int
}

// RecordRun inserts a run row and returns its ID.
func (db *DB) RecordRun(run *Run) (int64, error) {
	result, err := db.Exec(`
		INSERT INTO runs (root_url, model, status, entity_name, entity_status,
			relevant_link_count, fetched_page_count, brochure_path, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.RootURL, run.Model, run.Status, run.EntityName, run.EntityStatus,
		run.RelevantLinkCount, run.FetchedPageCount, run.BrochurePath, run.Error)
	if err != nil {
		return 0, fmt.Errorf("failed to record run: %w", err)
	}
	return result.LastInsertId()
}

// AddRunPage inserts a per-link row for a recorded run.
func (db *DB) AddRunPage(page *RunPage) error {
	_, err := db.Exec(`
		INSERT INTO run_pages (run_id, link_type, url, fetch_failed, language, word_count)
		VALUES (?, ?, ?, ?, ?, ?)`,
		page.RunID, page.LinkType, page.URL, page.FetchFailed, page.Language, page.WordCount)
	if err != nil {
		return fmt.Errorf("failed to add run page: %w", err)
	}
	return nil
}

// GetRunByID returns one run.
func (db *DB) GetRunByID(runID int64) (*Run, error) {
	run := &Run{}
	err := db.QueryRow(`
		SELECT run_id, root_url, model, status, entity_name, entity_status,
			relevant_link_count, fetched_page_count, brochure_path, error, created_at
		FROM runs WHERE run_id = ?`, runID).Scan(
		&run.ID, &run.RootURL, &run.Model, &run.Status, &run.EntityName, &run.EntityStatus,
		&run.RelevantLinkCount, &run.FetchedPageCount, &run.BrochurePath, &run.Error, &run.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %d not found", runID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return run, nil
}

// ListRuns returns the most recent runs, newest first.
func (db *DB) ListRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.Query(`
		SELECT run_id, root_url, model, status, entity_name, entity_status,
			relevant_link_count, fetched_page_count, brochure_path, error, created_at
		FROM runs ORDER BY created_at DESC, run_id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(
			&run.ID, &run.RootURL, &run.Model, &run.Status, &run.EntityName, &run.EntityStatus,
			&run.RelevantLinkCount, &run.FetchedPageCount, &run.BrochurePath, &run.Error, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetRunPages returns the relevant-link rows of one run, in insertion order.
func (db *DB) GetRunPages(runID int64) ([]RunPage, error) {
	rows, err := db.Query(`
		SELECT page_id, run_id, link_type, url, fetch_failed, language, word_count
		FROM run_pages WHERE run_id = ? ORDER BY page_id`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get run pages: %w", err)
	}
	defer rows.Close()

	var pages []RunPage
	for rows.Next() {
		var page RunPage
		if err := rows.Scan(&page.ID, &page.RunID, &page.LinkType, &page.URL,
			&page.FetchFailed, &page.Language, &page.WordCount); err != nil {
			return nil, fmt.Errorf("failed to scan run page: %w", err)
		}
		pages = append(pages, page)
	}
	return pages, rows.Err()
}
