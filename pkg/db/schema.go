package db

const schema = `
-- Performance and reliability settings
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;

-- Runs table: one row per brochure build
CREATE TABLE IF NOT EXISTS runs (
    run_id INTEGER PRIMARY KEY AUTOINCREMENT,
    root_url TEXT NOT NULL,
    model TEXT NOT NULL,
    status TEXT NOT NULL,              -- completed, no_relevant_pages, failed
    entity_name TEXT,
    entity_status TEXT,                -- company, individual
    relevant_link_count INTEGER DEFAULT 0,
    fetched_page_count INTEGER DEFAULT 0,
    brochure_path TEXT,
    error TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_runs_root_url ON runs(root_url);
CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);

-- Run pages: one row per classified relevant link within a run
CREATE TABLE IF NOT EXISTS run_pages (
    page_id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id INTEGER NOT NULL,
    link_type TEXT NOT NULL,           -- about page, careers page, ...
    url TEXT NOT NULL,
    fetch_failed BOOLEAN DEFAULT 0,
    language TEXT,
    word_count INTEGER DEFAULT 0,
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_run_pages_run ON run_pages(run_id);
`
