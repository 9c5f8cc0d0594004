package db

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA temp_store = MEMORY;

-- One row per optimize or research invocation.
CREATE TABLE IF NOT EXISTS runs (
    run_id TEXT PRIMARY KEY,
    kind TEXT NOT NULL,              -- optimize, research
    input TEXT NOT NULL,             -- listing URL or product code
    status TEXT NOT NULL,            -- success, failed
    failed_stage TEXT,
    title TEXT,
    original_price REAL DEFAULT 0,
    suggested_price REAL DEFAULT 0,
    confidence REAL DEFAULT 0,
    output_path TEXT,
    error_message TEXT,
    duration_ms INTEGER DEFAULT 0,
    created_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
CREATE INDEX IF NOT EXISTS idx_runs_input ON runs(input);
`
