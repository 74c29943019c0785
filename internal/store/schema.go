package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS snapshots (
    plan                 TEXT PRIMARY KEY,
    payload              BLOB NOT NULL,
    entry_count          INTEGER NOT NULL DEFAULT 0,
    total_budget         REAL NOT NULL DEFAULT 0,
    saved_at             TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_snapshots_saved ON snapshots(saved_at);
`
