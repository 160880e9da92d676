package database

const createTablesSQL = `
CREATE TABLE IF NOT EXISTS datasets (
    id TEXT PRIMARY KEY,
    filename TEXT NOT NULL DEFAULT '',
    columns TEXT NOT NULL,
    has_category BOOLEAN NOT NULL DEFAULT FALSE,
    dropped INTEGER NOT NULL DEFAULT 0,
    uploaded_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS dataset_rows (
    dataset_id TEXT NOT NULL REFERENCES datasets(id) ON DELETE CASCADE,
    position INTEGER NOT NULL,
    cells TEXT NOT NULL,
    amount TEXT NOT NULL,
    category TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (dataset_id, position)
);

CREATE INDEX IF NOT EXISTS idx_dataset_rows_category ON dataset_rows(category);
`
