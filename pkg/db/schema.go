package db

const (
	// SchemaV1 defines the SQL statements for version 1 of the idea store
	// schema. is_synced and is_deleted are carried on every entity as
	// scaffolding for a future remote mirror: nothing in this module flips
	// is_deleted, and every write resets is_synced to FALSE.
	SchemaV1 = `
CREATE TABLE IF NOT EXISTS ideastash_versions (
    component TEXT PRIMARY KEY,
    version INTEGER NOT NULL,
    created_at REAL DEFAULT (unixepoch())
);

CREATE TABLE IF NOT EXISTS folders (
    id UUID PRIMARY KEY,
    name VARCHAR(256) NOT NULL UNIQUE,
    is_synced BOOLEAN NOT NULL DEFAULT FALSE,
    is_deleted BOOLEAN NOT NULL DEFAULT FALSE,
    created_at REAL DEFAULT (unixepoch()),
    updated_at REAL DEFAULT (unixepoch())
);

CREATE TABLE IF NOT EXISTS ideas (
    id UUID PRIMARY KEY,
    title VARCHAR(256) NOT NULL,
    description TEXT,
    link TEXT,
    content TEXT,
    image TEXT,
    folder_id UUID NOT NULL REFERENCES folders(id),
    is_synced BOOLEAN NOT NULL DEFAULT FALSE,
    is_deleted BOOLEAN NOT NULL DEFAULT FALSE,
    created_at REAL DEFAULT (unixepoch()),
    updated_at REAL DEFAULT (unixepoch())
);

CREATE TABLE IF NOT EXISTS tags (
    id UUID PRIMARY KEY,
    name VARCHAR(256) NOT NULL,
    is_synced BOOLEAN NOT NULL DEFAULT FALSE,
    is_deleted BOOLEAN NOT NULL DEFAULT FALSE,
    created_at REAL DEFAULT (unixepoch()),
    updated_at REAL DEFAULT (unixepoch())
);

CREATE TABLE IF NOT EXISTS idea_tags (
    idea_id UUID NOT NULL REFERENCES ideas(id),
    tag_id UUID NOT NULL REFERENCES tags(id),
    created_at REAL DEFAULT (unixepoch()),
    PRIMARY KEY (idea_id, tag_id)
);

CREATE TABLE IF NOT EXISTS notifications (
    id UUID PRIMARY KEY,
    idea_id UUID NOT NULL REFERENCES ideas(id) ON DELETE CASCADE,
    title VARCHAR(256) NOT NULL,
    body TEXT,
    notify_at INTEGER NOT NULL,
    recurrence VARCHAR(16) NOT NULL DEFAULT 'none',
    schedule_handle TEXT,
    is_active BOOLEAN NOT NULL DEFAULT TRUE
);
`
)
