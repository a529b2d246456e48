// Package db initializes the PostgreSQL connection and schema.
package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
    id BIGSERIAL PRIMARY KEY,
    username TEXT NOT NULL UNIQUE,
    email TEXT NOT NULL UNIQUE,
    password_hash BYTEA NOT NULL
);

CREATE TABLE IF NOT EXISTS project (
    id BIGSERIAL PRIMARY KEY,
    name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS user_project (
    id BIGSERIAL PRIMARY KEY,
    role INT NOT NULL,
    confirmed BOOLEAN NOT NULL DEFAULT FALSE,
    user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    project_id BIGINT NOT NULL REFERENCES project(id) ON DELETE CASCADE,
    UNIQUE (user_id, project_id)
);

CREATE TABLE IF NOT EXISTS list (
    id BIGSERIAL PRIMARY KEY,
    name TEXT NOT NULL,
    project_id BIGINT NOT NULL REFERENCES project(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS task (
    id BIGSERIAL PRIMARY KEY,
    name TEXT NOT NULL,
    date_to_start TIMESTAMPTZ,
    date_to_finish TIMESTAMPTZ,
    priority INT NOT NULL DEFAULT 0,
    description TEXT NOT NULL DEFAULT '',
    list_id BIGINT NOT NULL REFERENCES list(id) ON DELETE CASCADE,
    assigned_user_id BIGINT REFERENCES users(id) ON DELETE SET NULL,
    creator_id BIGINT NOT NULL REFERENCES users(id)
);

CREATE TABLE IF NOT EXISTS tag (
    id BIGSERIAL PRIMARY KEY,
    name TEXT NOT NULL,
    project_id BIGINT NOT NULL REFERENCES project(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS tag_task (
    tag_id BIGINT NOT NULL REFERENCES tag(id) ON DELETE CASCADE,
    task_id BIGINT NOT NULL REFERENCES task(id) ON DELETE CASCADE,
    PRIMARY KEY (tag_id, task_id)
);

CREATE TABLE IF NOT EXISTS message (
    id BIGSERIAL PRIMARY KEY,
    text TEXT NOT NULL,
    time TIMESTAMPTZ NOT NULL,
    user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    task_id BIGINT NOT NULL REFERENCES task(id) ON DELETE CASCADE
);
`

// InitPostgres opens the connection, verifies it and applies the schema.
func InitPostgres(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return db, nil
}
